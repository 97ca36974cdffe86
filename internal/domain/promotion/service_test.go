// internal/domain/promotion/service_test.go
package promotion

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"
)

type stubRollStore struct {
	rolls map[string]*DiceRoll
	// when set, the next Create fails and conflict is stored instead,
	// as if a concurrent insert won the unique (user, day) race
	conflict *DiceRoll
}

func newStubRollStore() *stubRollStore {
	return &stubRollStore{rolls: make(map[string]*DiceRoll)}
}

func rollKey(userID uint, day time.Time) string {
	return fmt.Sprintf("%d:%s", userID, day.UTC().Format("20060102"))
}

func (s *stubRollStore) FindByUserAndDay(userID uint, day time.Time) (*DiceRoll, error) {
	roll, ok := s.rolls[rollKey(userID, day)]
	if !ok {
		return nil, nil
	}
	copied := *roll
	return &copied, nil
}

func (s *stubRollStore) Create(roll *DiceRoll) error {
	if s.conflict != nil {
		s.rolls[rollKey(s.conflict.UserID, s.conflict.RollDate)] = s.conflict
		s.conflict = nil
		return errors.New("duplicate key value violates unique constraint")
	}
	s.rolls[rollKey(roll.UserID, roll.RollDate)] = roll
	return nil
}

type stubSettings struct {
	active bool
}

func (s *stubSettings) IsActive() (bool, error) { return s.active, nil }
func (s *stubSettings) SetActive(active bool) error { s.active = active; return nil }

type appliedDiscount struct {
	code       string
	percentage int
}

type stubApplier struct {
	applied []appliedDiscount
}

func (s *stubApplier) Apply(ctx context.Context, userID *uint, sessionID, code string, percentage int) error {
	s.applied = append(s.applied, appliedDiscount{code: code, percentage: percentage})
	return nil
}

func newTestService(store *stubRollStore, active bool, applier *stubApplier) *Service {
	return &Service{
		rolls:     store,
		settings:  &stubSettings{active: active},
		discounts: applier,
		rng:       rand.New(rand.NewSource(7)),
		now: func() time.Time {
			return time.Date(2025, 7, 15, 10, 30, 0, 0, time.UTC)
		},
	}
}

func TestRollSameDayReturnsStoredRoll(t *testing.T) {
	store := newStubRollStore()
	applier := &stubApplier{}
	svc := newTestService(store, true, applier)

	const userUUID = "abcd1234-0000-0000-0000-000000000000"

	first, err := svc.Roll(context.Background(), 42, userUUID)
	if err != nil {
		t.Fatalf("first roll: %v", err)
	}
	if first.AlreadyRolled {
		t.Error("first roll reported AlreadyRolled")
	}
	if len(store.rolls) != 1 {
		t.Fatalf("stored rolls = %d, want 1", len(store.rolls))
	}

	second, err := svc.Roll(context.Background(), 42, userUUID)
	if err != nil {
		t.Fatalf("second roll: %v", err)
	}
	if !second.AlreadyRolled {
		t.Error("second roll the same day did not report AlreadyRolled")
	}
	if len(store.rolls) != 1 {
		t.Errorf("stored rolls after second roll = %d, want 1", len(store.rolls))
	}
	if second.Code != first.Code {
		t.Errorf("re-read code = %q, want %q", second.Code, first.Code)
	}
	if second.PackedRoll != first.PackedRoll || second.Percentage != first.Percentage {
		t.Errorf("re-read roll = (%d, %d%%), want (%d, %d%%)",
			second.PackedRoll, second.Percentage, first.PackedRoll, first.Percentage)
	}

	// Only the fresh roll pushes the code into the discount state
	if len(applier.applied) != 1 {
		t.Fatalf("discount applied %d times, want 1", len(applier.applied))
	}
	if applier.applied[0].code != first.Code || applier.applied[0].percentage != first.Percentage {
		t.Errorf("applied discount = %+v, want code %q pct %d",
			applier.applied[0], first.Code, first.Percentage)
	}
}

func TestRollBlockedWhenPromotionInactive(t *testing.T) {
	store := newStubRollStore()
	svc := newTestService(store, false, &stubApplier{})

	_, err := svc.Roll(context.Background(), 42, "abcd1234-x")
	if !errors.Is(err, ErrPromotionInactive) {
		t.Fatalf("err = %v, want ErrPromotionInactive", err)
	}
	if len(store.rolls) != 0 {
		t.Errorf("inactive promotion stored %d rolls, want 0", len(store.rolls))
	}
}

func TestRollLosingInsertRaceReturnsWinner(t *testing.T) {
	store := newStubRollStore()
	day := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	store.conflict = &DiceRoll{
		UserID:     42,
		RollDate:   day,
		PackedRoll: PackRoll(3, 5),
		Percentage: 8,
	}

	applier := &stubApplier{}
	svc := newTestService(store, true, applier)

	result, err := svc.Roll(context.Background(), 42, "abcd1234-x")
	if err != nil {
		t.Fatalf("roll after losing race: %v", err)
	}
	if !result.AlreadyRolled {
		t.Error("race loser did not report AlreadyRolled")
	}
	if result.PackedRoll != PackRoll(3, 5) || result.Percentage != 8 {
		t.Errorf("race loser got (%d, %d%%), want winner's (35, 8%%)",
			result.PackedRoll, result.Percentage)
	}
	if len(applier.applied) != 0 {
		t.Errorf("race loser applied the discount %d times, want 0", len(applier.applied))
	}
}

func TestTodayRollNilBeforeFirstRoll(t *testing.T) {
	svc := newTestService(newStubRollStore(), true, &stubApplier{})

	roll, err := svc.TodayRoll(42)
	if err != nil {
		t.Fatalf("TodayRoll: %v", err)
	}
	if roll != nil {
		t.Errorf("TodayRoll before rolling = %+v, want nil", roll)
	}
}
