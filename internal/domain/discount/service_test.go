// internal/domain/discount/service_test.go
package discount

import (
	"context"
	"errors"
	"testing"
)

type stubStore struct {
	states  map[string]State
	saveErr error
}

func newStubStore() *stubStore {
	return &stubStore{states: make(map[string]State)}
}

func (s *stubStore) Load(_ context.Context, ownerKey string) (State, error) {
	return s.states[ownerKey], nil
}

func (s *stubStore) Save(_ context.Context, ownerKey string, state State) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.states[ownerKey] = state
	return nil
}

func (s *stubStore) Clear(_ context.Context, ownerKey string) error {
	delete(s.states, ownerKey)
	return nil
}

type stubCatalog struct {
	codes map[string]*DiscountCode
	err   error
}

func (s *stubCatalog) FindActive(_ context.Context, code string) (*DiscountCode, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.codes[code], nil
}

func TestApplyReplacesExistingDiscount(t *testing.T) {
	store := newStubStore()
	svc := &Service{store: store}
	ctx := context.Background()
	userID := uint(7)

	if err := svc.Apply(ctx, &userID, "", "WELCOME10", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Apply(ctx, &userID, "", "DICEABCD3520250715", 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state, err := svc.Get(ctx, &userID, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Code != "DICEABCD3520250715" || state.Percentage != 8 {
		t.Errorf("state = %+v, want last-applied dice discount", state)
	}
	if len(store.states) != 1 {
		t.Errorf("store holds %d states, want exactly 1 (no stacking)", len(store.states))
	}
}

func TestApplyCodeUnknownLeavesStateUntouched(t *testing.T) {
	store := newStubStore()
	svc := &Service{
		store:   store,
		catalog: &stubCatalog{codes: map[string]*DiscountCode{}},
	}
	ctx := context.Background()
	userID := uint(7)

	if err := svc.Apply(ctx, &userID, "", "WELCOME10", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.ApplyCode(ctx, &userID, "", "NOPE")
	if !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("err = %v, want ErrInvalidCode", err)
	}

	state, _ := svc.Get(ctx, &userID, "")
	if state.Code != "WELCOME10" || state.Percentage != 10 {
		t.Errorf("state = %+v, want prior discount preserved", state)
	}
}

func TestApplyCodeActiveMatch(t *testing.T) {
	store := newStubStore()
	svc := &Service{
		store: store,
		catalog: &stubCatalog{codes: map[string]*DiscountCode{
			"SUMMER20": {Code: "SUMMER20", Percentage: 20, IsActive: true},
		}},
	}
	ctx := context.Background()

	state, err := svc.ApplyCode(ctx, nil, "sess-1", "SUMMER20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Code != "SUMMER20" || state.Percentage != 20 {
		t.Errorf("state = %+v, want SUMMER20 at 20%%", state)
	}
}

func TestRemoveClearsToAbsentState(t *testing.T) {
	store := newStubStore()
	svc := &Service{store: store}
	ctx := context.Background()
	userID := uint(3)

	if err := svc.Apply(ctx, &userID, "", "WELCOME10", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Remove(ctx, &userID, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state, _ := svc.Get(ctx, &userID, "")
	if !state.IsZero() || state.Percentage != 0 {
		t.Errorf("state = %+v, want absent state with zero percentage", state)
	}
}

func TestOwnerKeyIdentity(t *testing.T) {
	userID := uint(42)

	if got := OwnerKey(&userID, "sess-abc"); got != "discount:user:42" {
		t.Errorf("authenticated owner key = %q, want user key to win", got)
	}
	if got := OwnerKey(nil, "sess-abc"); got != "discount:session:sess-abc" {
		t.Errorf("anonymous owner key = %q", got)
	}
}
