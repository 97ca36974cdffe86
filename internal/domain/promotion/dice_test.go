// internal/domain/promotion/dice_test.go
package promotion

import (
	"math/rand"
	"testing"
	"time"
)

func TestPackRollRoundTrip(t *testing.T) {
	for d1 := 1; d1 <= 6; d1++ {
		for d2 := 1; d2 <= 6; d2++ {
			packed := PackRoll(d1, d2)

			gotD1, gotD2 := UnpackRoll(packed)
			if gotD1 != d1 || gotD2 != d2 {
				t.Errorf("UnpackRoll(PackRoll(%d, %d)) = (%d, %d)", d1, d2, gotD1, gotD2)
			}

			pct := d1 + d2
			if pct < 2 || pct > 12 {
				t.Errorf("percentage %d for (%d, %d) out of [2, 12]", pct, d1, d2)
			}
		}
	}
}

func TestRollDiceRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		d1, d2 := RollDice(rng)
		if d1 < 1 || d1 > 6 || d2 < 1 || d2 > 6 {
			t.Fatalf("roll (%d, %d) outside [1, 6]", d1, d2)
		}
	}
}

func TestRollDiceCoversAllFaces(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	seen := make(map[int]bool)

	for i := 0; i < 10000; i++ {
		d1, d2 := RollDice(rng)
		seen[d1] = true
		seen[d2] = true
	}

	for face := 1; face <= 6; face++ {
		if !seen[face] {
			t.Errorf("face %d never rolled in 10000 draws", face)
		}
	}
}

func TestDeriveCode(t *testing.T) {
	day := time.Date(2025, 7, 15, 14, 30, 0, 0, time.UTC)

	code := DeriveCode("abcd1234-5678-90ab-cdef-1234567890ab", PackRoll(3, 5), day)

	if code != "DICEABCD3520250715" {
		t.Errorf("code = %q, want DICEABCD3520250715", code)
	}
}

func TestDeriveCodeIsDeterministic(t *testing.T) {
	day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	first := DeriveCode("f00dcafe-uuid", 66, day)
	second := DeriveCode("f00dcafe-uuid", 66, day)

	if first != second {
		t.Errorf("codes differ for identical inputs: %q vs %q", first, second)
	}
	if first != "DICEF00D6620260102" {
		t.Errorf("code = %q, want DICEF00D6620260102", first)
	}
}

func TestDeriveCodeShortUUID(t *testing.T) {
	day := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	if code := DeriveCode("ab", 12, day); code != "DICEAB1220251231" {
		t.Errorf("code = %q for short uuid", code)
	}
}

func TestDayUTC(t *testing.T) {
	// 23:30 in UTC+5:30 is 18:00 UTC the same day; 01:00 in UTC+5:30 is
	// 19:30 UTC the previous day.
	ist := time.FixedZone("IST", 5*3600+1800)

	late := time.Date(2025, 7, 15, 23, 30, 0, 0, ist)
	if got := DayUTC(late); !got.Equal(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("DayUTC(23:30 IST) = %v", got)
	}

	early := time.Date(2025, 7, 15, 1, 0, 0, 0, ist)
	if got := DayUTC(early); !got.Equal(time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("DayUTC(01:00 IST) = %v, want previous UTC day", got)
	}
}

func TestDiceRollAccessors(t *testing.T) {
	roll := DiceRoll{PackedRoll: 35, Percentage: 8}

	if roll.Die1() != 3 || roll.Die2() != 5 {
		t.Errorf("dice = (%d, %d), want (3, 5)", roll.Die1(), roll.Die2())
	}
}
