// internal/domain/promotion/dice.go
package promotion

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// RollDice draws two dice independently and uniformly from 1..6.
func RollDice(r *rand.Rand) (die1, die2 int) {
	return r.Intn(6) + 1, r.Intn(6) + 1
}

// PackRoll encodes two dice into one integer as die1*10 + die2. Valid
// because each die value fits in a decimal digit.
func PackRoll(die1, die2 int) int {
	return die1*10 + die2
}

// UnpackRoll decodes a packed roll back into its two dice.
func UnpackRoll(packed int) (die1, die2 int) {
	return packed / 10, packed % 10
}

// DeriveCode builds the discount code for a roll deterministically from
// stored data alone: "DICE" + first four characters of the user UUID
// uppercased + packed roll value + the UTC date as YYYYMMDD. Two users
// sharing a UUID prefix, roll, and day would collide; that is a known and
// accepted limitation of the scheme.
func DeriveCode(userUUID string, packed int, day time.Time) string {
	prefix := userUUID
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	return fmt.Sprintf("DICE%s%d%s", strings.ToUpper(prefix), packed, day.UTC().Format("20060102"))
}

// DayUTC truncates a timestamp to its UTC calendar day.
func DayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
