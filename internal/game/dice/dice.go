// Package dice provides the randomness abstraction and roll-result types for
// the LocalMUD engine. All randomness in the engine flows through a Source so
// that dialogue selection, loot drops, and combat damage are deterministic
// under test.
package dice

import "fmt"

// RollResult holds the full audit trail for a single dice roll evaluation.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // original expression string, e.g. "1d6+1"
	Dice       []int  // individual die results before modifier
	Modifier   int    // flat modifier (may be negative)
}

// Total returns the sum of all die results plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String returns a human-readable audit string in the format:
//
//	"1d6+1 → [4] +1 = 5"
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	return fmt.Sprintf("%s → %v %+d = %d", r.Expression, r.Dice, r.Modifier, r.Total())
}

// Source is the randomness provider for all engine rolls.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// RollRange returns a uniform random int in [1, n] using src. A non-positive
// n yields 1 so that degenerate stat values still land a scratch.
func RollRange(src Source, n int) int {
	if n <= 0 {
		return 1
	}
	return src.Intn(n) + 1
}
