// Package dice provides the randomness abstraction shared by the simulator:
// injectable sources, dice expressions used for population and money rolls,
// and a logged roller.
package dice

import "fmt"

// RollResult holds the full audit trail for a single dice roll evaluation.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // original expression string, e.g. "1d8+2"
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

// String returns a human-readable audit string, e.g. "1d8+2 → [5] +2 = 7".
func (r RollResult) String() string {
	return fmt.Sprintf("%s → %v %+d = %d", r.Expression, r.Dice, r.Modifier, r.Total())
}

// Source is the randomness provider for every random decision in the simulator.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// probabilityResolution is the granularity of Probability draws.
const probabilityResolution = 1_000_000

// Probability draws a value in [0, 1) from src.
//
// Postcondition: 0 <= result < 1.
func Probability(src Source) float64 {
	return float64(src.Intn(probabilityResolution)) / probabilityResolution
}

// Between returns a uniformly drawn int in [lo, hi].
//
// Precondition: lo <= hi.
func Between(src Source, lo, hi int) int {
	return src.Intn(hi-lo+1) + lo
}
