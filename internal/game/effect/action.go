// Package effect models what a weapon does to a status: an Action wrapped in an
// instantaneous or lasting Effect, and the Tracker of lasting effects still ticking
// on one combatant.
package effect

import (
	"fmt"

	"github.com/cory-johannsen/stoneandsaber/internal/game/status"
)

// ErrInvalidAmount is status.ErrInvalidAmount, re-exported for callers that only
// import this package.
var ErrInvalidAmount = status.ErrInvalidAmount

// Direction selects whether an Action raises or lowers life.
type Direction int

const (
	Increase Direction = iota
	Decrease
)

// String returns "INCREASE" or "DECREASE".
func (d Direction) String() string {
	switch d {
	case Increase:
		return "INCREASE"
	case Decrease:
		return "DECREASE"
	default:
		return "UNKNOWN"
	}
}

// Action is an immutable quantified change to life.
type Action struct {
	direction Direction
	amount    int
}

// NewAction creates an Action.
//
// Precondition: amount >= 0 and dir is Increase or Decrease.
// Postcondition: Returns the Action or an error wrapping ErrInvalidAmount.
func NewAction(dir Direction, amount int) (Action, error) {
	if amount < 0 {
		return Action{}, fmt.Errorf("effect: action amount %d: %w", amount, ErrInvalidAmount)
	}
	if dir != Increase && dir != Decrease {
		return Action{}, fmt.Errorf("effect: unknown direction %d", int(dir))
	}
	return Action{direction: dir, amount: amount}, nil
}

func (a Action) Direction() Direction { return a.direction }
func (a Action) Amount() int          { return a.amount }

// Apply heals or damages s by the action's amount. Only life is touched.
//
// Precondition: s must not be nil.
// Postcondition: on error s is unchanged.
func (a Action) Apply(s *status.Status) error {
	switch a.direction {
	case Increase:
		return s.Heal(a.amount)
	case Decrease:
		return s.Damage(a.amount)
	default:
		return fmt.Errorf("effect: unknown direction %d", int(a.direction))
	}
}
