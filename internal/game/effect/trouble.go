package effect

import (
	"fmt"

	"github.com/cory-johannsen/stoneandsaber/internal/game/status"
)

// Trouble is one delivery of a lasting effect, ticking down on one combatant.
// Each delivery gets its own Trouble; two combatants never share one.
type Trouble struct {
	effect    Effect
	remaining int
}

// Effect returns the template this trouble was created from.
func (t *Trouble) Effect() Effect { return t.effect }

// Remaining returns the number of ticks left.
func (t *Trouble) Remaining() int { return t.remaining }

// IsExpired reports whether the countdown has reached zero or below.
func (t *Trouble) IsExpired() bool { return t.remaining <= 0 }

// Apply applies the effect's action to s and decrements the countdown.
//
// Precondition: s must not be nil.
// Postcondition: Remaining() is one less than before, even on error.
func (t *Trouble) Apply(s *status.Status) error {
	t.remaining--
	if err := t.effect.action.Apply(s); err != nil {
		return fmt.Errorf("effect: trouble %s: %w", t.effect, err)
	}
	return nil
}

func (t *Trouble) String() string {
	return fmt.Sprintf("%s (%d left)", t.effect, t.remaining)
}
