package effect

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/stoneandsaber/internal/game/status"
)

// ErrNotLasting is returned when an instantaneous effect is given to a Tracker.
var ErrNotLasting = errors.New("effect is not lasting")

// Tracker holds the troubles currently active on one combatant, in delivery order.
// It is not safe for concurrent use; the owning combatant serialises access.
type Tracker struct {
	troubles []*Trouble
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Add starts a fresh countdown for e.
//
// Precondition: e must be lasting.
// Postcondition: Len() grows by one, or an error wrapping ErrNotLasting is returned
// and the tracker is unchanged.
func (tr *Tracker) Add(e Effect) error {
	if !e.IsLasting() {
		return fmt.Errorf("effect: tracking %s: %w", e, ErrNotLasting)
	}
	tr.troubles = append(tr.troubles, e.Instantiate())
	return nil
}

// Process applies every active trouble to s exactly once, then drops the ones
// that have expired. Troubles added while processing are not applied this pass.
//
// Precondition: s must not be nil.
// Postcondition: no expired trouble remains; the removed troubles are returned in
// delivery order. A trouble that fails to apply still ticks; the failures are
// joined into the returned error.
func (tr *Tracker) Process(s *status.Status) ([]*Trouble, error) {
	var errs []error
	snapshot := tr.troubles
	for _, t := range snapshot {
		if err := t.Apply(s); err != nil {
			errs = append(errs, err)
		}
	}

	active := make([]*Trouble, 0, len(tr.troubles))
	var expired []*Trouble
	for _, t := range tr.troubles {
		if t.IsExpired() {
			expired = append(expired, t)
			continue
		}
		active = append(active, t)
	}
	tr.troubles = active
	return expired, errors.Join(errs...)
}

// Len returns the number of active troubles.
func (tr *Tracker) Len() int { return len(tr.troubles) }

// All returns the active troubles. The slice is a new allocation but the
// Trouble values are shared; callers must not apply them.
func (tr *Tracker) All() []*Trouble {
	out := make([]*Trouble, len(tr.troubles))
	copy(out, tr.troubles)
	return out
}

// Clear drops every active trouble.
func (tr *Tracker) Clear() {
	tr.troubles = nil
}
