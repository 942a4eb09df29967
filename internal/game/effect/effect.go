package effect

import (
	"fmt"

	"github.com/cory-johannsen/stoneandsaber/internal/game/status"
)

// DefaultTicks is the countdown given to a lasting effect when none is specified.
const DefaultTicks = 3

// Kind distinguishes instantaneous effects from lasting ones.
type Kind int

const (
	Instantaneous Kind = iota
	Lasting
)

func (k Kind) String() string {
	if k == Lasting {
		return "lasting"
	}
	return "instantaneous"
}

// Target is anything a weapon can strike.
type Target interface {
	Status() *status.Status
	AddTrouble(Effect) error
}

// Effect is an immutable template: an Action, its elemental tag and, for a
// lasting effect, the countdown each delivery starts from.
// Effects are plain values; delivering one never mutates it.
type Effect struct {
	kind    Kind
	action  Action
	element status.Element
	ticks   int
}

// Instant creates an effect applied once at strike time.
func Instant(action Action, element status.Element) Effect {
	return Effect{kind: Instantaneous, action: action, element: element}
}

// NewLasting creates a lasting effect with a countdown of ticks.
// A ticks value <= 0 yields an effect that is already expired.
func NewLasting(action Action, element status.Element, ticks int) Effect {
	return Effect{kind: Lasting, action: action, element: element, ticks: ticks}
}

// LastingDefault creates a lasting effect with DefaultTicks.
func LastingDefault(action Action, element status.Element) Effect {
	return NewLasting(action, element, DefaultTicks)
}

func (e Effect) Kind() Kind              { return e.kind }
func (e Effect) Action() Action          { return e.action }
func (e Effect) Element() status.Element { return e.element }
func (e Effect) IsInstantaneous() bool   { return e.kind == Instantaneous }
func (e Effect) IsLasting() bool         { return e.kind == Lasting }

// Ticks returns the countdown a fresh delivery starts from. Zero for instantaneous effects.
func (e Effect) Ticks() int { return e.ticks }

// IsExpired is always false for an instantaneous effect and true for a lasting
// template whose countdown is already at or below zero.
func (e Effect) IsExpired() bool {
	return e.kind == Lasting && e.ticks <= 0
}

// String returns "<ELEMENT>:<amount>", e.g. "FIRE:50".
func (e Effect) String() string {
	return fmt.Sprintf("%s:%d", e.element, e.action.amount)
}

// ApplyTo delivers the effect to t. An instantaneous effect changes t's status
// immediately; a lasting effect is handed to t's tracker, which keeps its own
// countdown.
//
// Precondition: t must not be nil.
// Postcondition: e is unchanged.
func (e Effect) ApplyTo(t Target) error {
	if e.kind == Instantaneous {
		return e.action.Apply(t.Status())
	}
	return t.AddTrouble(e)
}

// Instantiate returns a fresh live countdown for this effect.
func (e Effect) Instantiate() *Trouble {
	return &Trouble{effect: e, remaining: e.ticks}
}
