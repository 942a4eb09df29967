// Package weapon provides weapons, the builder that assembles them, and the
// catalog that resolves weapon names to fresh instances.
package weapon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/stoneandsaber/internal/game/effect"
)

// Weapon is a named bundle of effects. It is immutable once built and may be
// shared between combatants: striking never mutates it.
type Weapon struct {
	name    string
	effects []effect.Effect
}

// Name returns the weapon's display name.
func (w *Weapon) Name() string { return w.name }

// Effects returns a copy of the weapon's effects.
func (w *Weapon) Effects() []effect.Effect {
	out := make([]effect.Effect, len(w.effects))
	copy(out, w.effects)
	return out
}

// UseOn delivers every effect to t. Instantaneous effects change t's status at
// once; lasting effects start a fresh countdown in t's tracker. Callers must not
// rely on the order effects are delivered in.
//
// Precondition: t must not be nil.
// Postcondition: every effect was delivered, or the joined delivery errors are returned.
func (w *Weapon) UseOn(t effect.Target) error {
	var errs []error
	for _, e := range w.effects {
		if err := e.ApplyTo(t); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon %q: %w", w.name, errors.Join(errs...))
	}
	return nil
}

// String returns the name followed by its effects, e.g. "Sword(PHYSICAL:200)".
func (w *Weapon) String() string {
	parts := make([]string, len(w.effects))
	for i, e := range w.effects {
		parts[i] = e.String()
	}
	return fmt.Sprintf("%s(%s)", w.name, strings.Join(parts, ", "))
}

// Unarmed returns a weapon with no effects, named NoWeapon.
func Unarmed() *Weapon {
	return &Weapon{name: NoWeapon}
}
