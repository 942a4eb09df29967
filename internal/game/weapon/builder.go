package weapon

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/stoneandsaber/internal/game/effect"
	"github.com/cory-johannsen/stoneandsaber/internal/game/status"
)

// Builder assembles a Weapon step by step. Errors from individual steps are
// collected and reported together by Build.
type Builder struct {
	name    string
	effects []effect.Effect
	errs    []error
}

// NewBuilder starts a weapon called name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Named renames the weapon under construction.
func (b *Builder) Named(name string) *Builder {
	b.name = name
	return b
}

// Injuring adds an instantaneous physical hit of amount.
func (b *Builder) Injuring(amount int) *Builder {
	return b.action(effect.Decrease, amount, func(a effect.Action) effect.Effect {
		return effect.Instant(a, status.Physical)
	})
}

// Curing adds an instantaneous fairy heal of amount.
func (b *Builder) Curing(amount int) *Builder {
	return b.action(effect.Increase, amount, func(a effect.Action) effect.Effect {
		return effect.Instant(a, status.Fairy)
	})
}

// Burning adds a lasting fire effect dealing amount each tick for ticks ticks.
func (b *Builder) Burning(amount, ticks int) *Builder {
	if ticks <= 0 {
		b.errs = append(b.errs, fmt.Errorf("burning ticks must be > 0, got %d", ticks))
		return b
	}
	return b.action(effect.Decrease, amount, func(a effect.Action) effect.Effect {
		return effect.NewLasting(a, status.Fire, ticks)
	})
}

// With adds an arbitrary effect.
func (b *Builder) With(e effect.Effect) *Builder {
	b.effects = append(b.effects, e)
	return b
}

func (b *Builder) action(dir effect.Direction, amount int, wrap func(effect.Action) effect.Effect) *Builder {
	a, err := effect.NewAction(dir, amount)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.effects = append(b.effects, wrap(a))
	return b
}

// Build returns the assembled weapon. The returned weapon does not share state
// with the builder; further builder steps do not affect it.
//
// Postcondition: Returns a non-nil Weapon, or nil and every collected error.
func (b *Builder) Build() (*Weapon, error) {
	errs := append([]error(nil), b.errs...)
	if b.name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("weapon: building %q: %w", b.name, errors.Join(errs...))
	}
	effects := make([]effect.Effect, len(b.effects))
	copy(effects, b.effects)
	return &Weapon{name: b.name, effects: effects}, nil
}
