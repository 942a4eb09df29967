// Package character defines the combatant record shared by every kind of human
// in the world and the role strategies that give each kind its behaviour.
package character

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/stoneandsaber/internal/game/effect"
	"github.com/cory-johannsen/stoneandsaber/internal/game/status"
	"github.com/cory-johannsen/stoneandsaber/internal/game/weapon"
)

var (
	// ErrInvalidAmount is returned for negative or unaffordable money amounts.
	ErrInvalidAmount = status.ErrInvalidAmount
	// ErrMissingRelation is returned when a role is built without its mandatory affiliation.
	ErrMissingRelation = errors.New("missing required relation")
	// ErrIncapable is returned when a character's role lacks the requested capability.
	ErrIncapable = errors.New("role lacks capability")
	// ErrInvalidTarget is returned when a capability is aimed at the wrong kind of character.
	ErrInvalidTarget = errors.New("invalid target")
)

// Character is one human of the world: identity, purse, vitals, troubles,
// current weapon and role.
//
// It is not safe for concurrent use; a world drives its characters from one goroutine.
type Character struct {
	ID       string
	Name     string
	Beverage string

	money   int
	status  *status.Status
	tracker *effect.Tracker
	weapon  *weapon.Weapon
	role    Role
}

func newCharacter(p Profile, role Role) (*Character, error) {
	if p.Name == "" {
		return nil, errors.New("character name must not be empty")
	}
	if p.Money < 0 {
		return nil, fmt.Errorf("character %q: starting money %d: %w", p.Name, p.Money, ErrInvalidAmount)
	}
	st := p.Status
	if st == nil {
		st = status.Default()
	}
	w := p.Weapon
	if w == nil {
		w = weapon.Unarmed()
	}
	beverage := p.Beverage
	if beverage == "" {
		beverage = role.beverage()
	}
	return &Character{
		ID:       uuid.New().String(),
		Name:     p.Name,
		Beverage: beverage,
		money:    p.Money,
		status:   st,
		tracker:  effect.NewTracker(),
		weapon:   w,
		role:     role,
	}, nil
}

// Role returns the character's role strategy.
func (c *Character) Role() Role { return c.role }

// Kind returns the character's most specific kind.
func (c *Character) Kind() Kind { return c.role.Kind() }

// Is reports whether the character belongs to kind k. Samurais and traitors
// are also ronins; traitors are also samurais.
func (c *Character) Is(k Kind) bool { return c.role.Kind().Is(k) }

// Money returns the current balance.
func (c *Character) Money() int { return c.money }

// EarnMoney adds amount to the balance and returns the new balance.
//
// Precondition: amount >= 0.
// Postcondition: on error the balance is unchanged.
func (c *Character) EarnMoney(amount int) (int, error) {
	if amount < 0 {
		return c.money, fmt.Errorf("%s earning %d: %w", c.Name, amount, ErrInvalidAmount)
	}
	c.money += amount
	return c.money, nil
}

// LoseMoney removes amount from the balance, flooring at zero, and returns the
// balance held before the loss.
//
// Precondition: amount >= 0.
// Postcondition: on error the balance is unchanged; otherwise Money() >= 0.
func (c *Character) LoseMoney(amount int) (int, error) {
	if amount < 0 {
		return c.money, fmt.Errorf("%s losing %d: %w", c.Name, amount, ErrInvalidAmount)
	}
	old := c.money
	c.money = max(c.money-amount, 0)
	return old, nil
}

// LoseEverything empties the purse and returns what it held.
func (c *Character) LoseEverything() int {
	old := c.money
	c.money = 0
	return old
}

// Status returns the character's vitals.
func (c *Character) Status() *status.Status { return c.status }

// Life returns current life.
func (c *Character) Life() int { return c.status.Life() }

// IsAlive reports whether life is above zero.
func (c *Character) IsAlive() bool { return c.status.IsAlive() }

// AddTrouble starts a fresh countdown for a lasting effect on this character.
func (c *Character) AddTrouble(e effect.Effect) error { return c.tracker.Add(e) }

// Troubles returns the lasting effects currently ticking on this character.
func (c *Character) Troubles() []*effect.Trouble { return c.tracker.All() }

// ProcessTroubles ticks every active trouble once and returns those that expired.
func (c *Character) ProcessTroubles() ([]*effect.Trouble, error) {
	return c.tracker.Process(c.status)
}

// Weapon returns the current weapon. Never nil.
func (c *Character) Weapon() *weapon.Weapon { return c.weapon }

// SetWeapon equips w; nil leaves the character unarmed.
func (c *Character) SetWeapon(w *weapon.Weapon) {
	if w == nil {
		w = weapon.Unarmed()
	}
	c.weapon = w
}

// UnsetWeapon leaves the character unarmed.
func (c *Character) UnsetWeapon() { c.SetWeapon(nil) }

// UseWeaponOn strikes target with the current weapon.
func (c *Character) UseWeaponOn(target effect.Target) error { return c.weapon.UseOn(target) }

// WinDuel fires the role's win hook. The purse is settled by the caller.
func (c *Character) WinDuel(amount int) { c.role.winDuel(amount) }

// LoseDuel fires the role's lose hook. The purse is settled by the caller.
func (c *Character) LoseDuel(amount int) { c.role.loseDuel(amount) }

// Greeting returns what the character says when introduced.
func (c *Character) Greeting() string { return c.role.greeting(c) }

// Drink returns what the character says when drinking.
func (c *Character) Drink() string {
	return fmt.Sprintf("Ahhh, a good glass of %s! Gasp!", c.Beverage)
}

// String returns "[<kind initial>] <name>", e.g. "[S] Bomizu".
func (c *Character) String() string {
	return fmt.Sprintf("[%c] %s", c.Kind().String()[0], c.Name)
}
