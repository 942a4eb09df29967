// Package status holds the vital attributes of one combatant and clamps them.
package status

import (
	"errors"
	"fmt"
	"sort"
)

// Defaults applied by Default.
const (
	DefaultLife     = 500
	DefaultArmor    = 100
	DefaultStrength = 100
)

// ErrInvalidAmount is returned when a negative amount is applied to a status.
var ErrInvalidAmount = errors.New("invalid amount")

// Status is the set of vital attributes of one combatant.
//
// Invariant: 0 <= life <= lifeMax; a tag is never both a weakness and a resistance.
// Strength and armor are stored and reported but do not take part in damage or
// heal arithmetic.
// It is not safe for concurrent use; the owning combatant serialises access.
type Status struct {
	life        int
	lifeMax     int
	strength    int
	armor       int
	weaknesses  map[Element]struct{}
	resistances map[Element]struct{}
}

// New creates a Status with full life. lifeMax is fixed to life.
//
// Precondition: life >= 0.
// Postcondition: Life() == LifeMax() == max(life, 0).
func New(life, strength, armor int) *Status {
	if life < 0 {
		life = 0
	}
	return &Status{
		life:        life,
		lifeMax:     life,
		strength:    strength,
		armor:       armor,
		weaknesses:  make(map[Element]struct{}),
		resistances: make(map[Element]struct{}),
	}
}

// Default creates a Status with DefaultLife, DefaultStrength and DefaultArmor.
func Default() *Status {
	return New(DefaultLife, DefaultStrength, DefaultArmor)
}

func (s *Status) Life() int     { return s.life }
func (s *Status) LifeMax() int  { return s.lifeMax }
func (s *Status) Strength() int { return s.strength }
func (s *Status) Armor() int    { return s.armor }

// IsAlive reports whether life is above zero.
func (s *Status) IsAlive() bool { return s.life > 0 }

// Damage subtracts amount from life, flooring at zero.
//
// Precondition: amount >= 0.
// Postcondition: on error nothing is modified; otherwise 0 <= Life() <= LifeMax().
func (s *Status) Damage(amount int) error {
	if amount < 0 {
		return fmt.Errorf("status: damage %d: %w", amount, ErrInvalidAmount)
	}
	s.SetLife(s.life - amount)
	return nil
}

// Heal adds amount to life, capping at lifeMax.
//
// Precondition: amount >= 0.
// Postcondition: on error nothing is modified; otherwise 0 <= Life() <= LifeMax().
func (s *Status) Heal(amount int) error {
	if amount < 0 {
		return fmt.Errorf("status: heal %d: %w", amount, ErrInvalidAmount)
	}
	s.SetLife(s.life + amount)
	return nil
}

// SetLife sets life clamped into [0, lifeMax].
func (s *Status) SetLife(life int) {
	s.life = min(max(life, 0), s.lifeMax)
}

func (s *Status) SetStrength(strength int) { s.strength = strength }
func (s *Status) SetArmor(armor int)       { s.armor = armor }

// AddWeakness marks e as a weakness, dropping it from the resistances.
// Returns false if e was already a weakness.
func (s *Status) AddWeakness(e Element) bool {
	delete(s.resistances, e)
	return add(s.weaknesses, e)
}

// RemoveWeakness returns false if e was not a weakness.
func (s *Status) RemoveWeakness(e Element) bool {
	return remove(s.weaknesses, e)
}

// AddResistance marks e as a resistance, dropping it from the weaknesses.
// Returns false if e was already a resistance.
func (s *Status) AddResistance(e Element) bool {
	delete(s.weaknesses, e)
	return add(s.resistances, e)
}

// RemoveResistance returns false if e was not a resistance.
func (s *Status) RemoveResistance(e Element) bool {
	return remove(s.resistances, e)
}

func (s *Status) IsWeakness(e Element) bool {
	_, ok := s.weaknesses[e]
	return ok
}

func (s *Status) IsResistance(e Element) bool {
	_, ok := s.resistances[e]
	return ok
}

// Weaknesses returns a sorted copy of the weakness tags.
func (s *Status) Weaknesses() []Element { return sorted(s.weaknesses) }

// Resistances returns a sorted copy of the resistance tags.
func (s *Status) Resistances() []Element { return sorted(s.resistances) }

// Multiplier returns the damage multiplier for an element hitting this status.
// Weaknesses and resistances are tracked but not yet consulted; always 1.
func (s *Status) Multiplier(Element) int { return 1 }

// String returns "HP:<life> STR:<strength> ARM:<armor>".
func (s *Status) String() string {
	return fmt.Sprintf("HP:%d STR:%d ARM:%d", s.life, s.strength, s.armor)
}

func add(set map[Element]struct{}, e Element) bool {
	if _, ok := set[e]; ok {
		return false
	}
	set[e] = struct{}{}
	return true
}

func remove(set map[Element]struct{}, e Element) bool {
	if _, ok := set[e]; !ok {
		return false
	}
	delete(set, e)
	return true
}

func sorted(set map[Element]struct{}) []Element {
	out := make([]Element, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
