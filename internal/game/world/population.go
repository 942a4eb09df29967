// Package world holds the simulated population, the factory that grows it and
// the fate that decides, generation by generation, who drinks, duels, extorts
// and donates.
package world

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cory-johannsen/stoneandsaber/internal/game/character"
	"github.com/cory-johannsen/stoneandsaber/internal/game/dice"
)

// Filter selects characters.
type Filter func(*character.Character) bool

// Anyone matches every character.
func Anyone(*character.Character) bool { return true }

// OfKind matches characters of kind k, including sub-kinds: OfKind(KindRonin)
// matches samurais and traitors too.
func OfKind(k character.Kind) Filter {
	return func(c *character.Character) bool { return c.Is(k) }
}

// Except matches every character but c.
func Except(c *character.Character) Filter {
	return func(other *character.Character) bool { return other != c }
}

// Population tracks the living and not-yet-buried characters of a world in
// arrival order. All methods are safe for concurrent use.
type Population struct {
	mu     sync.RWMutex
	order  []*character.Character
	byID   map[string]*character.Character
	buried int
}

// NewPopulation creates an empty Population.
func NewPopulation() *Population {
	return &Population{byID: make(map[string]*character.Character)}
}

// Add appends c.
//
// Precondition: c must not be nil.
// Postcondition: Get(c.ID) returns c; returns an error if c.ID is already present.
func (p *Population) Add(c *character.Character) error {
	if c == nil {
		return fmt.Errorf("world.Population.Add: character must not be nil")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.byID[c.ID]; exists {
		return fmt.Errorf("world.Population.Add: character %q already present", c.ID)
	}
	p.byID[c.ID] = c
	p.order = append(p.order, c)
	return nil
}

// Remove deletes the character with the given ID.
//
// Postcondition: Returns an error if the character is not found.
func (p *Population) Remove(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.byID[id]; !ok {
		return fmt.Errorf("character %q not found", id)
	}
	p.removeLocked(id)
	return nil
}

func (p *Population) removeLocked(id string) {
	delete(p.byID, id)
	for i, c := range p.order {
		if c.ID == id {
			p.order = append(p.order[:i:i], p.order[i+1:]...)
			return
		}
	}
}

// Get returns the character with the given ID.
//
// Postcondition: Returns (c, true) if found, or (nil, false) otherwise.
func (p *Population) Get(id string) (*character.Character, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	c, ok := p.byID[id]
	return c, ok
}

// All returns a snapshot of every character in arrival order.
func (p *Population) All() []*character.Character {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*character.Character, len(p.order))
	copy(out, p.order)
	return out
}

// Len returns the number of characters present.
func (p *Population) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.order)
}

// Buried returns how many characters Live has removed so far.
func (p *Population) Buried() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.buried
}

// Alive returns the living characters accepted by every filter, in arrival order.
//
// Postcondition: Returns a non-nil slice (may be empty).
func (p *Population) Alive(filters ...Filter) []*character.Character {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*character.Character, 0, len(p.order))
next:
	for _, c := range p.order {
		if !c.IsAlive() {
			continue
		}
		for _, f := range filters {
			if !f(c) {
				continue next
			}
		}
		out = append(out, c)
	}
	return out
}

// Any picks a living character accepted by every filter, uniformly at random.
//
// Precondition: src must not be nil.
// Postcondition: Returns (c, true) when at least one character matches, or (nil, false).
func (p *Population) Any(src dice.Source, filters ...Filter) (*character.Character, bool) {
	candidates := p.Alive(filters...)
	if len(candidates) == 0 {
		return nil, false
	}
	return candidates[src.Intn(len(candidates))], true
}

// Live ticks every character's troubles once, then removes and returns the dead.
// Every character is ticked even when one fails; the failures are joined.
//
// Postcondition: no dead character remains; the buried are returned in arrival order.
func (p *Population) Live() ([]*character.Character, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var (
		dead []*character.Character
		errs []error
	)
	alive := make([]*character.Character, 0, len(p.order))
	for _, c := range p.order {
		if _, err := c.ProcessTroubles(); err != nil {
			errs = append(errs, fmt.Errorf("population: %s: %w", c, err))
		}
		if c.IsAlive() {
			alive = append(alive, c)
			continue
		}
		dead = append(dead, c)
		delete(p.byID, c.ID)
	}
	p.order = alive
	p.buried += len(dead)
	return dead, errors.Join(errs...)
}
