package weapon

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/stoneandsaber/internal/game/dice"
)

// Preset weapon names.
const (
	Sword        = "Sword"
	BurningSword = "Burning Sword"
	Dagger       = "Dagger"
	Bow          = "Bow"
	Cure         = "Cure"
	NoWeapon     = "No Weapon"
)

// ErrUnknownWeapon is returned when a name is not in the catalog.
var ErrUnknownWeapon = errors.New("unknown weapon")

func presets() []*Def {
	instant := func(dir string, element string, amount int) EffectDef {
		return EffectDef{Kind: "instant", Direction: dir, Element: element, Amount: amount}
	}
	return []*Def{
		{Name: Sword, Armory: true, Effects: []EffectDef{instant("decrease", "physical", 200)}},
		{Name: BurningSword, Armory: true, Effects: []EffectDef{
			instant("decrease", "physical", 200),
			{Kind: "lasting", Direction: "decrease", Element: "fire", Amount: 50, Ticks: 3},
		}},
		{Name: Bow, Armory: true, Effects: []EffectDef{instant("decrease", "physical", 150)}},
		{Name: Dagger, Armory: true, Effects: []EffectDef{instant("decrease", "physical", 100)}},
		{Name: Cure, Effects: []EffectDef{instant("increase", "fairy", 100)}},
		{Name: NoWeapon},
	}
}

// Catalog resolves weapon names to freshly built weapons.
// It is safe for concurrent use.
type Catalog struct {
	mu     sync.RWMutex
	defs   map[string]*Def
	armory []string // registration order; Any draws from here
	logger *zap.Logger
}

// NewCatalog returns a catalog holding the preset weapons.
//
// Precondition: logger must not be nil.
// Postcondition: Create succeeds for every preset name.
func NewCatalog(logger *zap.Logger) *Catalog {
	c := &Catalog{defs: make(map[string]*Def), logger: logger}
	for _, def := range presets() {
		if err := c.Register(def); err != nil {
			panic(fmt.Sprintf("weapon: preset %q: %v", def.Name, err))
		}
	}
	return c
}

// Register adds def to the catalog.
//
// Precondition: def must not be nil.
// Postcondition: Create(def.Name) succeeds; returns an error if def is invalid or
// the name is already registered.
func (c *Catalog) Register(def *Def) error {
	if err := def.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.defs[def.Name]; exists {
		return fmt.Errorf("weapon: Catalog.Register: weapon %q already registered", def.Name)
	}
	c.defs[def.Name] = def
	if def.Armory {
		c.armory = append(c.armory, def.Name)
	}
	return nil
}

// LoadDirectory registers every weapon definition found in dir.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns the number of weapons registered, or the first error.
func (c *Catalog) LoadDirectory(dir string) (int, error) {
	defs, err := LoadDefinitions(dir)
	if err != nil {
		return 0, err
	}
	for i, def := range defs {
		if err := c.Register(def); err != nil {
			return i, err
		}
		c.logger.Debug("weapon registered", zap.String("name", def.Name), zap.Bool("armory", def.Armory))
	}
	return len(defs), nil
}

// Create builds a new weapon for name.
//
// Postcondition: Returns a non-nil Weapon, or an error wrapping ErrUnknownWeapon.
func (c *Catalog) Create(name string) (*Weapon, error) {
	c.mu.RLock()
	def, ok := c.defs[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("weapon: %q: %w", name, ErrUnknownWeapon)
	}
	return def.Build()
}

// MustCreate is Create for names known to be registered; it panics otherwise.
func (c *Catalog) MustCreate(name string) *Weapon {
	w, err := c.Create(name)
	if err != nil {
		panic(err)
	}
	return w
}

// Names returns every registered weapon name, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.defs))
	for name := range c.defs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Any builds a weapon drawn uniformly from the armory: the four fighting
// presets plus any registered definition marked armory.
//
// Precondition: src must not be nil.
func (c *Catalog) Any(src dice.Source) *Weapon {
	c.mu.RLock()
	name := c.armory[src.Intn(len(c.armory))]
	c.mu.RUnlock()
	return c.MustCreate(name)
}
