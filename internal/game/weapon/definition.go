package weapon

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/stoneandsaber/internal/game/effect"
	"github.com/cory-johannsen/stoneandsaber/internal/game/status"
)

// EffectDef is the YAML form of one weapon effect.
type EffectDef struct {
	Kind      string `yaml:"kind"`      // "instant" | "lasting"
	Direction string `yaml:"direction"` // "increase" | "decrease"
	Element   string `yaml:"element"`
	Amount    int    `yaml:"amount"`
	Ticks     int    `yaml:"ticks"` // lasting only; 0 = effect.DefaultTicks
}

// Def is the static definition of a weapon, loaded from YAML.
type Def struct {
	Name    string      `yaml:"name"`
	Armory  bool        `yaml:"armory"` // eligible for Catalog.Any
	Effects []EffectDef `yaml:"effects"`
}

// Validate checks every field and reports all violations at once.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff Build would succeed.
func (d *Def) Validate() error {
	var errs []error
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	for i, ed := range d.Effects {
		if _, err := ed.effect(); err != nil {
			errs = append(errs, fmt.Errorf("effects[%d]: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon definition validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// Build assembles a fresh Weapon from the definition.
func (d *Def) Build() (*Weapon, error) {
	b := NewBuilder(d.Name)
	for i, ed := range d.Effects {
		e, err := ed.effect()
		if err != nil {
			return nil, fmt.Errorf("weapon %q effects[%d]: %w", d.Name, i, err)
		}
		b.With(e)
	}
	return b.Build()
}

func (ed EffectDef) effect() (effect.Effect, error) {
	var dir effect.Direction
	switch strings.ToLower(ed.Direction) {
	case "increase":
		dir = effect.Increase
	case "decrease", "":
		dir = effect.Decrease
	default:
		return effect.Effect{}, fmt.Errorf("direction must be increase or decrease, got %q", ed.Direction)
	}
	action, err := effect.NewAction(dir, ed.Amount)
	if err != nil {
		return effect.Effect{}, err
	}
	element, err := status.ParseElement(ed.Element)
	if err != nil {
		return effect.Effect{}, err
	}
	switch strings.ToLower(ed.Kind) {
	case "instant", "":
		return effect.Instant(action, element), nil
	case "lasting":
		if ed.Ticks < 0 {
			return effect.Effect{}, fmt.Errorf("ticks must be >= 0, got %d", ed.Ticks)
		}
		if ed.Ticks == 0 {
			return effect.LastingDefault(action, element), nil
		}
		return effect.NewLasting(action, element, ed.Ticks), nil
	default:
		return effect.Effect{}, fmt.Errorf("kind must be instant or lasting, got %q", ed.Kind)
	}
}

// LoadDefinitions reads every *.yaml file in dir, parses each as a Def and
// validates it. Unknown YAML fields are rejected.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns every Def found, or the first error encountered.
func LoadDefinitions(dir string) ([]*Def, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading weapon dir %q: %w", dir, err)
	}
	var defs []*Def
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def Def
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("invalid weapon in %q: %w", path, err)
		}
		defs = append(defs, &def)
	}
	return defs, nil
}
