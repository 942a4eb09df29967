package world

import (
	"fmt"

	"github.com/cory-johannsen/stoneandsaber/internal/config"
	"github.com/cory-johannsen/stoneandsaber/internal/game/dice"
)

// Seed fixes how many characters of each kind a new world starts with.
type Seed struct {
	Samurais  int
	Yakuzas   int
	Merchants int
	Traitors  int
}

// Total returns the number of characters the seed creates.
func (s Seed) Total() int { return s.Samurais + s.Yakuzas + s.Merchants + s.Traitors }

// RollSeed rolls each population count from the dice expressions in cfg.
//
// Precondition: cfg has passed config validation; roller must not be nil.
// Postcondition: every count is >= 0, or a non-nil error is returned.
func RollSeed(cfg config.WorldConfig, roller *dice.Roller) (Seed, error) {
	var s Seed
	counts := []struct {
		key  string
		expr string
		dst  *int
	}{
		{"samurais", cfg.Samurais, &s.Samurais},
		{"yakuzas", cfg.Yakuzas, &s.Yakuzas},
		{"merchants", cfg.Merchants, &s.Merchants},
		{"traitors", cfg.Traitors, &s.Traitors},
	}
	for _, c := range counts {
		res, err := roller.RollExpr(c.expr)
		if err != nil {
			return Seed{}, fmt.Errorf("rolling %s: %w", c.key, err)
		}
		*c.dst = max(res.Total(), 0)
	}
	return s, nil
}
