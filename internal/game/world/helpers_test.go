package world_test

import (
	"testing"

	"go.uber.org/zap"

	"github.com/cory-johannsen/stoneandsaber/internal/game/dice"
	"github.com/cory-johannsen/stoneandsaber/internal/game/weapon"
	"github.com/cory-johannsen/stoneandsaber/internal/game/world"
)

// fixedSrc always returns val, clamped into [0, n).
type fixedSrc struct{ val int }

func (f fixedSrc) Intn(n int) int {
	if f.val >= n {
		return n - 1
	}
	return f.val
}

func options(src dice.Source, narrators ...world.Narrator) world.Options {
	return world.Options{
		Roller:    dice.NewLoggedRoller(src, zap.NewNop()),
		Catalog:   weapon.NewCatalog(zap.NewNop()),
		Money:     dice.MustParse("1d101-1"),
		Narrators: narrators,
		Logger:    zap.NewNop(),
	}
}

func newWorld(t *testing.T, src dice.Source, narrators ...world.Narrator) *world.World {
	t.Helper()
	return world.New(options(src, narrators...))
}

// recorder keeps every record narrated to it.
type recorder struct{ records []world.Record }

func (r *recorder) Narrate(rec world.Record) { r.records = append(r.records, rec) }

func (r *recorder) ofKind(k world.RecordKind) []world.Record {
	var out []world.Record
	for _, rec := range r.records {
		if rec.Kind == k {
			out = append(out, rec)
		}
	}
	return out
}
