package world

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/stoneandsaber/internal/config"
	"github.com/cory-johannsen/stoneandsaber/internal/game/dice"
	"github.com/cory-johannsen/stoneandsaber/internal/game/weapon"
)

// Run is the outcome of one simulated world.
type Run struct {
	Index     int
	Seed      Seed
	World     *World
	Chronicle *Chronicle
}

// BatchOptions configures RunBatch.
type BatchOptions struct {
	Config  config.Config
	Catalog *weapon.Catalog
	// Narrators returns extra narrators for run i. May be nil.
	Narrators func(i int) []Narrator
	Logger    *zap.Logger
}

// RunBatch simulates Config.Batch.Runs independent worlds, at most
// Config.Batch.Parallelism at a time. With a non-zero Config.World.Seed, run
// i draws from seed+i and the batch is reproducible.
//
// Precondition: opts.Config has passed validation; Catalog and Logger must not be nil.
// Postcondition: on success len(runs) == Config.Batch.Runs, ordered by index.
func RunBatch(ctx context.Context, opts BatchOptions) ([]Run, error) {
	cfg := opts.Config
	money, err := dice.Parse(cfg.World.Money)
	if err != nil {
		return nil, fmt.Errorf("parsing world.money: %w", err)
	}

	runs := make([]Run, cfg.Batch.Runs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Batch.Parallelism)
	for i := range runs {
		g.Go(func() error {
			r, err := runOne(gctx, i, money, opts)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			runs[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

func runOne(ctx context.Context, i int, money dice.Expression, opts BatchOptions) (Run, error) {
	cfg := opts.Config
	logger := opts.Logger.With(zap.Int("run", i))

	var seed uint64
	if cfg.World.Seed != 0 {
		seed = cfg.World.Seed + uint64(i)
	}
	roller := dice.NewLoggedRoller(dice.SourceFor(seed), logger)

	s, err := RollSeed(cfg.World, roller)
	if err != nil {
		return Run{}, err
	}

	chron := NewChronicle()
	narrators := []Narrator{chron}
	if opts.Narrators != nil {
		narrators = append(narrators, opts.Narrators(i)...)
	}
	w, err := Randomized(s, Options{
		Roller:    roller,
		Catalog:   opts.Catalog,
		Money:     money,
		Narrators: narrators,
		Logger:    logger,
	})
	if err != nil {
		return Run{}, err
	}

	f := NewFate(w, logger).WithInterval(cfg.World.Interval)
	for _, e := range StandardEvents(cfg.Fate) {
		if err := f.AddEvent(e); err != nil {
			return Run{}, err
		}
	}
	runErr := f.Run(ctx, cfg.World.Generations)
	chron.Close(w)
	if runErr != nil {
		return Run{}, runErr
	}
	return Run{Index: i, Seed: s, World: w, Chronicle: chron}, nil
}
