// Package main provides the chronicle binary: it populates one or more
// worlds, lets fate play them for a number of generations and prints what
// happened.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/stoneandsaber/internal/config"
	"github.com/cory-johannsen/stoneandsaber/internal/game/dice"
	"github.com/cory-johannsen/stoneandsaber/internal/game/weapon"
	"github.com/cory-johannsen/stoneandsaber/internal/game/world"
	"github.com/cory-johannsen/stoneandsaber/internal/observability"
	"github.com/cory-johannsen/stoneandsaber/internal/scripting"
	"github.com/cory-johannsen/stoneandsaber/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	seed := flag.Uint64("seed", 0, "random seed override; 0 keeps the configured seed")
	runs := flag.Int("runs", 0, "number of worlds to simulate; 0 keeps the configured count")
	generations := flag.Int("generations", 0, "generations per world; 0 keeps the configured count")
	weaponsDir := flag.String("weapons-dir", "", "weapon YAML definitions directory; overrides content.weapons_dir")
	scriptsDir := flag.String("scripts-dir", "", "Lua chronicle hooks directory; overrides content.scripts_dir")
	quiet := flag.Bool("quiet", false, "do not log what characters say")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	if *runs > 0 {
		cfg.Batch.Runs = *runs
	}
	if *generations > 0 {
		cfg.World.Generations = *generations
	}
	if *weaponsDir != "" {
		cfg.Content.WeaponsDir = *weaponsDir
	}
	if *scriptsDir != "" {
		cfg.Content.ScriptsDir = *scriptsDir
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("validating config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	catalog := weapon.NewCatalog(logger)
	if cfg.Content.WeaponsDir != "" {
		n, err := catalog.LoadDirectory(cfg.Content.WeaponsDir)
		if err != nil {
			logger.Fatal("loading weapon definitions", zap.Error(err))
		}
		logger.Info("loaded weapon definitions",
			zap.Int("count", n),
			zap.Strings("weapons", catalog.Names()),
		)
	}

	scripts := newScriptPool(cfg, logger)
	if cfg.Content.ScriptsDir != "" {
		if err := scripts.verify(); err != nil {
			logger.Fatal("loading chronicle scripts", zap.Error(err))
		}
	}
	defer scripts.close()

	logger.Info("starting chronicle",
		zap.Uint64("seed", cfg.World.Seed),
		zap.Int("runs", cfg.Batch.Runs),
		zap.Int("parallelism", cfg.Batch.Parallelism),
		zap.Int("generations", cfg.World.Generations),
		zap.Duration("startup", time.Since(start)),
	)

	var results []world.Run
	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("simulation", &server.FuncService{
		StartFn: func(ctx context.Context) error {
			var err error
			results, err = world.RunBatch(ctx, world.BatchOptions{
				Config:  cfg,
				Catalog: catalog,
				Narrators: func(i int) []world.Narrator {
					var ns []world.Narrator
					if !*quiet {
						ns = append(ns, world.NewLogNarrator(logger.With(zap.Int("run", i))))
					}
					if n := scripts.narrator(i); n != nil {
						ns = append(ns, n)
					}
					return ns
				},
				Logger: logger,
			})
			return err
		},
	})
	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	for _, r := range results {
		fmt.Fprintf(os.Stdout, "=== world %d: %s ===\n%s\n", r.Index, r.World, r.Chronicle)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

// scriptPool hands every run its own Lua VM so runs never share script state.
type scriptPool struct {
	cfg    config.Config
	logger *zap.Logger

	mu       sync.Mutex
	managers []*scripting.Manager
}

func newScriptPool(cfg config.Config, logger *zap.Logger) *scriptPool {
	return &scriptPool{cfg: cfg, logger: logger}
}

func (p *scriptPool) load(seed uint64) (*scripting.Manager, error) {
	roller := dice.NewLoggedRoller(dice.SourceFor(seed), p.logger)
	mgr := scripting.NewManager(roller, p.logger)
	if err := mgr.Load(p.cfg.Content.ScriptsDir, p.cfg.Content.InstructionLimit); err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.managers = append(p.managers, mgr)
	p.mu.Unlock()
	return mgr, nil
}

// verify loads the scripts once so broken scripts fail at startup.
func (p *scriptPool) verify() error {
	_, err := p.load(0)
	return err
}

func (p *scriptPool) narrator(i int) world.Narrator {
	if p.cfg.Content.ScriptsDir == "" {
		return nil
	}
	var seed uint64
	if p.cfg.World.Seed != 0 {
		seed = p.cfg.World.Seed + uint64(i)
	}
	mgr, err := p.load(seed)
	if err != nil {
		p.logger.Error("loading chronicle scripts", zap.Int("run", i), zap.Error(err))
		return nil
	}
	return scripting.NewNarrator(mgr, p.logger.With(zap.Int("run", i)))
}

func (p *scriptPool) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, m := range p.managers {
		m.Close()
	}
	p.managers = nil
}
