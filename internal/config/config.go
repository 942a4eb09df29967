// Package config provides Viper-based configuration loading for the duel simulator.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/stoneandsaber/internal/game/dice"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// WorldConfig describes how a world is populated.
// Population counts and starting money are dice expressions rolled once per world.
type WorldConfig struct {
	// Samurais is the dice expression for the number of samurais, e.g. "1d8+2".
	Samurais string `mapstructure:"samurais"`
	// Yakuzas is the dice expression for the number of yakuzas.
	Yakuzas string `mapstructure:"yakuzas"`
	// Merchants is the dice expression for the number of merchants.
	Merchants string `mapstructure:"merchants"`
	// Traitors is the dice expression for the number of traitors. May roll 0.
	Traitors string `mapstructure:"traitors"`
	// Money is the dice expression for each human's starting money.
	Money string `mapstructure:"money"`
	// Generations is the number of fate draws applied to the world.
	Generations int `mapstructure:"generations"`
	// Seed seeds the deterministic random source. 0 selects crypto/rand.
	Seed uint64 `mapstructure:"seed"`
	// Interval paces generations; 0 runs them back to back.
	Interval time.Duration `mapstructure:"interval"`
}

// FateConfig holds the per-generation probability of each world event.
type FateConfig struct {
	Drink           float64 `mapstructure:"drink"`
	RoninChallenge  float64 `mapstructure:"ronin_challenge"`
	YakuzaChallenge float64 `mapstructure:"yakuza_challenge"`
	YakuzaExtort    float64 `mapstructure:"yakuza_extort"`
	TraitorExtort   float64 `mapstructure:"traitor_extort"`
	RoninDonate     float64 `mapstructure:"ronin_donate"`
	TraitorBefriend float64 `mapstructure:"traitor_befriend"`
}

// ContentConfig locates optional content directories.
type ContentConfig struct {
	// WeaponsDir holds *.yaml weapon definitions; empty means presets only.
	WeaponsDir string `mapstructure:"weapons_dir"`
	// ScriptsDir holds *.lua chronicle hooks; empty disables scripting.
	ScriptsDir string `mapstructure:"scripts_dir"`
	// InstructionLimit caps Lua opcodes per hook call; 0 uses the scripting default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// BatchConfig controls running several independent worlds.
type BatchConfig struct {
	// Runs is the number of worlds to simulate.
	Runs int `mapstructure:"runs"`
	// Parallelism caps how many worlds run at once.
	Parallelism int `mapstructure:"parallelism"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	World   WorldConfig   `mapstructure:"world"`
	Fate    FateConfig    `mapstructure:"fate"`
	Content ContentConfig `mapstructure:"content"`
	Batch   BatchConfig   `mapstructure:"batch"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateWorld(c.World); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateFate(c.Fate); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Content.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("content.instruction_limit must be >= 0, got %d", c.Content.InstructionLimit))
	}
	if err := validateBatch(c.Batch); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateWorld(w WorldConfig) error {
	var errs []string
	exprs := []struct {
		key, expr string
	}{
		{"world.samurais", w.Samurais},
		{"world.yakuzas", w.Yakuzas},
		{"world.merchants", w.Merchants},
		{"world.traitors", w.Traitors},
		{"world.money", w.Money},
	}
	for _, e := range exprs {
		parsed, err := dice.Parse(e.expr)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", e.key, err))
			continue
		}
		if parsed.Min() < 0 {
			errs = append(errs, fmt.Sprintf("%s %q can roll below zero", e.key, e.expr))
		}
	}
	if w.Interval < 0 {
		errs = append(errs, fmt.Sprintf("world.interval must be >= 0, got %s", w.Interval))
	}
	if w.Generations < 1 {
		errs = append(errs, fmt.Sprintf("world.generations must be >= 1, got %d", w.Generations))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateFate(f FateConfig) error {
	var errs []string
	probs := []struct {
		key string
		p   float64
	}{
		{"fate.drink", f.Drink},
		{"fate.ronin_challenge", f.RoninChallenge},
		{"fate.yakuza_challenge", f.YakuzaChallenge},
		{"fate.yakuza_extort", f.YakuzaExtort},
		{"fate.traitor_extort", f.TraitorExtort},
		{"fate.ronin_donate", f.RoninDonate},
		{"fate.traitor_befriend", f.TraitorBefriend},
	}
	for _, p := range probs {
		if p.p < 0 || p.p > 1 {
			errs = append(errs, fmt.Sprintf("%s must be in [0, 1], got %g", p.key, p.p))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateBatch(b BatchConfig) error {
	var errs []string
	if b.Runs < 1 {
		errs = append(errs, fmt.Sprintf("batch.runs must be >= 1, got %d", b.Runs))
	}
	if b.Parallelism < 1 {
		errs = append(errs, fmt.Sprintf("batch.parallelism must be >= 1, got %d", b.Parallelism))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// Default returns the validated default configuration without reading any file.
// Environment overrides still apply.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Default() (Config, error) {
	return LoadFromViper(newViper())
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with STONE_ prefix
	v.SetEnvPrefix("STONE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("world.samurais", "1d8+2")
	v.SetDefault("world.yakuzas", "1d8+2")
	v.SetDefault("world.merchants", "1d3+2")
	v.SetDefault("world.traitors", "1d3-1")
	v.SetDefault("world.money", "1d101-1")
	v.SetDefault("world.generations", 10)
	v.SetDefault("world.seed", 0)
	v.SetDefault("world.interval", "0s")

	v.SetDefault("fate.drink", 0.1)
	v.SetDefault("fate.ronin_challenge", 0.05)
	v.SetDefault("fate.yakuza_challenge", 0.05)
	v.SetDefault("fate.yakuza_extort", 0.2)
	v.SetDefault("fate.traitor_extort", 0.2)
	v.SetDefault("fate.ronin_donate", 0.2)
	v.SetDefault("fate.traitor_befriend", 0.1)

	v.SetDefault("content.weapons_dir", "")
	v.SetDefault("content.scripts_dir", "")
	v.SetDefault("content.instruction_limit", 0)

	v.SetDefault("batch.runs", 1)
	v.SetDefault("batch.parallelism", 1)
}
