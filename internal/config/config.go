// Package config loads the eleusis settings from a YAML or JSON file,
// the environment and an optional .env file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/eleusis/internal/logging"
	"github.com/aretw0/eleusis/pkg/dsl"
	"github.com/aretw0/eleusis/pkg/rule"
	"github.com/aretw0/eleusis/pkg/scoring"
)

// Config is the full set of knobs of a run.
type Config struct {
	Game        GameConfig  `mapstructure:"game" yaml:"game" json:"game"`
	Table       TableConfig `mapstructure:"table" yaml:"table" json:"table"`
	Bench       BenchConfig `mapstructure:"bench" yaml:"bench" json:"bench"`
	Log         LogConfig   `mapstructure:"log" yaml:"log" json:"log"`
	MetricsFile string      `mapstructure:"metrics_file" yaml:"metrics_file" json:"metrics_file"`
}

// GameConfig describes one game.
type GameConfig struct {
	// Rule is the hidden rule; empty draws a random one.
	Rule string `mapstructure:"rule" yaml:"rule" json:"rule"`
	// Seeds are the three opening cards; empty lets the dealer pick.
	Seeds []string `mapstructure:"seeds" yaml:"seeds" json:"seeds"`
	// Seed drives every random choice; zero means time-based.
	Seed               int64  `mapstructure:"seed" yaml:"seed" json:"seed"`
	TurnBudget         int    `mapstructure:"turn_budget" yaml:"turn_budget" json:"turn_budget"`
	ConstancyThreshold int    `mapstructure:"constancy_threshold" yaml:"constancy_threshold" json:"constancy_threshold"`
	FreePlays          int    `mapstructure:"free_plays" yaml:"free_plays" json:"free_plays"`
	Scoring            string `mapstructure:"scoring" yaml:"scoring" json:"scoring"`
}

// TableConfig describes the multi-seat format.
type TableConfig struct {
	Rounds           int     `mapstructure:"rounds" yaml:"rounds" json:"rounds"`
	Adversaries      int     `mapstructure:"adversaries" yaml:"adversaries" json:"adversaries"`
	GuessProbability float64 `mapstructure:"guess_probability" yaml:"guess_probability" json:"guess_probability"`
}

// BenchConfig describes a benchmark run.
type BenchConfig struct {
	Games int      `mapstructure:"games" yaml:"games" json:"games"`
	Rules []string `mapstructure:"rules" yaml:"rules" json:"rules"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Game: GameConfig{
			TurnBudget: 20,
			FreePlays:  scoring.DefaultFreePlays,
			Scoring:    string(scoring.Tournament),
		},
		Table: TableConfig{
			Rounds:           14,
			Adversaries:      3,
			GuessProbability: 1.0 / 14,
		},
		Bench: BenchConfig{Games: 10},
		Log:   LogConfig{Level: "info", Format: string(logging.FormatText)},
	}
}

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ELEUSIS_"

// envKeys maps environment variables (without prefix) to config paths.
var envKeys = map[string]string{
	"RULE":                "game.rule",
	"SEEDS":               "game.seeds",
	"SEED":                "game.seed",
	"TURN_BUDGET":         "game.turn_budget",
	"CONSTANCY_THRESHOLD": "game.constancy_threshold",
	"FREE_PLAYS":          "game.free_plays",
	"SCORING":             "game.scoring",
	"ROUNDS":              "table.rounds",
	"ADVERSARIES":         "table.adversaries",
	"GUESS_PROBABILITY":   "table.guess_probability",
	"BENCH_GAMES":         "bench.games",
	"LOG_LEVEL":           "log.level",
	"LOG_FORMAT":          "log.format",
	"METRICS_FILE":        "metrics_file",
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	lookup func(string) (string, bool)
	dotenv string
}

// WithDotEnv reads extra variables from a .env file. Variables already set
// in the environment win. A missing file is ignored.
func WithDotEnv(path string) Option { return func(l *loader) { l.dotenv = path } }

// WithLookup replaces os.LookupEnv.
func WithLookup(fn func(string) (string, bool)) Option { return func(l *loader) { l.lookup = fn } }

// Load builds the configuration: defaults, then the file at path (if not
// empty), then environment overrides. The result is validated.
func Load(path string, opts ...Option) (*Config, error) {
	l := &loader{lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(l)
	}

	raw := map[string]any{}
	if path != "" {
		var err error
		if raw, err = readFile(path); err != nil {
			return nil, err
		}
	}

	env, err := l.environ()
	if err != nil {
		return nil, err
	}
	for name, key := range envKeys {
		if v, ok := env(EnvPrefix + name); ok {
			setPath(raw, key, envValue(key, v))
		}
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}
	return raw, nil
}

func (l *loader) environ() (func(string) (string, bool), error) {
	if l.dotenv == "" {
		return l.lookup, nil
	}
	file, err := godotenv.Read(l.dotenv)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l.lookup, nil
		}
		return nil, fmt.Errorf("read %s: %w", l.dotenv, err)
	}
	return func(k string) (string, bool) {
		if v, ok := l.lookup(k); ok {
			return v, true
		}
		v, ok := file[k]
		return v, ok
	}, nil
}

// envValue splits list-valued variables on commas.
func envValue(key, v string) any {
	if key != "game.seeds" {
		return v
	}
	var out []string
	for _, f := range strings.Split(v, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func setPath(m map[string]any, key string, v any) {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = v
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Game.Rule != "" {
		if _, err := rule.Parse(c.Game.Rule); err != nil {
			errs = append(errs, fmt.Errorf("game.rule: %w", err))
		}
	}
	if len(c.Game.Seeds) > 0 {
		if _, err := rule.ParseWindow(c.Game.Seeds...); err != nil {
			errs = append(errs, fmt.Errorf("game.seeds: %w", err))
		}
	}
	if c.Game.TurnBudget < 0 {
		errs = append(errs, fmt.Errorf("game.turn_budget must not be negative"))
	}
	if c.Game.ConstancyThreshold < 0 {
		errs = append(errs, fmt.Errorf("game.constancy_threshold must not be negative"))
	}
	if c.Game.FreePlays < 0 {
		errs = append(errs, fmt.Errorf("game.free_plays must not be negative"))
	}
	if _, err := scoring.ParseVariant(c.Game.Scoring); err != nil {
		errs = append(errs, fmt.Errorf("game.scoring: %w", err))
	}
	if c.Table.Rounds <= 0 {
		errs = append(errs, fmt.Errorf("table.rounds must be positive"))
	}
	if c.Table.Adversaries < 0 {
		errs = append(errs, fmt.Errorf("table.adversaries must not be negative"))
	}
	if p := c.Table.GuessProbability; p < 0 || p > 1 {
		errs = append(errs, fmt.Errorf("table.guess_probability must be within [0, 1], got %g", p))
	}
	if c.Bench.Games <= 0 {
		errs = append(errs, fmt.Errorf("bench.games must be positive"))
	}
	for i, r := range c.Bench.Rules {
		if _, err := rule.Parse(r); err != nil {
			errs = append(errs, fmt.Errorf("bench.rules[%d]: %w", i, err))
		}
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		errs = append(errs, fmt.Errorf("log.format: %w", err))
	}
	return errors.Join(errs...)
}

// HiddenRule parses the configured rule or, when none is set, draws one.
func (c *Config) HiddenRule(rng *rand.Rand) (rule.Node, error) {
	if c.Game.Rule == "" {
		return dsl.Random(rng), nil
	}
	return rule.Parse(c.Game.Rule)
}
