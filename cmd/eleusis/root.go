package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/eleusis/internal/cli"
	"github.com/aretw0/eleusis/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "eleusis",
	Short: "Eleusis is a New Eleusis scientist that infers hidden card rules",
	Long: `Eleusis plays the scientist role in New Eleusis: it proposes cards, watches
the dealer accept or reject them and reports its best guess of the hidden rule.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (.yaml, .yml or .json)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Optional file with ELEUSIS_* variables")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}

// loadConfig resolves the configuration: defaults, config file, environment,
// then flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")

	cfg, err := config.Load(path, config.WithDotEnv(envFile))
	if err != nil {
		return nil, nil, err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := cli.NewLogger(os.Stderr, cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// applyFlags copies every flag the user set onto cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	var err error
	set := func(name string, fn func() error) {
		if err == nil && f.Lookup(name) != nil && f.Changed(name) {
			err = fn()
		}
	}

	set("log-level", func() (e error) { cfg.Log.Level, e = f.GetString("log-level"); return })
	set("log-format", func() (e error) { cfg.Log.Format, e = f.GetString("log-format"); return })
	set("rule", func() (e error) { cfg.Game.Rule, e = f.GetString("rule"); return })
	set("seeds", func() (e error) { cfg.Game.Seeds, e = f.GetStringSlice("seeds"); return })
	set("seed", func() (e error) { cfg.Game.Seed, e = f.GetInt64("seed"); return })
	set("turns", func() (e error) { cfg.Game.TurnBudget, e = f.GetInt("turns"); return })
	set("constancy", func() (e error) { cfg.Game.ConstancyThreshold, e = f.GetInt("constancy"); return })
	set("scoring", func() (e error) { cfg.Game.Scoring, e = f.GetString("scoring"); return })
	set("rounds", func() (e error) { cfg.Table.Rounds, e = f.GetInt("rounds"); return })
	set("adversaries", func() (e error) { cfg.Table.Adversaries, e = f.GetInt("adversaries"); return })
	set("guess-prob", func() (e error) { cfg.Table.GuessProbability, e = f.GetFloat64("guess-prob"); return })
	set("games", func() (e error) { cfg.Bench.Games, e = f.GetInt("games"); return })
	return err
}

// addGameFlags registers the flags shared by play, solo and bench.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("seed", 0, "Random seed (0 = time based)")
	cmd.Flags().Int("turns", 0, "Turn budget (0 = unlimited)")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file when done")
}
