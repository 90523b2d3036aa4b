package cli

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/aretw0/eleusis"
	"github.com/aretw0/eleusis/internal/config"
	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/domain"
	"github.com/aretw0/eleusis/pkg/rule"
	"github.com/aretw0/eleusis/pkg/scoring"
)

// createSession builds a Session with standard CLI conventions: a random
// hidden rule unless one is configured, dealer-picked seeds unless fixed,
// and debug hooks when the logger is verbose.
func createSession(cfg *config.Config, logger *slog.Logger, solo bool, hooks domain.LifecycleHooks) (*eleusis.Session, error) {
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	hidden, err := cfg.HiddenRule(rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("hidden rule: %w", err)
	}
	variant, err := scoring.ParseVariant(cfg.Game.Scoring)
	if err != nil {
		return nil, err
	}

	opts := []eleusis.Option{
		eleusis.WithLogger(logger),
		eleusis.WithSeed(seed),
		eleusis.WithLifecycleHooks(hooks),
		eleusis.WithConstancyThreshold(cfg.Game.ConstancyThreshold),
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		opts = append(opts, eleusis.WithLifecycleHooks(createDebugHooks(logger)))
	}
	if len(cfg.Game.Seeds) > 0 {
		w, err := rule.ParseWindow(cfg.Game.Seeds...)
		if err != nil {
			return nil, fmt.Errorf("seeds: %w", err)
		}
		opts = append(opts, eleusis.WithSeeds([3]card.Card(w)))
	}

	if solo {
		// The single-player run always scores the classic way.
		opts = append(opts,
			eleusis.Solo(cfg.Game.TurnBudget),
			eleusis.WithScoring(scoring.Classic, cfg.Game.FreePlays),
		)
	} else {
		opts = append(opts,
			eleusis.WithTurnBudget(cfg.Game.TurnBudget),
			eleusis.WithRounds(cfg.Table.Rounds),
			eleusis.WithAdversaries(cfg.Table.Adversaries, cfg.Table.GuessProbability),
			eleusis.WithScoring(variant, cfg.Game.FreePlays),
		)
	}

	logger.Debug("session configured", "hidden", hidden.String(), "seed", seed, "solo", solo)
	return eleusis.NewWithRule(hidden, opts...), nil
}
