// Package bench measures how well the scientist recovers known rules over
// many solo games.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/montanaflynn/stats"

	"github.com/aretw0/eleusis/internal/logging"
	"github.com/aretw0/eleusis/internal/runtime"
	"github.com/aretw0/eleusis/internal/table"
	"github.com/aretw0/eleusis/pkg/domain"
	"github.com/aretw0/eleusis/pkg/hypothesis"
	"github.com/aretw0/eleusis/pkg/player"
	"github.com/aretw0/eleusis/pkg/rule"
	"github.com/aretw0/eleusis/pkg/scoring"
)

// DefaultRules are the hidden rules of the reference benchmark.
var DefaultRules = []string{
	"if(greater(value(previous), value(current)), True)",
	"greater(value(previous), value(current))",
	"equal(minus1(value(previous)), value(current))",
	"equal(is_royal(current), False)",
	"equal(equal(color(previous), B), equal(color(current), R))",
	"and(equal(color(current), R), even(current))",
	"and(not(equal(suit(previous), suit(current))), equal(color(previous), color(current)))",
	"and(equal(suit(current), suit(previous)), greater(value(current), value(previous)))",
}

// DefaultTurnBudget is the number of plays per solo game.
const DefaultTurnBudget = 20

// Config controls a benchmark run.
type Config struct {
	Games      int
	Rules      []string
	TurnBudget int
	FreePlays  int
	Variant    scoring.Variant
	Seed       int64
}

// RuleReport aggregates the games played against one hidden rule.
type RuleReport struct {
	Rule  string `json:"rule"`
	Games int    `json:"games"`

	Successes   int     `json:"successes"`
	SuccessRate float64 `json:"success_rate"`

	MeanScore   float64 `json:"mean_score"`
	MedianScore float64 `json:"median_score"`
	StdDevScore float64 `json:"stddev_score"`

	// Error rates are triple counts over 52³, averaged over games.
	FalseNegativeRate float64 `json:"false_negative_rate"`
	FalsePositiveRate float64 `json:"false_positive_rate"`

	LastGuess string `json:"last_guess"`
}

// Report is the result of Run.
type Report struct {
	Config Config       `json:"config"`
	Rules  []RuleReport `json:"rules"`
}

// Runner plays benchmark games.
type Runner struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// Option configures a Runner.
type Option func(*Runner)

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithLifecycleHooks attaches hooks to every game, e.g. metrics.
func WithLifecycleHooks(h domain.LifecycleHooks) Option {
	return func(r *Runner) { r.hooks = r.hooks.Merge(h) }
}

func New(opts ...Option) *Runner {
	r := &Runner{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run plays cfg.Games solo games per rule.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Report, error) {
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("bench: games must be positive, got %d", cfg.Games)
	}
	if len(cfg.Rules) == 0 {
		cfg.Rules = DefaultRules
	}
	if cfg.TurnBudget <= 0 {
		cfg.TurnBudget = DefaultTurnBudget
	}
	if cfg.Variant == "" {
		cfg.Variant = scoring.Classic
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	report := &Report{Config: cfg}
	for _, text := range cfg.Rules {
		hidden, err := rule.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("bench rule %q: %w", text, err)
		}
		rr, err := r.runRule(ctx, hidden, cfg, rng)
		if err != nil {
			return nil, err
		}
		r.logger.Info("rule benchmarked", "rule", rr.Rule, "games", rr.Games,
			"success_rate", rr.SuccessRate, "mean_score", rr.MeanScore)
		report.Rules = append(report.Rules, rr)
	}
	return report, nil
}

func (r *Runner) runRule(ctx context.Context, hidden rule.Node, cfg Config, rng *rand.Rand) (RuleReport, error) {
	rr := RuleReport{Rule: hidden.String()}
	given := rule.ValidTriples(hidden)

	var scores, fnRates, fpRates stats.Float64Data
	for i := 0; i < cfg.Games; i++ {
		if err := ctx.Err(); err != nil {
			return rr, err
		}
		res, guess, err := r.playSolo(ctx, hidden, cfg, rng)
		if err != nil {
			return rr, fmt.Errorf("bench %s game %d: %w", rr.Rule, i+1, err)
		}
		rr.Games++
		if res.Score.Equivalent {
			rr.Successes++
		}
		guessed := rule.ValidTriples(guess)
		scores = append(scores, float64(res.Score.Total))
		fnRates = append(fnRates, float64(given.Difference(guessed))/rule.TripleCount)
		fpRates = append(fpRates, float64(guessed.Difference(given))/rule.TripleCount)
		rr.LastGuess = res.Guess
	}

	rr.SuccessRate = float64(rr.Successes) / float64(rr.Games)
	var err error
	if rr.MeanScore, err = stats.Mean(scores); err != nil {
		return rr, err
	}
	if rr.MedianScore, err = stats.Median(scores); err != nil {
		return rr, err
	}
	if rr.StdDevScore, err = stats.StandardDeviation(scores); err != nil {
		return rr, err
	}
	if rr.FalseNegativeRate, err = stats.Mean(fnRates); err != nil {
		return rr, err
	}
	if rr.FalsePositiveRate, err = stats.Mean(fpRates); err != nil {
		return rr, err
	}
	return rr, nil
}

func (r *Runner) playSolo(ctx context.Context, hidden rule.Node, cfg Config, rng *rand.Rand) (*table.Result, rule.Node, error) {
	s := player.NewScientist(
		player.WithRand(rng),
		player.WithEngineOptions(hypothesis.WithSimplifier(hypothesis.Dedupe)),
	)
	g := runtime.NewGame(hidden,
		runtime.WithLearners(s),
		runtime.WithTurnBudget(cfg.TurnBudget),
		runtime.WithLifecycleHooks(r.hooks),
		runtime.WithLogger(r.logger),
	)
	seeds, err := g.DealSeeds(rng)
	if err != nil {
		return nil, rule.Node{}, err
	}
	if err := g.Start(ctx, seeds); err != nil {
		return nil, rule.Node{}, err
	}
	res, err := table.New(g, s,
		table.WithRounds(cfg.TurnBudget),
		table.WithScoring(cfg.Variant, cfg.FreePlays),
		table.WithLogger(r.logger),
	).Run(ctx)
	if err != nil {
		return nil, rule.Node{}, err
	}
	return res, s.Guess(), nil
}
