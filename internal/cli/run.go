package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/eleusis"
	"github.com/aretw0/eleusis/internal/bench"
	"github.com/aretw0/eleusis/internal/config"
	"github.com/aretw0/eleusis/internal/metrics"
	"github.com/aretw0/eleusis/internal/presentation/graph"
	"github.com/aretw0/eleusis/internal/presentation/stream"
	"github.com/aretw0/eleusis/internal/presentation/tui"
	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/rule"
)

// PlayOptions contains the output settings of the play and solo commands.
type PlayOptions struct {
	Solo  bool
	Quiet bool
	// JSON streams every event and the final result as JSON Lines.
	JSON        bool
	Banner      bool
	MetricsFile string
	Out         io.Writer
}

// RunPlay plays one game as configured and writes the turn log and report.
func RunPlay(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts PlayOptions) (*eleusis.Result, error) {
	rec := metrics.New()
	hooks := rec.Hooks()
	var events *stream.JSONWriter
	if opts.JSON {
		events = stream.NewJSONWriter(opts.Out)
		hooks = hooks.Merge(events.Hooks())
	}
	s, err := createSession(cfg, logger, opts.Solo, hooks)
	if err != nil {
		return nil, err
	}

	if events != nil {
		res, err := s.Run(ctx)
		if err != nil {
			return nil, err
		}
		events.Encode(res)
		if err := events.Err(); err != nil {
			return res, err
		}
		return res, writeMetrics(rec, metricsPath(cfg, opts.MetricsFile), logger)
	}

	if opts.Banner && tui.IsTerminal(opts.Out) {
		tui.PrintBanner(opts.Out)
	}

	palette := tui.NewPalette(opts.Out)
	r := eleusis.NewRunner(opts.Out)
	r.Quiet = opts.Quiet
	r.FormatOutcome = palette.Outcome
	if tui.IsTerminal(opts.Out) {
		r.Renderer = tui.NewRenderer()
	}

	res, err := r.Run(ctx, s)
	if err != nil {
		return nil, err
	}
	if err := writeMetrics(rec, metricsPath(cfg, opts.MetricsFile), logger); err != nil {
		return res, err
	}
	return res, nil
}

// BenchOptions contains the settings of the bench command.
type BenchOptions struct {
	RulesFile   string
	JSON        bool
	MetricsFile string
	Out         io.Writer
}

// RunBench benchmarks the scientist and writes the report.
func RunBench(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts BenchOptions) (*bench.Report, error) {
	rules := cfg.Bench.Rules
	if opts.RulesFile != "" {
		var err error
		if rules, err = bench.LoadRules(opts.RulesFile); err != nil {
			return nil, err
		}
	}

	rec := metrics.New()
	runner := bench.New(bench.WithLogger(logger), bench.WithLifecycleHooks(rec.Hooks()))
	rep, err := runner.Run(ctx, bench.Config{
		Games:      cfg.Bench.Games,
		Rules:      rules,
		TurnBudget: cfg.Game.TurnBudget,
		FreePlays:  cfg.Game.FreePlays,
		Seed:       cfg.Game.Seed,
	})
	if err != nil {
		return nil, err
	}

	if opts.JSON {
		enc := json.NewEncoder(opts.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return rep, err
		}
	} else if err := tui.WriteMarkdown(opts.Out, tui.BenchReport(rep)); err != nil {
		return rep, err
	}
	return rep, writeMetrics(rec, metricsPath(cfg, opts.MetricsFile), logger)
}

// RunParse validates a rule and prints its canonical form, how many
// ordered triples of distinct cards it accepts and how many trailing cards
// of the board it reads.
func RunParse(text string, mermaid bool, out io.Writer) error {
	n, err := rule.Parse(text)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, n.String())
	distinct := card.DeckSize * (card.DeckSize - 1) * (card.DeckSize - 2)
	fmt.Fprintf(out, "valid triples: %d of %d\n", rule.ValidTriples(n).Len(), distinct)
	fmt.Fprintf(out, "cards read: %d\n", int(n.MaxSlot())+1)
	if mermaid {
		fmt.Fprint(out, graph.RuleMermaid(n))
	}
	return nil
}

func metricsPath(cfg *config.Config, flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.MetricsFile
}

func writeMetrics(rec *metrics.Recorder, path string, logger *slog.Logger) error {
	if path == "" {
		return nil
	}
	if err := rec.WriteTextfile(path); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	logger.Info("metrics written", "path", path)
	return nil
}

// HandleError reports err unless it is an interruption, which exits cleanly.
func HandleError(sc *SignalContext, w io.Writer, err error) error {
	return handleExecutionError(w, sc.Signal(), err)
}
