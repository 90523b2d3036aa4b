package eleusis

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/eleusis/internal/presentation/tui"
	"github.com/aretw0/eleusis/pkg/domain"
)

// Runner plays a Session and prints its progress to Output.
// This allows for easy testing and integration with different frontends.
type Runner struct {
	Output io.Writer
	// Quiet suppresses the per-turn log; the final report is still written.
	Quiet    bool
	Renderer ContentRenderer
	// FormatOutcome renders one turn log line.
	FormatOutcome func(domain.Outcome) string
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner writing plain text to w.
func NewRunner(w io.Writer) *Runner {
	return &Runner{Output: w}
}

// Run attaches the turn log to s, plays it and writes the markdown report.
func (r *Runner) Run(ctx context.Context, s *Session) (*Result, error) {
	if r.Output == nil {
		return nil, fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	if s.game != nil {
		return nil, domain.ErrGameStarted
	}

	format := r.FormatOutcome
	if format == nil {
		format = plainOutcome
	}
	if !r.Quiet {
		WithLifecycleHooks(domain.LifecycleHooks{
			OnTurn: func(_ context.Context, e *domain.TurnEvent) {
				fmt.Fprintln(r.Output, format(e.Outcome))
			},
		})(s)
	}

	if err := s.Start(ctx); err != nil {
		return nil, err
	}
	if !r.Quiet {
		fmt.Fprintf(r.Output, "seed: %s\n", s.game.Board().String())
	}

	res, err := s.Run(ctx)
	if err != nil {
		return nil, err
	}

	output := tui.GameReport(res)
	if r.Renderer != nil {
		if rendered, err := r.Renderer(output); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimSpace(output))
	return res, nil
}

func plainOutcome(o domain.Outcome) string {
	verdict := "rejected"
	if o.Accepted {
		verdict = "accepted"
	}
	return fmt.Sprintf("%3d  %-12s %s  %s", o.Turn, o.Seat, o.Card, verdict)
}
