package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/eleusis/internal/config"
	"github.com/aretw0/eleusis/internal/logging"
	"github.com/aretw0/eleusis/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-sc.Context.Done():
		}
		sc.stop.Do(func() { signal.Stop(sc.sigCh) })
	}()
	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// NewLogger configures the application logger from the log settings.
// Logs go to w (stderr when nil) to keep them apart from the report on stdout.
func NewLogger(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	return logging.New(w, level, format), nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(ctx context.Context, e *domain.TurnEvent) {
			logger.DebugContext(ctx, "Turn", "turn", e.Outcome.Turn, "seat", e.Outcome.Seat,
				"card", e.Outcome.Card.String(), "accepted", e.Outcome.Accepted)
		},
		OnHypothesisChange: func(ctx context.Context, e *domain.HypothesisEvent) {
			logger.DebugContext(ctx, "Hypothesis Changed", "seat", e.Seat,
				"clauses", e.Clauses, "predicates", e.Predicates)
		},
		OnGameEnd: func(ctx context.Context, e *domain.GameEndEvent) {
			logger.DebugContext(ctx, "Game Ended", "reason", string(e.Reason), "seat", e.Seat, "turn", e.Turns)
		},
	}
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

// handleExecutionError turns an interruption into a clean exit.
func handleExecutionError(w io.Writer, sig os.Signal, err error) error {
	if err == nil {
		return nil
	}
	if isInterrupted(err) {
		if sig == os.Interrupt {
			fmt.Fprintln(w, "[CTRL+C]")
		}
		printSystemMessage(w, "Interrupted.")
		return nil
	}
	return err
}
