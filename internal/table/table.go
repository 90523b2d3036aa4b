// Package table runs a round-robin game between the scientist and a set of
// scripted seats.
package table

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/eleusis/internal/logging"
	"github.com/aretw0/eleusis/internal/runtime"
	"github.com/aretw0/eleusis/pkg/domain"
	"github.com/aretw0/eleusis/pkg/player"
	"github.com/aretw0/eleusis/pkg/rule"
	"github.com/aretw0/eleusis/pkg/scoring"
)

// Seat is anyone who can take a turn.
type Seat interface {
	Name() string
	Move(v domain.View) domain.Move
}

// DefaultRounds is the number of rounds of the original tournament format.
const DefaultRounds = 14

// Table seats the scientist first and the others after it.
type Table struct {
	game      *runtime.Game
	scientist *player.Scientist
	others    []Seat
	rounds    int
	variant   scoring.Variant
	freePlays int
	logger    *slog.Logger
}

// Option configures a Table.
type Option func(*Table)

func WithRounds(n int) Option { return func(t *Table) { t.rounds = n } }

func WithSeats(s ...Seat) Option { return func(t *Table) { t.others = append(t.others, s...) } }

func WithScoring(v scoring.Variant, freePlays int) Option {
	return func(t *Table) { t.variant, t.freePlays = v, freePlays }
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.logger = l
		}
	}
}

// New creates a table around a started or unstarted game. The scientist
// must already be registered as a learner of the game.
func New(g *runtime.Game, s *player.Scientist, opts ...Option) *Table {
	t := &Table{
		game:      g,
		scientist: s,
		rounds:    DefaultRounds,
		variant:   scoring.Tournament,
		freePlays: scoring.DefaultFreePlays,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Result summarizes a finished table game.
type Result struct {
	GameID   string            `json:"game_id"`
	Hidden   string            `json:"hidden"`
	Guess    string            `json:"guess"`
	Rounds   int               `json:"rounds"`
	Turns    int               `json:"turns"`
	Reason   domain.EndReason  `json:"reason"`
	Ender    string            `json:"ender,omitempty"`
	Score    scoring.Breakdown `json:"score"`
	Board    *domain.Board     `json:"-"`
	Outcomes []domain.Outcome  `json:"outcomes"`
	// Counterexample is set when the guess is not equivalent to the hidden
	// rule.
	Counterexample *Counterexample `json:"counterexample,omitempty"`
}

// Counterexample is a triple of distinct cards on which the guess and the
// hidden rule disagree.
type Counterexample struct {
	Window        rule.Window `json:"window"`
	HiddenAccepts bool        `json:"hidden_accepts"`
}

// Run plays rounds until the round limit, a rule guess, or the game ending
// on its own. It stops early if ctx is cancelled between turns.
func (t *Table) Run(ctx context.Context) (*Result, error) {
	if t.game.Status() == domain.StatusInit {
		return nil, domain.ErrGameNotStarted
	}

	seats := append([]Seat{t.scientist}, t.others...)
	res := &Result{GameID: t.game.ID(), Hidden: t.game.Hidden().String()}

loop:
	for round := 1; round <= t.rounds; round++ {
		res.Rounds = round
		for _, s := range seats {
			if err := ctx.Err(); err != nil {
				if endErr := t.game.End(ctx, domain.EndStopped, ""); endErr != nil && !errors.Is(endErr, domain.ErrGameEnded) {
					return nil, endErr
				}
				break loop
			}
			if t.game.Status() == domain.StatusEnded {
				break loop
			}

			m := s.Move(domain.View{GameID: t.game.ID(), Turn: t.game.Turns(), Round: round, Board: t.game.Board()})
			if m.IsGuess() {
				t.logger.Info("rule guessed", "seat", s.Name(), "turn", t.game.Turns(), "guess", m.Guess.String())
				if err := t.game.End(ctx, domain.EndRuleGuess, s.Name()); err != nil {
					return nil, fmt.Errorf("end game: %w", err)
				}
				break loop
			}

			out, err := t.game.PlayAs(ctx, s.Name(), m.Card)
			if err != nil {
				return nil, fmt.Errorf("seat %s: %w", s.Name(), err)
			}
			res.Outcomes = append(res.Outcomes, out)
		}
	}
	if t.game.Status() != domain.StatusEnded {
		if err := t.game.End(ctx, domain.EndRounds, ""); err != nil {
			return nil, err
		}
	}

	res.Turns = t.game.Turns()
	res.Reason = t.game.EndReason()
	res.Ender = t.game.Ender()
	res.Board = t.game.Board()
	res.Guess = t.scientist.CurrentGuess()
	res.Score = scoring.Score(scoring.Input{
		Board:     res.Board,
		Hidden:    t.game.Hidden(),
		Guess:     t.scientist.Guess(),
		IsEnder:   res.Ender == t.scientist.Name(),
		FreePlays: t.freePlays,
	}, t.variant)
	if !res.Score.Equivalent {
		if w, ok := rule.FirstDisagreement(t.game.Hidden(), t.scientist.Guess()); ok {
			res.Counterexample = &Counterexample{Window: w, HiddenAccepts: t.game.Hidden().Holds(w)}
		}
	}
	return res, nil
}
