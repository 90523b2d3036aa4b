package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/eleusis/internal/logging"
	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/domain"
	"github.com/aretw0/eleusis/pkg/hypothesis"
	"github.com/aretw0/eleusis/pkg/rule"
)

// Learner observes every verdict of the dealer.
type Learner interface {
	Name() string
	Seed(cards [3]card.Card)
	RecordOutcome(c card.Card, accepted bool) bool
	CurrentGuess() string
}

// hypothesisHolder is implemented by learners that expose their clause set.
type hypothesisHolder interface {
	Hypothesis() hypothesis.Set
}

// Game is the dealer: it owns the hidden rule and the board, judges plays
// and decides when the game is over.
type Game struct {
	id       string
	hidden   rule.Node
	board    *domain.Board
	status   domain.Status
	learners []Learner
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	now      func() time.Time

	turnBudget int
	constancy  int

	turns     int
	stable    int
	endReason domain.EndReason
	ender     string
}

// Option configures a Game.
type Option func(*Game)

// WithID overrides the generated game ID.
func WithID(id string) Option { return func(g *Game) { g.id = id } }

// WithLearners registers seats that receive every verdict.
func WithLearners(ls ...Learner) Option {
	return func(g *Game) { g.learners = append(g.learners, ls...) }
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(h domain.LifecycleHooks) Option {
	return func(g *Game) { g.hooks = g.hooks.Merge(h) }
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithTurnBudget ends the game after n plays. Zero disables the budget.
func WithTurnBudget(n int) Option { return func(g *Game) { g.turnBudget = n } }

// WithConstancyThreshold ends the game after n consecutive plays that did not
// change any learner's hypothesis. Zero disables the check.
func WithConstancyThreshold(n int) Option { return func(g *Game) { g.constancy = n } }

// NewGame creates a dealer for the hidden rule.
func NewGame(hidden rule.Node, opts ...Option) *Game {
	g := &Game{
		id:     uuid.NewString(),
		hidden: hidden,
		board:  domain.NewBoard(),
		status: domain.StatusInit,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("game_id", g.id)
	return g
}

func (g *Game) ID() string { return g.id }

func (g *Game) Status() domain.Status { return g.status }

// Hidden returns the rule being guessed.
func (g *Game) Hidden() rule.Node { return g.hidden }

// Board returns a snapshot of the layout.
func (g *Game) Board() *domain.Board { return g.board.Clone() }

// Turns returns the number of plays judged so far.
func (g *Game) Turns() int { return g.turns }

// EndReason returns why the game ended, or "" while it is running.
func (g *Game) EndReason() domain.EndReason { return g.endReason }

// Ender returns the seat that ended the game with a rule guess, if any.
func (g *Game) Ender() string { return g.ender }

// Start lays out the seed window and moves the game to PLAYING.
func (g *Game) Start(ctx context.Context, seeds [3]card.Card) error {
	if g.status != domain.StatusInit {
		return domain.ErrGameStarted
	}
	for i, c := range seeds {
		if !c.Valid() {
			return fmt.Errorf("seed %d: %w", i, card.ErrInvalidCard)
		}
	}
	w := rule.NewWindow(seeds[0], seeds[1], seeds[2])
	if !g.hidden.Holds(w) {
		return fmt.Errorf("%w: %s", domain.ErrIllegalSeed, w)
	}

	g.board.Seed(seeds[:]...)
	g.status = domain.StatusPlaying
	for _, l := range g.learners {
		l.Seed(seeds)
		g.notifyHypothesis(ctx, l)
	}
	g.logger.Info("game started", "seeds", w.String(), "learners", len(g.learners))
	return nil
}

// Play judges a card played by an unnamed seat.
func (g *Game) Play(ctx context.Context, c card.Card) (domain.Outcome, error) {
	return g.PlayAs(ctx, "", c)
}

// PlayAs judges a card played by seat. The hidden rule is evaluated on
// [previous2, previous, c]; an accepted card extends the board, a rejected
// one is recorded after the last accepted card. Every learner is then told
// the verdict. On error the board is left untouched.
func (g *Game) PlayAs(ctx context.Context, seat string, c card.Card) (domain.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return domain.Outcome{}, err
	}
	switch g.status {
	case domain.StatusInit:
		return domain.Outcome{}, domain.ErrGameNotStarted
	case domain.StatusEnded:
		return domain.Outcome{}, domain.ErrGameEnded
	}
	if !c.Valid() {
		return domain.Outcome{}, fmt.Errorf("play: %w", card.ErrInvalidCard)
	}
	w, ok := g.board.Window(c)
	if !ok {
		return domain.Outcome{}, domain.ErrGameNotStarted
	}

	before := g.board.Clone()
	accepted := g.hidden.Holds(w)
	if accepted {
		g.board.Accept(c)
	} else if err := g.board.Reject(c); err != nil {
		return domain.Outcome{}, err
	}
	g.turns++

	mutated := false
	for _, l := range g.learners {
		if l.RecordOutcome(c, accepted) {
			mutated = true
			g.notifyHypothesis(ctx, l)
		}
	}
	if mutated {
		g.stable = 0
	} else {
		g.stable++
	}

	g.logger.Debug("play judged", "turn", g.turns, "seat", seat, "card", c.String(), "accepted", accepted)

	switch {
	case g.turnBudget > 0 && g.turns >= g.turnBudget:
		g.finish(domain.EndTurnBudget, "")
	case g.constancy > 0 && g.stable >= g.constancy:
		g.finish(domain.EndConstancy, "")
	}

	out := domain.Outcome{Turn: g.turns, Seat: seat, Card: c, Accepted: accepted, Window: w, Status: g.status}
	if g.hooks.OnTurn != nil {
		g.hooks.OnTurn(ctx, &domain.TurnEvent{
			EventBase: g.event(domain.EventTurn),
			Outcome:   out,
			Diff:      domain.Diff(before, g.board),
		})
	}
	if g.status == domain.StatusEnded {
		g.fireEnd(ctx)
	}
	return out, nil
}

// End stops the game, e.g. because seat announced a rule.
func (g *Game) End(ctx context.Context, reason domain.EndReason, seat string) error {
	switch g.status {
	case domain.StatusInit:
		return domain.ErrGameNotStarted
	case domain.StatusEnded:
		return domain.ErrGameEnded
	}
	g.finish(reason, seat)
	g.fireEnd(ctx)
	return nil
}

func (g *Game) finish(reason domain.EndReason, seat string) {
	g.status = domain.StatusEnded
	g.endReason = reason
	g.ender = seat
	g.logger.Info("game ended", "reason", string(reason), "seat", seat, "turn", g.turns)
}

func (g *Game) fireEnd(ctx context.Context) {
	if g.hooks.OnGameEnd == nil {
		return
	}
	g.hooks.OnGameEnd(ctx, &domain.GameEndEvent{
		EventBase: g.event(domain.EventGameEnd),
		Reason:    g.endReason,
		Seat:      g.ender,
		Turns:     g.turns,
	})
}

func (g *Game) notifyHypothesis(ctx context.Context, l Learner) {
	if g.hooks.OnHypothesisChange == nil {
		return
	}
	ev := &domain.HypothesisEvent{
		EventBase: g.event(domain.EventHypothesis),
		Seat:      l.Name(),
		Guess:     l.CurrentGuess(),
	}
	if h, ok := l.(hypothesisHolder); ok {
		set := h.Hypothesis()
		ev.Clauses, ev.Predicates = set.Len(), set.PredicateCount()
	}
	g.hooks.OnHypothesisChange(ctx, ev)
}

func (g *Game) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: g.now(), Type: t, GameID: g.id}
}
