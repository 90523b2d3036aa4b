package eleusis

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/aretw0/eleusis/internal/logging"
	"github.com/aretw0/eleusis/internal/runtime"
	"github.com/aretw0/eleusis/internal/table"
	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/domain"
	"github.com/aretw0/eleusis/pkg/hypothesis"
	"github.com/aretw0/eleusis/pkg/player"
	"github.com/aretw0/eleusis/pkg/rule"
	"github.com/aretw0/eleusis/pkg/scoring"
)

// Result is the outcome of a finished game.
type Result = table.Result

// Session is the high-level entry point of the library: one game between a
// hidden rule, the scientist and optional adversary seats.
type Session struct {
	hidden rule.Node
	seeds  *[3]card.Card
	rng    *rand.Rand
	logger *slog.Logger
	hooks  domain.LifecycleHooks

	turnBudget  int
	constancy   int
	rounds      int
	adversaries int
	guessProb   float64
	variant     scoring.Variant
	freePlays   int
	simplifier  hypothesis.Simplifier
	gameID      string

	game      *runtime.Game
	scientist *player.Scientist
	table     *table.Table
}

// Option defines a functional option for configuring the Session.
type Option func(*Session)

// WithLifecycleHooks registers observability hooks. Hooks accumulate.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Session) { s.hooks = s.hooks.Merge(hooks) }
}

// WithLogger sets a custom structured logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSeed makes every random choice reproducible.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithSeeds fixes the opening window instead of dealing one.
func WithSeeds(seeds [3]card.Card) Option {
	return func(s *Session) { s.seeds = &seeds }
}

// WithTurnBudget ends the game after n judged plays (0 disables).
func WithTurnBudget(n int) Option { return func(s *Session) { s.turnBudget = n } }

// WithConstancyThreshold ends the game after n plays that did not change the
// hypothesis (0 disables).
func WithConstancyThreshold(n int) Option { return func(s *Session) { s.constancy = n } }

// WithRounds bounds the number of table rounds.
func WithRounds(n int) Option { return func(s *Session) { s.rounds = n } }

// WithAdversaries seats n random bots that guess a rule with probability p
// on each of their turns.
func WithAdversaries(n int, p float64) Option {
	return func(s *Session) { s.adversaries, s.guessProb = n, p }
}

// WithScoring selects the score table.
func WithScoring(v scoring.Variant, freePlays int) Option {
	return func(s *Session) { s.variant, s.freePlays = v, freePlays }
}

// WithSimplifier sets the scientist's hypothesis simplification pass.
func WithSimplifier(fn hypothesis.Simplifier) Option {
	return func(s *Session) { s.simplifier = fn }
}

// WithGameID overrides the generated game ID.
func WithGameID(id string) Option { return func(s *Session) { s.gameID = id } }

// Solo configures the original single-player run: no adversaries and one
// round per budgeted turn.
func Solo(turnBudget int) Option {
	return func(s *Session) {
		s.adversaries = 0
		s.turnBudget = turnBudget
		s.rounds = turnBudget
		s.variant = scoring.Classic
	}
}

// New creates a Session for the hidden rule text.
func New(hiddenRule string, opts ...Option) (*Session, error) {
	hidden, err := rule.Parse(hiddenRule)
	if err != nil {
		return nil, fmt.Errorf("hidden rule: %w", err)
	}
	return NewWithRule(hidden, opts...), nil
}

// NewWithRule creates a Session for an already built rule.
func NewWithRule(hidden rule.Node, opts ...Option) *Session {
	s := &Session{
		hidden:      hidden,
		logger:      logging.NewNop(),
		rounds:      table.DefaultRounds,
		adversaries: 3,
		guessProb:   1.0 / player.AdversaryHandSize,
		variant:     scoring.Tournament,
		freePlays:   scoring.DefaultFreePlays,
		simplifier:  hypothesis.Dedupe,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Hidden returns the rule being guessed.
func (s *Session) Hidden() rule.Node { return s.hidden }

// Game returns the dealer, or nil before Start.
func (s *Session) Game() *runtime.Game { return s.game }

// Scientist returns the learning seat, or nil before Start.
func (s *Session) Scientist() *player.Scientist { return s.scientist }

// Start seats the players, deals the opening window and starts the game.
func (s *Session) Start(ctx context.Context) error {
	if s.game != nil {
		return domain.ErrGameStarted
	}

	s.scientist = player.NewScientist(
		player.WithRand(s.rng),
		player.WithLogger(s.logger),
		player.WithEngineOptions(hypothesis.WithSimplifier(s.simplifier), hypothesis.WithLogger(s.logger)),
	)
	gameOpts := []runtime.Option{
		runtime.WithLearners(s.scientist),
		runtime.WithTurnBudget(s.turnBudget),
		runtime.WithConstancyThreshold(s.constancy),
		runtime.WithLifecycleHooks(s.hooks),
		runtime.WithLogger(s.logger),
	}
	if s.gameID != "" {
		gameOpts = append(gameOpts, runtime.WithID(s.gameID))
	}
	g := runtime.NewGame(s.hidden, gameOpts...)

	seeds, err := s.openingWindow(g)
	if err != nil {
		return err
	}
	if err := g.Start(ctx, seeds); err != nil {
		return err
	}

	seats := make([]table.Seat, 0, s.adversaries)
	for i := 0; i < s.adversaries; i++ {
		seats = append(seats, player.NewRandomAdversary(fmt.Sprintf("bot-%d", i+1), s.rng, s.guessProb))
	}
	s.game = g
	s.table = table.New(g, s.scientist,
		table.WithSeats(seats...),
		table.WithRounds(s.rounds),
		table.WithScoring(s.variant, s.freePlays),
		table.WithLogger(s.logger),
	)
	return nil
}

func (s *Session) openingWindow(g *runtime.Game) ([3]card.Card, error) {
	if s.seeds != nil {
		return *s.seeds, nil
	}
	return g.DealSeeds(s.rng)
}

// Run plays the game to the end, starting it first if needed.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	if s.game == nil {
		if err := s.Start(ctx); err != nil {
			return nil, err
		}
	}
	return s.table.Run(ctx)
}
