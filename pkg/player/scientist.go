package player

import (
	"log/slog"
	"math/rand"

	"github.com/aretw0/eleusis/internal/logging"
	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/domain"
	"github.com/aretw0/eleusis/pkg/hypothesis"
	"github.com/aretw0/eleusis/pkg/rule"
)

// Scientist infers the hidden rule from every verdict it observes.
// It keeps its own copy of the board.
type Scientist struct {
	name   string
	hand   card.Hand
	rng    *rand.Rand
	logger *slog.Logger
	board  *domain.Board
	engine *hypothesis.Engine
	engOpt []hypothesis.Option
	moves  int
}

// Option configures a Scientist.
type Option func(*Scientist)

func WithName(name string) Option { return func(s *Scientist) { s.name = name } }

// WithHand restricts the cards the scientist may play. The default is the
// full deck.
func WithHand(h card.Hand) Option {
	return func(s *Scientist) { s.hand = append(card.Hand(nil), h...) }
}

// WithRand sets the source used to break ties between candidate cards.
func WithRand(rng *rand.Rand) Option { return func(s *Scientist) { s.rng = rng } }

func WithLogger(l *slog.Logger) Option {
	return func(s *Scientist) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEngineOptions passes options through to the hypothesis engine.
func WithEngineOptions(opts ...hypothesis.Option) Option {
	return func(s *Scientist) { s.engOpt = append(s.engOpt, opts...) }
}

// NewScientist creates a scientist with an empty board.
func NewScientist(opts ...Option) *Scientist {
	s := &Scientist{
		name:   "scientist",
		hand:   card.Hand(card.Deck()),
		rng:    rand.New(rand.NewSource(1)),
		logger: logging.NewNop(),
		board:  domain.NewBoard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = hypothesis.NewEngine(append([]hypothesis.Option{hypothesis.WithLogger(s.logger)}, s.engOpt...)...)
	return s
}

func (s *Scientist) Name() string { return s.name }

// Seed lays out the dealer's three opening cards and builds the initial
// hypothesis from them.
func (s *Scientist) Seed(cards [3]card.Card) {
	s.board.Seed(cards[:]...)
	s.engine.Seed(rule.NewWindow(cards[0], cards[1], cards[2]))
}

// RecordOutcome folds one verdict into the board and the hypothesis and
// reports whether the hypothesis changed.
func (s *Scientist) RecordOutcome(c card.Card, accepted bool) bool {
	w, ok := s.board.Window(c)
	if !ok {
		s.logger.Warn("outcome before seed", "card", c.String())
		return false
	}

	var changed bool
	if accepted {
		s.board.Accept(c)
		changed = s.engine.Accept(w)
	} else {
		// Board.Reject only fails on an empty board, ruled out above.
		_ = s.board.Reject(c)
		changed = s.engine.Reject(w, s.board.Windows())
	}
	if s.engine.Simplify() {
		changed = true
	}

	set := s.engine.Set()
	s.logger.Debug("outcome recorded",
		"card", c.String(), "accepted", accepted,
		"clauses", set.Len(), "predicates", set.PredicateCount())
	return changed
}

// ChooseNextPrediction picks the next card to play. On even turns it
// confirms the hypothesis with a card it accepts; on odd turns it
// challenges it with a card it rejects. If no card in the hand qualifies,
// any card is played.
func (s *Scientist) ChooseNextPrediction(hand card.Hand, turn int) card.Card {
	if len(hand) == 0 {
		return card.Random(s.rng)
	}
	guess := s.engine.Guess()
	confirm := turn%2 == 0

	var picks card.Hand
	for _, c := range hand {
		w, ok := s.board.Window(c)
		if !ok {
			break
		}
		if guess.Holds(w) == confirm {
			picks = append(picks, c)
		}
	}
	if len(picks) == 0 {
		picks = hand
	}
	c := picks[s.rng.Intn(len(picks))]
	s.logger.Debug("prediction chosen", "turn", turn, "card", c.String(), "confirm", confirm)
	return c
}

// Move plays the next prediction from the scientist's hand. Parity follows
// the scientist's own move count, not the shared turn count.
func (s *Scientist) Move(domain.View) domain.Move {
	turn := s.moves
	s.moves++
	return domain.PlayCard(s.ChooseNextPrediction(s.hand, turn))
}

// CurrentGuess returns the canonical text of the current hypothesis.
func (s *Scientist) CurrentGuess() string { return s.engine.Guess().String() }

// Guess returns the current hypothesis as a rule tree.
func (s *Scientist) Guess() rule.Node { return s.engine.Guess() }

// Hypothesis returns the current clause set.
func (s *Scientist) Hypothesis() hypothesis.Set { return s.engine.Set() }

// Mutations counts the observations that changed the hypothesis.
func (s *Scientist) Mutations() int { return s.engine.Mutations() }

// Board returns the scientist's copy of the layout.
func (s *Scientist) Board() *domain.Board { return s.board }
