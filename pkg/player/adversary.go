package player

import (
	"math/rand"

	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/domain"
	"github.com/aretw0/eleusis/pkg/dsl"
	"github.com/aretw0/eleusis/pkg/rule"
)

// AdversaryHandSize is the number of cards dealt to an adversary.
const AdversaryHandSize = 14

// RandomAdversary plays random cards from a fixed hand and, with a small
// probability, ends the game by announcing a random two-card rule.
type RandomAdversary struct {
	name      string
	hand      card.Hand
	rng       *rand.Rand
	guessProb float64
}

// NewRandomAdversary deals a hand from rng. guessProb is the chance of
// guessing a rule instead of playing on any turn.
func NewRandomAdversary(name string, rng *rand.Rand, guessProb float64) *RandomAdversary {
	return &RandomAdversary{
		name:      name,
		hand:      card.Deal(rng, AdversaryHandSize),
		rng:       rng,
		guessProb: guessProb,
	}
}

func (a *RandomAdversary) Name() string { return a.name }

// Hand returns the adversary's cards.
func (a *RandomAdversary) Hand() card.Hand { return append(card.Hand(nil), a.hand...) }

func (a *RandomAdversary) Move(domain.View) domain.Move {
	if a.rng.Float64() < a.guessProb {
		return domain.GuessRule(randomGuess(a.rng))
	}
	return domain.PlayCard(a.hand[a.rng.Intn(len(a.hand))])
}

// randomGuess compares the current and previous cards: equal suits, equal
// values or a greater value.
func randomGuess(rng *rand.Rand) rule.Node {
	switch rng.Intn(3) {
	case 0:
		return dsl.Equal(dsl.Suit(dsl.Current), dsl.Suit(dsl.Previous))
	case 1:
		return dsl.Equal(dsl.Value(dsl.Current), dsl.Value(dsl.Previous))
	default:
		return dsl.Greater(dsl.Value(dsl.Current), dsl.Value(dsl.Previous))
	}
}

// RuleGuesser plays random cards and announces a fixed rule once it has
// played a given number of times.
type RuleGuesser struct {
	name  string
	hand  card.Hand
	rng   *rand.Rand
	guess rule.Node
	after int
	plays int
}

// NewRuleGuesser returns a seat that guesses r on its turn after `after`
// card plays.
func NewRuleGuesser(name string, rng *rand.Rand, r rule.Node, after int) *RuleGuesser {
	return &RuleGuesser{name: name, hand: card.Deal(rng, AdversaryHandSize), rng: rng, guess: r, after: after}
}

func (g *RuleGuesser) Name() string { return g.name }

func (g *RuleGuesser) Move(domain.View) domain.Move {
	if g.plays >= g.after {
		return domain.GuessRule(g.guess)
	}
	g.plays++
	return domain.PlayCard(g.hand[g.rng.Intn(len(g.hand))])
}
