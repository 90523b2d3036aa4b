package runtime

import (
	"math/rand"

	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/domain"
	"github.com/aretw0/eleusis/pkg/rule"
)

// randomSeedAttempts bounds the random search before DealSeeds falls back
// to scanning every ordered triple.
const randomSeedAttempts = 2000

// DealSeeds finds three distinct cards the hidden rule accepts as an
// opening window.
func (g *Game) DealSeeds(rng *rand.Rand) ([3]card.Card, error) {
	deck := card.Deck()
	for i := 0; i < randomSeedAttempts; i++ {
		a, b, c := deck[rng.Intn(card.DeckSize)], deck[rng.Intn(card.DeckSize)], deck[rng.Intn(card.DeckSize)]
		if a == b || b == c || a == c {
			continue
		}
		if w := rule.NewWindow(a, b, c); g.hidden.Holds(w) {
			return [3]card.Card(w), nil
		}
	}

	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	for _, a := range deck {
		for _, b := range deck {
			for _, c := range deck {
				if a == b || b == c || a == c {
					continue
				}
				if w := rule.NewWindow(a, b, c); g.hidden.Holds(w) {
					return [3]card.Card(w), nil
				}
			}
		}
	}
	return [3]card.Card{}, domain.ErrNoLegalSequence
}
