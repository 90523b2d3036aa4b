package card

import "math/rand"

// DeckSize is the number of distinct cards.
const DeckSize = 52

var deck = func() []Card {
	out := make([]Card, 0, DeckSize)
	for _, s := range []Suit{Diamonds, Hearts, Spades, Clubs} {
		for r := Ace; r <= King; r++ {
			out = append(out, New(r, s))
		}
	}
	return out
}()

// Deck returns the 52 cards in a fixed order (D, H, S, C; A..K within a suit).
// The returned slice is a copy.
func Deck() []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	return out
}

// Index returns the position of c in Deck(), or -1 for an invalid card.
func Index(c Card) int {
	if !c.Valid() {
		return -1
	}
	var base int
	switch c.Suit() {
	case Diamonds:
		base = 0
	case Hearts:
		base = 13
	case Spades:
		base = 26
	case Clubs:
		base = 39
	}
	return base + int(c.Rank()) - 1
}

// Random draws one card uniformly from the 52-card domain.
func Random(rng *rand.Rand) Card {
	return deck[rng.Intn(DeckSize)]
}

// Hand is an ordered collection of cards held by a player.
type Hand []Card

// Deal draws n cards with replacement.
func Deal(rng *rand.Rand, n int) Hand {
	h := make(Hand, 0, n)
	for i := 0; i < n; i++ {
		h = append(h, Random(rng))
	}
	return h
}

// Contains reports whether c is in the hand.
func (h Hand) Contains(c Card) bool {
	for _, hc := range h {
		if hc == c {
			return true
		}
	}
	return false
}

// Strings returns the token form of every card.
func (h Hand) Strings() []string {
	out := make([]string, 0, len(h))
	for _, c := range h {
		out = append(out, c.String())
	}
	return out
}
