package card

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidCard is returned when a token does not name one of the 52 cards.
var ErrInvalidCard = errors.New("invalid card")

// Card is a playing card packed into one byte.
//
// Layout:
//   - high 4 bits: suit (see Suit)
//   - low 4 bits: rank 1..13 (A=1, J=11, Q=12, K=13)
//
// The zero value is not a card.
type Card uint8

// Invalid is the zero Card.
const Invalid Card = 0

// New builds a card from its rank and suit. It returns Invalid when either
// component is out of range.
func New(r Rank, s Suit) Card {
	if !r.Valid() || !s.Valid() {
		return Invalid
	}
	return Card(uint8(s)<<4 | uint8(r))
}

// Valid reports whether c is one of the 52 cards.
func (c Card) Valid() bool {
	return c.Rank().Valid() && c.Suit().Valid()
}

// Rank returns the rank of the card (1..13).
func (c Card) Rank() Rank {
	return Rank(c & 0x0F)
}

// Suit returns the suit of the card.
func (c Card) Suit() Suit {
	return Suit(c >> 4)
}

// Color returns Red for diamonds and hearts, Black for spades and clubs.
func (c Card) Color() Color {
	return c.Suit().Color()
}

// IsRoyal reports whether the card is a jack, queen or king.
func (c Card) IsRoyal() bool {
	return c.Rank() > 10
}

// Even reports whether the rank is even.
func (c Card) Even() bool {
	return c.Rank()%2 == 0
}

// Odd reports whether the rank is odd.
func (c Card) Odd() bool {
	return !c.Even()
}

// String returns the token form, e.g. "10H", "AS", "KD".
func (c Card) String() string {
	if !c.Valid() {
		return "Invalid"
	}
	return c.Rank().String() + c.Suit().String()
}

// Parse converts a token such as "10H" or "AS" into a Card.
// Tokens are case-sensitive: rank (A, 2..10, J, Q, K) followed by one of D, H, S, C.
func Parse(token string) (Card, error) {
	if len(token) < 2 || len(token) > 3 {
		return Invalid, fmt.Errorf("%w: %q", ErrInvalidCard, token)
	}

	s, ok := ParseSuit(token[len(token)-1:])
	if !ok {
		return Invalid, fmt.Errorf("%w: bad suit in %q", ErrInvalidCard, token)
	}
	// Numeric aces ("1H") and spelled-out faces ("11H") are not card tokens.
	r, ok := ParseRank(token[:len(token)-1])
	if !ok || r.String() != token[:len(token)-1] {
		return Invalid, fmt.Errorf("%w: bad rank in %q", ErrInvalidCard, token)
	}
	return New(r, s), nil
}

// MustParse is like Parse but panics on a malformed token.
// It is meant for literals in tests and tables.
func MustParse(token string) Card {
	c, err := Parse(token)
	if err != nil {
		panic(err)
	}
	return c
}

// MustParseAll parses every token with MustParse.
func MustParseAll(tokens ...string) []Card {
	out := make([]Card, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, MustParse(t))
	}
	return out
}

// Rank is a card value between 1 (ace) and 13 (king).
type Rank uint8

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

// Valid reports whether r is in 1..13.
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// String returns the token spelling of the rank (A, 2..10, J, Q, K).
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return strconv.Itoa(int(r))
}

// ParseRank accepts the token spelling (A, J, Q, K) as well as the
// numbers 1..13.
func ParseRank(s string) (Rank, bool) {
	switch s {
	case "A":
		return Ace, true
	case "J":
		return Jack, true
	case "Q":
		return Queen, true
	case "K":
		return King, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || strconv.Itoa(n) != s || n < int(Ace) || n > int(King) {
		return 0, false
	}
	return Rank(n), true
}

// MarshalText encodes the card as its token, so cards read naturally in
// JSON and YAML.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, ErrInvalidCard
	}
	return []byte(c.String()), nil
}

// UnmarshalText parses a card token.
func (c *Card) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
