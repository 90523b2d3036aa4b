package card

// Suit identifies one of the four suits.
//
// The numeric values define the fixed total order C < D < H < S used by
// greater/less on suits. The order has no meaning in the game itself; it
// only has to be stable so that suit comparisons are reproducible.
type Suit uint8

const (
	Clubs    Suit = iota + 1 // C
	Diamonds                 // D
	Hearts                   // H
	Spades                   // S
)

// Suits lists the suits in ascending order.
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s >= Clubs && s <= Spades
}

// Color returns the color of the suit.
func (s Suit) Color() Color {
	switch s {
	case Diamonds, Hearts:
		return Red
	case Spades, Clubs:
		return Black
	}
	return 0
}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	}
	return "?"
}

// ParseSuit parses the single-letter suit symbol.
func ParseSuit(s string) (Suit, bool) {
	switch s {
	case "C":
		return Clubs, true
	case "D":
		return Diamonds, true
	case "H":
		return Hearts, true
	case "S":
		return Spades, true
	}
	return 0, false
}

// Color is the color of a card: R or B.
type Color uint8

const (
	Red Color = iota + 1
	Black
)

// Valid reports whether c is Red or Black.
func (c Color) Valid() bool {
	return c == Red || c == Black
}

func (c Color) String() string {
	switch c {
	case Red:
		return "R"
	case Black:
		return "B"
	}
	return "?"
}

// ParseColor parses "R" or "B".
func ParseColor(s string) (Color, bool) {
	switch s {
	case "R":
		return Red, true
	case "B":
		return Black, true
	}
	return 0, false
}
