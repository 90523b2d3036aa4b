package rule

import (
	"strconv"
	"strings"

	"github.com/aretw0/eleusis/pkg/card"
)

// Kind is the static type of an expression.
type Kind uint8

const (
	KindBool Kind = iota + 1
	KindRank
	KindSuit
	KindColor
	KindCard
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindRank:
		return "rank"
	case KindSuit:
		return "suit"
	case KindColor:
		return "color"
	case KindCard:
		return "card"
	}
	return "invalid"
}

// Slot names a position in the 3-card window, counted back from the card
// being judged.
type Slot int8

const (
	SlotCurrent   Slot = 0
	SlotPrevious  Slot = 1
	SlotPrevious2 Slot = 2
)

// Slots lists the slots from the oldest card to the current one.
var Slots = []Slot{SlotPrevious2, SlotPrevious, SlotCurrent}

func (s Slot) String() string {
	switch s {
	case SlotCurrent:
		return "current"
	case SlotPrevious:
		return "previous"
	case SlotPrevious2:
		return "previous2"
	}
	return "slot(" + strconv.Itoa(int(s)) + ")"
}

// ParseSlot parses a slot keyword.
func ParseSlot(s string) (Slot, bool) {
	switch s {
	case "current":
		return SlotCurrent, true
	case "previous":
		return SlotPrevious, true
	case "previous2":
		return SlotPrevious2, true
	}
	return 0, false
}

// Value is the result of evaluating an expression.
// Only the field matching Kind is meaningful.
type Value struct {
	Kind  Kind
	Bool  bool
	Rank  int // may leave 1..13 after plus1/minus1
	Suit  card.Suit
	Color card.Color
	Card  card.Card
}

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// RankValue returns a rank value.
func RankValue(r int) Value { return Value{Kind: KindRank, Rank: r} }

// SuitValue returns a suit value.
func SuitValue(s card.Suit) Value { return Value{Kind: KindSuit, Suit: s} }

// ColorValue returns a color value.
func ColorValue(c card.Color) Value { return Value{Kind: KindColor, Color: c} }

// CardValue returns a card value.
func CardValue(c card.Card) Value { return Value{Kind: KindCard, Card: c} }

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindBool:
		return v.Bool == o.Bool
	case KindRank:
		return v.Rank == o.Rank
	case KindSuit:
		return v.Suit == o.Suit
	case KindColor:
		return v.Color == o.Color
	case KindCard:
		return v.Card == o.Card
	}
	return false
}

// String returns the literal spelling of the value.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case KindRank:
		return strconv.Itoa(v.Rank)
	case KindSuit:
		return v.Suit.String()
	case KindColor:
		return v.Color.String()
	case KindCard:
		return v.Card.String()
	}
	return "?"
}

// ParseLiteral recognizes a constant: a boolean, a card token, a rank
// (1..13 or A, J, Q, K), a suit letter or a color letter.
func ParseLiteral(s string) (Value, bool) {
	switch {
	case strings.EqualFold(s, "true"):
		return Bool(true), true
	case strings.EqualFold(s, "false"):
		return Bool(false), true
	}
	if c, err := card.Parse(s); err == nil {
		return CardValue(c), true
	}
	if r, ok := card.ParseRank(s); ok {
		return RankValue(int(r)), true
	}
	if st, ok := card.ParseSuit(s); ok {
		return SuitValue(st), true
	}
	if c, ok := card.ParseColor(s); ok {
		return ColorValue(c), true
	}
	return Value{}, false
}
