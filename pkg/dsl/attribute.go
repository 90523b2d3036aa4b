package dsl

import (
	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/rule"
)

// Attribute is a card property usable in an equality predicate.
type Attribute uint8

const (
	AttrSuit Attribute = iota + 1
	AttrColor
	AttrIsRoyal
	AttrEven
	AttrValue
)

// Attributes lists every attribute in candidate-generation order.
var Attributes = []Attribute{AttrSuit, AttrColor, AttrIsRoyal, AttrEven, AttrValue}

func (a Attribute) String() string {
	switch a {
	case AttrSuit:
		return "suit"
	case AttrColor:
		return "color"
	case AttrIsRoyal:
		return "is_royal"
	case AttrEven:
		return "even"
	case AttrValue:
		return "value"
	}
	return "attribute?"
}

// Of applies the attribute to a card expression.
func (a Attribute) Of(x rule.Node) rule.Node {
	switch a {
	case AttrSuit:
		return Suit(x)
	case AttrColor:
		return Color(x)
	case AttrIsRoyal:
		return IsRoyal(x)
	case AttrEven:
		return Even(x)
	case AttrValue:
		return Value(x)
	}
	panic("dsl: unknown attribute")
}

// ValueOf returns the literal node holding c's value for the attribute.
func (a Attribute) ValueOf(c card.Card) rule.Node {
	switch a {
	case AttrSuit:
		return SuitLit(c.Suit())
	case AttrColor:
		return ColorLit(c.Color())
	case AttrIsRoyal:
		return Bool(c.IsRoyal())
	case AttrEven:
		return Bool(c.Even())
	case AttrValue:
		return Rank(int(c.Rank()))
	}
	panic("dsl: unknown attribute")
}

// Same reports whether two cards agree on the attribute.
func (a Attribute) Same(x, y card.Card) bool {
	switch a {
	case AttrSuit:
		return x.Suit() == y.Suit()
	case AttrColor:
		return x.Color() == y.Color()
	case AttrIsRoyal:
		return x.IsRoyal() == y.IsRoyal()
	case AttrEven:
		return x.Even() == y.Even()
	case AttrValue:
		return x.Rank() == y.Rank()
	}
	return false
}
