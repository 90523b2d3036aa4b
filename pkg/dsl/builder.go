package dsl

import (
	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/rule"
)

// Slot references.
var (
	Current   = rule.Ref(rule.SlotCurrent)
	Previous  = rule.Ref(rule.SlotPrevious)
	Previous2 = rule.Ref(rule.SlotPrevious2)
)

// Slot returns the reference node for s.
func Slot(s rule.Slot) rule.Node { return rule.Ref(s) }

// Literals.

func Rank(r int) rule.Node { return rule.Lit(rule.RankValue(r)) }
func SuitLit(s card.Suit) rule.Node { return rule.Lit(rule.SuitValue(s)) }
func ColorLit(c card.Color) rule.Node { return rule.Lit(rule.ColorValue(c)) }
func Bool(b bool) rule.Node { return rule.Lit(rule.Bool(b)) }
func Card(c card.Card) rule.Node { return rule.Lit(rule.CardValue(c)) }

// Card attributes.

func Value(x rule.Node) rule.Node { return rule.MustCall(rule.OpValue, x) }
func Suit(x rule.Node) rule.Node { return rule.MustCall(rule.OpSuit, x) }
func Color(x rule.Node) rule.Node { return rule.MustCall(rule.OpColor, x) }
func IsRoyal(x rule.Node) rule.Node { return rule.MustCall(rule.OpIsRoyal, x) }
func Even(x rule.Node) rule.Node { return rule.MustCall(rule.OpEven, x) }
func Odd(x rule.Node) rule.Node { return rule.MustCall(rule.OpOdd, x) }

// Comparisons and connectives.

func Equal(a, b rule.Node) rule.Node { return rule.MustCall(rule.OpEqual, a, b) }
func Greater(a, b rule.Node) rule.Node { return rule.MustCall(rule.OpGreater, a, b) }
func Less(a, b rule.Node) rule.Node { return rule.MustCall(rule.OpLess, a, b) }
func Not(a rule.Node) rule.Node { return rule.Not(a) }
func If(p, r rule.Node) rule.Node { return rule.MustCall(rule.OpIf, p, r) }

// And folds two or more operands left to right.
func And(a, b rule.Node, more ...rule.Node) rule.Node {
	return rule.And(append([]rule.Node{a, b}, more...)...)
}

// Or folds two or more operands left to right.
func Or(a, b rule.Node, more ...rule.Node) rule.Node {
	return rule.Or(append([]rule.Node{a, b}, more...)...)
}

// Plus1 returns plus1(x).
func Plus1(x rule.Node) rule.Node { return rule.MustCall(rule.OpPlus1, x) }

// Minus1 returns minus1(x).
func Minus1(x rule.Node) rule.Node { return rule.MustCall(rule.OpMinus1, x) }

// Plus1N nests plus1 n times, so the result is x + n.
func Plus1N(x rule.Node, n int) rule.Node {
	for i := 0; i < n; i++ {
		x = Plus1(x)
	}
	return x
}

// Minus1N nests minus1 n times, so the result is x - n.
func Minus1N(x rule.Node, n int) rule.Node {
	for i := 0; i < n; i++ {
		x = Minus1(x)
	}
	return x
}

// Is returns equal(attr(slot), value-of-attr(c)), the one-card predicate
// "slot has the same attribute as c".
func Is(a Attribute, slot rule.Node, c card.Card) rule.Node {
	return Equal(a.Of(slot), a.ValueOf(c))
}

// Exactly returns the predicate that matches one window and nothing else.
func Exactly(w rule.Window) rule.Node {
	return And(
		Equal(Previous2, Card(w.Previous2())),
		Equal(Previous, Card(w.Previous())),
		Equal(Current, Card(w.Current())),
	)
}
