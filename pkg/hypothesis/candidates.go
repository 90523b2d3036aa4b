package hypothesis

import (
	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/dsl"
	"github.com/aretw0/eleusis/pkg/rule"
)

// Attribute order for the "attributes differ" predicates of a card pair.
var distinctAttributes = []dsl.Attribute{dsl.AttrValue, dsl.AttrSuit, dsl.AttrColor, dsl.AttrIsRoyal, dsl.AttrEven}

// OneCard returns equal(attr(slot), v) for every attribute of c.
func OneCard(c card.Card, slot rule.Slot) []Predicate {
	ref := dsl.Slot(slot)
	out := make([]Predicate, 0, len(dsl.Attributes))
	for _, a := range dsl.Attributes {
		out = append(out, NewPredicate(dsl.Is(a, ref, c)))
	}
	return out
}

// TwoCards returns the predicates relating an ordered pair of cards placed
// in prevSlot and curSlot. Every returned predicate holds for the pair.
func TwoCards(prev, cur card.Card, prevSlot, curSlot rule.Slot) []Predicate {
	pairs := twoCards(prev, cur, prevSlot, curSlot)
	out := make([]Predicate, len(pairs))
	for i, p := range pairs {
		out[i] = p.Predicate
	}
	return out
}

type pairKind uint8

const (
	pairDiffers pairKind = iota + 1
	pairCompare
	pairDistance
	pairValues
)

// pairPredicate is a two-card predicate tagged with what it talks about, so
// that predicates of adjacent pairs can be matched up.
type pairPredicate struct {
	Predicate
	kind pairKind
	attr dsl.Attribute
}

func (p pairPredicate) compatible(q pairPredicate) bool {
	if p.kind != q.kind {
		return false
	}
	return p.kind == pairDistance || p.attr == q.attr
}

func twoCards(prev, cur card.Card, prevSlot, curSlot rule.Slot) []pairPredicate {
	p, c := dsl.Slot(prevSlot), dsl.Slot(curSlot)
	var out []pairPredicate
	add := func(kind pairKind, attr dsl.Attribute, n rule.Node) {
		out = append(out, pairPredicate{Predicate: NewPredicate(n), kind: kind, attr: attr})
	}

	for _, a := range distinctAttributes {
		if !a.Same(prev, cur) {
			add(pairDiffers, a, dsl.Not(dsl.Equal(a.Of(c), a.Of(p))))
		}
	}

	if d := int(cur.Rank()) - int(prev.Rank()); d > 0 {
		add(pairCompare, dsl.AttrValue, dsl.Greater(dsl.Value(c), dsl.Value(p)))
		add(pairDistance, dsl.AttrValue, dsl.Equal(dsl.Plus1N(dsl.Value(p), d), dsl.Value(c)))
	} else if d < 0 {
		add(pairCompare, dsl.AttrValue, dsl.Less(dsl.Value(c), dsl.Value(p)))
		add(pairDistance, dsl.AttrValue, dsl.Equal(dsl.Minus1N(dsl.Value(p), -d), dsl.Value(c)))
	}

	switch {
	case cur.Suit() > prev.Suit():
		add(pairCompare, dsl.AttrSuit, dsl.Greater(dsl.Suit(c), dsl.Suit(p)))
	case cur.Suit() < prev.Suit():
		add(pairCompare, dsl.AttrSuit, dsl.Less(dsl.Suit(c), dsl.Suit(p)))
	}

	for _, a := range dsl.Attributes {
		if !a.Same(prev, cur) {
			add(pairValues, a, dsl.And(dsl.Is(a, p, prev), dsl.Is(a, c, cur)))
		}
	}
	return out
}

// ThreeCards ANDs each predicate of (previous2, previous) with each
// compatible predicate of (previous, current): same operator on the same
// attribute, both value comparisons, both suit comparisons, or both value
// distances.
func ThreeCards(w rule.Window) []Predicate {
	left := twoCards(w.Previous2(), w.Previous(), rule.SlotPrevious2, rule.SlotPrevious)
	right := twoCards(w.Previous(), w.Current(), rule.SlotPrevious, rule.SlotCurrent)

	var out []Predicate
	for _, l := range left {
		for _, r := range right {
			if l.compatible(r) {
				out = append(out, NewPredicate(dsl.And(l.node, r.node)))
			}
		}
	}
	return out
}

// ForSequence returns every candidate predicate for a window: the one-card
// predicates shared by all three cards, the two-card predicates of both
// adjacent pairs and the three-card combinations, without duplicates.
// All of them hold on w.
func ForSequence(w rule.Window) []Predicate {
	var out []Predicate
	for _, a := range dsl.Attributes {
		if a.Same(w.Previous2(), w.Previous()) && a.Same(w.Previous(), w.Current()) {
			out = append(out, NewPredicate(dsl.Is(a, dsl.Current, w.Current())))
		}
	}
	out = append(out, TwoCards(w.Previous2(), w.Previous(), rule.SlotPrevious2, rule.SlotPrevious)...)
	out = append(out, TwoCards(w.Previous(), w.Current(), rule.SlotPrevious, rule.SlotCurrent)...)
	out = append(out, ThreeCards(w)...)
	return dedupe(out)
}
