package dsl

import (
	"math/rand"

	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/rule"
)

var (
	comparisons = []func(a, b rule.Node) rule.Node{Equal, Greater, Less}
	connectives = []func(a, b rule.Node, more ...rule.Node) rule.Node{And, Or}
)

// Random draws a hidden rule:
//   - 4 in 11: one attribute of the current card equals a literal;
//   - 5 in 11: the current and previous cards are compared on one attribute;
//   - 2 in 11: and/or of a (current, previous) and a (previous, previous2) comparison.
func Random(rng *rand.Rand) rule.Node {
	switch roll := rng.Intn(11) + 1; {
	case roll <= 4:
		return RandomOneCard(rng, Current)
	case roll <= 9:
		return RandomTwoCard(rng, Current, Previous)
	default:
		join := connectives[rng.Intn(len(connectives))]
		return join(RandomTwoCard(rng, Current, Previous), RandomTwoCard(rng, Previous, Previous2))
	}
}

// RandomOneCard returns equal(attr(slot), v) for a random attribute and value.
func RandomOneCard(rng *rand.Rand, slot rule.Node) rule.Node {
	return Is(Attributes[rng.Intn(len(Attributes))], slot, card.Random(rng))
}

// RandomTwoCard compares two slots. Equality may use any attribute; greater
// and less always compare values.
func RandomTwoCard(rng *rand.Rand, a, b rule.Node) rule.Node {
	i := rng.Intn(len(comparisons))
	attr := AttrValue
	if i == 0 {
		attr = Attributes[rng.Intn(len(Attributes))]
	}
	return comparisons[i](attr.Of(a), attr.Of(b))
}
