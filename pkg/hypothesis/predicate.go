package hypothesis

import (
	"fmt"

	"github.com/aretw0/eleusis/pkg/rule"
)

// Predicate is a boolean rule tree keyed by its canonical text.
type Predicate struct {
	node rule.Node
	text string
}

// NewPredicate wraps a boolean tree.
func NewPredicate(n rule.Node) Predicate {
	return Predicate{node: n, text: n.String()}
}

// ParsePredicate parses rule text into a predicate.
func ParsePredicate(text string) (Predicate, error) {
	n, err := rule.Parse(text)
	if err != nil {
		return Predicate{}, fmt.Errorf("parse predicate: %w", err)
	}
	return NewPredicate(n), nil
}

// MustPredicate is like ParsePredicate but panics on invalid text.
func MustPredicate(text string) Predicate {
	p, err := ParsePredicate(text)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Predicate) Node() rule.Node { return p.node }

func (p Predicate) String() string { return p.text }

// Holds evaluates the predicate on a window.
func (p Predicate) Holds(w rule.Window) bool { return p.node.Holds(w) }

// Negate returns not(p), or the operand of p if p is already a negation.
func (p Predicate) Negate() Predicate { return NewPredicate(rule.Negate(p.node)) }

// dedupe keeps the first occurrence of every predicate text.
func dedupe(ps []Predicate) []Predicate {
	seen := make(map[string]struct{}, len(ps))
	out := ps[:0:0]
	for _, p := range ps {
		if _, ok := seen[p.text]; ok {
			continue
		}
		seen[p.text] = struct{}{}
		out = append(out, p)
	}
	return out
}
