package hypothesis

import (
	"sort"
	"strings"

	"github.com/aretw0/eleusis/pkg/rule"
)

// Clause is an ordered conjunction of predicates. Clauses are values: every
// method that changes the predicate list returns a new clause.
type Clause struct {
	preds []Predicate
}

// NewClause builds a clause, dropping duplicate predicates.
func NewClause(ps ...Predicate) Clause {
	return Clause{preds: dedupe(ps)}
}

func (c Clause) Len() int { return len(c.preds) }

func (c Clause) IsEmpty() bool { return len(c.preds) == 0 }

// Predicates returns a copy of the clause's predicates.
func (c Clause) Predicates() []Predicate {
	return append([]Predicate(nil), c.preds...)
}

// Contains reports whether a predicate with the same text is in the clause.
func (c Clause) Contains(p Predicate) bool {
	for _, q := range c.preds {
		if q.text == p.text {
			return true
		}
	}
	return false
}

// Accepts reports whether every predicate holds on w.
func (c Clause) Accepts(w rule.Window) bool {
	for _, p := range c.preds {
		if !p.Holds(w) {
			return false
		}
	}
	return true
}

// Holding keeps the predicates that hold on w.
func (c Clause) Holding(w rule.Window) Clause {
	return c.filter(func(p Predicate) bool { return p.Holds(w) })
}

// Failing keeps the predicates that do not hold on w.
func (c Clause) Failing(w rule.Window) Clause {
	return c.filter(func(p Predicate) bool { return !p.Holds(w) })
}

// With appends predicates not already present.
func (c Clause) With(ps ...Predicate) Clause {
	return NewClause(append(c.Predicates(), ps...)...)
}

func (c Clause) filter(keep func(Predicate) bool) Clause {
	var out []Predicate
	for _, p := range c.preds {
		if keep(p) {
			out = append(out, p)
		}
	}
	return Clause{preds: out}
}

// Node folds the clause into and(and(p1, p2), p3)...; an empty clause is True.
func (c Clause) Node() rule.Node {
	nodes := make([]rule.Node, len(c.preds))
	for i, p := range c.preds {
		nodes[i] = p.node
	}
	return rule.And(nodes...)
}

func (c Clause) String() string { return c.Node().String() }

// key identifies a clause independently of predicate order.
func (c Clause) key() string {
	texts := make([]string, len(c.preds))
	for i, p := range c.preds {
		texts[i] = p.text
	}
	sort.Strings(texts)
	return strings.Join(texts, "\x00")
}
