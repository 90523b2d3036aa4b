package hypothesis

import (
	"github.com/aretw0/eleusis/pkg/rule"
)

// Set is a disjunction of clauses. The zero value is the empty set, whose
// rule accepts nothing.
type Set struct {
	clauses []Clause
}

// NewSet builds a set from clauses, dropping empty ones.
func NewSet(cs ...Clause) Set {
	return Set{clauses: pruneEmpty(cs)}
}

func (s Set) Len() int { return len(s.clauses) }

// Clauses returns a copy of the clause list.
func (s Set) Clauses() []Clause { return append([]Clause(nil), s.clauses...) }

func (s Set) Clause(i int) Clause { return s.clauses[i] }

// PredicateCount sums the clause sizes.
func (s Set) PredicateCount() int {
	n := 0
	for _, c := range s.clauses {
		n += c.Len()
	}
	return n
}

// Accepts reports whether some clause accepts w.
func (s Set) Accepts(w rule.Window) bool {
	return s.acceptedBy(w, -1)
}

// acceptedBy reports whether a clause other than skip accepts w.
func (s Set) acceptedBy(w rule.Window, skip int) bool {
	for i, c := range s.clauses {
		if i != skip && c.Accepts(w) {
			return true
		}
	}
	return false
}

// Node folds the set into or(or(c1, c2), c3)...; the empty set is False.
func (s Set) Node() rule.Node {
	nodes := make([]rule.Node, len(s.clauses))
	for i, c := range s.clauses {
		nodes[i] = c.Node()
	}
	return rule.Or(nodes...)
}

func (s Set) String() string { return s.Node().String() }

func pruneEmpty(cs []Clause) []Clause {
	var out []Clause
	for _, c := range cs {
		if !c.IsEmpty() {
			out = append(out, c)
		}
	}
	return out
}

// Simplifier rewrites a set into an equivalent (or acceptably close) one.
type Simplifier func(Set) Set

// NoSimplify returns the set unchanged.
func NoSimplify(s Set) Set { return s }

// Dedupe drops clauses that repeat an earlier clause's predicates,
// in any order.
func Dedupe(s Set) Set {
	seen := make(map[string]struct{}, len(s.clauses))
	var out []Clause
	for _, c := range s.clauses {
		k := c.key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	return Set{clauses: out}
}
