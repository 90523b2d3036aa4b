package rule

import (
	"math/bits"

	"github.com/aretw0/eleusis/pkg/card"
)

// TripleCount is the size of the index space of TripleSet (52³).
const TripleCount = card.DeckSize * card.DeckSize * card.DeckSize

// TripleSet is a bitset over ordered card triples.
type TripleSet struct {
	words []uint64
}

func newTripleSet() *TripleSet {
	return &TripleSet{words: make([]uint64, (TripleCount+63)/64)}
}

func tripleIndex(w Window) int {
	return (card.Index(w[0])*card.DeckSize+card.Index(w[1]))*card.DeckSize + card.Index(w[2])
}

func (s *TripleSet) add(i int) {
	s.words[i/64] |= 1 << (uint(i) % 64)
}

// Contains reports whether w is in the set.
func (s *TripleSet) Contains(w Window) bool {
	i := tripleIndex(w)
	return s.words[i/64]&(1<<(uint(i)%64)) != 0
}

// Len returns the number of triples in the set.
func (s *TripleSet) Len() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Difference counts the triples in s that are not in o.
func (s *TripleSet) Difference(o *TripleSet) int {
	n := 0
	for i, w := range s.words {
		n += bits.OnesCount64(w &^ o.words[i])
	}
	return n
}

// SymmetricDifference counts the triples in exactly one of s and o.
func (s *TripleSet) SymmetricDifference(o *TripleSet) int {
	n := 0
	for i, w := range s.words {
		n += bits.OnesCount64(w ^ o.words[i])
	}
	return n
}

// forEachTriple calls fn for every ordered triple of distinct deck cards
// until fn returns false.
func forEachTriple(fn func(Window) bool) {
	deck := card.Deck()
	for _, a := range deck {
		for _, b := range deck {
			if b == a {
				continue
			}
			for _, c := range deck {
				if c == a || c == b {
					continue
				}
				if !fn(Window{a, b, c}) {
					return
				}
			}
		}
	}
}

// ValidTriples returns every ordered triple of distinct cards the rule
// accepts.
func ValidTriples(n Node) *TripleSet {
	s := newTripleSet()
	forEachTriple(func(w Window) bool {
		if n.Holds(w) {
			s.add(tripleIndex(w))
		}
		return true
	})
	return s
}

// Equivalent reports whether two rules accept exactly the same triples of
// distinct cards. It stops at the first disagreement.
func Equivalent(a, b Node) bool {
	same := true
	forEachTriple(func(w Window) bool {
		if a.Holds(w) != b.Holds(w) {
			same = false
		}
		return same
	})
	return same
}

// FirstDisagreement returns a triple on which the two rules differ.
func FirstDisagreement(a, b Node) (Window, bool) {
	var found Window
	ok := false
	forEachTriple(func(w Window) bool {
		if a.Holds(w) != b.Holds(w) {
			found, ok = w, true
			return false
		}
		return true
	})
	return found, ok
}
