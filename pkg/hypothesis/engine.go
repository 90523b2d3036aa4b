package hypothesis

import (
	"log/slog"
	"sort"

	"github.com/aretw0/eleusis/internal/logging"
	"github.com/aretw0/eleusis/pkg/dsl"
	"github.com/aretw0/eleusis/pkg/rule"
)

// Engine refines a hypothesis set from observed windows.
type Engine struct {
	set        Set
	simplifier Simplifier
	logger     *slog.Logger
	mutations  int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. Refinement steps log at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSimplifier replaces the default no-op simplification pass.
func WithSimplifier(s Simplifier) Option {
	return func(e *Engine) {
		if s != nil {
			e.simplifier = s
		}
	}
}

// WithSet starts the engine from an existing hypothesis set.
func WithSet(s Set) Option {
	return func(e *Engine) {
		e.set = NewSet(s.clauses...)
	}
}

// NewEngine creates an engine, by default with an empty hypothesis set.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		simplifier: NoSimplify,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Set returns the current hypothesis set.
func (e *Engine) Set() Set { return e.set }

// Guess returns the current hypothesis as a single rule tree.
func (e *Engine) Guess() rule.Node { return e.set.Node() }

// Mutations counts the calls that changed the hypothesis set.
func (e *Engine) Mutations() int { return e.mutations }

// Seed starts the hypothesis from the dealer's opening window.
func (e *Engine) Seed(w rule.Window) {
	e.set = NewSet(NewClause(candidatesFor(w)...))
	e.mutations++
	e.logger.Debug("hypothesis seeded", "window", w.String(), "clauses", e.set.Len(), "predicates", e.set.PredicateCount())
}

// Accept folds an accepted window into the hypothesis and reports whether
// the set changed. Afterwards the hypothesis accepts w.
func (e *Engine) Accept(w rule.Window) bool {
	if e.set.Accepts(w) {
		return false
	}

	clauses := e.set.Clauses()
	generalized := false
	for _, i := range bySize(clauses, true) {
		kept := clauses[i].Holding(w)
		if kept.IsEmpty() {
			continue
		}
		e.logger.Debug("generalizing clause", "window", w.String(), "clause", i, "before", clauses[i].Len(), "after", kept.Len())
		clauses[i] = kept
		generalized = true
		break
	}
	if !generalized {
		clauses = append(clauses, NewClause(candidatesFor(w)...))
		e.logger.Debug("adding clause", "window", w.String(), "predicates", clauses[len(clauses)-1].Len())
	}
	return e.commit(NewSet(clauses...))
}

// Reject folds a rejected window into the hypothesis and reports whether
// the set changed. history holds the accepted windows seen so far; the
// hypothesis rejects w afterwards and keeps accepting every history window
// it accepted before.
func (e *Engine) Reject(w rule.Window, history []rule.Window) bool {
	current := e.set.Clauses()
	for _, i := range bySize(current, false) {
		c := current[i]
		if !c.Accepts(w) {
			current[i] = c.Failing(w)
			continue
		}
		view := Set{clauses: current}
		current[i] = c.With(e.negations(view, i, w, history)...)
	}
	return e.commit(NewSet(current...))
}

// negations picks the predicates appended to clause i so it stops
// accepting w: the negated candidates of w that nothing else accepted so far
// relies on.
func (e *Engine) negations(s Set, i int, w rule.Window, history []rule.Window) []Predicate {
	clause := s.Clause(i)
	seen := map[string]struct{}{}
	var exclusive []rule.Window
	for _, h := range history {
		if s.acceptedBy(h, i) {
			continue
		}
		for _, p := range ForSequence(h) {
			seen[p.text] = struct{}{}
		}
		if clause.Accepts(h) {
			exclusive = append(exclusive, h)
		}
	}

	var out []Predicate
	for _, p := range ForSequence(w) {
		if _, ok := seen[p.text]; ok || clause.Contains(p) || holdsOnAny(p, exclusive) {
			continue
		}
		out = append(out, p.Negate())
	}
	if len(out) == 0 {
		out = append(out, NewPredicate(dsl.Exactly(w)).Negate())
	}
	e.logger.Debug("specializing clause", "window", w.String(), "clause", i, "negations", len(out))
	return out
}

// Simplify runs the configured simplifier and reports whether the set
// changed.
func (e *Engine) Simplify() bool {
	return e.commit(NewSet(e.simplifier(e.set).clauses...))
}

func (e *Engine) commit(next Set) bool {
	if next.String() == e.set.String() {
		return false
	}
	e.set = next
	e.mutations++
	e.logger.Debug("hypothesis updated", "clauses", next.Len(), "predicates", next.PredicateCount())
	return true
}

// candidatesFor returns ForSequence(w), falling back to the one-card
// predicates of the current card so the clause still accepts w.
func candidatesFor(w rule.Window) []Predicate {
	if ps := ForSequence(w); len(ps) > 0 {
		return ps
	}
	return OneCard(w.Current(), rule.SlotCurrent)
}

// bySize returns clause indices ordered by size, ties kept in index order.
func bySize(cs []Clause, descending bool) []int {
	idx := make([]int, len(cs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if descending {
			return cs[idx[a]].Len() > cs[idx[b]].Len()
		}
		return cs[idx[a]].Len() < cs[idx[b]].Len()
	})
	return idx
}

func holdsOnAny(p Predicate, ws []rule.Window) bool {
	for _, w := range ws {
		if p.Holds(w) {
			return true
		}
	}
	return false
}
