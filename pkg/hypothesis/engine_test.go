package hypothesis_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/dsl"
	"github.com/aretw0/eleusis/pkg/hypothesis"
	"github.com/aretw0/eleusis/pkg/rule"
)

const redCurrent = "equal(color(current), R)"

func requireNoEmptyClause(t *testing.T, s hypothesis.Set) {
	t.Helper()
	for i, c := range s.Clauses() {
		require.False(t, c.IsEmpty(), "clause %d is empty", i)
	}
}

// The seed is all red on purpose. One-card predicates only enter a clause
// when all three cards of a window share the attribute, so from a
// mixed-colour seed equal(color(current), R) is often never proposed and
// the guess need not become equivalent within a few observations.
func TestEngine_LearnsRedCurrent(t *testing.T) {
	hidden := rule.MustParse(redCurrent)
	e := hypothesis.NewEngine()

	seed := rule.MustWindow("2H", "JD", "5H")
	e.Seed(seed)
	require.Equal(t, 1, e.Set().Len())
	require.True(t, e.Set().Clause(0).Contains(hypothesis.MustPredicate(redCurrent)))

	history := []rule.Window{seed}
	steps := []struct {
		w        rule.Window
		accepted bool
	}{
		{rule.MustWindow("JD", "5H", "5S"), false},
		{rule.MustWindow("JD", "5H", "7D"), true},
		{rule.MustWindow("5H", "7D", "7H"), true},
	}
	for _, st := range steps {
		require.Equal(t, st.accepted, hidden.Holds(st.w))
		if st.accepted {
			e.Accept(st.w)
			history = append(history, st.w)
			assert.True(t, e.Guess().Holds(st.w))
		} else {
			e.Reject(st.w, history)
			assert.False(t, e.Guess().Holds(st.w))
		}
		assert.True(t, e.Set().Clause(0).Contains(hypothesis.MustPredicate(redCurrent)), "after %s", st.w)
		requireNoEmptyClause(t, e.Set())
	}

	assert.Equal(t, redCurrent, e.Guess().String())
	assert.True(t, rule.Equivalent(hidden, e.Guess()))
}

func TestEngine_RejectGrowsSingletonClause(t *testing.T) {
	e := hypothesis.NewEngine(hypothesis.WithSet(hypothesis.NewSet(
		hypothesis.NewClause(hypothesis.MustPredicate(redCurrent)),
	)))
	history := []rule.Window{
		rule.MustWindow("2H", "JD", "5H"),
		rule.MustWindow("JD", "5H", "7D"),
		rule.MustWindow("5H", "7D", "7H"),
	}
	w := rule.MustWindow("7D", "7H", "9H")
	require.True(t, e.Guess().Holds(w))

	changed := e.Reject(w, history)
	require.True(t, changed)

	c := e.Set().Clause(0)
	assert.Greater(t, c.Len(), 1)
	assert.True(t, c.Contains(hypothesis.MustPredicate(redCurrent)))
	assert.True(t, c.Contains(hypothesis.MustPredicate("not(and(equal(value(previous), 7), equal(value(current), 9)))")))
	assert.False(t, e.Guess().Holds(w))
	for _, h := range history {
		assert.True(t, e.Guess().Holds(h), "lost %s", h)
	}
}

func TestEngine_RejectFallsBackToExactWindow(t *testing.T) {
	// Every candidate of w also describes the only history window, so the
	// clause can only exclude w itself.
	w := rule.MustWindow("2H", "3H", "4H")
	e := hypothesis.NewEngine(hypothesis.WithSet(hypothesis.NewSet(
		hypothesis.NewClause(hypothesis.MustPredicate(redCurrent)),
	)))
	e.Reject(w, []rule.Window{w})

	c := e.Set().Clause(0)
	assert.True(t, c.Contains(hypothesis.NewPredicate(dsl.Exactly(w)).Negate()))
	assert.False(t, e.Guess().Holds(w))
	assert.True(t, e.Guess().Holds(rule.MustWindow("2H", "3H", "5H")))
}

func TestEngine_AcceptGeneralizesLargestClauseOnly(t *testing.T) {
	small := hypothesis.NewClause(hypothesis.MustPredicate("equal(suit(current), S)"))
	large := hypothesis.NewClause(
		hypothesis.MustPredicate("equal(suit(current), D)"),
		hypothesis.MustPredicate("equal(even(current), True)"),
	)
	e := hypothesis.NewEngine(hypothesis.WithSet(hypothesis.NewSet(small, large)))

	w := rule.MustWindow("2C", "3C", "4H")
	require.True(t, e.Accept(w))

	s := e.Set()
	require.Equal(t, 2, s.Len())
	assert.Equal(t, "equal(suit(current), S)", s.Clause(0).String())
	assert.Equal(t, "equal(even(current), True)", s.Clause(1).String())
	assert.True(t, e.Guess().Holds(w))
}

func TestEngine_AcceptAddsClauseWhenNothingHolds(t *testing.T) {
	e := hypothesis.NewEngine(hypothesis.WithSet(hypothesis.NewSet(
		hypothesis.NewClause(hypothesis.MustPredicate("equal(suit(current), S)")),
	)))
	w := rule.MustWindow("2C", "3C", "4H")
	require.True(t, e.Accept(w))
	require.Equal(t, 2, e.Set().Len())
	assert.True(t, e.Guess().Holds(w))

	assert.False(t, e.Accept(w), "already accepted")
	assert.Equal(t, 1, e.Mutations())
}

func TestEngine_SimplifyDedupe(t *testing.T) {
	a := hypothesis.MustPredicate("even(current)")
	b := hypothesis.MustPredicate("odd(previous)")
	e := hypothesis.NewEngine(
		hypothesis.WithSimplifier(hypothesis.Dedupe),
		hypothesis.WithSet(hypothesis.NewSet(hypothesis.NewClause(a, b), hypothesis.NewClause(b, a))),
	)
	assert.True(t, e.Simplify())
	assert.Equal(t, 1, e.Set().Len())
	assert.False(t, e.Simplify())

	noop := hypothesis.NewEngine(hypothesis.WithSet(hypothesis.NewSet(hypothesis.NewClause(a), hypothesis.NewClause(a))))
	assert.False(t, noop.Simplify())
	assert.Equal(t, 2, noop.Set().Len())
}

func TestEngine_EmptySetRejectsEverything(t *testing.T) {
	e := hypothesis.NewEngine()
	assert.Equal(t, rule.False, e.Guess())
	assert.False(t, e.Reject(rule.MustWindow("2C", "3C", "4H"), nil))
}

// Drives the engine with random games and checks the refinement
// post-conditions after every observation.
func TestEngine_RandomGamesKeepPostConditions(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for game := 0; game < 25; game++ {
		hidden := dsl.Random(rng)

		var seed rule.Window
		for {
			seed = rule.NewWindow(card.Random(rng), card.Random(rng), card.Random(rng))
			if hidden.Holds(seed) {
				break
			}
		}
		e := hypothesis.NewEngine(hypothesis.WithSimplifier(hypothesis.Dedupe))
		e.Seed(seed)
		history := []rule.Window{seed}
		accepted := seed

		for turn := 0; turn < 20; turn++ {
			w := rule.NewWindow(accepted.Previous(), accepted.Current(), card.Random(rng))
			before := make([]bool, len(history))
			for i, h := range history {
				before[i] = e.Guess().Holds(h)
			}

			if hidden.Holds(w) {
				e.Accept(w)
				require.True(t, e.Guess().Holds(w), "accept %s under %s", w, hidden)
				history = append(history, w)
				accepted = w
			} else {
				e.Reject(w, history)
				require.False(t, e.Guess().Holds(w), "reject %s under %s", w, hidden)
				for i, h := range history {
					if before[i] {
						require.True(t, e.Guess().Holds(h), "lost %s under %s", h, hidden)
					}
				}
			}
			e.Simplify()
			requireNoEmptyClause(t, e.Set())
		}
	}
}
