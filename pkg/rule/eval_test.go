package rule_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/rule"
)

func TestHolds(t *testing.T) {
	tests := []struct {
		rule string
		w    rule.Window
		want bool
	}{
		{"equal(color(current), R)", rule.MustWindow("2C", "3C", "4H"), true},
		{"equal(color(current), R)", rule.MustWindow("2C", "3H", "4S"), false},
		{"if(is_royal(current), False)", rule.MustWindow("2C", "3C", "KH"), false},
		{"if(is_royal(current), False)", rule.MustWindow("2C", "3C", "9H"), true},
		{"equal(minus1(value(previous)), value(current))", rule.MustWindow("2C", "8D", "7S"), true},
		{"equal(minus1(value(previous)), value(current))", rule.MustWindow("2C", "8D", "9S"), false},
		{"equal(plus1(plus1(value(previous))), value(current))", rule.MustWindow("2C", "JD", "KS"), true},
		{"greater(value(current), value(previous))", rule.MustWindow("2C", "10D", "JS"), true},
		{"greater(suit(current), suit(previous))", rule.MustWindow("2C", "2D", "2S"), true},
		{"less(suit(current), suit(previous))", rule.MustWindow("2C", "2H", "2C"), true},
		{"less(suit(current), suit(previous))", rule.MustWindow("2C", "2H", "2S"), false},
		{"equal(previous2, AS)", rule.MustWindow("AS", "2H", "3H"), true},
		{"or(even(current), odd(current))", rule.MustWindow("AS", "2H", "3H"), true},
		{"and(even(previous), odd(current))", rule.MustWindow("AS", "2H", "3H"), true},
		{"not(equal(suit(previous), suit(current)))", rule.MustWindow("AS", "2H", "3H"), false},
	}
	for _, tt := range tests {
		t.Run(tt.rule+tt.w.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, rule.MustParse(tt.rule).Holds(tt.w))
		})
	}
}

func TestEvaluate_ShortContext(t *testing.T) {
	oneCard := rule.MustParse("equal(color(current), R)")
	ok, err := rule.Evaluate(oneCard, []card.Card{card.MustParse("3D")})
	require.NoError(t, err)
	assert.True(t, ok)

	twoCard := rule.MustParse("greater(value(current), value(previous))")
	_, err = rule.Evaluate(twoCard, []card.Card{card.MustParse("3D")})
	assert.True(t, errors.Is(err, rule.ErrShortContext))

	ok, err = rule.Evaluate(twoCard, card.MustParseAll("2C", "3D"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEvaluate_ShortCircuitSkipsMissingSlot(t *testing.T) {
	n := rule.MustParse("or(True, equal(previous2, AS))")
	ok, err := rule.Evaluate(n, card.MustParseAll("2C"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEvaluate_RejectsInvalidCard(t *testing.T) {
	_, err := rule.Evaluate(rule.True, []card.Card{card.Invalid})
	assert.True(t, errors.Is(err, card.ErrInvalidCard))
}

func TestNegate(t *testing.T) {
	p := rule.MustParse("even(current)")
	assert.Equal(t, "not(even(current))", rule.Negate(p).String())
	assert.Equal(t, p, rule.Negate(rule.Negate(p)))
}

func TestAndOrFold(t *testing.T) {
	a := rule.MustParse("even(current)")
	b := rule.MustParse("odd(previous)")
	c := rule.MustParse("equal(color(current), R)")

	assert.Equal(t, rule.True, rule.And())
	assert.Equal(t, rule.False, rule.Or())
	assert.Equal(t, a, rule.And(a))
	assert.Equal(t, "and(and(even(current), odd(previous)), equal(color(current), R))", rule.And(a, b, c).String())
	assert.Equal(t, "or(even(current), odd(previous))", rule.Or(a, b).String())
}

func TestParseWindow(t *testing.T) {
	w, err := rule.ParseWindow("10H", "2C", "4S")
	require.NoError(t, err)
	assert.Equal(t, rule.MustWindow("10H", "2C", "4S"), w)
	assert.Equal(t, "[10H 2C 4S]", w.String())

	_, err = rule.ParseWindow("10H", "2C")
	assert.Error(t, err)
	_, err = rule.ParseWindow("10H", "2C", "1S")
	assert.True(t, errors.Is(err, card.ErrInvalidCard))
}
