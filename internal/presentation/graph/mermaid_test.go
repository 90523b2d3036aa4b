package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/eleusis/internal/presentation/graph"
	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/hypothesis"
	"github.com/aretw0/eleusis/pkg/rule"
)

func TestRuleMermaid(t *testing.T) {
	tests := []struct {
		name     string
		rule     string
		contains []string
	}{
		{
			name:     "Connective Shape",
			rule:     "not(equal(color(current), R))",
			contains: []string{`n0(("not"))`, "n0 --> n1"},
		},
		{
			name:     "Attribute Shape",
			rule:     "equal(color(current), R)",
			contains: []string{`n1[["color"]]`, `n2[/"current"/]`, `n3[/"R"/]`},
		},
		{
			name:     "Comparison Shape",
			rule:     "greater(value(current), value(previous))",
			contains: []string{`n0["greater"]`, `n4[/"previous"/]`, "n3 --> n4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.RuleMermaid(rule.MustParse(tt.rule))
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestHypothesisMermaid(t *testing.T) {
	set := hypothesis.NewSet(
		hypothesis.NewClause(hypothesis.MustPredicate("equal(color(current), R)")),
		hypothesis.NewClause(
			hypothesis.MustPredicate("equal(suit(current), S)"),
			hypothesis.MustPredicate("even(current)"),
		),
	)
	w := rule.NewWindow(card.MustParse("2H"), card.MustParse("JD"), card.MustParse("5H"))

	got := graph.HypothesisMermaid(set, &graph.Overlay{Window: &w})
	assert.True(t, strings.HasPrefix(got, "graph TD\n"))
	assert.Contains(t, got, `c0{{"and #1"}}`)
	assert.Contains(t, got, `c1_p1["even(current)"]`)
	assert.Contains(t, got, "root --> c1")
	assert.Contains(t, got, "class c0 active;")
	assert.NotContains(t, got, "class c1 active;")

	plain := graph.HypothesisMermaid(set, nil)
	assert.NotContains(t, plain, "classDef")
}

func TestHypothesisMermaid_Empty(t *testing.T) {
	got := graph.HypothesisMermaid(hypothesis.NewSet(), nil)
	assert.Contains(t, got, `none["False"]`)
}
