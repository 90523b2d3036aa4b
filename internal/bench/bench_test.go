package bench_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/eleusis/internal/bench"
	"github.com/aretw0/eleusis/pkg/domain"
	"github.com/aretw0/eleusis/pkg/rule"
)

func TestDefaultRulesParseCanonically(t *testing.T) {
	require.Len(t, bench.DefaultRules, 8)
	for _, text := range bench.DefaultRules {
		n, err := rule.Parse(text)
		require.NoError(t, err, text)
		assert.Equal(t, text, n.String())
	}
}

func TestRun(t *testing.T) {
	var ended int
	r := bench.New(bench.WithLifecycleHooks(domain.LifecycleHooks{
		OnGameEnd: func(context.Context, *domain.GameEndEvent) { ended++ },
	}))
	rep, err := r.Run(context.Background(), bench.Config{
		Games:      2,
		Rules:      []string{"equal(color(current), R)", "equal(is_royal(current), False)"},
		TurnBudget: 10,
		Seed:       1,
	})
	require.NoError(t, err)
	require.Len(t, rep.Rules, 2)
	assert.Equal(t, 4, ended)

	for _, rr := range rep.Rules {
		assert.Equal(t, 2, rr.Games)
		assert.InDelta(t, float64(rr.Successes)/2, rr.SuccessRate, 1e-9)
		assert.GreaterOrEqual(t, rr.FalseNegativeRate, 0.0)
		assert.LessOrEqual(t, rr.FalseNegativeRate, 1.0)
		assert.GreaterOrEqual(t, rr.FalsePositiveRate, 0.0)
		assert.NotEmpty(t, rr.LastGuess)
		// classic scoring with at most 10 plays: 0 when right, 15 when wrong
		assert.GreaterOrEqual(t, rr.MeanScore, 0.0)
		assert.LessOrEqual(t, rr.MeanScore, 15.0)
	}
}

func TestRun_Deterministic(t *testing.T) {
	cfg := bench.Config{Games: 1, Rules: []string{"greater(value(previous), value(current))"}, TurnBudget: 8, Seed: 42}
	a, err := bench.New().Run(context.Background(), cfg)
	require.NoError(t, err)
	b, err := bench.New().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRun_Errors(t *testing.T) {
	_, err := bench.New().Run(context.Background(), bench.Config{Games: 0})
	assert.Error(t, err)

	_, err = bench.New().Run(context.Background(), bench.Config{Games: 1, Rules: []string{"equal("}})
	var pe *rule.ParseError
	assert.ErrorAs(t, err, &pe)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bench.New().Run(ctx, bench.Config{Games: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	got, err := bench.LoadRules(write("rules.txt", "# comment\nequal(color(current), R)\n\neven(current)\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"equal(color(current), R)", "even(current)"}, got)

	got, err = bench.LoadRules(write("rules.yaml", "rules:\n  - even(current)\n  - odd(current)\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"even(current)", "odd(current)"}, got)

	got, err = bench.LoadRules(write("rules.json", `["even(current)"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"even(current)"}, got)

	_, err = bench.LoadRules(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
