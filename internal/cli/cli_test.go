package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/eleusis/internal/bench"
	"github.com/aretw0/eleusis/internal/config"
	"github.com/aretw0/eleusis/internal/logging"
	"github.com/aretw0/eleusis/internal/testutils"
	"github.com/aretw0/eleusis/pkg/domain"
	"github.com/aretw0/eleusis/pkg/rule"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Game.Rule = "equal(color(current), R)"
	cfg.Game.Seeds = []string{"2H", "JD", "5H"}
	cfg.Game.Seed = 11
	return cfg
}

func TestRunParse(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunParse("equal( color(current),R )", false, &buf))
	assert.Equal(t, "equal(color(current), R)\nvalid triples: 66300 of 132600\ncards read: 1\n", buf.String())

	buf.Reset()
	require.NoError(t, RunParse("and(even(current), odd(previous2))", true, &buf))
	assert.Contains(t, buf.String(), "cards read: 3\n")
	assert.Contains(t, buf.String(), "graph TD")

	var pe *rule.ParseError
	assert.True(t, errors.As(RunParse("even(", false, &buf), &pe))
}

func TestRunPlay_Solo(t *testing.T) {
	cfg := testConfig()
	cfg.Game.TurnBudget = 8
	metricsFile := filepath.Join(t.TempDir(), "eleusis.prom")

	var buf bytes.Buffer
	res, err := RunPlay(context.Background(), cfg, logging.NewNop(), PlayOptions{
		Solo:        true,
		MetricsFile: metricsFile,
		Out:         &buf,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, res.Turns)
	assert.Equal(t, domain.EndTurnBudget, res.Reason)
	assert.Contains(t, buf.String(), "# Game report")

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `eleusis_games_total{reason="turn_budget"} 1`)
}

func TestRunPlay_Table(t *testing.T) {
	cfg := testConfig()
	cfg.Game.TurnBudget = 0
	cfg.Table.Rounds = 3
	cfg.Table.Adversaries = 2
	cfg.Table.GuessProbability = 0

	var buf bytes.Buffer
	res, err := RunPlay(context.Background(), cfg, logging.NewNop(), PlayOptions{Quiet: true, Out: &buf})
	require.NoError(t, err)
	assert.Equal(t, 9, res.Turns)
	assert.Equal(t, domain.EndRounds, res.Reason)
	assert.NotContains(t, buf.String(), "seed:")
}

func TestRunPlay_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := RunPlay(ctx, testConfig(), logging.NewNop(), PlayOptions{Quiet: true, Out: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.Equal(t, domain.EndStopped, res.Reason)
	assert.Zero(t, res.Turns)
}

func TestRunBench_JSON(t *testing.T) {
	cfg := testConfig()
	cfg.Bench.Games = 2
	cfg.Game.TurnBudget = 6
	rules := testutils.WriteFile(t, "rules.txt", "# colour\nequal(color(current), R)\n")

	var buf bytes.Buffer
	rep, err := RunBench(context.Background(), cfg, logging.NewNop(), BenchOptions{RulesFile: rules, JSON: true, Out: &buf})
	require.NoError(t, err)
	require.Len(t, rep.Rules, 1)

	var decoded bench.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "equal(color(current), R)", decoded.Rules[0].Rule)
	assert.Equal(t, 2, decoded.Rules[0].Games)
}

func TestRunBench_Markdown(t *testing.T) {
	cfg := testConfig()
	cfg.Bench.Games = 1
	cfg.Bench.Rules = []string{"even(current)"}
	cfg.Game.TurnBudget = 4

	var buf bytes.Buffer
	_, err := RunBench(context.Background(), cfg, logging.NewNop(), BenchOptions{Out: &buf})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "# Benchmark")
	assert.Contains(t, buf.String(), "`even(current)`")
}

func TestHandleExecutionError(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, handleExecutionError(&buf, os.Interrupt, context.Canceled))
	assert.Contains(t, buf.String(), "[CTRL+C]")
	assert.Contains(t, buf.String(), ">>> Interrupted.")

	boom := errors.New("boom")
	assert.Equal(t, boom, handleExecutionError(&buf, nil, boom))
	assert.NoError(t, handleExecutionError(&buf, nil, nil))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, config.LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	logger.Debug("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	_, err = NewLogger(&buf, config.LogConfig{Level: "loud", Format: "text"})
	assert.Error(t, err)
}

func TestRunPlay_JSON(t *testing.T) {
	cfg := testConfig()
	cfg.Game.TurnBudget = 3

	var buf bytes.Buffer
	res, err := RunPlay(context.Background(), cfg, logging.NewNop(), PlayOptions{Solo: true, JSON: true, Out: &buf})
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	turns := 0
	for _, l := range lines[:len(lines)-1] {
		var ev map[string]any
		require.NoError(t, json.Unmarshal(l, &ev))
		if ev["type"] == "turn" {
			turns++
		}
	}
	assert.Equal(t, 3, turns)

	var last map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &last))
	assert.Equal(t, res.GameID, last["game_id"])
	assert.Equal(t, "turn_budget", last["reason"])
}
