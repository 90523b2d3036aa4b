package stream

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/domain"
)

func TestJSONWriter_Hooks(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf)
	h := w.Hooks()
	ctx := context.Background()

	h.OnTurn(ctx, &domain.TurnEvent{
		EventBase: domain.EventBase{Type: domain.EventTurn, GameID: "g"},
		Outcome:   domain.Outcome{Turn: 1, Seat: "scientist", Card: card.MustParse("10H"), Accepted: true, Status: domain.StatusPlaying},
		Diff:      &domain.BoardDiff{Accepted: card.MustParseAll("10H")},
	})
	h.OnHypothesisChange(ctx, &domain.HypothesisEvent{EventBase: domain.EventBase{Type: domain.EventHypothesis}, Seat: "scientist", Clauses: 1})
	h.OnGameEnd(ctx, &domain.GameEndEvent{EventBase: domain.EventBase{Type: domain.EventGameEnd}, Reason: domain.EndRounds, Turns: 1})
	require.NoError(t, w.Err())

	var lines []map[string]any
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		lines = append(lines, m)
	}
	require.Len(t, lines, 3)
	assert.Equal(t, "turn", lines[0]["type"])
	assert.Equal(t, "10H", lines[0]["outcome"].(map[string]any)["card"])
	assert.Equal(t, map[string]any{"accepted": []any{"10H"}}, lines[0]["diff"])
	assert.Equal(t, "hypothesis", lines[1]["type"])
	assert.Equal(t, "round_limit", lines[2]["reason"])
}

type failingWriter struct{ n int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.n++
	return 0, errors.New("disk full")
}

func TestJSONWriter_KeepsFirstError(t *testing.T) {
	fw := &failingWriter{}
	w := NewJSONWriter(fw)
	w.Encode(1)
	w.Encode(2)
	assert.EqualError(t, w.Err(), "disk full")
	assert.Equal(t, 1, fw.n)
}
