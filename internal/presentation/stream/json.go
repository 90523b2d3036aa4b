// Package stream emits game events as JSON Lines for machine consumers.
package stream

import (
	"context"
	"encoding/json"
	"io"

	"github.com/aretw0/eleusis/pkg/domain"
)

// JSONWriter encodes every lifecycle event as one JSON line.
type JSONWriter struct {
	enc *json.Encoder
	err error
}

// NewJSONWriter creates a writer on w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{enc: json.NewEncoder(w)}
}

// Hooks returns lifecycle hooks that write each event.
func (j *JSONWriter) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn:             func(_ context.Context, e *domain.TurnEvent) { j.Encode(e) },
		OnHypothesisChange: func(_ context.Context, e *domain.HypothesisEvent) { j.Encode(e) },
		OnGameEnd:          func(_ context.Context, e *domain.GameEndEvent) { j.Encode(e) },
	}
}

// Encode writes v as a single line. After the first failure every call is
// a no-op; the error is kept for Err.
func (j *JSONWriter) Encode(v any) {
	if j.err != nil {
		return
	}
	j.err = j.enc.Encode(v)
}

// Err returns the first write error.
func (j *JSONWriter) Err() error { return j.err }
