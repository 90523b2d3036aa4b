package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTurn       EventType = "turn"
	EventHypothesis EventType = "hypothesis"
	EventGameEnd    EventType = "game_end"
)

// EndReason explains why a game reached StatusEnded.
type EndReason string

const (
	EndTurnBudget EndReason = "turn_budget"
	EndConstancy  EndReason = "constancy"
	EndRuleGuess  EndReason = "rule_guess"
	EndRounds     EndReason = "round_limit"
	EndStopped    EndReason = "stopped"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	GameID    string    `json:"game_id"`
}

// TurnEvent is fired after the dealer judged a play.
type TurnEvent struct {
	EventBase
	Outcome Outcome    `json:"outcome"`
	Diff    *BoardDiff `json:"diff,omitempty"`
}

// HypothesisEvent is fired when a learner's hypothesis changed.
type HypothesisEvent struct {
	EventBase
	Seat       string `json:"seat"`
	Clauses    int    `json:"clauses"`
	Predicates int    `json:"predicates"`
	Guess      string `json:"guess"`
}

// GameEndEvent is fired once, when the game ends.
type GameEndEvent struct {
	EventBase
	Reason EndReason `json:"reason"`
	Seat   string    `json:"seat,omitempty"`
	Turns  int       `json:"turns"`
}

// LifecycleHooks defines callbacks for game observability.
type LifecycleHooks struct {
	OnTurn             func(context.Context, *TurnEvent)
	OnHypothesisChange func(context.Context, *HypothesisEvent)
	OnGameEnd          func(context.Context, *GameEndEvent)
}

// Merge returns hooks that call h first and then o.
func (h LifecycleHooks) Merge(o LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTurn:             chain(h.OnTurn, o.OnTurn),
		OnHypothesisChange: chain(h.OnHypothesisChange, o.OnHypothesisChange),
		OnGameEnd:          chain(h.OnGameEnd, o.OnGameEnd),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
