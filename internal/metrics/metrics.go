// Package metrics records game activity in a Prometheus registry. There is
// no HTTP endpoint; metrics are dumped in the text exposition format.
package metrics

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/eleusis/pkg/domain"
)

const namespace = "eleusis"

// Recorder owns its registry so several recorders can coexist in tests.
type Recorder struct {
	registry *prometheus.Registry

	plays      *prometheus.CounterVec
	mutations  *prometheus.CounterVec
	games      *prometheus.CounterVec
	clauses    *prometheus.GaugeVec
	predicates *prometheus.GaugeVec
	gameTurns  prometheus.Histogram
}

// New creates a Recorder with every collector registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		plays: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "plays_total",
				Help:      "Cards judged by the dealer.",
			},
			[]string{"accepted"},
		),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "hypothesis_changes_total",
				Help:      "Hypothesis updates per seat.",
			},
			[]string{"seat"},
		),
		games: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "games_total",
				Help:      "Finished games by end reason.",
			},
			[]string{"reason"},
		),
		clauses: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "hypothesis_clauses",
				Help:      "Clauses in the latest hypothesis of a seat.",
			},
			[]string{"seat"},
		),
		predicates: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "hypothesis_predicates",
				Help:      "Predicates in the latest hypothesis of a seat.",
			},
			[]string{"seat"},
		),
		gameTurns: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "game_turns",
			Help:      "Plays per finished game.",
			Buckets:   prometheus.LinearBuckets(5, 5, 10),
		}),
	}
	r.registry.MustRegister(r.plays, r.mutations, r.games, r.clauses, r.predicates, r.gameTurns)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Hooks returns lifecycle hooks that feed the collectors.
func (r *Recorder) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(_ context.Context, e *domain.TurnEvent) {
			r.plays.WithLabelValues(strconv.FormatBool(e.Outcome.Accepted)).Inc()
		},
		OnHypothesisChange: func(_ context.Context, e *domain.HypothesisEvent) {
			r.mutations.WithLabelValues(e.Seat).Inc()
			r.clauses.WithLabelValues(e.Seat).Set(float64(e.Clauses))
			r.predicates.WithLabelValues(e.Seat).Set(float64(e.Predicates))
		},
		OnGameEnd: func(_ context.Context, e *domain.GameEndEvent) {
			r.games.WithLabelValues(string(e.Reason)).Inc()
			r.gameTurns.Observe(float64(e.Turns))
		},
	}
}

// WriteTextfile writes every metric to path in the text format, replacing
// the file atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
