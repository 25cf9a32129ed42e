package observability

import (
	"context"

	"github.com/aretw0/formica/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine collectors.
type Metrics struct {
	Decisions  *prometheus.CounterVec
	Mutations  *prometheus.CounterVec
	Crossovers *prometheus.CounterVec
	Simplified prometheus.Counter
	TreeLevel  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formica_decisions_total",
				Help: "Actions visited while making decisions, by kind",
			},
			[]string{"kind"},
		),
		Mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formica_mutations_total",
				Help: "Actions re-rolled during cloning, by role",
			},
			[]string{"role"},
		),
		Crossovers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formica_crossovers_total",
				Help: "Crossovers performed, by replaced root branch",
			},
			[]string{"side"},
		),
		Simplified: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "formica_simplified_nodes_total",
			Help: "Nodes removed by simplification",
		}),
		TreeLevel: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "formica_tree_level",
			Help:    "Level of generated trees",
			Buckets: prometheus.LinearBuckets(0, 1, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Decisions, m.Mutations, m.Crossovers, m.Simplified, m.TreeLevel)
	}
	return m
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDecision: func(_ context.Context, e *domain.DecisionEvent) {
			m.Decisions.WithLabelValues(e.Action.Kind).Inc()
		},
		OnMutation: func(_ context.Context, e *domain.MutationEvent) {
			m.Mutations.WithLabelValues(string(e.To.Role)).Inc()
		},
		OnCrossover: func(_ context.Context, e *domain.CrossoverEvent) {
			m.Crossovers.WithLabelValues(e.Side).Inc()
		},
		OnSimplify: func(_ context.Context, e *domain.SimplifyEvent) {
			m.Simplified.Add(float64(e.Removed))
		},
		OnGenerate: func(_ context.Context, e *domain.GenerateEvent) {
			m.TreeLevel.Observe(float64(e.Level))
		},
	}
}
