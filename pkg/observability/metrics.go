package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

// Metrics holds the collectors fed by the engine hooks. Each Metrics owns
// its registry, so several can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	Steps    *prometheus.CounterVec
	Resolved *prometheus.CounterVec
	Finished *prometheus.CounterVec
	Errors   *prometheus.CounterVec
	Verdicts *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minimaxviz_steps_total",
				Help: "Total number of micro-steps taken",
			},
			[]string{"algorithm"},
		),
		Resolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minimaxviz_nodes_resolved_total",
				Help: "Total number of nodes that received their final score",
			},
			[]string{"algorithm"},
		),
		Finished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minimaxviz_traversals_finished_total",
				Help: "Total number of traversals run to completion",
			},
			[]string{"algorithm"},
		),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minimaxviz_step_errors_total",
				Help: "Total number of failed micro-steps",
			},
			[]string{"algorithm"},
		),
		Verdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minimaxviz_verdicts_total",
				Help: "Resolved nodes by verdict",
			},
			[]string{"verdict"},
		),
	}
	m.Registry.MustRegister(m.Steps, m.Resolved, m.Finished, m.Errors, m.Verdicts)
	return m
}

// TrackSessions exposes count as the live sessions gauge.
func (m *Metrics) TrackSessions(count func() int) {
	m.Registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "minimaxviz_sessions",
			Help: "Number of live traversal sessions",
		},
		func() float64 { return float64(count()) },
	))
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			m.Steps.WithLabelValues(string(e.Algorithm)).Inc()
		},
		OnNodeResolved: func(_ context.Context, e *domain.NodeEvent) {
			m.Resolved.WithLabelValues(string(e.Algorithm)).Inc()
			m.Verdicts.WithLabelValues(e.Verdict).Inc()
		},
		OnFinish: func(_ context.Context, e *domain.StepEvent) {
			m.Finished.WithLabelValues(string(e.Algorithm)).Inc()
		},
		OnError: func(_ context.Context, e *domain.ErrorEvent) {
			m.Errors.WithLabelValues(string(e.Algorithm)).Inc()
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
