// Package graph provides the core graph execution engine.
package graph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics exposes the node-level counters the engine updates as a
// workflow run progresses. It is deliberately small: per-node step and
// error counts are enough to alert on a stuck or failing node, and the
// turn-level counter gives a workflow-wide view of throughput.
//
// Metrics exposed (namespaced "logiflow_"):
//   - node_steps_total{node_id}: nodes executed successfully.
//   - node_errors_total{node_id}: nodes that returned a non-nil Err.
//   - turns_total{outcome}: turns by outcome (completed, escalated,
//     error), incremented only through ObserveTurn; neither Engine.Run
//     nor the workflow package's ProcessEmail calls ObserveTurn.
type PrometheusMetrics struct {
	nodeSteps  *prometheus.CounterVec
	nodeErrors *prometheus.CounterVec
	turns      *prometheus.CounterVec
}

// NewPrometheusMetrics registers the counters on reg and returns a ready
// PrometheusMetrics. Pass the same *prometheus.Registry used to expose
// /metrics.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		nodeSteps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "logiflow",
			Name:      "node_steps_total",
			Help:      "Number of successful node executions, by node id.",
		}, []string{"node_id"}),
		nodeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "logiflow",
			Name:      "node_errors_total",
			Help:      "Number of node executions that returned an error, by node id.",
		}, []string{"node_id"}),
		turns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "logiflow",
			Name:      "turns_total",
			Help:      "Number of completed ProcessEmail turns, by outcome.",
		}, []string{"outcome"}),
	}
}

// ObserveNodeStep records a successful node execution.
func (m *PrometheusMetrics) ObserveNodeStep(nodeID string) {
	if m == nil {
		return
	}
	m.nodeSteps.WithLabelValues(nodeID).Inc()
}

// ObserveNodeError records a node execution that returned an error.
func (m *PrometheusMetrics) ObserveNodeError(nodeID string) {
	if m == nil {
		return
	}
	m.nodeErrors.WithLabelValues(nodeID).Inc()
}

// ObserveTurn records a completed ProcessEmail turn under outcome, one of
// "completed", "escalated", or "error".
func (m *PrometheusMetrics) ObserveTurn(outcome string) {
	if m == nil {
		return
	}
	m.turns.WithLabelValues(outcome).Inc()
}
