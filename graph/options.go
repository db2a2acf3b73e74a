// Package graph provides the core graph execution engine.
package graph

// Option is a functional option for configuring an Engine.
//
// Example:
//
//	engine, err := graph.New(reducer, emitter,
//	    graph.WithMaxSteps(100),
//	    graph.WithMetrics(metrics),
//	)
type Option func(*engineConfig) error

// engineConfig collects options before they are applied to an Engine.
type engineConfig struct {
	opts Options
}

// WithMaxSteps limits workflow execution to prevent infinite loops.
//
// Default: 0 (no limit). Workflow loops (A -> B -> A) are supported; set
// MaxSteps to bound them when a conditional exit might be misconfigured.
//
// When MaxSteps is exceeded, Run returns an error wrapping
// ErrMaxStepsExceeded.
func WithMaxSteps(n int) Option {
	return func(cfg *engineConfig) error {
		cfg.opts.MaxSteps = n
		return nil
	}
}

// WithMetrics enables Prometheus metrics collection for node execution.
func WithMetrics(metrics *PrometheusMetrics) Option {
	return func(cfg *engineConfig) error {
		cfg.opts.Metrics = metrics
		return nil
	}
}
