// Package emit provides pluggable observability sinks for graph
// execution: logging, buffering, OpenTelemetry tracing, or a no-op.
package emit

import "context"

// Emitter receives observability events from workflow execution.
// Implementations must be non-blocking and safe for concurrent use from
// multiple nodes, and must never panic.
type Emitter interface {
	// Emit sends a single event. Errors are logged internally, not
	// returned, so a failing backend never fails the workflow.
	Emit(event Event)

	// EmitBatch sends events in order, amortizing per-event overhead.
	// It returns an error only for catastrophic, non-per-event failures.
	EmitBatch(ctx context.Context, events []Event) error

	// Flush blocks until any buffered events are delivered or ctx expires.
	// It is safe to call more than once.
	Flush(ctx context.Context) error
}
