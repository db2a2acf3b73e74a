package emit

// Event is a single observability event emitted during workflow
// execution: a node starting or completing, a run-level error, and so
// on.
type Event struct {
	// RunID identifies the workflow execution that emitted this event.
	RunID string

	// Step is the 1-indexed step number, or zero for run-level events.
	Step int

	// NodeID identifies the emitting node, or empty for run-level events.
	NodeID string

	// Msg is a short human-readable description.
	Msg string

	// Meta carries event-specific structured data (e.g. "duration_ms",
	// "error").
	Meta map[string]interface{}
}
