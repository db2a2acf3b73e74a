package emit

import "context"

// NullEmitter implements Emitter by discarding all events.
//
// Use cases:
//   - Production deployments where observability overhead is unwanted
//   - Testing scenarios where event capture is not needed
//   - Disabling event emission without changing code
//
// Example usage:
//
//	emitter := emit.NewNullEmitter()
//	engine, _ := graph.New(reducer, emitter)
type NullEmitter struct{}

// NewNullEmitter returns a NullEmitter that discards all events. Safe for
// concurrent use.
func NewNullEmitter() *NullEmitter {
	return &NullEmitter{}
}

// Emit discards the event.
func (n *NullEmitter) Emit(event Event) {}

// EmitBatch discards the events and always succeeds.
func (n *NullEmitter) EmitBatch(_ context.Context, _ []Event) error { return nil }

// Flush is a no-op.
func (n *NullEmitter) Flush(_ context.Context) error { return nil }
