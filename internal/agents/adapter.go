// Package agents implements the thin adapter shims the orchestrator calls
// out to for every external collaborator: the classifier, conversation
// state, thread analyzer, extractor, validator, port lookup, container
// standardizer, rate recommender, next-action, response generators,
// forwarder handling, and sales notification. Each adapter receives a
// plain request map and returns a plain response map, coercing transport
// or model errors into {"error": "..."} payloads instead of propagating
// them — the orchestrator's nodes never see a panic from this package.
package agents

import "context"

// Adapter is the single operation every collaborator exposes.
type Adapter interface {
	Process(ctx context.Context, request map[string]any) (map[string]any, error)
}

// AdapterFunc adapts a plain function to the Adapter interface.
type AdapterFunc func(ctx context.Context, request map[string]any) (map[string]any, error)

// Process implements Adapter.
func (f AdapterFunc) Process(ctx context.Context, request map[string]any) (map[string]any, error) {
	return f(ctx, request)
}

func str(request map[string]any, key string) string {
	v, _ := request[key].(string)
	return v
}
