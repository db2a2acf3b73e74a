package graph

// Reducer folds a node's Delta into the engine's accumulated state after
// every step. Field-by-field semantics (replace-if-present, logical OR,
// first-non-nil-wins, ...) live in the reducer the caller supplies, not
// in the engine itself; see workflow.Reduce for this module's rules.
type Reducer[S any] func(prev S, delta S) S
