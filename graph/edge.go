// Package graph is the cooperative workflow engine: node registration,
// the step loop, and the Edge/Predicate plumbing conditional routing is
// built from.
package graph

// Edge connects two registered nodes. An unconditional edge (When == nil)
// always fires; a conditional edge only fires when When(state) is true.
// Most of this module's routing is done explicitly via a node's own
// Route instead (see workflow/router.go), so Edge sees light use — it
// exists for the rare independent conditional hop that isn't itself a
// multi-way dispatch.
type Edge[S any] struct {
	From string
	To   string
	When Predicate[S]
}

// Predicate is a pure decision function over state, used by a
// conditional Edge to decide whether to traverse.
type Predicate[S any] func(state S) bool
