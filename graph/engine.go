// Package graph provides a small cooperative graph execution engine used to
// wire together the named processing steps of a workflow: register nodes,
// set an entry point, connect conditional edges between them, and run a
// single state value through the graph until a node terminates the run or
// the step budget is exhausted.
package graph

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/kestrelfreight/logiflow/graph/emit"
)

// Options configures an Engine. Prefer the With* functional options for
// construction; Options is exported so callers can build it directly when
// composing configuration from elsewhere.
type Options struct {
	// MaxSteps bounds the number of node executions per Run call. Zero means
	// unbounded, which is only safe when every node path provably reaches a
	// terminal route.
	MaxSteps int

	// Metrics, when set, receives per-node step and error observations.
	Metrics *PrometheusMetrics
}

// Engine executes a registered graph of Node[S] values, merging each node's
// Delta into accumulated state via Reducer and choosing the next node by
// either an explicit NodeResult.Route or, absent one, by evaluating the
// conditional edges registered with Connect.
type Engine[S any] struct {
	reducer Reducer[S]
	emitter emit.Emitter
	opts    Options

	nodes map[string]Node[S]
	order []string
	edges map[string][]Edge[S]
	entry string
}

// New constructs an Engine with the given reducer and emitter, applying any
// functional options. A nil emitter is replaced with emit.NewNullEmitter().
func New[S any](reducer Reducer[S], emitter emit.Emitter, opts ...Option) (*Engine[S], error) {
	if reducer == nil {
		return nil, errors.New("graph: reducer must not be nil")
	}
	if emitter == nil {
		emitter = emit.NewNullEmitter()
	}

	cfg := &engineConfig{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, errors.Wrap(err, "graph: applying option")
		}
	}

	return &Engine[S]{
		reducer: reducer,
		emitter: emitter,
		opts:    cfg.opts,
		nodes:   make(map[string]Node[S]),
		edges:   make(map[string][]Edge[S]),
	}, nil
}

// Add registers a node under id. Re-adding the same id replaces the node.
func (e *Engine[S]) Add(id string, node Node[S]) *Engine[S] {
	if _, exists := e.nodes[id]; !exists {
		e.order = append(e.order, id)
	}
	e.nodes[id] = node
	return e
}

// StartAt sets the entry node for Run.
func (e *Engine[S]) StartAt(id string) *Engine[S] {
	e.entry = id
	return e
}

// Nodes reports every node id registered via Add, in registration order.
func (e *Engine[S]) Nodes() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// ValidateManifest checks a caller-declared map of node id to its possible
// routing destinations (everywhere a node's own closure-based Route might
// send execution — see workflow.edgeManifest for this module's graph)
// against the registered node set and the configured entry point. It
// catches a typo'd destination or a node missing from the manifest at
// construction time instead of on the first live run that takes the
// affected branch.
//
// Terminal nodes are declared with a nil or empty destination slice.
func (e *Engine[S]) ValidateManifest(manifest map[string][]string) error {
	if e.entry == "" {
		return ErrNoEntryPoint
	}
	if _, ok := e.nodes[e.entry]; !ok {
		return errors.Wrapf(ErrUnknownNode, "entry point %q", e.entry)
	}

	for _, id := range e.order {
		if _, declared := manifest[id]; !declared {
			return errors.Wrapf(ErrUnknownNode, "node %q has no manifest entry", id)
		}
	}
	for from, destinations := range manifest {
		if _, ok := e.nodes[from]; !ok {
			return errors.Wrapf(ErrUnknownNode, "manifest source %q is not a registered node", from)
		}
		for _, to := range destinations {
			if _, ok := e.nodes[to]; !ok {
				return errors.Wrapf(ErrUnknownNode, "manifest destination %q (from %q) is not a registered node", to, from)
			}
		}
	}
	return nil
}

// Connect registers a conditional edge from one node to another. When is
// checked in registration order; the first edge whose predicate returns
// true (or whose predicate is nil) determines the next node when a node's
// NodeResult leaves Route zero-valued.
func (e *Engine[S]) Connect(from, to string, when Predicate[S]) *Engine[S] {
	e.edges[from] = append(e.edges[from], Edge[S]{From: from, To: to, When: when})
	return e
}

// Run drives state through the graph starting at the configured entry
// point, returning the final accumulated state. It stops when a node
// returns a terminal route, when no edge matches and no explicit route was
// given, or when MaxSteps is exceeded.
func (e *Engine[S]) Run(ctx context.Context, runID string, initial S) (S, error) {
	if e.entry == "" {
		return initial, ErrNoEntryPoint
	}
	if _, ok := e.nodes[e.entry]; !ok {
		return initial, errors.Wrapf(ErrUnknownNode, "entry point %q", e.entry)
	}

	state := initial
	current := e.entry
	steps := 0

	for {
		if e.opts.MaxSteps > 0 && steps >= e.opts.MaxSteps {
			return state, errors.Wrapf(ErrMaxStepsExceeded, "run %s stopped after %d steps", runID, steps)
		}
		if err := ctx.Err(); err != nil {
			return state, err
		}

		node, ok := e.nodes[current]
		if !ok {
			return state, errors.Wrapf(ErrUnknownNode, "node %q", current)
		}

		e.emitter.Emit(emit.Event{RunID: runID, Step: steps + 1, NodeID: current, Msg: "node.start"})
		result := node.Run(ctx, state)
		steps++

		if result.Err != nil {
			e.emitter.Emit(emit.Event{RunID: runID, Step: steps, NodeID: current, Msg: "node.error", Meta: map[string]interface{}{"error": result.Err.Error()}})
			if e.opts.Metrics != nil {
				e.opts.Metrics.ObserveNodeError(current)
			}
			return state, errors.Wrapf(result.Err, "node %q", current)
		}

		state = e.reducer(state, result.Delta)
		e.emitter.Emit(emit.Event{RunID: runID, Step: steps, NodeID: current, Msg: "node.done"})
		if e.opts.Metrics != nil {
			e.opts.Metrics.ObserveNodeStep(current)
		}

		if result.Route.Terminal {
			return state, nil
		}
		if result.Route.To != "" {
			current = result.Route.To
			continue
		}

		next, err := e.evaluateEdges(current, state)
		if err != nil {
			return state, err
		}
		current = next
	}
}

func (e *Engine[S]) evaluateEdges(from string, state S) (string, error) {
	edges, ok := e.edges[from]
	if !ok || len(edges) == 0 {
		return "", errors.Wrapf(ErrUnknownNode, "no outgoing edge from %q and node did not set an explicit route", from)
	}
	for _, edge := range edges {
		if edge.When == nil || edge.When(state) {
			return edge.To, nil
		}
	}
	return "", errors.Errorf("no matching edge from %q for current state", from)
}
