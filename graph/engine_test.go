package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelfreight/logiflow/graph/emit"
)

type counterState struct {
	Count int
	Path  []string
}

func reduceCounter(prev, delta counterState) counterState {
	prev.Count += delta.Count
	prev.Path = append(prev.Path, delta.Path...)
	return prev
}

func recordingNode(id string, delta int, route Next) Node[counterState] {
	return NodeFunc[counterState](func(ctx context.Context, s counterState) NodeResult[counterState] {
		return NodeResult[counterState]{Delta: counterState{Count: delta, Path: []string{id}}, Route: route}
	})
}

func TestEngineRunFollowsExplicitRoute(t *testing.T) {
	e, err := New[counterState](reduceCounter, emit.NewNullEmitter())
	require.NoError(t, err)

	e.Add("a", recordingNode("a", 1, Goto("b")))
	e.Add("b", recordingNode("b", 2, Stop()))
	e.StartAt("a")

	final, err := e.Run(context.Background(), "run-1", counterState{})
	require.NoError(t, err)
	assert.Equal(t, 3, final.Count)
	assert.Equal(t, []string{"a", "b"}, final.Path)
}

func TestEngineRunFollowsConditionalEdges(t *testing.T) {
	e, err := New[counterState](reduceCounter, emit.NewNullEmitter())
	require.NoError(t, err)

	e.Add("a", recordingNode("a", 1, Next{}))
	e.Add("high", recordingNode("high", 10, Stop()))
	e.Add("low", recordingNode("low", 0, Stop()))
	e.StartAt("a")
	e.Connect("a", "high", func(s counterState) bool { return s.Count >= 1 })
	e.Connect("a", "low", nil)

	final, err := e.Run(context.Background(), "run-2", counterState{})
	require.NoError(t, err)
	assert.Equal(t, 11, final.Count)
	assert.Equal(t, []string{"a", "high"}, final.Path)
}

func TestEngineRunStopsOnMaxSteps(t *testing.T) {
	e, err := New[counterState](reduceCounter, emit.NewNullEmitter(), WithMaxSteps(2))
	require.NoError(t, err)

	e.Add("loop", recordingNode("loop", 1, Goto("loop")))
	e.StartAt("loop")

	_, err = e.Run(context.Background(), "run-3", counterState{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxStepsExceeded)
}

func TestEngineRunPropagatesNodeError(t *testing.T) {
	e, err := New[counterState](reduceCounter, emit.NewNullEmitter())
	require.NoError(t, err)

	boom := errors.New("boom")
	e.Add("a", NodeFunc[counterState](func(ctx context.Context, s counterState) NodeResult[counterState] {
		return NodeResult[counterState]{Err: boom}
	}))
	e.StartAt("a")

	_, err = e.Run(context.Background(), "run-4", counterState{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestEngineRunRequiresEntryPoint(t *testing.T) {
	e, err := New[counterState](reduceCounter, emit.NewNullEmitter())
	require.NoError(t, err)

	_, err = e.Run(context.Background(), "run-5", counterState{})
	assert.ErrorIs(t, err, ErrNoEntryPoint)
}

func TestEngineRunUnmatchedEdgeErrors(t *testing.T) {
	e, err := New[counterState](reduceCounter, emit.NewNullEmitter())
	require.NoError(t, err)

	e.Add("a", recordingNode("a", 1, Next{}))
	e.StartAt("a")

	_, err = e.Run(context.Background(), "run-6", counterState{})
	require.Error(t, err)
}

func TestEngineNodesReportsRegistrationOrder(t *testing.T) {
	e, err := New[counterState](reduceCounter, emit.NewNullEmitter())
	require.NoError(t, err)

	e.Add("a", recordingNode("a", 1, Stop()))
	e.Add("b", recordingNode("b", 1, Stop()))
	e.Add("a", recordingNode("a", 2, Stop())) // re-add: replaces, doesn't reorder

	assert.Equal(t, []string{"a", "b"}, e.Nodes())
}

func TestEngineValidateManifestAcceptsACompleteManifest(t *testing.T) {
	e, err := New[counterState](reduceCounter, emit.NewNullEmitter())
	require.NoError(t, err)

	e.Add("a", recordingNode("a", 1, Goto("b")))
	e.Add("b", recordingNode("b", 1, Stop()))
	e.StartAt("a")

	err = e.ValidateManifest(map[string][]string{
		"a": {"b"},
		"b": nil,
	})
	assert.NoError(t, err)
}

func TestEngineValidateManifestCatchesAnUnregisteredDestination(t *testing.T) {
	e, err := New[counterState](reduceCounter, emit.NewNullEmitter())
	require.NoError(t, err)

	e.Add("a", recordingNode("a", 1, Stop()))
	e.StartAt("a")

	err = e.ValidateManifest(map[string][]string{
		"a": {"typo-d-node-name"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestEngineValidateManifestCatchesANodeMissingFromTheManifest(t *testing.T) {
	e, err := New[counterState](reduceCounter, emit.NewNullEmitter())
	require.NoError(t, err)

	e.Add("a", recordingNode("a", 1, Goto("b")))
	e.Add("b", recordingNode("b", 1, Stop()))
	e.StartAt("a")

	err = e.ValidateManifest(map[string][]string{"a": {"b"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownNode)
}
