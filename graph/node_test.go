package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeFuncImplementsNode(t *testing.T) {
	var n Node[int] = NodeFunc[int](func(ctx context.Context, s int) NodeResult[int] {
		return NodeResult[int]{Delta: s + 1, Route: Stop()}
	})

	result := n.Run(context.Background(), 41)
	assert.Equal(t, 42, result.Delta)
	assert.True(t, result.Route.Terminal)
}

func TestStopAndGoto(t *testing.T) {
	assert.True(t, Stop().Terminal)
	assert.Equal(t, "next", Goto("next").To)
	assert.False(t, Goto("next").Terminal)
}

func TestNodeErrorUnwrap(t *testing.T) {
	cause := errors.New("upstream failure")
	err := &NodeError{Message: "failed", Code: "BAD", NodeID: "classify", Cause: cause}

	assert.Equal(t, "node classify: failed", err.Error())
	assert.ErrorIs(t, err, cause)
}
