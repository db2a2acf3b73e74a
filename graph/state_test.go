package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mergeState struct {
	Name  string
	Count int
}

func TestReducerReplaceThenAccumulate(t *testing.T) {
	var reduce Reducer[mergeState] = func(prev, delta mergeState) mergeState {
		if delta.Name != "" {
			prev.Name = delta.Name
		}
		prev.Count += delta.Count
		return prev
	}

	state := mergeState{}
	state = reduce(state, mergeState{Name: "alice", Count: 1})
	state = reduce(state, mergeState{Count: 2})

	assert.Equal(t, "alice", state.Name)
	assert.Equal(t, 3, state.Count)
}
