package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeUnconditionalWhenNil(t *testing.T) {
	e := Edge[int]{From: "a", To: "b"}
	assert.Nil(t, e.When)
}

func TestPredicateEvaluation(t *testing.T) {
	var p Predicate[int] = func(s int) bool { return s > 10 }
	assert.True(t, p(11))
	assert.False(t, p(10))
}
