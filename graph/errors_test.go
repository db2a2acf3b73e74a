package graph

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
)

func TestSentinelErrorsWrapCleanly(t *testing.T) {
	wrapped := errors.Wrap(ErrMaxStepsExceeded, "run-1")
	assert.ErrorIs(t, wrapped, ErrMaxStepsExceeded)

	wrapped = errors.Wrap(ErrUnknownNode, "node-1")
	assert.ErrorIs(t, wrapped, ErrUnknownNode)

	wrapped = errors.Wrap(ErrNoEntryPoint, "graph")
	assert.ErrorIs(t, wrapped, ErrNoEntryPoint)
}
