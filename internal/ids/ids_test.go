package ids

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewWorkflowIDFormat(t *testing.T) {
	now := time.Date(2026, 7, 31, 9, 30, 5, 42000, time.UTC)
	id := NewWorkflowID(now)
	assert.Equal(t, "workflow_20260731_093005_000042", id)
}

func TestNewThreadIDFormat(t *testing.T) {
	now := time.Date(2026, 7, 31, 9, 30, 5, 0, time.UTC)
	id := NewThreadID(now)
	assert.True(t, strings.HasPrefix(id, "thread_20260731_093005_"))
}

func TestNewEmailEntryIDPrefixesByDirection(t *testing.T) {
	out := NewEmailEntryID(DirectionOutbound)
	in := NewEmailEntryID(DirectionInbound)

	assert.True(t, strings.HasPrefix(out, "bot_"))
	assert.False(t, strings.HasPrefix(in, "bot_"))
	assert.NotEqual(t, out, in)
}
