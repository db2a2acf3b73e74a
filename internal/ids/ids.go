// Package ids constructs the workflow, thread, and email-entry identifiers
// used throughout the orchestrator.
package ids

import (
	"time"

	"github.com/google/uuid"
)

// NewWorkflowID returns a monotonic, microsecond-precision workflow id of
// the form "workflow_YYYYMMDD_HHMMSS_ffffff".
func NewWorkflowID(now time.Time) string {
	return "workflow_" + now.Format("20060102_150405") + "_" + microseconds(now)
}

// NewThreadID returns a timestamped thread id of the form
// "thread_YYYYMMDD_HHMMSS_ffffff", used when an inbound email carries no
// thread id of its own.
func NewThreadID(now time.Time) string {
	return "thread_" + now.Format("20060102_150405") + "_" + microseconds(now)
}

// Direction tags an EmailEntry as inbound or outbound, matching the
// vocabulary used by NewEmailEntryID and the thread store.
type Direction string

const (
	// DirectionInbound marks an entry produced by the sender.
	DirectionInbound Direction = "inbound"
	// DirectionOutbound marks an entry produced by this system.
	DirectionOutbound Direction = "outbound"
)

// NewEmailEntryID returns a globally unique id for an EmailEntry. Outbound
// entries (the system's own replies) are prefixed "bot_" so they are
// recognizable in a thread dump; inbound entries use the bare uuid.
func NewEmailEntryID(direction Direction) string {
	id := uuid.NewString()
	if direction == DirectionOutbound {
		return "bot_" + id
	}
	return id
}

// microseconds renders the sub-second portion of t as a zero-padded
// 6-digit string, e.g. 000042.
func microseconds(t time.Time) string {
	n := t.Nanosecond() / 1000
	buf := [6]byte{'0', '0', '0', '0', '0', '0'}
	for i := 5; i >= 0 && n > 0; i-- {
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[:])
}
