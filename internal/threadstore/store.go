package threadstore

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned by Load when no thread exists for the given id.
var ErrNotFound = errors.New("threadstore: thread not found")

// Store persists ThreadData. Implementations must preserve EmailEntry
// insertion order and must never reorder entries on read.
type Store interface {
	// Load returns the thread for threadID, or ErrNotFound if it has never
	// been saved.
	Load(ctx context.Context, threadID string) (ThreadData, error)

	// Save persists thread in full, overwriting any prior record for the
	// same thread id.
	Save(ctx context.Context, thread ThreadData) error

	// Append loads-or-creates the thread for threadID, appends entry, and
	// persists the result. It returns the thread as it stands after the
	// append.
	Append(ctx context.Context, threadID string, entry EmailEntry) (ThreadData, error)

	// UpdateCumulative loads the thread, merges newExtraction into its
	// cumulative extraction via Merge, and persists the result. It reports
	// false if the underlying persistence operation failed; the caller is
	// expected to degrade gracefully rather than treat this as fatal.
	UpdateCumulative(ctx context.Context, threadID string, newExtraction Extraction) bool
}

// newThread returns an empty ThreadData ready to receive its first entry.
func newThread(threadID string) ThreadData {
	return ThreadData{
		ThreadID:          threadID,
		ConversationState: ConversationStateNewThread,
		CustomerContext:   map[string]any{},
		ForwarderContext:  map[string]any{},
	}
}
