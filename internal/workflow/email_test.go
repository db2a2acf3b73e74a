package workflow

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmailCoalescesAlternativeFieldNames(t *testing.T) {
	now := time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC)
	e := NormalizeEmail(map[string]string{
		"from_email": "jane@acme.com",
		"body_text":  "hello there",
	}, now)

	assert.Equal(t, "jane@acme.com", e.Sender)
	assert.Equal(t, "hello there", e.Content)
}

func TestNormalizeEmailSynthesizesThreadID(t *testing.T) {
	now := time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC)
	e := NormalizeEmail(map[string]string{"from": "a@b.com"}, now)

	assert.True(t, strings.HasPrefix(e.ThreadID, "thread_"))
}

func TestNormalizeEmailKeepsExplicitThreadID(t *testing.T) {
	now := time.Now()
	e := NormalizeEmail(map[string]string{"thread_id": "thread_existing"}, now)
	assert.Equal(t, "thread_existing", e.ThreadID)
}

func TestFirstNameFromDisplayName(t *testing.T) {
	e := Email{SenderName: "John Doe", Sender: "john.doe@techcorp.com"}
	assert.Equal(t, "John", e.FirstName())
}

func TestFirstNameFromLocalPart(t *testing.T) {
	e := Email{Sender: "john.doe@techcorp.com"}
	assert.Equal(t, "John", e.FirstName())
}

func TestFirstNameFallsBackToDefault(t *testing.T) {
	e := Email{Sender: "@@@"}
	assert.Equal(t, defaultCustomerName, e.FirstName())
}
