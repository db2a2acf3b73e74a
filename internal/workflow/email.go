package workflow

import (
	"strings"
	"time"

	"github.com/kestrelfreight/logiflow/internal/ids"
)

// Email is the normalized inbound record the orchestrator operates on.
type Email struct {
	Sender      string
	SenderName  string
	Subject     string
	Content     string
	ThreadID    string
	ReceivedAt  time.Time
}

// NormalizeEmail coalesces alternative field names (body_text/body,
// from_email/from) to the canonical content/sender, and synthesizes a
// thread id from now when the input carries none.
//
// Grounded on process_email's normalization block in the original
// orchestrator (langgraph_workflow_orchestrator.py).
func NormalizeEmail(fields map[string]string, now time.Time) Email {
	sender := firstNonEmpty(fields["sender"], fields["from_email"], fields["from"])
	senderName := firstNonEmpty(fields["sender_name"], fields["from_name"])
	content := firstNonEmpty(fields["content"], fields["body_text"], fields["body"])
	threadID := fields["thread_id"]
	if threadID == "" {
		threadID = ids.NewThreadID(now)
	}

	return Email{
		Sender:     sender,
		SenderName: senderName,
		Subject:    fields["subject"],
		Content:    content,
		ThreadID:   threadID,
		ReceivedAt: now,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// defaultCustomerName is used when no reasonable token can be extracted
// from either the display name or the sender address.
const defaultCustomerName = "Valued Customer"

// FirstName derives a customer's first name from their display name when
// present, otherwise from the local part of their email address (splitting
// on '.' and capitalizing), falling back to defaultCustomerName.
//
// Grounded on utils/name_extractor.py.
func (e Email) FirstName() string {
	if name := firstToken(e.SenderName); name != "" {
		return capitalize(name)
	}

	local := e.Sender
	if at := strings.IndexByte(local, '@'); at >= 0 {
		local = local[:at]
	}
	if name := firstToken(strings.ReplaceAll(local, ".", " ")); name != "" {
		return capitalize(name)
	}

	return defaultCustomerName
}

func firstToken(s string) string {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
