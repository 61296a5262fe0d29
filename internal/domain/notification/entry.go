// internal/domain/notification/entry.go
package notification

import "time"

// Kind tells a status-change notification apart from a failure report.
type Kind string

const (
	KindStatusChange Kind = "STATUS_CHANGE"
	KindFailure      Kind = "FAILURE"
)

// Entry is one delivered message as recorded in the notification journal.
// Corresponds to the 'sent_notifications' table.
type Entry struct {
	ID      int64
	ChatID  int64
	Kind    Kind
	Text    string
	CycleID string // correlation id of the poll cycle that produced the message
	Cursor  int64  // poll cursor at the time the message was sent
	SentAt  time.Time
}
