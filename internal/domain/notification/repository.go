// internal/domain/notification/repository.go
package notification

import "context"

// Journal keeps an append-only audit trail of delivered notifications.
// It is write-only from the bot's point of view: poll state is never restored from it.
type Journal interface {
	Append(ctx context.Context, entry *Entry) error
}

// NoopJournal discards every entry. Used when no database is configured.
type NoopJournal struct{}

func (NoopJournal) Append(context.Context, *Entry) error { return nil }
