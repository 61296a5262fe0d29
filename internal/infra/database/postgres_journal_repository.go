// internal/infra/database/postgres_journal_repository.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"homework_status_bot/internal/domain/notification"

	"github.com/lib/pq"
)

const createJournalTable = `CREATE TABLE IF NOT EXISTS sent_notifications (
    id         BIGSERIAL PRIMARY KEY,
    chat_id    BIGINT      NOT NULL,
    kind       VARCHAR(32) NOT NULL,
    text       TEXT        NOT NULL,
    cycle_id   TEXT        NOT NULL,
    cursor     BIGINT      NOT NULL,
    sent_at    TIMESTAMPTZ NOT NULL
)`

// PostgresJournalRepository stores delivered notifications in the
// 'sent_notifications' table. Nothing reads it back on startup.
type PostgresJournalRepository struct {
	db *sql.DB
}

func NewPostgresJournalRepository(db *sql.DB) *PostgresJournalRepository {
	return &PostgresJournalRepository{db: db}
}

// EnsureSchema creates the journal table if it does not exist yet.
func (r *PostgresJournalRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createJournalTable); err != nil {
		return fmt.Errorf("error creating sent_notifications table: %w", err)
	}
	return nil
}

func (r *PostgresJournalRepository) Append(ctx context.Context, e *notification.Entry) error {
	query := `INSERT INTO sent_notifications (chat_id, kind, text, cycle_id, cursor, sent_at)
               VALUES ($1, $2, $3, $4, $5, $6)
               RETURNING id`

	err := r.db.QueryRowContext(ctx, query, e.ChatID, e.Kind, e.Text, e.CycleID, e.Cursor, e.SentAt).Scan(&e.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("error appending notification (pq code %s): %w", pqErr.Code, err)
		}
		return fmt.Errorf("error appending notification: %w", err)
	}
	return nil
}
