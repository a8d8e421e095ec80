package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema used by the message log.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createMessagesQuery := `
	CREATE TABLE IF NOT EXISTS inbound_messages (
		id BIGSERIAL PRIMARY KEY,
		sender TEXT NOT NULL,
		body TEXT NOT NULL,
		intent TEXT NOT NULL,
		outcome TEXT NOT NULL,
		received_at TIMESTAMPTZ NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_inbound_messages_received_at
	ON inbound_messages(received_at);
	`

	statements := []string{
		createMessagesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
