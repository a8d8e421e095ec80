package repositories

import (
	"context"
	"database/sql"
	"delivery-tracking-bot/internal/platform/obs"
	"delivery-tracking-bot/internal/ports"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Stored bodies are cut to this many bytes.
const maxLoggedBody = 1024

// Postgres-backed implementation of the MessageLog port.
type SQLMessageLog struct{ DB *sql.DB }

func NewSQLMessageLog(db *sql.DB) *SQLMessageLog {
	return &SQLMessageLog{DB: db}
}

// Record appends one processed message to inbound_messages.
func (s *SQLMessageLog) Record(ctx context.Context, e ports.MessageLogEntry) (err error) {
	defer obs.Time(ctx, "messagelog.Record")(&err)

	if s.DB == nil {
		return errors.New("sql message log: DB is nil")
	}
	if e.ReceivedAt.IsZero() {
		return errors.New("record message: received_at must be set")
	}

	query := `
	INSERT INTO inbound_messages (sender, body, intent, outcome, received_at)
	VALUES ($1, $2, $3, $4, $5);
	`
	_, err = s.DB.ExecContext(ctx, query,
		strings.TrimSpace(e.Sender),
		truncateUTF8(e.Body, maxLoggedBody),
		string(e.Intent),
		e.Outcome,
		e.ReceivedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("record message: insert: %w", err)
	}

	return nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
