package ports

import (
	"context"
	"delivery-tracking-bot/internal/domain"
	"time"
)

// One processed webhook message.
type MessageLogEntry struct {
	Sender     string
	Body       string
	Intent     domain.Intent
	Outcome    string
	ReceivedAt time.Time
}

// Port: a write-only sink for processed webhook messages.
type MessageLog interface {
	Record(ctx context.Context, entry MessageLogEntry) error
}
