package ports

import (
	"context"
	"delivery-tracking-bot/internal/domain"
	"errors"
)

// ErrSnapshotUnavailable signals that no driver position is known right now.
var ErrSnapshotUnavailable = errors.New("driver snapshot unavailable")

// Contract for reading the current driver snapshot for a message sender.
//
// A nil snapshot, a snapshot without coordinates, ErrSnapshotUnavailable and a
// context deadline all mean the same thing to callers: the driver is unavailable.
type LocationProvider interface {
	FetchSnapshot(ctx context.Context, senderID string) (*domain.DriverSnapshot, error)
}
