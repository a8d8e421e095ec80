package location

import (
	"context"
	"delivery-tracking-bot/internal/domain"
	"sync/atomic"
	"time"
)

// StaticProvider answers fixed snapshots per sender, falling back to Default.
// It is meant for tests and offline runs.
type StaticProvider struct {
	m       map[string]*domain.DriverSnapshot
	Default *domain.DriverSnapshot
	Err     error
	// Delay holds every fetch back, or until the context is done.
	Delay time.Duration

	calls atomic.Int64
}

func NewStaticProvider(def *domain.DriverSnapshot, bySender map[string]*domain.DriverSnapshot) *StaticProvider {
	m := make(map[string]*domain.DriverSnapshot, len(bySender))
	for k, v := range bySender {
		m[k] = v
	}
	return &StaticProvider{m: m, Default: def}
}

// Calls returns how many fetches reached the provider.
func (p *StaticProvider) Calls() int {
	return int(p.calls.Load())
}

func (p *StaticProvider) FetchSnapshot(ctx context.Context, senderID string) (*domain.DriverSnapshot, error) {
	p.calls.Add(1)

	if p.Delay > 0 {
		timer := time.NewTimer(p.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if p.Err != nil {
		return nil, p.Err
	}
	if s, ok := p.m[senderID]; ok {
		return s, nil
	}
	return p.Default, nil
}
