package location

import (
	"context"
	"delivery-tracking-bot/internal/adapters/cache"
	"delivery-tracking-bot/internal/domain"
	"delivery-tracking-bot/internal/platform/obs"
	"delivery-tracking-bot/internal/ports"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// CachedProvider serves recent snapshots from Redis and only asks the inner
// provider on a miss. Concurrent misses for the same sender share one fetch.
//
// Cache failures are logged and bypassed; only snapshots with coordinates are
// stored so an offline driver is re-checked on the next message.
type CachedProvider struct {
	inner ports.LocationProvider
	cache *cache.RedisSnapshotCache
	group singleflight.Group

	// FetchTimeout bounds a shared fetch, which outlives the caller that
	// started it; zero leaves it unbounded.
	FetchTimeout time.Duration
}

func NewCachedProvider(inner ports.LocationProvider, c *cache.RedisSnapshotCache) *CachedProvider {
	return &CachedProvider{inner: inner, cache: c, FetchTimeout: 10 * time.Second}
}

func (p *CachedProvider) FetchSnapshot(ctx context.Context, senderID string) (*domain.DriverSnapshot, error) {
	key := normalizeSender(senderID)
	if key == "" || p.cache == nil {
		return p.inner.FetchSnapshot(ctx, senderID)
	}

	snap, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		log.Printf("req_id=%s snapshot cache read failed: %v", obs.RequestID(ctx), err)
	}
	if ok && snap.HasLocation() {
		obs.ObserveSnapshot("cache_hit")
		return snap, nil
	}

	ch := p.group.DoChan(key, func() (any, error) {
		return p.fetchShared(ctx, key, senderID)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("cached snapshot %q: %w", key, res.Err)
		}
		fresh, _ := res.Val.(*domain.DriverSnapshot)
		return fresh, nil
	}
}

// fetchShared runs detached from the caller that started it so that callers
// joining the same flight are not failed by its cancellation.
func (p *CachedProvider) fetchShared(ctx context.Context, key, senderID string) (*domain.DriverSnapshot, error) {
	ctx = context.WithoutCancel(ctx)
	if p.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.FetchTimeout)
		defer cancel()
	}

	fresh, err := p.inner.FetchSnapshot(ctx, senderID)
	if err != nil {
		return nil, err
	}

	if fresh.HasLocation() {
		if err := p.cache.Put(ctx, key, fresh); err != nil {
			log.Printf("req_id=%s snapshot cache write failed: %v", obs.RequestID(ctx), err)
		}
	}
	return fresh, nil
}

func normalizeSender(senderID string) string {
	return strings.TrimSpace(domain.InboundMessage{SenderID: senderID}.Sender())
}
