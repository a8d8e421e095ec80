package cache

import (
	"context"
	"delivery-tracking-bot/internal/domain"
	"delivery-tracking-bot/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

const snapshotKeyPrefix = "tracking:snapshot:"

// RedisSnapshotCache keeps recent driver snapshots per sender with a TTL.
// Sender keys are expected to be normalized by the caller.
type RedisSnapshotCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{Client: client, TTL: ttl}
}

// ConnectRedis parses a redis:// URL and waits until the server answers PING.
func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("connect redis: parse url: %w", err)
	}

	client := redis.NewClient(opt)

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 10 * time.Second

	ping := func() error {
		return client.Ping(ctx).Err()
	}
	if err := backoff.Retry(ping, backoff.WithContext(b, ctx)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: ping: %w", err)
	}

	log.Printf("redis connected addr=%s", opt.Addr)
	return client, nil
}

func snapshotKey(sender string) string {
	return snapshotKeyPrefix + sender
}

// Get returns the cached snapshot for sender. ok is false on a cache miss.
func (c *RedisSnapshotCache) Get(
	ctx context.Context,
	sender string,
) (_ *domain.DriverSnapshot, ok bool, err error) {
	defer obs.Time(ctx, "snapshot.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("snapshot cache: redis client is nil")
	}

	sender = strings.TrimSpace(sender)
	if sender == "" {
		return nil, false, errors.New("get snapshot cache: sender must not be empty")
	}

	raw, err := c.Client.Get(ctx, snapshotKey(sender)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get snapshot cache: %w", err)
	}

	var snap domain.DriverSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, false, fmt.Errorf("get snapshot cache: decode %q: %w", sender, err)
	}

	return &snap, true, nil
}

// Put stores snapshot for sender until the cache TTL expires.
func (c *RedisSnapshotCache) Put(ctx context.Context, sender string, snap *domain.DriverSnapshot) error {
	if c.Client == nil {
		return errors.New("snapshot cache: redis client is nil")
	}

	sender = strings.TrimSpace(sender)
	if sender == "" {
		return errors.New("put snapshot cache: sender must not be empty")
	}
	if snap == nil {
		return errors.New("put snapshot cache: snapshot is nil")
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("put snapshot cache: encode: %w", err)
	}

	if err := c.Client.Set(ctx, snapshotKey(sender), payload, c.TTL).Err(); err != nil {
		return fmt.Errorf("put snapshot cache sender=%q: %w", sender, err)
	}

	return nil
}
