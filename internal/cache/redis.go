package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// Compile-time check: Redis implements Store.
var _ Store = (*Redis)(nil)

// RedisConfig holds connection parameters for a Redis/Valkey-backed store.
type RedisConfig struct {
	Addrs     []string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
}

// Redis backs the cache contract with a shared Redis or Valkey instance so
// that multiple contentd replicas reuse one warm cache. Expiry is delegated
// to the server (SET ... EX), which gives the same observable behavior as
// the in-process lazy eviction.
type Redis struct {
	client rueidis.Client
	prefix string
}

// NewRedis creates a Redis/Valkey store via rueidis.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Redis{client: client, prefix: cfg.KeyPrefix}, nil
}

// Get returns the cached value, or ErrKeyNotFound for missing/expired keys.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := r.client.B().Get().Key(r.prefix + key).Build()
	data, err := r.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return data, nil
}

// Set stores a value with a server-side TTL.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	cmd := r.client.B().Set().Key(r.prefix + key).Value(string(value)).Ex(ttl).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (r *Redis) Delete(ctx context.Context, key string) error {
	cmd := r.client.B().Del().Key(r.prefix + key).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// Clear removes every key under the store's prefix via a SCAN loop.
func (r *Redis) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		cmd := r.client.B().Scan().Cursor(cursor).Match(r.prefix + "*").Count(100).Build()
		res, err := r.client.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			return fmt.Errorf("cache scan: %w", err)
		}
		for _, key := range res.Elements {
			del := r.client.B().Del().Key(key).Build()
			if err := r.client.Do(ctx, del).Error(); err != nil {
				return fmt.Errorf("cache delete %s: %w", key, err)
			}
		}
		cursor = res.Cursor
		if cursor == 0 {
			return nil
		}
	}
}

// Ping checks connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	cmd := r.client.B().Ping().Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("cache ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (r *Redis) Close() {
	r.client.Close()
}
