// Package cache provides the TTL key-value store used to avoid redundant
// CMS round trips. Two implementations share one contract: an in-process
// map with lazy eviction, and a Redis/Valkey store for multi-instance
// deployments where slightly-stale shared reads are preferred over
// per-process duplication.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound signals a miss: the key was never set, expired, or deleted.
var ErrKeyNotFound = errors.New("cache: key not found")

// DefaultTTL applies when Set is called with a non-positive TTL.
const DefaultTTL = 300 * time.Second

// Store is the cache contract. Expired entries behave exactly like missing
// ones: Get returns ErrKeyNotFound and the entry is gone on the next read.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
	Close()
}
