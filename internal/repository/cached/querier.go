// Package cached decorates the CMS client with the content cache so that
// repeated identical queries inside the TTL window skip the CMS entirely.
package cached

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ansrdlabs/contentd/internal/cache"
	"github.com/ansrdlabs/contentd/internal/repository/content"
)

// Compile-time check: Querier implements the client contract.
var _ content.Querier = (*Querier)(nil)

const keyPrefix = "cms_query:"

// Querier caches full CMS query results in a key-value store. Partial
// responses and failures are never cached; a cache failure is logged and
// degrades to a plain CMS call.
type Querier struct {
	inner      content.Querier
	store      cache.Store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner content.Querier,
	store cache.Store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Querier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Querier{
		inner:      inner,
		store:      store,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Configured reports whether the inner client has an endpoint.
func (q *Querier) Configured() bool { return q.inner.Configured() }

// Query returns a cached result or delegates to the inner client.
func (q *Querier) Query(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	key := q.cacheKey(operation, query, variables)

	if q.getFromCache(ctx, key, out) {
		q.incCache("hit")
		return nil
	}
	q.incCache("miss")

	err := q.inner.Query(ctx, operation, query, variables, out)
	if err != nil {
		// Includes partial responses: only clean data is worth keeping.
		return err
	}

	q.putToCache(ctx, key, out)
	return nil
}

func (q *Querier) incCache(result string) {
	if q.cacheTotal != nil {
		q.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (q *Querier) cacheKey(operation, query string, variables map[string]any) string {
	h := sha256.New()
	h.Write([]byte(query))
	if vars, err := json.Marshal(variables); err == nil {
		h.Write(vars)
	}
	return keyPrefix + operation + ":" + hex.EncodeToString(h.Sum(nil))
}

func (q *Querier) getFromCache(ctx context.Context, key string, out any) bool {
	data, err := q.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrKeyNotFound) {
			q.logger.Warn("Failed to read content cache", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		q.logger.Warn("Failed to parse cached content", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (q *Querier) putToCache(ctx context.Context, key string, out any) {
	data, err := json.Marshal(out)
	if err != nil {
		q.logger.Warn("Failed to encode content for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := q.store.Set(ctx, key, data, q.ttl); err != nil {
		q.logger.Warn("Failed to write content cache", zap.String("key", key), zap.Error(err))
	}
}
