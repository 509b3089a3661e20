package contentd

import (
	"time"

	"go.uber.org/zap"

	"github.com/ansrdlabs/contentd/internal/cache"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	endpoint   string
	restURL    string
	timeout    time.Duration
	store      cache.Store
	cacheTTL   time.Duration
	redisAddrs []string
	redisPass  string
	pageSize   int
	logger     *zap.Logger
}

// WithEndpoint sets the CMS GraphQL endpoint. Leaving it unset puts the
// client in degradation mode: every content call yields empty results.
func WithEndpoint(url string) Option {
	return func(c *clientConfig) {
		c.endpoint = url
	}
}

// WithRESTFallback sets the legacy WordPress REST base URL, used for
// listings when no GraphQL endpoint is configured.
func WithRESTFallback(baseURL string) Option {
	return func(c *clientConfig) {
		c.restURL = baseURL
	}
}

// WithTimeout sets the per-request CMS timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// WithCache plugs in an explicit cache store. The caller keeps ownership;
// Close does not close it.
func WithCache(store cache.Store, ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.store = store
		c.cacheTTL = ttl
	}
}

// WithRedisCache backs the content cache with a shared Redis or Valkey
// instance.
func WithRedisCache(addrs []string, password string) Option {
	return func(c *clientConfig) {
		c.redisAddrs = addrs
		c.redisPass = password
	}
}

// WithCacheTTL overrides the default cache entry lifetime.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.cacheTTL = ttl
	}
}

// WithPageSize bounds how many items the search aggregator fetches per
// content kind.
func WithPageSize(n int) Option {
	return func(c *clientConfig) {
		c.pageSize = n
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
