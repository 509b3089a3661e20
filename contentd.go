// Package contentd embeds the content aggregation service in-process: the
// same wiring as cmd/contentd without the HTTP transport. Go frontends and
// batch jobs use it to read the CMS through the cache and adapters.
package contentd

import (
	"context"
	"fmt"
	"time"

	"github.com/ansrdlabs/contentd/internal/cache"
	"github.com/ansrdlabs/contentd/internal/cms/graphql"
	"github.com/ansrdlabs/contentd/internal/cms/rest"
	"github.com/ansrdlabs/contentd/internal/domain"
	"github.com/ansrdlabs/contentd/internal/repository/cached"
	contentrepo "github.com/ansrdlabs/contentd/internal/repository/content"
	cataloguc "github.com/ansrdlabs/contentd/internal/usecase/catalog"
	searchuc "github.com/ansrdlabs/contentd/internal/usecase/search"
	statsuc "github.com/ansrdlabs/contentd/internal/usecase/stats"
)

// Re-exported domain types: SDK callers should not import internal packages.
type (
	// Post is a normalized blog post.
	Post = domain.Post
	// Episode is a normalized podcast episode.
	Episode = domain.Episode
	// Research is a normalized research paper.
	Research = domain.Research
	// Theme is a content taxonomy term.
	Theme = domain.Theme
	// Stats holds content counts.
	Stats = domain.Stats
	// SearchResult is a kind-tagged search hit.
	SearchResult = domain.SearchResult
	// ContentType narrows a search to one content kind.
	ContentType = domain.ContentType
)

// Content type selectors.
const (
	TypeBlog     = domain.TypeBlog
	TypePodcast  = domain.TypePodcast
	TypeResearch = domain.TypeResearch
	TypeAll      = domain.TypeAll
)

// Client is the contentd SDK entry point.
type Client struct {
	store      cache.Store
	ownsStore  bool
	catalogSvc *cataloguc.Service
	searchSvc  *searchuc.Service
	statsSvc   *statsuc.Service
}

// New creates a contentd Client. Without options it runs unconfigured with
// an in-memory cache: calls succeed and yield empty results.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		timeout:  15 * time.Second,
		cacheTTL: cache.DefaultTTL,
	}
	for _, o := range opts {
		o(cfg)
	}

	store, ownsStore, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	return wireClient(store, ownsStore, cfg), nil
}

func createStore(cfg *clientConfig) (cache.Store, bool, error) {
	if cfg.store != nil {
		return cfg.store, false, nil
	}
	if len(cfg.redisAddrs) > 0 {
		s, err := cache.NewRedis(cache.RedisConfig{
			Addrs:    cfg.redisAddrs,
			Password: cfg.redisPass,
		})
		if err != nil {
			return nil, false, fmt.Errorf("contentd: create redis cache: %w", err)
		}
		return s, true, nil
	}
	return cache.NewMemory(), true, nil
}

func wireClient(store cache.Store, ownsStore bool, cfg *clientConfig) *Client {
	gqlClient := graphql.NewClient(graphql.Config{
		Endpoint: cfg.endpoint,
		Timeout:  cfg.timeout,
		Logger:   cfg.logger,
	})
	restClient := rest.NewClient(rest.Config{
		BaseURL: cfg.restURL,
		Timeout: cfg.timeout,
		Logger:  cfg.logger,
	})

	querier := cached.New(gqlClient, store, cfg.cacheTTL, nil, cfg.logger)
	repo := contentrepo.New(querier)

	searchSvc := searchuc.New(repo, cfg.logger)
	if cfg.pageSize > 0 {
		searchSvc = searchSvc.WithPageSize(cfg.pageSize)
	}

	return &Client{
		store:      store,
		ownsStore:  ownsStore,
		catalogSvc: cataloguc.New(repo, restClient, cfg.logger),
		searchSvc:  searchSvc,
		statsSvc:   statsuc.New(repo, cfg.logger),
	}
}

// Close releases resources owned by the client. A store passed in via
// WithCache is left open.
func (c *Client) Close() {
	if c.ownsStore && c.store != nil {
		c.store.Close()
	}
}

// SearchAllContent searches the selected content kinds. It never returns
// an error: failures degrade to fewer (or no) results.
func (c *Client) SearchAllContent(ctx context.Context, query string, contentType ContentType) []SearchResult {
	return c.searchSvc.SearchAll(ctx, query, contentType)
}

// Posts lists normalized blog posts.
func (c *Client) Posts(ctx context.Context, limit int) ([]Post, error) {
	return c.catalogSvc.Posts(ctx, limit)
}

// Post resolves one post by node ID or slug.
func (c *Client) Post(ctx context.Context, idOrSlug string) (Post, error) {
	return c.catalogSvc.Post(ctx, idOrSlug)
}

// Episodes lists normalized podcast episodes.
func (c *Client) Episodes(ctx context.Context, limit int) ([]Episode, error) {
	return c.catalogSvc.Episodes(ctx, limit)
}

// Episode resolves one episode by node ID or slug.
func (c *Client) Episode(ctx context.Context, idOrSlug string) (Episode, error) {
	return c.catalogSvc.Episode(ctx, idOrSlug)
}

// Research lists normalized research papers.
func (c *Client) Research(ctx context.Context, limit int) ([]Research, error) {
	return c.catalogSvc.Research(ctx, limit)
}

// ResearchItem resolves one research paper by node ID or slug.
func (c *Client) ResearchItem(ctx context.Context, idOrSlug string) (Research, error) {
	return c.catalogSvc.ResearchItem(ctx, idOrSlug)
}

// Themes lists the content taxonomy terms.
func (c *Client) Themes(ctx context.Context) ([]Theme, error) {
	return c.catalogSvc.Themes(ctx)
}

// Stats returns content counts. Failed counts degrade to zero.
func (c *Client) Stats(ctx context.Context) Stats {
	return c.statsSvc.Counts(ctx)
}
