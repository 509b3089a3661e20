// Package rest is the legacy WordPress REST fallback. It serves listing
// reads when the GraphQL endpoint is not configured but the old REST API
// still is. Single-item lookup and theme grouping stay GraphQL-only.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ansrdlabs/contentd/internal/domain"
)

const (
	defaultTimeout = 15 * time.Second
	defaultPerPage = 100

	pathPosts    = "posts"
	pathEpisodes = "episodes"
	pathResearch = "researches"
)

// Config holds REST client settings.
type Config struct {
	// BaseURL is the wp-json collection root, e.g. https://cms.example.com/wp-json/wp/v2.
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client reads WordPress REST collections.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a REST client. An empty base URL produces a client
// whose calls fail with domain.ErrNotConfigured.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  cfg.Logger,
	}
}

// Configured reports whether a base URL is set.
func (c *Client) Configured() bool { return c.baseURL != "" }

// Posts lists blog posts, newest first per WordPress default ordering.
func (c *Client) Posts(ctx context.Context, limit int) ([]domain.Post, error) {
	resources, err := c.list(ctx, pathPosts, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Post, len(resources))
	for i, res := range resources {
		out[i] = adaptPost(res)
	}
	return out, nil
}

// Episodes lists podcast episodes.
func (c *Client) Episodes(ctx context.Context, limit int) ([]domain.Episode, error) {
	resources, err := c.list(ctx, pathEpisodes, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Episode, len(resources))
	for i, res := range resources {
		out[i] = adaptEpisode(res)
	}
	return out, nil
}

// Research lists research papers.
func (c *Client) Research(ctx context.Context, limit int) ([]domain.Research, error) {
	resources, err := c.list(ctx, pathResearch, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Research, len(resources))
	for i, res := range resources {
		out[i] = adaptResearch(res)
	}
	return out, nil
}

func (c *Client) list(ctx context.Context, path string, limit int) ([]resource, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("%w: cms rest url is not set", domain.ErrNotConfigured)
	}
	if limit <= 0 || limit > defaultPerPage {
		limit = defaultPerPage
	}

	endpoint := fmt.Sprintf("%s/%s?per_page=%d&_embed=%s",
		c.baseURL, path, limit, url.QueryEscape("1"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create rest request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: rest request %s: %v", domain.ErrUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("CMS REST request failed",
			zap.String("path", path), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: rest %s responded %d", domain.ErrUnavailable, path, resp.StatusCode)
	}

	var resources []resource
	if err := json.NewDecoder(resp.Body).Decode(&resources); err != nil {
		return nil, fmt.Errorf("%w: decode rest %s response: %v", domain.ErrUnavailable, path, err)
	}
	return resources, nil
}

func restID(id int) string { return strconv.Itoa(id) }
