package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ansrdlabs/contentd/internal/domain"
	"github.com/ansrdlabs/contentd/internal/metrics"
)

// Client executes GraphQL queries against the CMS endpoint. An empty
// endpoint is a supported degradation mode: every query fails fast with
// domain.ErrNotConfigured and no network call is made.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *zap.Logger
}

// Config holds the GraphQL client settings.
type Config struct {
	Endpoint string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// NewClient creates a CMS GraphQL client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint: cfg.Endpoint,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Configured reports whether an endpoint is set.
func (c *Client) Configured() bool { return c.endpoint != "" }

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type responseError struct {
	Message string `json:"message"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []responseError `json:"errors"`
}

// Query posts a GraphQL document and unmarshals the data payload into out.
//
// Error contract:
//   - no endpoint configured: domain.ErrNotConfigured, no network call;
//   - transport failure, non-2xx, malformed body, or errors with no data:
//     domain.ErrUnavailable;
//   - errors alongside data: out is populated and the returned error wraps
//     domain.ErrPartialResponse. Optional custom fields may legitimately be
//     missing from the schema, so callers treat this as usable data.
func (c *Client) Query(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	if !c.Configured() {
		return domain.ErrNotConfigured
	}

	start := time.Now()
	err := c.query(ctx, query, variables, out)
	c.observe(operation, err, time.Since(start))
	return err
}

func (c *Client) query(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshal graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Always fetch fresh; response caching is the content cache's job.
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cms request: %w: %w", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck // draining for connection reuse
		return fmt.Errorf("cms returned %d: %w", resp.StatusCode, domain.ErrUnavailable)
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode cms response: %w: %w", domain.ErrUnavailable, err)
	}

	hasData := len(parsed.Data) > 0 && string(parsed.Data) != "null"
	if !hasData {
		if len(parsed.Errors) > 0 {
			return fmt.Errorf("cms errors: %s: %w", joinErrors(parsed.Errors), domain.ErrUnavailable)
		}
		return fmt.Errorf("cms returned no data: %w", domain.ErrUnavailable)
	}

	if err := json.Unmarshal(parsed.Data, out); err != nil {
		return fmt.Errorf("unmarshal cms data: %w: %w", domain.ErrUnavailable, err)
	}

	if len(parsed.Errors) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrPartialResponse, joinErrors(parsed.Errors))
	}
	return nil
}

func (c *Client) observe(operation string, err error, elapsed time.Duration) {
	outcome := "success"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrPartialResponse):
		outcome = "partial"
	default:
		outcome = "error"
	}
	metrics.CMSRequestsTotal.WithLabelValues(operation, outcome).Inc()
	metrics.CMSRequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())

	if outcome == "partial" {
		c.logger.Warn("CMS returned partial data", zap.String("operation", operation), zap.Error(err))
	}
}

func joinErrors(errs []responseError) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}
