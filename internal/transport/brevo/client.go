// Package brevo is a minimal client for the Brevo contacts API, covering
// the single call the newsletter signup flow needs.
package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ansrdlabs/contentd/internal/domain"
)

const (
	defaultBaseURL = "https://api.brevo.com/v3"
	defaultTimeout = 10 * time.Second
)

// Config holds Brevo client settings.
type Config struct {
	APIKey  string
	ListID  int
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client talks to the Brevo contacts API.
type Client struct {
	apiKey  string
	listID  int
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a Brevo client. An empty API key produces a client
// whose calls fail with domain.ErrNotConfigured.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Client{
		apiKey:  cfg.APIKey,
		listID:  cfg.ListID,
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  cfg.Logger,
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool { return c.apiKey != "" }

type createContactRequest struct {
	Email         string `json:"email"`
	ListIDs       []int  `json:"listIds"`
	UpdateEnabled bool   `json:"updateEnabled"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Subscribe adds the address to the configured contact list. It returns
// true when the contact was newly created and false when the address was
// already on the list.
func (c *Client) Subscribe(ctx context.Context, email string) (created bool, err error) {
	if !c.Configured() {
		return false, fmt.Errorf("%w: brevo api key is not set", domain.ErrNotConfigured)
	}

	payload, err := json.Marshal(createContactRequest{
		Email:         email,
		ListIDs:       []int{c.listID},
		UpdateEnabled: false,
	})
	if err != nil {
		return false, fmt.Errorf("encode contact request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/contacts", bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("create contact request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: brevo request: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		return true, nil
	case http.StatusNoContent:
		// Brevo answers 204 when updateEnabled would be a no-op.
		return false, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr apiError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Code == "duplicate_parameter" {
		return false, domain.ErrAlreadySubscribed
	}

	c.logger.Warn("Brevo contact creation failed",
		zap.Int("status", resp.StatusCode), zap.String("code", apiErr.Code))
	return false, fmt.Errorf("%w: brevo responded %d", domain.ErrUnavailable, resp.StatusCode)
}
