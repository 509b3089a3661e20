package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ansrdlabs/contentd/internal/domain"
)

func TestClient_Unconfigured(t *testing.T) {
	c := NewClient(Config{})

	if c.Configured() {
		t.Error("Configured() should be false without an endpoint")
	}

	var out struct{}
	err := c.Query(context.Background(), "test", "{ x }", nil, &out)
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Errorf("Query = %v, want ErrNotConfigured", err)
	}
}

func TestClient_Success(t *testing.T) {
	var gotBody struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"data":{"value":"ok"}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})

	var out struct {
		Value string `json:"value"`
	}
	err := c.Query(context.Background(), "test", "query { value }", map[string]any{"first": 10}, &out)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if out.Value != "ok" {
		t.Errorf("out.Value = %q", out.Value)
	}
	if gotBody.Query != "query { value }" {
		t.Errorf("posted query = %q", gotBody.Query)
	}
	if gotBody.Variables["first"] != float64(10) {
		t.Errorf("posted variables = %v", gotBody.Variables)
	}
}

func TestClient_PartialResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"data": {"value": "present"},
			"errors": [{"message": "Cannot query field \"missing\""}]
		}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})

	var out struct {
		Value string `json:"value"`
	}
	err := c.Query(context.Background(), "test", "{ value missing }", nil, &out)
	if !errors.Is(err, domain.ErrPartialResponse) {
		t.Fatalf("Query = %v, want ErrPartialResponse", err)
	}
	if out.Value != "present" {
		t.Errorf("partial data must still be unmarshaled, got %q", out.Value)
	}
}

func TestClient_ErrorsWithoutData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": null, "errors": [{"message": "internal server error"}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})

	var out struct{}
	err := c.Query(context.Background(), "test", "{ x }", nil, &out)
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("Query = %v, want ErrUnavailable", err)
	}
	if errors.Is(err, domain.ErrPartialResponse) {
		t.Error("errors without data must not count as partial")
	}
}

func TestClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})

	var out struct{}
	err := c.Query(context.Background(), "test", "{ x }", nil, &out)
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("Query = %v, want ErrUnavailable", err)
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(Config{Endpoint: srv.URL})

	var out struct{}
	err := c.Query(context.Background(), "test", "{ x }", nil, &out)
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("Query = %v, want ErrUnavailable", err)
	}
}

func TestClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})

	var out struct{}
	err := c.Query(context.Background(), "test", "{ x }", nil, &out)
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("Query = %v, want ErrUnavailable", err)
	}
}
