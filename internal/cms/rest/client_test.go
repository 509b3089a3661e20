package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ansrdlabs/contentd/internal/domain"
)

func TestPosts(t *testing.T) {
	var gotPath, gotQuery string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 10, "slug": "first", "title": {"rendered": "First"}, "acf": {}},
			{"id": 11, "slug": "second", "title": {"rendered": "Second"}, "acf": {}}
		]`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})

	posts, err := c.Posts(context.Background(), 5)
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}

	if gotPath != "/posts" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "per_page=5&_embed=1" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(posts) != 2 || posts[0].ID != "10" || posts[1].Slug != "second" {
		t.Errorf("posts = %+v", posts)
	}
}

func TestList_LimitClamped(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})

	if _, err := c.Episodes(context.Background(), 0); err != nil {
		t.Fatalf("Episodes: %v", err)
	}
	if gotQuery != "per_page=100&_embed=1" {
		t.Errorf("query = %q, want the default page size", gotQuery)
	}
}

func TestList_Unconfigured(t *testing.T) {
	c := NewClient(Config{})

	if c.Configured() {
		t.Error("client without a base url must not report configured")
	}

	_, err := c.Research(context.Background(), 10)
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestList_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})

	_, err := c.Posts(context.Background(), 10)
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestList_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<!doctype html><html>maintenance</html>`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})

	_, err := c.Posts(context.Background(), 10)
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}
