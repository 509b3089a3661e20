package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/ansrdlabs/contentd/internal/domain"
)

// --- Mocks ---

// mockQuerier answers every query with a fixed JSON payload, optionally
// paired with an error.
type mockQuerier struct {
	payload    string
	err        error
	configured bool
	lastOp     string
	lastVars   map[string]any
}

func (m *mockQuerier) Configured() bool { return m.configured }

func (m *mockQuerier) Query(_ context.Context, operation, _ string, variables map[string]any, out any) error {
	m.lastOp = operation
	m.lastVars = variables
	if m.payload != "" {
		if err := json.Unmarshal([]byte(m.payload), out); err != nil {
			return fmt.Errorf("mock payload: %w", err)
		}
	}
	return m.err
}

func themePayload(groups string) string {
	return `{"contentThemes":{"nodes":[` + groups + `]}}`
}

// --- Tests ---

func TestAllPosts_DeduplicatesAcrossThemeGroups(t *testing.T) {
	q := &mockQuerier{configured: true, payload: themePayload(`
		{"id":"t1","name":"Agents","slug":"agents",
		 "posts":{"nodes":[{"id":"p1","slug":"one"},{"id":"p2","slug":"two"}]}},
		{"id":"t2","name":"Safety","slug":"safety",
		 "posts":{"nodes":[{"id":"p2","slug":"two"},{"id":"p3","slug":"three"}]}}`)}
	repo := New(q)

	posts, err := repo.AllPosts(context.Background(), FetchParams{})
	if err != nil {
		t.Fatalf("AllPosts: %v", err)
	}

	if len(posts) != 3 {
		t.Fatalf("len = %d, want 3 after de-duplication", len(posts))
	}
	// First occurrence wins; order is preserved.
	for i, want := range []string{"p1", "p2", "p3"} {
		if posts[i].ID != want {
			t.Errorf("posts[%d].ID = %q, want %q", i, posts[i].ID, want)
		}
	}
}

func TestContentByTheme_ToleratesPartialResponse(t *testing.T) {
	q := &mockQuerier{
		configured: true,
		payload:    themePayload(`{"id":"t1","name":"Agents","slug":"agents"}`),
		err:        fmt.Errorf("%w: unknown field", domain.ErrPartialResponse),
	}
	repo := New(q)

	groups, err := repo.ContentByTheme(context.Background(), FetchParams{})
	if err != nil {
		t.Fatalf("partial response should be tolerated, got %v", err)
	}
	if len(groups) != 1 {
		t.Errorf("len = %d, want 1", len(groups))
	}
}

func TestContentByTheme_PropagatesHardErrors(t *testing.T) {
	q := &mockQuerier{configured: true, err: domain.ErrUnavailable}
	repo := New(q)

	_, err := repo.ContentByTheme(context.Background(), FetchParams{})
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestFetchParams_Variables(t *testing.T) {
	q := &mockQuerier{configured: true, payload: themePayload("")}
	repo := New(q)

	_, _ = repo.ContentByTheme(context.Background(), FetchParams{
		Slugs:  []string{"agents"},
		Search: "failure",
		First:  25,
		After:  "cursor1",
	})

	vars := q.lastVars
	if vars["first"] != 25 {
		t.Errorf("first = %v, want 25", vars["first"])
	}
	if vars["search"] != "failure" {
		t.Errorf("search = %v", vars["search"])
	}
	if vars["after"] != "cursor1" {
		t.Errorf("after = %v", vars["after"])
	}

	// Defaults: zero values are omitted, page size falls back.
	_, _ = repo.ContentByTheme(context.Background(), FetchParams{})
	vars = q.lastVars
	if vars["first"] != defaultPageSize {
		t.Errorf("default first = %v, want %d", vars["first"], defaultPageSize)
	}
	if _, ok := vars["search"]; ok {
		t.Error("empty search must be omitted")
	}
	if _, ok := vars["slug"]; ok {
		t.Error("empty slugs must be omitted")
	}
}

func TestPostByIdentifier_NotFound(t *testing.T) {
	q := &mockQuerier{configured: true, payload: `{"post":null}`}
	repo := New(q)

	_, err := repo.PostByIdentifier(context.Background(), domain.Slug("missing"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPostByIdentifier_SendsIdType(t *testing.T) {
	q := &mockQuerier{configured: true, payload: `{"post":{"id":"p1","slug":"one"}}`}
	repo := New(q)

	post, err := repo.PostByIdentifier(context.Background(), domain.NodeID("cG9zdDo4MA=="))
	if err != nil {
		t.Fatalf("PostByIdentifier: %v", err)
	}
	if post.ID != "p1" {
		t.Errorf("post.ID = %q", post.ID)
	}
	if q.lastVars["idType"] != "ID" {
		t.Errorf("idType = %v, want ID", q.lastVars["idType"])
	}
	if q.lastVars["id"] != "cG9zdDo4MA==" {
		t.Errorf("id = %v", q.lastVars["id"])
	}
}

func TestEpisodeByIdentifier_NotFound(t *testing.T) {
	q := &mockQuerier{configured: true, payload: `{"episode":null}`}
	repo := New(q)

	_, err := repo.EpisodeByIdentifier(context.Background(), domain.Slug("missing"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestThemes(t *testing.T) {
	q := &mockQuerier{configured: true, payload: `{"contentThemes":{"nodes":[
		{"id":"t1","name":"Agents","slug":"agents","count":4}]}}`}
	repo := New(q)

	themes, err := repo.Themes(context.Background())
	if err != nil {
		t.Fatalf("Themes: %v", err)
	}
	if len(themes) != 1 || themes[0].Name != "Agents" || themes[0].Count != 4 {
		t.Errorf("themes = %+v", themes)
	}
}

func TestUnconfiguredPropagates(t *testing.T) {
	q := &mockQuerier{err: domain.ErrNotConfigured}
	repo := New(q)

	_, err := repo.AllPosts(context.Background(), FetchParams{})
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}
