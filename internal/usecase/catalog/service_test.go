package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/ansrdlabs/contentd/internal/cms/graphql"
	"github.com/ansrdlabs/contentd/internal/domain"
	"github.com/ansrdlabs/contentd/internal/repository/content"
)

// --- Mocks ---

type mockFetcher struct {
	posts    []graphql.PostNode
	episodes []graphql.EpisodeNode
	research []graphql.ResearchNode
	post     *graphql.PostNode
	themes   []graphql.ThemeInfo
	err      error

	lastIdentifier domain.Identifier
	lastFirst      int
}

func (m *mockFetcher) AllPosts(_ context.Context, p content.FetchParams) ([]graphql.PostNode, error) {
	m.lastFirst = p.First
	return m.posts, m.err
}

func (m *mockFetcher) AllEpisodes(_ context.Context, p content.FetchParams) ([]graphql.EpisodeNode, error) {
	m.lastFirst = p.First
	return m.episodes, m.err
}

func (m *mockFetcher) AllResearch(_ context.Context, p content.FetchParams) ([]graphql.ResearchNode, error) {
	m.lastFirst = p.First
	return m.research, m.err
}

func (m *mockFetcher) PostByIdentifier(_ context.Context, id domain.Identifier) (*graphql.PostNode, error) {
	m.lastIdentifier = id
	return m.post, m.err
}

func (m *mockFetcher) EpisodeByIdentifier(_ context.Context, id domain.Identifier) (*graphql.EpisodeNode, error) {
	m.lastIdentifier = id
	return nil, m.err
}

func (m *mockFetcher) ResearchByIdentifier(_ context.Context, id domain.Identifier) (*graphql.ResearchNode, error) {
	m.lastIdentifier = id
	return nil, m.err
}

func (m *mockFetcher) Themes(_ context.Context) ([]graphql.ThemeInfo, error) {
	return m.themes, m.err
}

type mockFallback struct {
	configured bool
	posts      []domain.Post
	err        error

	postsCalls int
}

func (m *mockFallback) Configured() bool { return m.configured }

func (m *mockFallback) Posts(_ context.Context, _ int) ([]domain.Post, error) {
	m.postsCalls++
	return m.posts, m.err
}

func (m *mockFallback) Episodes(_ context.Context, _ int) ([]domain.Episode, error) {
	return nil, m.err
}

func (m *mockFallback) Research(_ context.Context, _ int) ([]domain.Research, error) {
	return nil, m.err
}

// --- Tests ---

func TestPosts(t *testing.T) {
	f := &mockFetcher{posts: []graphql.PostNode{
		{ID: "p1", Slug: "one", Title: "One", Date: "2024-01-01"},
		{ID: "p2", Slug: "two", Title: "Two", Date: "2024-01-02"},
	}}
	svc := New(f, nil, nil)

	posts, err := svc.Posts(context.Background(), 25)
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}

	if len(posts) != 2 || posts[0].ID != "p1" || posts[1].Slug != "two" {
		t.Errorf("posts = %+v", posts)
	}
	if f.lastFirst != 25 {
		t.Errorf("first = %d, want the requested limit", f.lastFirst)
	}
}

func TestPosts_FallbackOnUnconfiguredGraphQL(t *testing.T) {
	f := &mockFetcher{err: domain.ErrNotConfigured}
	fb := &mockFallback{configured: true, posts: []domain.Post{{ID: "legacy-1"}}}
	svc := New(f, fb, nil)

	posts, err := svc.Posts(context.Background(), 10)
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}

	if fb.postsCalls != 1 {
		t.Errorf("fallback called %d times, want 1", fb.postsCalls)
	}
	if len(posts) != 1 || posts[0].ID != "legacy-1" {
		t.Errorf("posts = %+v, want the fallback listing", posts)
	}
}

func TestPosts_NoFallbackOnRealErrors(t *testing.T) {
	f := &mockFetcher{err: domain.ErrUnavailable}
	fb := &mockFallback{configured: true, posts: []domain.Post{{ID: "legacy-1"}}}
	svc := New(f, fb, nil)

	_, err := svc.Posts(context.Background(), 10)
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if fb.postsCalls != 0 {
		t.Error("a reachable-but-failing endpoint must not trigger the fallback")
	}
}

func TestPosts_NoFallbackWhenFallbackUnconfigured(t *testing.T) {
	f := &mockFetcher{err: domain.ErrNotConfigured}
	fb := &mockFallback{configured: false}
	svc := New(f, fb, nil)

	_, err := svc.Posts(context.Background(), 10)
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
	if fb.postsCalls != 0 {
		t.Error("an unconfigured fallback must not be consulted")
	}
}

func TestPost_DetectsIdentifierKind(t *testing.T) {
	tests := []struct {
		param string
		want  domain.IdentifierKind
	}{
		{"cG9zdDo4MA==", domain.KindNodeID},
		{"my-post-slug", domain.KindSlug},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			f := &mockFetcher{post: &graphql.PostNode{ID: "p1", Slug: "my-post-slug"}}
			svc := New(f, nil, nil)

			if _, err := svc.Post(context.Background(), tt.param); err != nil {
				t.Fatalf("Post: %v", err)
			}
			if f.lastIdentifier.Kind != tt.want || f.lastIdentifier.Value != tt.param {
				t.Errorf("identifier = %+v, want kind %q", f.lastIdentifier, tt.want)
			}
		})
	}
}

func TestPost_NotFoundPropagates(t *testing.T) {
	f := &mockFetcher{err: domain.ErrNotFound}
	svc := New(f, nil, nil)

	_, err := svc.Post(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestThemes(t *testing.T) {
	f := &mockFetcher{themes: []graphql.ThemeInfo{
		{ID: "dGVybTox", DatabaseID: "1", Name: "Agents", Slug: "agents", Count: 12},
	}}
	svc := New(f, nil, nil)

	themes, err := svc.Themes(context.Background())
	if err != nil {
		t.Fatalf("Themes: %v", err)
	}
	if len(themes) != 1 {
		t.Fatalf("len = %d", len(themes))
	}

	th := themes[0]
	if th.Name != "Agents" || th.Slug != "agents" || th.Count != 12 || th.DatabaseID != "1" {
		t.Errorf("theme = %+v", th)
	}
}
