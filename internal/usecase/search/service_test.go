package search

import (
	"context"
	"errors"
	"testing"

	"github.com/ansrdlabs/contentd/internal/cms/graphql"
	"github.com/ansrdlabs/contentd/internal/domain"
)

func TestSearchAll_EmptyQueryReturnsEverything(t *testing.T) {
	f := &mockFetcher{
		posts:    []graphql.PostNode{postNode("p1", "post-one", "Post One", "body")},
		episodes: []graphql.EpisodeNode{episodeNode("e1", "ep-one", "Episode One", "body")},
		research: []graphql.ResearchNode{researchNode("r1", "paper-one", "Paper One", "body")},
	}
	svc := New(f, nil)

	results := svc.SearchAll(context.Background(), "", domain.TypeAll)
	if len(results) != 3 {
		t.Fatalf("len = %d, want 3", len(results))
	}
}

func TestSearchAll_TypeNarrowing(t *testing.T) {
	newFetcher := func() *mockFetcher {
		return &mockFetcher{
			posts:    []graphql.PostNode{postNode("p1", "post-one", "One", "body")},
			episodes: []graphql.EpisodeNode{episodeNode("e1", "ep-one", "One", "body")},
			research: []graphql.ResearchNode{researchNode("r1", "paper-one", "One", "body")},
		}
	}

	tests := []struct {
		contentType domain.ContentType
		wantKind    domain.ContentType
		wantFetches [3]int // posts, episodes, research
	}{
		{domain.TypeBlog, domain.TypeBlog, [3]int{1, 0, 0}},
		{domain.TypePodcast, domain.TypePodcast, [3]int{0, 1, 0}},
		{domain.TypeResearch, domain.TypeResearch, [3]int{0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(string(tt.contentType), func(t *testing.T) {
			f := newFetcher()
			svc := New(f, nil)

			results := svc.SearchAll(context.Background(), "", tt.contentType)
			if len(results) != 1 || results[0].Type != tt.wantKind {
				t.Fatalf("results = %+v", results)
			}

			got := [3]int{f.postsCalls, f.episodesCalls, f.researchCalls}
			if got != tt.wantFetches {
				t.Errorf("fetch calls = %v, want %v (unselected kinds must not be fetched)", got, tt.wantFetches)
			}
		})
	}
}

func TestSearchAll_ORFilterSemantics(t *testing.T) {
	f := &mockFetcher{posts: []graphql.PostNode{
		postNode("p1", "in-title", "Agentic systems", "plain body"),
		postNode("p2", "in-content", "Something else", "<p>why AGENTS fail</p>"),
		postNode("p3", "in-theme", "Unrelated", "plain body", "Agents"),
		postNode("p4", "no-match", "Unrelated", "plain body", "Safety"),
	}}
	svc := New(f, nil)

	results := svc.SearchAll(context.Background(), "agent", domain.TypeBlog)

	got := make(map[string]bool, len(results))
	for _, r := range results {
		got[r.ID] = true
	}
	for _, want := range []string{"p1", "p2", "p3"} {
		if !got[want] {
			t.Errorf("expected %s in results, got %v", want, got)
		}
	}
	if got["p4"] {
		t.Error("p4 matches nothing and must be excluded")
	}
}

func TestSearchAll_ResearchMatchesAuthor(t *testing.T) {
	node := researchNode("r1", "paper", "Quantitative Title", "body")
	node.Fields = &graphql.ResearchFields{Author: strPtr("Dana Osei")}
	f := &mockFetcher{research: []graphql.ResearchNode{node}}
	svc := New(f, nil)

	results := svc.SearchAll(context.Background(), "osei", domain.TypeResearch)
	if len(results) != 1 {
		t.Fatalf("len = %d, want 1 (research must match on author)", len(results))
	}
}

func TestSearchAll_PerKindDegradation(t *testing.T) {
	f := &mockFetcher{
		postsErr: errors.New("cms down"),
		episodes: []graphql.EpisodeNode{episodeNode("e1", "ep-one", "Episode One", "body")},
		research: []graphql.ResearchNode{researchNode("r1", "paper-one", "Paper One", "body")},
	}
	svc := New(f, nil)

	results := svc.SearchAll(context.Background(), "", domain.TypeAll)
	if len(results) != 2 {
		t.Fatalf("len = %d, want 2 (failed kind contributes nothing)", len(results))
	}
	for _, r := range results {
		if r.Type == domain.TypeBlog {
			t.Error("no blog results expected")
		}
	}
}

func TestSearchAll_TotalFailureReturnsEmpty(t *testing.T) {
	err := errors.New("cms down")
	f := &mockFetcher{postsErr: err, episodesErr: err, researchErr: err}
	svc := New(f, nil)

	results := svc.SearchAll(context.Background(), "anything", domain.TypeAll)
	if results == nil {
		t.Fatal("results must be an empty slice, not nil")
	}
	if len(results) != 0 {
		t.Errorf("len = %d, want 0", len(results))
	}
}

func TestSearchAll_ProjectsURLAndExcerpt(t *testing.T) {
	node := postNode("p1", "my-post", "Title", "<p>hello world body</p>")
	f := &mockFetcher{posts: []graphql.PostNode{node}}
	svc := New(f, nil)

	results := svc.SearchAll(context.Background(), "", domain.TypeBlog)
	if len(results) != 1 {
		t.Fatalf("len = %d", len(results))
	}

	r := results[0]
	if r.URL != "/blog/my-post" {
		t.Errorf("url = %q, want /blog/my-post", r.URL)
	}
	if r.Excerpt != "hello world body" {
		t.Errorf("excerpt = %q, want stripped body fallback", r.Excerpt)
	}
	if r.Themes == nil {
		t.Error("themes must default to empty, not nil")
	}
}

func TestSearchAll_CaseInsensitiveAndTrimmed(t *testing.T) {
	f := &mockFetcher{posts: []graphql.PostNode{
		postNode("p1", "slug", "AGENTS Everywhere", "body"),
	}}
	svc := New(f, nil)

	results := svc.SearchAll(context.Background(), "  agents  ", domain.TypeBlog)
	if len(results) != 1 {
		t.Errorf("len = %d, want 1 (query is trimmed and case-folded)", len(results))
	}
}

func strPtr(s string) *string { return &s }
