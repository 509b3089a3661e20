package search

import (
	"context"

	"github.com/ansrdlabs/contentd/internal/cms/graphql"
	"github.com/ansrdlabs/contentd/internal/repository/content"
)

// --- Mocks ---

// mockFetcher serves canned nodes per kind, each optionally failing.
type mockFetcher struct {
	posts    []graphql.PostNode
	episodes []graphql.EpisodeNode
	research []graphql.ResearchNode

	postsErr    error
	episodesErr error
	researchErr error

	postsCalls    int
	episodesCalls int
	researchCalls int
}

func (m *mockFetcher) AllPosts(_ context.Context, _ content.FetchParams) ([]graphql.PostNode, error) {
	m.postsCalls++
	return m.posts, m.postsErr
}

func (m *mockFetcher) AllEpisodes(_ context.Context, _ content.FetchParams) ([]graphql.EpisodeNode, error) {
	m.episodesCalls++
	return m.episodes, m.episodesErr
}

func (m *mockFetcher) AllResearch(_ context.Context, _ content.FetchParams) ([]graphql.ResearchNode, error) {
	m.researchCalls++
	return m.research, m.researchErr
}

// --- Fixtures ---

func postNode(id, slug, title, content string, themes ...string) graphql.PostNode {
	n := graphql.PostNode{
		ID:      id,
		Slug:    slug,
		Title:   title,
		Date:    "2024-01-01",
		Content: content,
	}
	for _, th := range themes {
		n.ContentThemes.Nodes = append(n.ContentThemes.Nodes, graphql.Term{Name: th})
	}
	return n
}

func episodeNode(id, slug, title, content string) graphql.EpisodeNode {
	return graphql.EpisodeNode{
		ID:      id,
		Slug:    slug,
		Title:   title,
		Date:    "2024-02-01",
		Content: content,
	}
}

func researchNode(id, slug, title, content string) graphql.ResearchNode {
	return graphql.ResearchNode{
		ID:      id,
		Slug:    slug,
		Title:   title,
		Date:    "2024-03-01",
		Content: content,
	}
}
