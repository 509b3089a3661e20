package search

import (
	"context"

	"github.com/ansrdlabs/contentd/internal/cms/graphql"
	"github.com/ansrdlabs/contentd/internal/repository/content"
)

// Fetcher is the storage contract for the search aggregator.
type Fetcher interface {
	AllPosts(ctx context.Context, p content.FetchParams) ([]graphql.PostNode, error)
	AllEpisodes(ctx context.Context, p content.FetchParams) ([]graphql.EpisodeNode, error)
	AllResearch(ctx context.Context, p content.FetchParams) ([]graphql.ResearchNode, error)
}
