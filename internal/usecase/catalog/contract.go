package catalog

import (
	"context"

	"github.com/ansrdlabs/contentd/internal/cms/graphql"
	"github.com/ansrdlabs/contentd/internal/domain"
	"github.com/ansrdlabs/contentd/internal/repository/content"
)

// Fetcher is the GraphQL-backed storage contract.
type Fetcher interface {
	AllPosts(ctx context.Context, p content.FetchParams) ([]graphql.PostNode, error)
	AllEpisodes(ctx context.Context, p content.FetchParams) ([]graphql.EpisodeNode, error)
	AllResearch(ctx context.Context, p content.FetchParams) ([]graphql.ResearchNode, error)
	PostByIdentifier(ctx context.Context, id domain.Identifier) (*graphql.PostNode, error)
	EpisodeByIdentifier(ctx context.Context, id domain.Identifier) (*graphql.EpisodeNode, error)
	ResearchByIdentifier(ctx context.Context, id domain.Identifier) (*graphql.ResearchNode, error)
	Themes(ctx context.Context) ([]graphql.ThemeInfo, error)
}

// Fallback is the legacy REST listing contract, used only when the GraphQL
// endpoint is not configured. It cannot serve single-item lookups or the
// theme listing.
type Fallback interface {
	Configured() bool
	Posts(ctx context.Context, limit int) ([]domain.Post, error)
	Episodes(ctx context.Context, limit int) ([]domain.Episode, error)
	Research(ctx context.Context, limit int) ([]domain.Research, error)
}
