// Package catalog serves the normalized content listings and lookups
// behind the public API: posts, episodes, research and themes.
package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/ansrdlabs/contentd/internal/adapter"
	"github.com/ansrdlabs/contentd/internal/domain"
	"github.com/ansrdlabs/contentd/internal/repository/content"
)

// Service adapts raw CMS nodes into normalized records. When GraphQL is
// not configured it falls back to the legacy REST listings, so a partially
// migrated CMS still serves content.
type Service struct {
	fetcher  Fetcher
	fallback Fallback
	logger   *zap.Logger
}

// New creates a catalog service. fallback can be nil.
func New(fetcher Fetcher, fallback Fallback, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{fetcher: fetcher, fallback: fallback, logger: logger}
}

// Posts lists normalized blog posts.
func (s *Service) Posts(ctx context.Context, limit int) ([]domain.Post, error) {
	nodes, err := s.fetcher.AllPosts(ctx, content.FetchParams{First: limit})
	if err != nil {
		if s.useFallback(err) {
			return s.fallback.Posts(ctx, limit)
		}
		return nil, err
	}
	out := make([]domain.Post, len(nodes))
	for i, n := range nodes {
		out[i] = adapter.Post(n)
	}
	return out, nil
}

// Episodes lists normalized podcast episodes.
func (s *Service) Episodes(ctx context.Context, limit int) ([]domain.Episode, error) {
	nodes, err := s.fetcher.AllEpisodes(ctx, content.FetchParams{First: limit})
	if err != nil {
		if s.useFallback(err) {
			return s.fallback.Episodes(ctx, limit)
		}
		return nil, err
	}
	out := make([]domain.Episode, len(nodes))
	for i, n := range nodes {
		out[i] = adapter.Episode(n)
	}
	return out, nil
}

// Research lists normalized research papers.
func (s *Service) Research(ctx context.Context, limit int) ([]domain.Research, error) {
	nodes, err := s.fetcher.AllResearch(ctx, content.FetchParams{First: limit})
	if err != nil {
		if s.useFallback(err) {
			return s.fallback.Research(ctx, limit)
		}
		return nil, err
	}
	out := make([]domain.Research, len(nodes))
	for i, n := range nodes {
		out[i] = adapter.Research(n)
	}
	return out, nil
}

// Post resolves one post by route parameter (node ID or slug).
func (s *Service) Post(ctx context.Context, idOrSlug string) (domain.Post, error) {
	node, err := s.fetcher.PostByIdentifier(ctx, domain.DetectIdentifier(idOrSlug))
	if err != nil {
		return domain.Post{}, err
	}
	return adapter.Post(*node), nil
}

// Episode resolves one episode by route parameter.
func (s *Service) Episode(ctx context.Context, idOrSlug string) (domain.Episode, error) {
	node, err := s.fetcher.EpisodeByIdentifier(ctx, domain.DetectIdentifier(idOrSlug))
	if err != nil {
		return domain.Episode{}, err
	}
	return adapter.Episode(*node), nil
}

// ResearchItem resolves one research paper by route parameter.
func (s *Service) ResearchItem(ctx context.Context, idOrSlug string) (domain.Research, error) {
	node, err := s.fetcher.ResearchByIdentifier(ctx, domain.DetectIdentifier(idOrSlug))
	if err != nil {
		return domain.Research{}, err
	}
	return adapter.Research(*node), nil
}

// Themes lists the content taxonomy terms.
func (s *Service) Themes(ctx context.Context) ([]domain.Theme, error) {
	infos, err := s.fetcher.Themes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Theme, len(infos))
	for i, info := range infos {
		out[i] = domain.Theme{
			ID:          info.ID,
			DatabaseID:  info.DatabaseID,
			Name:        info.Name,
			Slug:        info.Slug,
			Description: info.Description,
			Count:       info.Count,
		}
	}
	return out, nil
}

// useFallback reports whether the REST fallback should serve this listing.
// Only configuration absence triggers it: a reachable-but-failing GraphQL
// endpoint is a real error, not a migration state.
func (s *Service) useFallback(err error) bool {
	if !errors.Is(err, domain.ErrNotConfigured) {
		return false
	}
	if s.fallback == nil || !s.fallback.Configured() {
		return false
	}
	s.logger.Debug("GraphQL endpoint not configured, serving from REST fallback")
	return true
}
