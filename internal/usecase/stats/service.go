// Package stats counts published content for the landing page.
package stats

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ansrdlabs/contentd/internal/cms/graphql"
	"github.com/ansrdlabs/contentd/internal/domain"
	"github.com/ansrdlabs/contentd/internal/repository/content"
)

// samplePage bounds the count probe. Counts saturate at the page size,
// which is all the landing page displays.
const samplePage = 10

// Fetcher is the storage contract for content counting.
type Fetcher interface {
	ContentByTheme(ctx context.Context, p content.FetchParams) ([]graphql.ThemeGroup, error)
	AllPosts(ctx context.Context, p content.FetchParams) ([]graphql.PostNode, error)
	AllEpisodes(ctx context.Context, p content.FetchParams) ([]graphql.EpisodeNode, error)
	AllResearch(ctx context.Context, p content.FetchParams) ([]graphql.ResearchNode, error)
}

// Service counts content per kind. Any failed count degrades to zero.
type Service struct {
	fetcher Fetcher
	logger  *zap.Logger
}

// New creates a stats service.
func New(fetcher Fetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{fetcher: fetcher, logger: logger}
}

// Counts fetches all four counts in parallel.
func (s *Service) Counts(ctx context.Context) domain.Stats {
	params := content.FetchParams{First: samplePage}
	var out domain.Stats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		nodes, err := s.fetcher.AllEpisodes(gctx, params)
		if err != nil {
			s.warn("episodes", err)
			return nil
		}
		out.Episodes = len(nodes)
		return nil
	})
	g.Go(func() error {
		nodes, err := s.fetcher.AllResearch(gctx, params)
		if err != nil {
			s.warn("research", err)
			return nil
		}
		out.Research = len(nodes)
		return nil
	})
	g.Go(func() error {
		nodes, err := s.fetcher.AllPosts(gctx, params)
		if err != nil {
			s.warn("posts", err)
			return nil
		}
		out.CaseStudies = len(nodes)
		return nil
	})
	g.Go(func() error {
		groups, err := s.fetcher.ContentByTheme(gctx, params)
		if err != nil {
			s.warn("themes", err)
			return nil
		}
		out.Themes = len(groups)
		return nil
	})
	_ = g.Wait() // the goroutines never return errors

	return out
}

func (s *Service) warn(kind string, err error) {
	s.logger.Warn("Stats count failed, degraded to zero",
		zap.String("kind", kind), zap.Error(err))
}
