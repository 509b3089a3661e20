// Package search aggregates the three content kinds into one ranked result
// list. It is a complete-set-within-page-bound search: each kind
// contributes at most one page of items, filtered client-side.
package search

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ansrdlabs/contentd/internal/adapter"
	"github.com/ansrdlabs/contentd/internal/domain"
	"github.com/ansrdlabs/contentd/internal/repository/content"
)

const defaultPageSize = 100

// Service fans out to the content fetchers, adapts, filters and ranks.
// It never returns an error: a failed kind contributes nothing and the
// failure is logged, so "CMS down" and "no matches" look the same to the
// caller but not to the operator.
type Service struct {
	fetcher  Fetcher
	pageSize int
	logger   *zap.Logger
}

// New creates a search service.
func New(fetcher Fetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{fetcher: fetcher, pageSize: defaultPageSize, logger: logger}
}

// WithPageSize overrides the per-kind page bound.
func (s *Service) WithPageSize(n int) *Service {
	if n > 0 {
		s.pageSize = n
	}
	return s
}

// SearchAll searches the selected content kinds for the query string.
// An empty query returns every fetched record. Results are ranked with
// title matches first, then date descending within each partition.
func (s *Service) SearchAll(ctx context.Context, query string, contentType domain.ContentType) []domain.SearchResult {
	needle := strings.ToLower(strings.TrimSpace(query))
	params := content.FetchParams{First: s.pageSize}

	var (
		posts    []domain.Post
		episodes []domain.Episode
		research []domain.Research
	)

	// Per-kind failures degrade to an empty slice; the goroutines only
	// share disjoint result slots, so no locking is needed.
	g, gctx := errgroup.WithContext(ctx)
	if contentType.Includes(domain.TypeBlog) {
		g.Go(func() error {
			nodes, err := s.fetcher.AllPosts(gctx, params)
			if err != nil {
				s.warn("posts", err)
				return nil
			}
			posts = make([]domain.Post, len(nodes))
			for i, n := range nodes {
				posts[i] = adapter.Post(n)
			}
			return nil
		})
	}
	if contentType.Includes(domain.TypePodcast) {
		g.Go(func() error {
			nodes, err := s.fetcher.AllEpisodes(gctx, params)
			if err != nil {
				s.warn("episodes", err)
				return nil
			}
			episodes = make([]domain.Episode, len(nodes))
			for i, n := range nodes {
				episodes[i] = adapter.Episode(n)
			}
			return nil
		})
	}
	if contentType.Includes(domain.TypeResearch) {
		g.Go(func() error {
			nodes, err := s.fetcher.AllResearch(gctx, params)
			if err != nil {
				s.warn("research", err)
				return nil
			}
			research = make([]domain.Research, len(nodes))
			for i, n := range nodes {
				research[i] = adapter.Research(n)
			}
			return nil
		})
	}
	_ = g.Wait() // the goroutines never return errors

	results := make([]domain.SearchResult, 0, len(posts)+len(episodes)+len(research))
	for _, p := range posts {
		if needle == "" || matchesPost(p, needle) {
			results = append(results, toResult(domain.TypeBlog, p.ID, p.Slug, p.Title, p.Excerpt, p.Content, p.Date, p.FeaturedImage, p.Themes))
		}
	}
	for _, e := range episodes {
		if needle == "" || matchesEpisode(e, needle) {
			results = append(results, toResult(domain.TypePodcast, e.ID, e.Slug, e.Title, e.Excerpt, e.Content, e.Date, e.FeaturedImage, e.Themes))
		}
	}
	for _, r := range research {
		if needle == "" || matchesResearch(r, needle) {
			results = append(results, toResult(domain.TypeResearch, r.ID, r.Slug, r.Title, r.Excerpt, r.Content, r.Date, r.FeaturedImage, r.Themes))
		}
	}

	rank(results, needle)
	return results
}

func (s *Service) warn(kind string, err error) {
	s.logger.Warn("Search fetch failed, kind degraded to empty",
		zap.String("kind", kind), zap.Error(err))
}

// matchesPost tests the query against title, excerpt, body and theme names
// (OR semantics), all case-insensitive over stripped text.
func matchesPost(p domain.Post, needle string) bool {
	return containsFold(p.Title, needle) ||
		containsFold(adapter.StripHTML(p.Excerpt), needle) ||
		containsFold(adapter.StripHTML(p.Content), needle) ||
		anyContainsFold(p.Themes, needle)
}

func matchesEpisode(e domain.Episode, needle string) bool {
	return containsFold(e.Title, needle) ||
		containsFold(adapter.StripHTML(e.Excerpt), needle) ||
		containsFold(adapter.StripHTML(e.Content), needle) ||
		anyContainsFold(e.Themes, needle)
}

// matchesResearch additionally tests the abstract and the author string.
func matchesResearch(r domain.Research, needle string) bool {
	return containsFold(r.Title, needle) ||
		containsFold(adapter.StripHTML(r.Abstract), needle) ||
		containsFold(adapter.StripHTML(r.Content), needle) ||
		anyContainsFold(r.Themes, needle) ||
		containsFold(r.Author, needle)
}

func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}

func anyContainsFold(items []string, needle string) bool {
	for _, s := range items {
		if containsFold(s, needle) {
			return true
		}
	}
	return false
}

func toResult(
	t domain.ContentType,
	id, slug, title, excerpt, body, date string,
	image *string,
	themes []string,
) domain.SearchResult {
	if excerpt == "" {
		excerpt = adapter.Truncate(body, 200)
	}
	if themes == nil {
		themes = []string{}
	}
	return domain.SearchResult{
		Type:          t,
		ID:            id,
		Slug:          slug,
		Title:         title,
		Excerpt:       adapter.StripHTML(excerpt),
		Date:          date,
		FeaturedImage: image,
		Themes:        themes,
		URL:           domain.RouteFor(t) + "/" + slug,
	}
}
