// Package content fetches raw CMS nodes. The theme-grouped query is the
// only bulk listing the CMS offers; a node tagged with several themes
// appears once per theme group, so every flattening fetch de-duplicates by
// node ID before returning.
package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/ansrdlabs/contentd/internal/cms/graphql"
	"github.com/ansrdlabs/contentd/internal/domain"
)

const defaultPageSize = 10

// FetchParams bounds a bulk fetch. Zero values mean: all themes, no search
// narrowing, default page size, first page.
type FetchParams struct {
	Slugs  []string
	Search string
	First  int
	After  string
}

func (p FetchParams) variables() map[string]any {
	first := p.First
	if first <= 0 {
		first = defaultPageSize
	}
	vars := map[string]any{"first": first}
	if len(p.Slugs) > 0 {
		vars["slug"] = p.Slugs
	}
	if p.Search != "" {
		vars["search"] = p.Search
	}
	if p.After != "" {
		vars["after"] = p.After
	}
	return vars
}

// Repo fetches content from the CMS.
type Repo struct {
	client Querier
}

// New creates a content repository.
func New(client Querier) *Repo {
	return &Repo{client: client}
}

// Configured reports whether the CMS endpoint is set.
func (r *Repo) Configured() bool { return r.client.Configured() }

// ContentByTheme runs the theme-grouped bulk query. It is the shared
// primitive behind every listing fetch. A partial GraphQL response (errors
// alongside data) is returned as usable data.
func (r *Repo) ContentByTheme(ctx context.Context, p FetchParams) ([]graphql.ThemeGroup, error) {
	var resp graphql.ContentThemeResponse
	err := r.client.Query(ctx, "content_by_theme", graphql.QueryContentThemes, p.variables(), &resp)
	if err != nil && !errors.Is(err, domain.ErrPartialResponse) {
		return nil, fmt.Errorf("fetch content by theme: %w", err)
	}
	return resp.ContentThemes.Nodes, nil
}

// AllPosts flattens posts across theme groups, de-duplicated by node ID.
func (r *Repo) AllPosts(ctx context.Context, p FetchParams) ([]graphql.PostNode, error) {
	groups, err := r.ContentByTheme(ctx, p)
	if err != nil {
		return nil, err
	}
	var nodes []graphql.PostNode
	for _, g := range groups {
		nodes = append(nodes, g.Posts.Nodes...)
	}
	return dedupe(nodes, func(n graphql.PostNode) string { return n.ID }), nil
}

// AllEpisodes flattens episodes across theme groups, de-duplicated by node ID.
func (r *Repo) AllEpisodes(ctx context.Context, p FetchParams) ([]graphql.EpisodeNode, error) {
	groups, err := r.ContentByTheme(ctx, p)
	if err != nil {
		return nil, err
	}
	var nodes []graphql.EpisodeNode
	for _, g := range groups {
		nodes = append(nodes, g.Episodes.Nodes...)
	}
	return dedupe(nodes, func(n graphql.EpisodeNode) string { return n.ID }), nil
}

// AllResearch flattens research papers across theme groups, de-duplicated
// by node ID.
func (r *Repo) AllResearch(ctx context.Context, p FetchParams) ([]graphql.ResearchNode, error) {
	groups, err := r.ContentByTheme(ctx, p)
	if err != nil {
		return nil, err
	}
	var nodes []graphql.ResearchNode
	for _, g := range groups {
		nodes = append(nodes, g.Researches.Nodes...)
	}
	return dedupe(nodes, func(n graphql.ResearchNode) string { return n.ID }), nil
}

// PostByIdentifier fetches one post by node ID or slug.
func (r *Repo) PostByIdentifier(ctx context.Context, id domain.Identifier) (*graphql.PostNode, error) {
	var resp struct {
		Post *graphql.PostNode `json:"post"`
	}
	err := r.client.Query(ctx, "post_by_id", graphql.QueryPost, identifierVars(id), &resp)
	if err != nil && !errors.Is(err, domain.ErrPartialResponse) {
		return nil, fmt.Errorf("fetch post %q: %w", id.Value, err)
	}
	if resp.Post == nil {
		return nil, domain.ErrNotFound
	}
	return resp.Post, nil
}

// EpisodeByIdentifier fetches one episode by node ID or slug.
func (r *Repo) EpisodeByIdentifier(ctx context.Context, id domain.Identifier) (*graphql.EpisodeNode, error) {
	var resp struct {
		Episode *graphql.EpisodeNode `json:"episode"`
	}
	err := r.client.Query(ctx, "episode_by_id", graphql.QueryEpisode, identifierVars(id), &resp)
	if err != nil && !errors.Is(err, domain.ErrPartialResponse) {
		return nil, fmt.Errorf("fetch episode %q: %w", id.Value, err)
	}
	if resp.Episode == nil {
		return nil, domain.ErrNotFound
	}
	return resp.Episode, nil
}

// ResearchByIdentifier fetches one research paper by node ID or slug.
func (r *Repo) ResearchByIdentifier(ctx context.Context, id domain.Identifier) (*graphql.ResearchNode, error) {
	var resp struct {
		Research *graphql.ResearchNode `json:"research"`
	}
	err := r.client.Query(ctx, "research_by_id", graphql.QueryResearch, identifierVars(id), &resp)
	if err != nil && !errors.Is(err, domain.ErrPartialResponse) {
		return nil, fmt.Errorf("fetch research %q: %w", id.Value, err)
	}
	if resp.Research == nil {
		return nil, domain.ErrNotFound
	}
	return resp.Research, nil
}

// Themes fetches the taxonomy terms with usage counts.
func (r *Repo) Themes(ctx context.Context) ([]graphql.ThemeInfo, error) {
	var resp graphql.ThemeListResponse
	err := r.client.Query(ctx, "theme_list", graphql.QueryThemeList, nil, &resp)
	if err != nil && !errors.Is(err, domain.ErrPartialResponse) {
		return nil, fmt.Errorf("fetch themes: %w", err)
	}
	return resp.ContentThemes.Nodes, nil
}

// HealthCheck probes the CMS with the cheapest query it accepts.
func (r *Repo) HealthCheck(ctx context.Context) error {
	_, err := r.Themes(ctx)
	return err
}

func identifierVars(id domain.Identifier) map[string]any {
	return map[string]any{"id": id.Value, "idType": string(id.Kind)}
}

// dedupe keeps the first occurrence per key, preserving order.
func dedupe[T any](nodes []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(nodes))
	out := make([]T, 0, len(nodes))
	for _, n := range nodes {
		k := key(n)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, n)
	}
	return out
}
