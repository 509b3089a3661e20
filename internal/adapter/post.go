// Package adapter flattens raw CMS node shapes into domain records. Every
// function here is pure and nil-safe: a node with no optional fields adapts
// to a record with empty slices and nil scalars, never a panic.
package adapter

import (
	"strings"

	"github.com/ansrdlabs/contentd/internal/cms/graphql"
	"github.com/ansrdlabs/contentd/internal/domain"
)

// DefaultAuthor attributes content with no author on record.
const DefaultAuthor = "ANSRd Labs"

const excerptLen = 200

// Subtitle plausibility bounds, in runes, exclusive. Posts and episodes use
// different bounds; both pairs are kept as-is pending a product decision on
// whether the divergence is intentional.
const (
	postSubtitleMinLen = 20
	postSubtitleMaxLen = 500

	episodeSubtitleMinLen = 50
	episodeSubtitleMaxLen = 300
)

// Post adapts a raw post node into a normalized record.
func Post(node graphql.PostNode) domain.Post {
	p := domain.Post{
		ID:            node.ID,
		Slug:          node.Slug,
		Title:         node.Title,
		Date:          node.Date,
		Excerpt:       node.Excerpt,
		Content:       node.Content,
		FeaturedImage: optional(graphql.FeaturedImageURL(node.FeaturedImage)),
		PullQuotes:    []string{},
		Author:        domain.Author{Name: DefaultAuthor},
		Formats:       graphql.TermNames(node.Formats),
		Series:        graphql.TermNames(node.SeriesTag),
		Themes:        graphql.TermNames(&node.ContentThemes),
	}

	if f := node.Fields; f != nil {
		p.DeckSubtitle = cloneOptional(f.DeckSubtitle)
		p.EstimatedReadTime = cloneOptional(f.EstimatedReadTime)
		p.ExternalMirror = cloneOptional(f.ExternalMirror)
		p.Reference = cloneOptional(f.Reference)
		p.PullQuotes = splitLines(f.PullQuotes)
	}
	if p.DeckSubtitle == nil {
		p.DeckSubtitle = subtitleWithin(node.Content, postSubtitleMinLen, postSubtitleMaxLen)
	}

	if a := node.Author; a != nil {
		if name := strings.TrimSpace(a.Node.Name); name != "" {
			p.Author.Name = name
		}
		p.Author.Description = cloneOptional(a.Node.Description)
		if a.Node.Avatar != nil && a.Node.Avatar.URL != "" {
			p.Author.Avatar = optional(a.Node.Avatar.URL)
		}
	}

	return p
}

// optional lifts a non-empty string into a pointer, mapping "" to nil.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// cloneOptional copies an optional string, normalizing empty to nil so the
// adapted record does not alias the raw node.
func cloneOptional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
