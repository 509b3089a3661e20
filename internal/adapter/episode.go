package adapter

import (
	"strings"

	"github.com/ansrdlabs/contentd/internal/cms/graphql"
	"github.com/ansrdlabs/contentd/internal/domain"
)

// Episode adapts a raw episode node into a normalized record.
func Episode(node graphql.EpisodeNode) domain.Episode {
	e := domain.Episode{
		ID:            node.ID,
		Slug:          node.Slug,
		Title:         strings.TrimSpace(node.Title),
		Date:          node.Date,
		Excerpt:       Truncate(node.Content, excerptLen),
		Content:       node.Content,
		FeaturedImage: optional(graphql.FeaturedImageURL(node.FeaturedImage)),
		AudioURL:      optional(graphql.ExtractAudioURL(node)),
		Sources:       []string{},
		Formats:       graphql.TermNames(node.Formats),
		Series:        graphql.TermNames(node.SeriesTag),
		Themes:        graphql.TermNames(&node.ContentThemes),
		DeckSubtitle:  subtitleWithin(node.Content, episodeSubtitleMinLen, episodeSubtitleMaxLen),
	}

	if f := node.Fields; f != nil {
		if f.EpisodeNumber != nil {
			n := *f.EpisodeNumber
			e.EpisodeNumber = &n
		}
		e.Duration = cloneOptional(f.Duration)
		e.VideoURL = cloneOptional(f.VideoURL)
		e.ShowNotes = cloneOptional(f.ShowNotes)
		e.Transcript = cloneOptional(f.Transcript)
		e.CoverImage = optional(graphql.FeaturedImageURL(f.CoverImage))
		e.YouTubeVideoID = cloneOptional(f.YouTubeVideoID)
		e.Sources = splitLines(f.Sources)
	}

	return e
}
