package rest

import (
	"strconv"
	"strings"

	"github.com/ansrdlabs/contentd/internal/adapter"
	"github.com/ansrdlabs/contentd/internal/domain"
)

const excerptLen = 200

func adaptPost(res resource) domain.Post {
	out := domain.Post{
		ID:                restID(res.ID),
		Slug:              res.Slug,
		Title:             strings.TrimSpace(adapter.StripHTML(res.Title.Rendered)),
		Date:              res.Date,
		Excerpt:           adapter.StripHTML(res.Excerpt.Rendered),
		Content:           res.Content.Rendered,
		FeaturedImage:     featuredImage(res),
		DeckSubtitle:      acfOptional(res.ACF, "deck_subtitle", "decksubtitle"),
		EstimatedReadTime: acfOptional(res.ACF, "estimated_read_time"),
		ExternalMirror:    acfOptional(res.ACF, "external_mirror"),
		Reference:         acfOptional(res.ACF, "reference"),
		PullQuotes:        acfLines(res.ACF, "pull_quotes"),
		Author:            domain.Author{Name: adapter.DefaultAuthor},
		Formats:           []string{},
		Series:            []string{},
		Themes:            termNames(res),
	}
	if res.Excerpt.Rendered == "" {
		out.Excerpt = adapter.Excerpt(adapter.StripHTML(res.Content.Rendered), excerptLen)
	}
	if res.Embedded != nil && len(res.Embedded.Author) > 0 && res.Embedded.Author[0].Name != "" {
		out.Author.Name = res.Embedded.Author[0].Name
	}
	return out
}

func adaptEpisode(res resource) domain.Episode {
	return domain.Episode{
		ID:             restID(res.ID),
		Slug:           res.Slug,
		Title:          strings.TrimSpace(adapter.StripHTML(res.Title.Rendered)),
		Date:           res.Date,
		Excerpt:        adapter.StripHTML(res.Excerpt.Rendered),
		Content:        res.Content.Rendered,
		FeaturedImage:  featuredImage(res),
		EpisodeNumber:  acfIntOptional(res.ACF, "episode_number"),
		Duration:       acfOptional(res.ACF, "duration"),
		AudioURL:       acfURL(res.ACF, "audio_url", "audio"),
		VideoURL:       acfURL(res.ACF, "video_url", "video"),
		ShowNotes:      acfOptional(res.ACF, "show_notes"),
		Transcript:     acfOptional(res.ACF, "transcript"),
		CoverImage:     acfURL(res.ACF, "cover_image"),
		YouTubeVideoID: acfOptional(res.ACF, "youtube_video_id"),
		Sources:        acfLines(res.ACF, "sources"),
		Formats:        []string{},
		Series:         []string{},
		Themes:         termNames(res),
	}
}

func adaptResearch(res resource) domain.Research {
	out := domain.Research{
		ID:            restID(res.ID),
		Slug:          res.Slug,
		Title:         strings.TrimSpace(adapter.StripHTML(res.Title.Rendered)),
		Date:          res.Date,
		Excerpt:       adapter.StripHTML(res.Excerpt.Rendered),
		Content:       res.Content.Rendered,
		FeaturedImage: featuredImage(res),
		Type:          acfString(res.ACF, "research_type", "type"),
		Author:        acfString(res.ACF, "author"),
		Abstract:      acfString(res.ACF, "abstract"),
		PDFURL:        acfURL(res.ACF, "pdf", "pdf_url"),
		ExternalURL:   acfURL(res.ACF, "external_url"),
		Citation:      acfOptional(res.ACF, "citation"),
		KeyFindings:   adapter.KeyFindings(acfString(res.ACF, "key_findings")),
		Methods:       []string{},
		Formats:       []string{},
		Series:        []string{},
		Themes:        termNames(res),
	}
	if out.Type == "" {
		out.Type = adapter.DefaultResearchType
	}
	if out.Author == "" {
		out.Author = adapter.DefaultAuthor
	}
	return out
}

func featuredImage(res resource) *string {
	if res.Embedded == nil || len(res.Embedded.FeaturedMedia) == 0 {
		return nil
	}
	if url := res.Embedded.FeaturedMedia[0].SourceURL; url != "" {
		return &url
	}
	return nil
}

// termNames flattens every embedded taxonomy list into one name list.
// The REST payload does not group by taxonomy the way GraphQL does.
func termNames(res resource) []string {
	names := []string{}
	if res.Embedded == nil {
		return names
	}
	for _, group := range res.Embedded.Terms {
		for _, term := range group {
			if term.Name != "" {
				names = append(names, term.Name)
			}
		}
	}
	return names
}

// acfString probes the acf blob for the first non-empty string among keys.
func acfString(acf map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := acf[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func acfOptional(acf map[string]any, keys ...string) *string {
	if s := acfString(acf, keys...); s != "" {
		return &s
	}
	return nil
}

// acfURL resolves a field that ACF serializes either as a plain URL string
// or as a media object with a "url" member.
func acfURL(acf map[string]any, keys ...string) *string {
	for _, key := range keys {
		switch v := acf[key].(type) {
		case string:
			if v != "" {
				return &v
			}
		case map[string]any:
			if s, ok := v["url"].(string); ok && s != "" {
				return &s
			}
		}
	}
	return nil
}

// acfIntOptional reads a numeric field; ACF emits numbers as float64 or
// numeric strings depending on field configuration.
func acfIntOptional(acf map[string]any, key string) *int {
	switch v := acf[key].(type) {
	case float64:
		n := int(v)
		return &n
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return &n
		}
	}
	return nil
}

// acfLines splits a newline-delimited acf text field.
func acfLines(acf map[string]any, key string) []string {
	raw := acfString(acf, key)
	if raw == "" {
		return []string{}
	}
	out := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
