package adapter

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ansrdlabs/contentd/internal/cms/graphql"
	"github.com/ansrdlabs/contentd/internal/domain"
)

// DefaultResearchType labels papers with no type tag.
const DefaultResearchType = "Research"

// Research adapts a raw research node into a normalized record.
func Research(node graphql.ResearchNode) domain.Research {
	r := domain.Research{
		ID:            node.ID,
		Slug:          node.Slug,
		Title:         node.Title,
		Date:          node.Date,
		Excerpt:       Truncate(node.Content, excerptLen),
		Content:       node.Content,
		FeaturedImage: optional(graphql.FeaturedImageURL(node.FeaturedImage)),
		Type:          DefaultResearchType,
		Author:        DefaultAuthor,
		PDFURL:        optional(graphql.ExtractPDFURL(node)),
		KeyFindings:   []string{},
		Methods:       graphql.TermNames(node.Methods),
		Formats:       graphql.TermNames(node.Formats),
		Series:        graphql.TermNames(node.SeriesTag),
		Themes:        graphql.TermNames(&node.ContentThemes),
	}

	if f := node.Fields; f != nil {
		if len(f.Type) > 0 && f.Type[0] != "" {
			r.Type = f.Type[0]
		}
		if f.Author != nil && *f.Author != "" {
			r.Author = *f.Author
		}
		if f.Abstract != nil {
			r.Abstract = *f.Abstract
		}
		r.ExternalURL = cloneOptional(f.ExternalURL)
		r.Citation = cloneOptional(f.Citation)
		if f.KeyFindings != nil {
			r.KeyFindings = KeyFindings(*f.KeyFindings)
		}
	}

	return r
}

var (
	blankLines = regexp.MustCompile(`\n+`)
	// strayMarkup matches list/paragraph tokens that survive naive
	// stripping of malformed key-findings markup.
	strayMarkup = regexp.MustCompile(`^(ul|li|p|data-)`)
)

// KeyFindings parses the semi-structured key-findings block into a list of
// plain-text findings. Well-formed markup yields one finding per <li>;
// anything else is stripped and split on line breaks, dropping stray markup
// tokens.
func KeyFindings(html string) []string {
	if html == "" {
		return []string{}
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		items := doc.Find("li")
		if items.Length() > 0 {
			findings := make([]string, 0, items.Length())
			items.Each(func(_ int, s *goquery.Selection) {
				if text := strings.TrimSpace(s.Text()); text != "" {
					findings = append(findings, text)
				}
			})
			if len(findings) > 0 {
				return findings
			}
		}
	}

	text := strings.TrimSpace(tagPattern.ReplaceAllString(html, " "))
	findings := []string{}
	for _, line := range blankLines.Split(text, -1) {
		line = strings.TrimSpace(line)
		if line == "" || strayMarkup.MatchString(line) {
			continue
		}
		findings = append(findings, line)
	}
	return findings
}
