package adapter

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// entityReplacer decodes the named entities the CMS actually emits in
// excerpts. Anything rarer survives as-is; search matching is tolerant.
var entityReplacer = strings.NewReplacer(
	"&hellip;", "...",
	"&nbsp;", " ",
	"&amp;", "&",
)

// StripHTML removes tags, decodes the fixed entity set and trims. It is the
// shared helper behind excerpts, search filtering and key-findings parsing.
func StripHTML(html string) string {
	return strings.TrimSpace(entityReplacer.Replace(tagPattern.ReplaceAllString(html, "")))
}

// Truncate cuts a string to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Excerpt derives a plain-text preview from an HTML body.
func Excerpt(content string, n int) string {
	return Truncate(content, n)
}

// firstParagraph extracts the text of the first paragraph of an HTML body.
// It prefers a parsed <p> element and falls back to the first line of the
// stripped text for plain-text bodies.
func firstParagraph(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err == nil {
		if p := doc.Find("p").First(); p.Length() > 0 {
			if text := strings.TrimSpace(p.Text()); text != "" {
				return text
			}
		}
	}

	text := StripHTML(content)
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(line)
}

// subtitleWithin derives a subtitle from the body's first paragraph,
// accepting it only inside the given rune-length bounds.
func subtitleWithin(content string, minLen, maxLen int) *string {
	if content == "" {
		return nil
	}
	para := firstParagraph(content)
	n := len([]rune(para))
	if n > minLen && n < maxLen {
		return &para
	}
	return nil
}

// splitLines splits a newline-delimited raw text field, trimming each line
// and dropping empty ones. Used for pull-quotes and episode sources.
func splitLines(raw *string) []string {
	if raw == nil || *raw == "" {
		return []string{}
	}
	parts := strings.Split(*raw, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
