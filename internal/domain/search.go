package domain

// ContentType narrows a search to one content kind.
type ContentType string

const (
	// TypeBlog selects blog posts.
	TypeBlog ContentType = "blog"
	// TypePodcast selects podcast episodes.
	TypePodcast ContentType = "podcast"
	// TypeResearch selects research papers.
	TypeResearch ContentType = "research"
	// TypeAll selects every content kind.
	TypeAll ContentType = "all"
)

// ParseContentType maps a query-string value to a ContentType.
// Empty and unknown values widen to TypeAll.
func ParseContentType(s string) ContentType {
	switch ContentType(s) {
	case TypeBlog, TypePodcast, TypeResearch:
		return ContentType(s)
	default:
		return TypeAll
	}
}

// Includes reports whether the type selector covers the given kind.
func (t ContentType) Includes(kind ContentType) bool {
	return t == TypeAll || t == kind
}

// SearchResult is the kind-tagged projection returned by the search
// aggregator. URL is always derived from Type and Slug, never stored.
type SearchResult struct {
	Type          ContentType `json:"type"`
	ID            string      `json:"id"`
	Slug          string      `json:"slug"`
	Title         string      `json:"title"`
	Excerpt       string      `json:"excerpt"`
	Date          string      `json:"date"`
	FeaturedImage *string     `json:"featuredImage"`
	Themes        []string    `json:"themes"`
	URL           string      `json:"url"`
}

// RouteFor returns the site route prefix for a content kind.
func RouteFor(t ContentType) string {
	switch t {
	case TypePodcast:
		return "/podcast"
	case TypeResearch:
		return "/research"
	default:
		return "/blog"
	}
}
