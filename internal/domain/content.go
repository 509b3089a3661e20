// Package domain holds the normalized content records the rest of the
// service works with. Raw CMS node shapes live in internal/cms; adapters
// flatten them into these types.
package domain

// Author describes a post author as exposed by the CMS user profile.
type Author struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Avatar      *string `json:"avatar"`
}

// Post is a normalized blog post. Every post has a non-empty ID, Slug,
// Title and Date; everything else is optional.
type Post struct {
	ID                string   `json:"id"`
	Slug              string   `json:"slug"`
	Title             string   `json:"title"`
	Date              string   `json:"date"`
	Excerpt           string   `json:"excerpt"`
	Content           string   `json:"content"`
	FeaturedImage     *string  `json:"featuredImage"`
	DeckSubtitle      *string  `json:"deckSubtitle"`
	EstimatedReadTime *string  `json:"estimatedReadTime"`
	ExternalMirror    *string  `json:"externalMirror"`
	Reference         *string  `json:"reference"`
	PullQuotes        []string `json:"pullQuotes"`
	Author            Author   `json:"author"`
	Formats           []string `json:"formats"`
	Series            []string `json:"series"`
	Themes            []string `json:"themes"`
}

// Episode is a normalized podcast episode.
type Episode struct {
	ID             string   `json:"id"`
	Slug           string   `json:"slug"`
	Title          string   `json:"title"`
	Date           string   `json:"date"`
	Excerpt        string   `json:"excerpt"`
	Content        string   `json:"content"`
	FeaturedImage  *string  `json:"featuredImage"`
	EpisodeNumber  *int     `json:"episodeNumber"`
	Duration       *string  `json:"duration"`
	AudioURL       *string  `json:"audioUrl"`
	VideoURL       *string  `json:"videoUrl"`
	ShowNotes      *string  `json:"showNotes"`
	Transcript     *string  `json:"transcript"`
	CoverImage     *string  `json:"coverImage"`
	YouTubeVideoID *string  `json:"youtubeVideoId"`
	Sources        []string `json:"sources"`
	Formats        []string `json:"formats"`
	Series         []string `json:"series"`
	Themes         []string `json:"themes"`
	DeckSubtitle   *string  `json:"deckSubtitle"`
}

// Research is a normalized research paper.
type Research struct {
	ID            string   `json:"id"`
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Date          string   `json:"date"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	FeaturedImage *string  `json:"featuredImage"`
	Type          string   `json:"type"`
	Author        string   `json:"author"`
	Abstract      string   `json:"abstract"`
	PDFURL        *string  `json:"pdfUrl"`
	ExternalURL   *string  `json:"externalUrl"`
	Citation      *string  `json:"citation"`
	KeyFindings   []string `json:"keyFindings"`
	Methods       []string `json:"methods"`
	Formats       []string `json:"formats"`
	Series        []string `json:"series"`
	Themes        []string `json:"themes"`
}

// Theme is a taxonomy term under which content is grouped.
type Theme struct {
	ID          string  `json:"id"`
	DatabaseID  string  `json:"databaseId,omitempty"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	Count       int     `json:"count"`
}

// Stats holds content counts for the landing page.
type Stats struct {
	Episodes    int `json:"episodes"`
	Research    int `json:"research"`
	CaseStudies int `json:"caseStudies"`
	Themes      int `json:"themes"`
}
