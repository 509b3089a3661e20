package graphql

// Raw node shapes as returned by the CMS GraphQL schema. These mirror the
// schema exactly, nested wrappers included; internal/adapter flattens them
// into domain records.

// Image is a media node reference.
type Image struct {
	Node struct {
		SourceURL string `json:"sourceUrl"`
		AltText   string `json:"altText"`
	} `json:"node"`
}

// Term is a single taxonomy term.
type Term struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TermList wraps the nodes array of a taxonomy connection.
type TermList struct {
	Nodes []Term `json:"nodes"`
}

// AuthorNode is the CMS user attached to a post.
type AuthorNode struct {
	Node struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		Avatar      *struct {
			URL string `json:"url"`
		} `json:"avatar"`
	} `json:"node"`
}

// PostFields is the custom field group attached to posts.
// The CMS schema spells the pull-quotes field "pullQoutes".
type PostFields struct {
	DeckSubtitle      *string `json:"decksubtitle"`
	EstimatedReadTime *string `json:"estimatedReadTime"`
	ExternalMirror    *string `json:"externalMirror"`
	Reference         *string `json:"reference"`
	PullQuotes        *string `json:"pullQoutes"`
}

// PostNode is a raw blog post.
type PostNode struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Slug          string      `json:"slug"`
	Date          string      `json:"date"`
	Excerpt       string      `json:"excerpt"`
	Content       string      `json:"content"`
	FeaturedImage *Image      `json:"featuredImage"`
	Author        *AuthorNode `json:"author"`
	Fields        *PostFields `json:"posts"`
	SeriesTag     *TermList   `json:"seriesTag"`
	Formats       *TermList   `json:"formats"`
	ContentThemes TermList    `json:"contentThemes"`
}

// EpisodeFields is the custom field group attached to episodes.
type EpisodeFields struct {
	EpisodeNumber  *int    `json:"episodeNumber"`
	Duration       *string `json:"duration"`
	AudioURL       *string `json:"audioUrl"`
	VideoURL       *string `json:"videoUrl"`
	ShowNotes      *string `json:"showNotes"`
	Transcript     *string `json:"transcript"`
	CoverImage     *Image  `json:"coverImage"`
	YouTubeVideoID *string `json:"youtubeVideoId"`
	Sources        *string `json:"sources"`
}

// EpisodeNode is a raw podcast episode.
type EpisodeNode struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Slug          string         `json:"slug"`
	Date          string         `json:"date"`
	Content       string         `json:"content"`
	FeaturedImage *Image         `json:"featuredImage"`
	Fields        *EpisodeFields `json:"episodes"`
	SeriesTag     *TermList      `json:"seriesTag"`
	Formats       *TermList      `json:"formats"`
	ContentThemes TermList       `json:"contentThemes"`
}

// PDFUpload is the uploaded-media reference on a research paper.
type PDFUpload struct {
	Node struct {
		MediaItemURL string `json:"mediaItemUrl"`
		SourceURL    string `json:"sourceUrl"`
	} `json:"node"`
}

// ResearchFields is the custom field group attached to research papers.
// Type is multi-valued in the schema even though papers carry one tag.
type ResearchFields struct {
	Type        []string   `json:"type"`
	Author      *string    `json:"author"`
	Abstract    *string    `json:"abstract"`
	PDFUpload   *PDFUpload `json:"pdfUpload"`
	ExternalURL *string    `json:"externalUrl"`
	Citation    *string    `json:"citation"`
	KeyFindings *string    `json:"keyFindings"`
}

// ResearchNode is a raw research paper.
type ResearchNode struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Slug          string          `json:"slug"`
	Date          string          `json:"date"`
	Content       string          `json:"content"`
	FeaturedImage *Image          `json:"featuredImage"`
	Fields        *ResearchFields `json:"researches"`
	SeriesTag     *TermList       `json:"seriesTag"`
	Formats       *TermList       `json:"formats"`
	Methods       *TermList       `json:"methods"`
	ContentThemes TermList        `json:"contentThemes"`
}

// PageInfo carries cursor pagination state.
type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

// PostConnection pages posts under a theme.
type PostConnection struct {
	PageInfo PageInfo   `json:"pageInfo"`
	Nodes    []PostNode `json:"nodes"`
}

// EpisodeConnection pages episodes under a theme.
type EpisodeConnection struct {
	PageInfo PageInfo      `json:"pageInfo"`
	Nodes    []EpisodeNode `json:"nodes"`
}

// ResearchConnection pages research papers under a theme.
type ResearchConnection struct {
	PageInfo PageInfo       `json:"pageInfo"`
	Nodes    []ResearchNode `json:"nodes"`
}

// ThemeGroup is one taxonomy node with its three content connections.
// A content node tagged with several themes appears in several groups;
// consumers must de-duplicate by node ID.
type ThemeGroup struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Slug       string             `json:"slug"`
	Posts      PostConnection     `json:"posts"`
	Episodes   EpisodeConnection  `json:"episodes"`
	Researches ResearchConnection `json:"researches"`
}

// ContentThemeResponse is the root payload of the theme-grouped bulk query.
type ContentThemeResponse struct {
	ContentThemes struct {
		Nodes []ThemeGroup `json:"nodes"`
	} `json:"contentThemes"`
}

// ThemeInfo is a taxonomy term with usage counts, from the theme listing.
type ThemeInfo struct {
	ID          string  `json:"id"`
	DatabaseID  string  `json:"databaseId"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	Count       int     `json:"count"`
}

// ThemeListResponse is the root payload of the theme listing query.
type ThemeListResponse struct {
	ContentThemes struct {
		Nodes []ThemeInfo `json:"nodes"`
	} `json:"contentThemes"`
}
