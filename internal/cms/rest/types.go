package rest

// rendered is the WordPress {"rendered": "..."} wrapper.
type rendered struct {
	Rendered string `json:"rendered"`
}

type embeddedAuthor struct {
	Name string `json:"name"`
}

type embeddedMedia struct {
	SourceURL string `json:"source_url"`
}

type embeddedTerm struct {
	Name     string `json:"name"`
	Taxonomy string `json:"taxonomy"`
}

// embedded carries the relations included by ?_embed.
type embedded struct {
	Author        []embeddedAuthor `json:"author"`
	FeaturedMedia []embeddedMedia  `json:"wp:featuredmedia"`
	Terms         [][]embeddedTerm `json:"wp:term"`
}

// resource is one WordPress REST content object. Custom fields arrive as
// an untyped acf blob; adapters probe it by key.
type resource struct {
	ID       int            `json:"id"`
	Slug     string         `json:"slug"`
	Date     string         `json:"date"`
	Link     string         `json:"link"`
	Title    rendered       `json:"title"`
	Content  rendered       `json:"content"`
	Excerpt  rendered       `json:"excerpt"`
	ACF      map[string]any `json:"acf"`
	Embedded *embedded      `json:"_embedded"`
}
