package feed

// Podcast is a parsed podcast RSS feed.
type Podcast struct {
	Title       string        `json:"title"`
	Link        string        `json:"link"`
	Description string        `json:"description"`
	Image       string        `json:"image,omitempty"`
	Items       []PodcastItem `json:"items"`
}

// PodcastItem is one episode entry of a podcast feed.
type PodcastItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	GUID        string `json:"guid"`
	Published   string `json:"published"`
	AudioURL    string `json:"audioUrl"`
	Duration    string `json:"duration,omitempty"`
	Episode     string `json:"episode,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Video is one entry of a YouTube channel feed.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	Link        string `json:"link"`
	Published   string `json:"published"`
}
