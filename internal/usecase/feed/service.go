// Package feed fetches and normalizes external syndication feeds: the
// podcast RSS feed published by the audio host and the YouTube channel
// feed. Both are parsed with gofeed and mapped to stable JSON shapes.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/ansrdlabs/contentd/internal/adapter"
	"github.com/ansrdlabs/contentd/internal/domain"
	"github.com/ansrdlabs/contentd/internal/metrics"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultMaxVideos = 6
	// Some feed hosts reject requests without a browser-looking agent.
	userAgent = "Mozilla/5.0 (compatible; contentd/1.0; +https://ansrdlabs.com)"

	youtubeFeedBase = "https://www.youtube.com/feeds/videos.xml?channel_id="
	// Descriptions on the videos page are previews, not transcripts.
	videoDescriptionLen = 150
)

// Config holds feed service settings.
type Config struct {
	Timeout          time.Duration
	YouTubeChannelID string
	MaxVideos        int
	Logger           *zap.Logger
}

// Service fetches podcast and YouTube feeds.
type Service struct {
	parser    *gofeed.Parser
	channelID string
	maxVideos int
	logger    *zap.Logger
}

// New creates a feed service with its own HTTP client.
func New(cfg Config) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxVideos <= 0 {
		cfg.MaxVideos = defaultMaxVideos
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = &http.Client{Timeout: cfg.Timeout}

	return &Service{
		parser:    parser,
		channelID: cfg.YouTubeChannelID,
		maxVideos: cfg.MaxVideos,
		logger:    cfg.Logger,
	}
}

// Podcast fetches and parses the podcast RSS feed at feedURL.
func (s *Service) Podcast(ctx context.Context, feedURL string) (*Podcast, error) {
	if strings.TrimSpace(feedURL) == "" {
		return nil, fmt.Errorf("%w: feed url is required", domain.ErrInvalidInput)
	}

	parsed, err := s.parse(ctx, "podcast", feedURL)
	if err != nil {
		return nil, err
	}

	out := &Podcast{
		Title:       parsed.Title,
		Link:        parsed.Link,
		Description: adapter.StripHTML(parsed.Description),
		Items:       make([]PodcastItem, 0, len(parsed.Items)),
	}
	if parsed.Image != nil {
		out.Image = parsed.Image.URL
	}

	for _, item := range parsed.Items {
		out.Items = append(out.Items, podcastItem(item))
	}
	return out, nil
}

// YouTubeVideos fetches the channel feed and returns the newest videos,
// capped at the configured maximum.
func (s *Service) YouTubeVideos(ctx context.Context) ([]Video, error) {
	if s.channelID == "" {
		return nil, fmt.Errorf("%w: youtube channel id is not set", domain.ErrNotConfigured)
	}

	parsed, err := s.parse(ctx, "youtube", youtubeFeedBase+s.channelID)
	if err != nil {
		return nil, err
	}

	videos := make([]Video, 0, s.maxVideos)
	for _, item := range parsed.Items {
		if len(videos) >= s.maxVideos {
			break
		}
		videos = append(videos, videoFromEntry(item))
	}
	return videos, nil
}

func (s *Service) parse(ctx context.Context, feed, url string) (*gofeed.Feed, error) {
	parsed, err := s.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		metrics.FeedRequestsTotal.WithLabelValues(feed, "error").Inc()
		s.logger.Warn("Feed fetch failed",
			zap.String("feed", feed), zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("%w: fetch %s feed: %v", domain.ErrUnavailable, feed, err)
	}
	metrics.FeedRequestsTotal.WithLabelValues(feed, "success").Inc()
	return parsed, nil
}

func podcastItem(item *gofeed.Item) PodcastItem {
	out := PodcastItem{
		Title:       strings.TrimSpace(item.Title),
		Link:        item.Link,
		Description: adapter.StripHTML(item.Description),
		GUID:        item.GUID,
		AudioURL:    extractAudioURL(item),
	}
	if item.PublishedParsed != nil {
		out.Published = item.PublishedParsed.Format(time.RFC3339)
	} else {
		out.Published = item.Published
	}
	if item.ITunesExt != nil {
		out.Duration = item.ITunesExt.Duration
		out.Episode = item.ITunesExt.Episode
		out.Image = item.ITunesExt.Image
	}
	if out.Image == "" && item.Image != nil {
		out.Image = item.Image.URL
	}
	return out
}

// audioExtensions are the enclosure suffixes accepted as playable audio.
var audioExtensions = []string{".mp3", ".m4a", ".wav", ".ogg"}

func hasAudioExtension(url string) bool {
	lower := strings.ToLower(url)
	for _, ext := range audioExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// extractAudioURL resolves the playable URL of a feed item. Preference
// order: an audio-typed enclosure, an enclosure with an audio file
// extension, an audio media:content element, then a GUID that is itself
// an .mp3 URL (some hosts put the file there and nowhere else).
func extractAudioURL(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "audio/") && enc.URL != "" {
			return enc.URL
		}
	}
	for _, enc := range item.Enclosures {
		if enc != nil && hasAudioExtension(enc.URL) {
			return enc.URL
		}
	}
	if media, ok := item.Extensions["media"]; ok {
		for _, content := range media["content"] {
			url := content.Attrs["url"]
			if url == "" {
				continue
			}
			if strings.HasPrefix(content.Attrs["type"], "audio/") || hasAudioExtension(url) {
				return url
			}
		}
	}
	if strings.HasSuffix(strings.ToLower(item.GUID), ".mp3") {
		return item.GUID
	}
	return ""
}

// videoFromEntry maps one Atom entry of a YouTube channel feed. The video
// id lives in the yt:videoId extension; description and thumbnail in the
// media:group element.
func videoFromEntry(item *gofeed.Item) Video {
	out := Video{
		Title: strings.TrimSpace(item.Title),
		Link:  item.Link,
	}
	if item.PublishedParsed != nil {
		out.Published = item.PublishedParsed.Format(time.RFC3339)
	} else {
		out.Published = item.Published
	}

	if yt, ok := item.Extensions["yt"]; ok {
		if ids := yt["videoId"]; len(ids) > 0 {
			out.ID = ids[0].Value
		}
	}
	if out.ID == "" {
		out.ID = strings.TrimPrefix(item.GUID, "yt:video:")
	}

	if media, ok := item.Extensions["media"]; ok {
		if groups := media["group"]; len(groups) > 0 {
			children := groups[0].Children
			if descs := children["description"]; len(descs) > 0 {
				out.Description = adapter.Truncate(strings.TrimSpace(descs[0].Value), videoDescriptionLen)
			}
			if thumbs := children["thumbnail"]; len(thumbs) > 0 {
				out.Thumbnail = thumbs[0].Attrs["url"]
			}
		}
	}
	return out
}
