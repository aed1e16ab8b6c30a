package platform

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"ai-sportscast-be/internal/model"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/live/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
}

var descriptionPattern = regexp.MustCompile(`<meta name="description" content="([^"]*)"`)

// ExtractVideoID pulls the 11-character id out of the URL forms the
// platform uses, or accepts a bare id.
func ExtractVideoID(url string) (string, bool) {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type timedTextDocument struct {
	XMLName xml.Name       `xml:"transcript"`
	Texts   []timedTextRow `xml:"text"`
}

type timedTextRow struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Body  string  `xml:",chardata"`
}

// Client fetches video metadata and captions without an API key, via
// the public oEmbed and timedtext endpoints.
type Client struct {
	client *http.Client
}

func NewClient() *Client {
	return &Client{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchMetadata resolves title/author/thumbnail through oEmbed and
// scrapes the description meta tag from the watch page. Partial
// results are fine; only a total oEmbed failure is an error.
func (c *Client) FetchMetadata(ctx context.Context, videoID string) (model.VideoMetadata, error) {
	meta := model.VideoMetadata{VideoID: videoID}

	oembedURL := fmt.Sprintf(
		"https://www.youtube.com/oembed?url=https://www.youtube.com/watch?v=%s&format=json",
		videoID,
	)
	body, err := c.get(ctx, oembedURL, "")
	if err != nil {
		return meta, fmt.Errorf("metadata fetch failed: %w", err)
	}

	var oembed oembedResponse
	if err := json.Unmarshal(body, &oembed); err != nil {
		return meta, fmt.Errorf("metadata parse failed: %w", err)
	}
	meta.Title = oembed.Title
	meta.Author = oembed.AuthorName
	meta.Thumbnail = oembed.ThumbnailURL

	// Description is best effort; the watch page may refuse us.
	pageURL := "https://www.youtube.com/watch?v=" + videoID
	if page, err := c.get(ctx, pageURL, "Mozilla/5.0"); err == nil {
		if m := descriptionPattern.FindSubmatch(page); m != nil {
			meta.Description = string(m[1])
		}
	}

	return meta, nil
}

// FetchTranscript retrieves English captions through the timedtext
// endpoint. Live streams typically have none; that is reported as
// (nil, false, nil), not an error.
func (c *Client) FetchTranscript(ctx context.Context, videoID string) ([]model.TranscriptSegment, bool, error) {
	url := fmt.Sprintf("https://video.google.com/timedtext?lang=en&v=%s", videoID)
	body, err := c.get(ctx, url, "")
	if err != nil {
		return nil, false, err
	}
	if len(body) == 0 {
		return nil, false, nil
	}

	var doc timedTextDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, false, nil
	}
	if len(doc.Texts) == 0 {
		return nil, false, nil
	}

	segments := make([]model.TranscriptSegment, 0, len(doc.Texts))
	for _, row := range doc.Texts {
		segments = append(segments, model.TranscriptSegment{
			Start:    row.Start,
			Duration: row.Dur,
			Text:     row.Body,
		})
	}
	return segments, true, nil
}

func (c *Client) get(ctx context.Context, url, userAgent string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status error, got status %d", res.StatusCode)
	}
	return io.ReadAll(res.Body)
}
