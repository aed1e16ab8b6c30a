package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const exaBaseURL = "https://api.exa.ai"

// Finding is one search hit after normalization.
type Finding struct {
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Highlights []string `json:"highlights"`
	Score      float64  `json:"score"`
}

type exaRequest struct {
	Query      string       `json:"query"`
	Type       string       `json:"type"`
	NumResults int          `json:"numResults"`
	Category   string       `json:"category,omitempty"`
	Contents   *exaContents `json:"contents,omitempty"`
}

type exaContents struct {
	Highlights exaHighlights `json:"highlights"`
}

type exaHighlights struct {
	NumSentences     int `json:"numSentences"`
	HighlightsPerURL int `json:"highlightsPerUrl"`
}

type exaResponse struct {
	Results []struct {
		Title      string   `json:"title"`
		URL        string   `json:"url"`
		Highlights []string `json:"highlights"`
		Score      float64  `json:"score"`
	} `json:"results"`
}

// Client talks to the Exa search API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: exaBaseURL,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

// Search runs one query and returns filtered findings, capped at five.
// A people-category query without a sport signal term is first
// enhanced to disambiguate common names.
func (c *Client) Search(ctx context.Context, query, category string) ([]Finding, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("search is not configured")
	}

	payload := exaRequest{
		Query:      EnhanceQuery(query, category),
		Type:       "auto",
		NumResults: 8, // fetch extra so filtering still leaves enough
		Category:   category,
		Contents: &exaContents{
			Highlights: exaHighlights{NumSentences: 6, HighlightsPerURL: 6},
		},
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var exaRes exaResponse
	if err := json.Unmarshal(resBody, &exaRes); err != nil {
		return nil, err
	}

	findings := make([]Finding, 0, len(exaRes.Results))
	for _, r := range exaRes.Results {
		findings = append(findings, Finding{
			Title:      r.Title,
			URL:        r.URL,
			Highlights: r.Highlights,
			Score:      r.Score,
		})
	}

	return Filter(findings, category), nil
}
