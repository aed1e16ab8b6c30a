package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const geminiVisionURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

// Analyzer describes what is happening in a single video frame.
type Analyzer interface {
	AnalyzeFrame(ctx context.Context, focus, jpegBase64 string) (string, error)
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type visionPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type visionContent struct {
	Role  string       `json:"role"`
	Parts []visionPart `json:"parts"`
}

type visionRequest struct {
	Contents []visionContent `json:"contents"`
}

type visionResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GeminiAnalyzer implements Analyzer via Gemini multimodal input.
type GeminiAnalyzer struct {
	apiKey string
	model  string
	client *http.Client
}

func NewGeminiAnalyzer(apiKey, model string) *GeminiAnalyzer {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiAnalyzer{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 45 * time.Second},
	}
}

func (a *GeminiAnalyzer) AnalyzeFrame(ctx context.Context, focus, jpegBase64 string) (string, error) {
	if jpegBase64 == "" {
		return "", fmt.Errorf("no frame provided")
	}

	prompt := fmt.Sprintf("Describe what's happening in this sports event frame. Focus on: %s. Be concise and descriptive.", focus)
	payload := visionRequest{
		Contents: []visionContent{{
			Role: "user",
			Parts: []visionPart{
				{Text: prompt},
				{InlineData: &inlineData{MimeType: "image/jpeg", Data: jpegBase64}},
			},
		}},
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf(geminiVisionURL, a.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var visionRes visionResponse
	if err := json.Unmarshal(resBody, &visionRes); err != nil {
		return "", err
	}
	if len(visionRes.Candidates) == 0 || len(visionRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty vision response")
	}
	return visionRes.Candidates[0].Content.Parts[0].Text, nil
}
