package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiPart struct {
	Text             string                  `json:"text,omitempty"`
	FunctionCall     *GeminiFunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *GeminiFunctionResponse `json:"functionResponse,omitempty"`
}

type GeminiFunctionCall struct {
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args"`
}

type GeminiFunctionResponse struct {
	Name     string                 `json:"name"`
	Response map[string]interface{} `json:"response"`
}

type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

type GeminiFunctionDeclaration struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`
}

type GeminiTool struct {
	FunctionDeclarations []GeminiFunctionDeclaration `json:"functionDeclarations"`
}

type GeminiRequest struct {
	Contents          []GeminiContent `json:"contents"`
	SystemInstruction *GeminiContent  `json:"systemInstruction,omitempty"`
	Tools             []GeminiTool    `json:"tools,omitempty"`
}

type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []GeminiPart `json:"parts"`
			Role  string       `json:"role"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// GeminiEngine implements Engine over the generativelanguage REST API.
type GeminiEngine struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewGeminiEngine(apiKey, model string) *GeminiEngine {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiEngine{
		apiKey:  apiKey,
		baseURL: geminiBaseURL,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *GeminiEngine) Step(ctx context.Context, system string, conversation []Content, tools []ToolDefinition) (*StepResult, error) {
	contents := make([]GeminiContent, 0, len(conversation))
	for _, turn := range conversation {
		contents = append(contents, toGeminiContent(turn))
	}

	payload := GeminiRequest{Contents: contents}
	if system != "" {
		payload.SystemInstruction = &GeminiContent{
			Parts: []GeminiPart{{Text: system}},
		}
	}
	if len(tools) > 0 {
		decls := make([]GeminiFunctionDeclaration, len(tools))
		for i, t := range tools {
			decls[i] = GeminiFunctionDeclaration{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			}
		}
		payload.Tools = []GeminiTool{{FunctionDeclarations: decls}}
	}

	res, err := e.generateContent(ctx, payload)
	if err != nil {
		return nil, err
	}

	result := &StepResult{}
	for _, part := range res.Candidates[0].Content.Parts {
		if part.FunctionCall != nil {
			result.Calls = append(result.Calls, ToolCall{
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			})
		}
		if part.Text != "" {
			result.Text += part.Text
		}
	}
	return result, nil
}

func (e *GeminiEngine) Generate(ctx context.Context, prompt string) (string, error) {
	res, err := e.generateContent(ctx, GeminiRequest{
		Contents: []GeminiContent{
			{Role: "user", Parts: []GeminiPart{{Text: prompt}}},
		},
	})
	if err != nil {
		return "", err
	}

	var text string
	for _, part := range res.Candidates[0].Content.Parts {
		text += part.Text
	}
	return text, nil
}

func (e *GeminiEngine) generateContent(ctx context.Context, payload GeminiRequest) (*GeminiResponse, error) {
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", e.baseURL, e.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := e.client.Do(req)
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

	var geminiRes GeminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return nil, err
	}
	if geminiRes.Error != nil {
		return nil, fmt.Errorf("gemini error %d: %s", geminiRes.Error.Code, geminiRes.Error.Message)
	}
	if len(geminiRes.Candidates) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}
	return &geminiRes, nil
}

func toGeminiContent(turn Content) GeminiContent {
	switch {
	case turn.Call != nil:
		return GeminiContent{
			Role: "model",
			Parts: []GeminiPart{{
				FunctionCall: &GeminiFunctionCall{Name: turn.Call.Name, Args: turn.Call.Args},
			}},
		}
	case turn.Observation != nil:
		return GeminiContent{
			Role: "user",
			Parts: []GeminiPart{{
				FunctionResponse: &GeminiFunctionResponse{
					Name:     turn.Observation.Name,
					Response: map[string]interface{}{"content": turn.Observation.Content},
				},
			}},
		}
	default:
		return GeminiContent{
			Role:  turn.Role,
			Parts: []GeminiPart{{Text: turn.Text}},
		}
	}
}
