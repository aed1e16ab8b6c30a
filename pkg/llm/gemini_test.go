package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGeminiContentRoles(t *testing.T) {
	call := toGeminiContent(Content{Call: &ToolCall{Name: "search", Args: map[string]interface{}{"query": "a"}}})
	assert.Equal(t, "model", call.Role)
	require.Len(t, call.Parts, 1)
	require.NotNil(t, call.Parts[0].FunctionCall)
	assert.Equal(t, "search", call.Parts[0].FunctionCall.Name)

	obs := toGeminiContent(Content{Observation: &ToolObservation{Name: "search", Content: "results"}})
	assert.Equal(t, "user", obs.Role)
	require.NotNil(t, obs.Parts[0].FunctionResponse)
	assert.Equal(t, map[string]interface{}{"content": "results"}, obs.Parts[0].FunctionResponse.Response)

	text := toGeminiContent(Content{Role: "user", Text: "hello"})
	assert.Equal(t, "user", text.Role)
	assert.Equal(t, "hello", text.Parts[0].Text)
}

func newTestEngine(handler http.HandlerFunc) (*GeminiEngine, *httptest.Server) {
	srv := httptest.NewServer(handler)
	engine := &GeminiEngine{
		apiKey:  "test-key",
		baseURL: srv.URL,
		model:   "gemini-2.0-flash",
		client:  &http.Client{Timeout: time.Second},
	}
	return engine, srv
}

func TestStepParsesFunctionCall(t *testing.T) {
	engine, srv := newTestEngine(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req GeminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.SystemInstruction)
		require.Len(t, req.Tools, 1)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{{
				"content": map[string]interface{}{
					"role": "model",
					"parts": []map[string]interface{}{{
						"functionCall": map[string]interface{}{
							"name": "search",
							"args": map[string]interface{}{"query": "UFC 300"},
						},
					}},
				},
			}},
		})
	})
	defer srv.Close()

	result, err := engine.Step(context.Background(), "system prompt",
		[]Content{{Role: "user", Text: "who is fighting?"}},
		[]ToolDefinition{{Name: "search", Parameters: map[string]interface{}{"type": "object"}}},
	)
	require.NoError(t, err)

	require.Len(t, result.Calls, 1)
	assert.Equal(t, "search", result.Calls[0].Name)
	assert.Equal(t, "UFC 300", result.Calls[0].Args["query"])
	assert.Empty(t, result.Text)
}

func TestStepParsesText(t *testing.T) {
	engine, srv := newTestEngine(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{{
				"content": map[string]interface{}{
					"role":  "model",
					"parts": []map[string]interface{}{{"text": "Pereira faces Hill."}},
				},
			}},
		})
	})
	defer srv.Close()

	result, err := engine.Step(context.Background(), "", []Content{{Role: "user", Text: "q"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Pereira faces Hill.", result.Text)
	assert.Empty(t, result.Calls)
}

func TestStepSurfacesAPIError(t *testing.T) {
	engine, srv := newTestEngine(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"code": 429, "message": "quota"}}`))
	})
	defer srv.Close()

	_, err := engine.Step(context.Background(), "", []Content{{Role: "user", Text: "q"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestStepNoCandidates(t *testing.T) {
	engine, srv := newTestEngine(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})
	defer srv.Close()

	_, err := engine.Step(context.Background(), "", []Content{{Role: "user", Text: "q"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}
