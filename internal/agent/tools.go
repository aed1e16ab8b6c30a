package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-sportscast-be/internal/model"
	"ai-sportscast-be/internal/pkg/logger"
	"ai-sportscast-be/pkg/llm"
	"ai-sportscast-be/pkg/search"
)

// Tool names exposed to the reasoning engine.
const (
	ToolSearch           = "search"
	ToolPushCard         = "push_card"
	ToolTranscriptWindow = "get_transcript_window"
	ToolMetadata         = "get_metadata"
	ToolAnalyzeFrame     = "analyze_frame"
)

// Searcher runs one web search query.
type Searcher interface {
	Search(ctx context.Context, query, category string) ([]search.Finding, error)
}

// Broadcaster fans an event out to all connected viewers.
type Broadcaster interface {
	Broadcast(event model.Event) int
}

// TranscriptSource provides grounding text around a playback position.
type TranscriptSource interface {
	ContextText(videoID string, at float64) string
	HasWindow(videoID string, at float64) bool
}

// MetadataSource provides the cached per-video metadata.
type MetadataSource interface {
	Get(videoID string) (model.VideoMetadata, bool)
}

// FrameAnalyzer describes a supplied video frame.
type FrameAnalyzer interface {
	AnalyzeFrame(ctx context.Context, focus, jpegBase64 string) (string, error)
}

// Toolset binds the tools to one question's RequestContext. Every
// collaborator failure is converted to a plain-text observation so the
// reasoning loop can route around it instead of dying.
type Toolset struct {
	req         *RequestContext
	searcher    Searcher
	broadcaster Broadcaster
	transcripts TranscriptSource
	metadata    MetadataSource
	analyzer    FrameAnalyzer
	logger      logger.ILogger
}

func NewToolset(
	req *RequestContext,
	searcher Searcher,
	broadcaster Broadcaster,
	transcripts TranscriptSource,
	metadata MetadataSource,
	analyzer FrameAnalyzer,
	log logger.ILogger,
) *Toolset {
	return &Toolset{
		req:         req,
		searcher:    searcher,
		broadcaster: broadcaster,
		transcripts: transcripts,
		metadata:    metadata,
		analyzer:    analyzer,
		logger:      log,
	}
}

// Definitions lists the tools offered for this question. analyze_frame
// is present only when the client supplied a frame.
func (t *Toolset) Definitions() []llm.ToolDefinition {
	defs := []llm.ToolDefinition{
		{
			Name:        ToolSearch,
			Description: "Search the web for current information about sports events, players, statistics, records and news. Set category=\"people\" when searching for athletes.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query":    map[string]interface{}{"type": "string", "description": "Search query, e.g. \"Khabib Nurmagomedov UFC stats and profile\""},
					"category": map[string]interface{}{"type": "string", "description": "Optional category filter: \"people\" for athletes, \"news\" for articles, omit for general search"},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        ToolPushCard,
			Description: "Push an information card to the viewer interface in real time. Use this to share player profiles, stats or facts as you discover them.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"title":      map[string]interface{}{"type": "string"},
					"content":    map[string]interface{}{"type": "string"},
					"type":       map[string]interface{}{"type": "string", "description": "player_profile for athletes, historical for facts, analysis for insights"},
					"source_url": map[string]interface{}{"type": "string"},
					"image_url":  map[string]interface{}{"type": "string"},
					"stats":      map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
				},
				"required": []string{"title", "content"},
			},
		},
		{
			Name:        ToolTranscriptWindow,
			Description: "Get recent commentary/captions around the current playback position of the current video.",
			Parameters: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        ToolMetadata,
			Description: "Get the current video's title, channel and description.",
			Parameters: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}

	if t.req.FrameJPEG != "" {
		defs = append(defs, llm.ToolDefinition{
			Name:        ToolAnalyzeFrame,
			Description: "Analyze the current video frame to see what is happening right now.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"focus": map[string]interface{}{"type": "string", "description": "What to focus on, e.g. \"identify athletes\", \"describe action\", \"score\""},
				},
			},
		})
	}

	return defs
}

// Execute runs one tool call and returns the observation text. The
// invocation is recorded on the request context either way.
func (t *Toolset) Execute(ctx context.Context, call llm.ToolCall) string {
	var output string
	switch call.Name {
	case ToolSearch:
		output = t.runSearch(ctx, call.Args)
	case ToolPushCard:
		output = t.runPushCard(call.Args)
	case ToolTranscriptWindow:
		output = t.runTranscriptWindow()
	case ToolMetadata:
		output = t.runMetadata()
	case ToolAnalyzeFrame:
		output = t.runAnalyzeFrame(ctx, call.Args)
	default:
		output = fmt.Sprintf("Unknown tool %q. Use one of the offered tools.", call.Name)
	}

	t.req.Record(call.Name, call.Args, output)
	return output
}

func (t *Toolset) runSearch(ctx context.Context, args map[string]interface{}) string {
	query := stringArg(args, "query")
	if query == "" {
		return "Search needs a non-empty query."
	}
	category := stringArg(args, "category")

	findings, err := t.searcher.Search(ctx, query, category)
	if err != nil {
		t.logger.Warn("Toolset", "Search collaborator failed", map[string]interface{}{
			"error": err.Error(),
			"query": query,
		})
		return "Search is temporarily unavailable. Use the transcript and video metadata instead."
	}

	t.req.AddFindings(findings)
	return search.Condense(findings)
}

func (t *Toolset) runPushCard(args map[string]interface{}) string {
	title := stringArg(args, "title")
	content := stringArg(args, "content")
	cardType := stringArg(args, "type")
	if cardType == "" {
		cardType = model.CardTypeAnalysis
	}

	if !t.req.MarkPushed(title, cardType) {
		return fmt.Sprintf("Card %q was already pushed for this question, skipped.", title)
	}

	card := model.CommentaryCard{
		Type:    cardType,
		Title:   title,
		Content: content,
	}
	sourceURL := stringArg(args, "source_url")
	imageURL := stringArg(args, "image_url")
	stats := stringSliceArg(args, "stats")
	if sourceURL != "" || imageURL != "" || len(stats) > 0 {
		highlight := &model.CardHighlight{
			Value: sourceURL,
			Image: imageURL,
			Stats: stats,
		}
		if sourceURL != "" {
			highlight.Label = "Source"
		}
		card.Highlight = highlight
	}
	card.Normalize()

	delivered := t.broadcaster.Broadcast(model.NewEvent(model.EventPushCommentary, cardToData(card)))
	return fmt.Sprintf("Card pushed: %s (delivered to %d viewers)", title, delivered)
}

func (t *Toolset) runTranscriptWindow() string {
	if !t.transcripts.HasWindow(t.req.VideoID, t.req.PlaybackTime) {
		return "No transcript available for this stream. This is likely a live event without captions. You can still answer based on the video metadata and search for information about the event."
	}
	return t.transcripts.ContextText(t.req.VideoID, t.req.PlaybackTime)
}

func (t *Toolset) runMetadata() string {
	meta, ok := t.metadata.Get(t.req.VideoID)
	if !ok {
		// Fall back to what the orchestrator already knows.
		fallback := map[string]string{
			"title":       t.req.VideoTitle,
			"author":      "Unknown",
			"description": "Metadata temporarily unavailable. You can still search for information about this event.",
		}
		out, _ := json.MarshalIndent(fallback, "", "  ")
		return string(out)
	}

	out, _ := json.MarshalIndent(map[string]string{
		"title":       meta.Title,
		"author":      meta.Author,
		"description": meta.Description,
	}, "", "  ")
	return string(out)
}

func (t *Toolset) runAnalyzeFrame(ctx context.Context, args map[string]interface{}) string {
	focus := stringArg(args, "focus")
	if focus == "" {
		focus = "general"
	}

	description, err := t.analyzer.AnalyzeFrame(ctx, focus, t.req.FrameJPEG)
	if err != nil {
		t.logger.Warn("Toolset", "Frame analysis failed", map[string]interface{}{
			"error": err.Error(),
		})
		return "Frame analysis is temporarily unavailable. Use the transcript to tell what is happening instead."
	}
	return description
}

func cardToData(card model.CommentaryCard) map[string]interface{} {
	raw, _ := json.Marshal(card)
	var data map[string]interface{}
	_ = json.Unmarshal(raw, &data)
	return data
}

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func stringSliceArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
