package llm

import (
	"context"
)

// ToolDefinition describes a capability the model may invoke.
// Parameters follow the JSON-schema object convention.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// ToolCall is an invocation the model requested.
type ToolCall struct {
	Name string
	Args map[string]interface{}
}

// ToolObservation is the textual result fed back for a ToolCall.
type ToolObservation struct {
	Name    string
	Content string
}

// Content is one turn of the running conversation. Exactly one of
// Text, Call or Observation is set.
type Content struct {
	Role        string // "user" or "model"
	Text        string
	Call        *ToolCall
	Observation *ToolObservation
}

// StepResult is what the model produced for one reasoning step:
// either tool calls to execute or a final text.
type StepResult struct {
	Text  string
	Calls []ToolCall
}

// Engine is the contract for the reasoning backend driving the
// tool-calling loop.
type Engine interface {
	// Step sends the conversation plus tool definitions and returns the
	// model's next move. Pass no tools to force plain generation.
	Step(ctx context.Context, system string, conversation []Content, tools []ToolDefinition) (*StepResult, error)

	// Generate sends a single prompt without tools (convenience method).
	Generate(ctx context.Context, prompt string) (string, error)
}
