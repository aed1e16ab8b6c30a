package agent

import (
	"ai-sportscast-be/pkg/search"
)

// ToolInvocation is one tool round-trip within a single question.
type ToolInvocation struct {
	Tool   string
	Input  map[string]interface{}
	Output string
}

type cardKey struct {
	title    string
	cardType string
}

// RequestContext is the question-scoped state every tool mutates:
// search findings, pushed-card identity, the invocation record. It is
// allocated fresh per question and owned exclusively by that
// question's orchestrator, so no locking is needed — sharing one
// across requests is a bug.
type RequestContext struct {
	VideoID      string
	PlaybackTime float64
	VideoTitle   string
	FrameJPEG    string // base64 frame, empty when the client sent none

	findings    []search.Finding
	pushed      map[cardKey]struct{}
	invocations []ToolInvocation
}

func NewRequestContext(videoID string, playbackTime float64, videoTitle, frameJPEG string) *RequestContext {
	return &RequestContext{
		VideoID:      videoID,
		PlaybackTime: playbackTime,
		VideoTitle:   videoTitle,
		FrameJPEG:    frameJPEG,
		pushed:       make(map[cardKey]struct{}),
	}
}

// AddFindings appends search results discovered during this question.
func (c *RequestContext) AddFindings(findings []search.Finding) {
	c.findings = append(c.findings, findings...)
}

// Findings returns everything search produced for this question.
func (c *RequestContext) Findings() []search.Finding {
	return c.findings
}

// MarkPushed registers a card identity and reports whether it was new.
// The dedup key is (title, type), unique within one question.
func (c *RequestContext) MarkPushed(title, cardType string) bool {
	key := cardKey{title: title, cardType: cardType}
	if _, dup := c.pushed[key]; dup {
		return false
	}
	c.pushed[key] = struct{}{}
	return true
}

// Record appends one invocation to the turn record.
func (c *RequestContext) Record(tool string, input map[string]interface{}, output string) {
	c.invocations = append(c.invocations, ToolInvocation{Tool: tool, Input: input, Output: output})
}

// Used reports whether a tool ran at least once this question.
func (c *RequestContext) Used(tool string) bool {
	for _, inv := range c.invocations {
		if inv.Tool == tool {
			return true
		}
	}
	return false
}

// ToolsUsed returns the distinct tool names in first-use order.
func (c *RequestContext) ToolsUsed() []string {
	seen := make(map[string]struct{}, len(c.invocations))
	var out []string
	for _, inv := range c.invocations {
		if _, ok := seen[inv.Tool]; ok {
			continue
		}
		seen[inv.Tool] = struct{}{}
		out = append(out, inv.Tool)
	}
	return out
}

// Sources returns the URLs backing the collected findings.
func (c *RequestContext) Sources() []string {
	var out []string
	for _, f := range c.findings {
		if f.URL != "" {
			out = append(out, f.URL)
		}
	}
	return out
}
