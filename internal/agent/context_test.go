package agent

import (
	"testing"

	"ai-sportscast-be/pkg/search"

	"github.com/stretchr/testify/assert"
)

func TestMarkPushedDedup(t *testing.T) {
	req := NewRequestContext("vid", 10, "UFC 300", "")

	assert.True(t, req.MarkPushed("Khabib", "player_profile"))
	assert.False(t, req.MarkPushed("Khabib", "player_profile"))

	// same title with a different type is a new card
	assert.True(t, req.MarkPushed("Khabib", "historical"))
	assert.True(t, req.MarkPushed("Poirier", "player_profile"))
}

func TestToolsUsedFirstUseOrder(t *testing.T) {
	req := NewRequestContext("vid", 0, "", "")
	req.Record(ToolSearch, nil, "out")
	req.Record(ToolPushCard, nil, "out")
	req.Record(ToolSearch, nil, "out")
	req.Record(ToolMetadata, nil, "out")

	assert.Equal(t, []string{ToolSearch, ToolPushCard, ToolMetadata}, req.ToolsUsed())
	assert.True(t, req.Used(ToolPushCard))
	assert.False(t, req.Used(ToolAnalyzeFrame))
}

func TestSourcesSkipEmptyURLs(t *testing.T) {
	req := NewRequestContext("vid", 0, "", "")
	req.AddFindings([]search.Finding{
		{Title: "profile", URL: "https://example.com/a"},
		{Title: "no url"},
		{Title: "news", URL: "https://example.com/b"},
	})

	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, req.Sources())
}
