package memory

import (
	"testing"

	"ai-sportscast-be/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptWindow(t *testing.T) {
	repo := NewTranscriptRepository()
	repo.Store("vid", []model.TranscriptSegment{
		{Start: 0, Duration: 10, Text: "a"},
		{Start: 40, Duration: 5, Text: "b"},
		{Start: 44, Duration: 10, Text: "c"},
	})

	tests := []struct {
		name      string
		at        float64
		window    float64
		wantTexts []string
	}{
		{
			name:      "window keeps recent and overlapping segments",
			at:        45,
			window:    30,
			wantTexts: []string{"b", "c"},
		},
		{
			name:      "segment overlapping the lower bound is kept",
			at:        12,
			window:    30,
			wantTexts: []string{"a"},
		},
		{
			name:      "position before any segment",
			at:        0,
			window:    30,
			wantTexts: []string{"a"},
		},
		{
			name:      "position far past the last segment",
			at:        500,
			window:    30,
			wantTexts: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repo.Window("vid", tt.at, tt.window)
			var texts []string
			for _, seg := range got {
				texts = append(texts, seg.Text)
			}
			assert.Equal(t, tt.wantTexts, texts)
		})
	}
}

func TestTranscriptWindowUnknownVideo(t *testing.T) {
	repo := NewTranscriptRepository()
	assert.Empty(t, repo.Window("missing", 10, 30))
}

func TestTranscriptAppend(t *testing.T) {
	repo := NewTranscriptRepository()
	repo.Append("live", model.TranscriptSegment{Start: 0, Duration: 2, Text: "first"})
	repo.Append("live", model.TranscriptSegment{Start: 2, Duration: 2, Text: "second"})

	full := repo.Full("live")
	require.Len(t, full, 2)
	assert.Equal(t, "first", full[0].Text)
	assert.Equal(t, "second", full[1].Text)
}

func TestTranscriptStoreReplacesAndCopies(t *testing.T) {
	repo := NewTranscriptRepository()
	source := []model.TranscriptSegment{{Start: 0, Duration: 1, Text: "x"}}
	repo.Store("vid", source)
	source[0].Text = "mutated"

	full := repo.Full("vid")
	require.Len(t, full, 1)
	assert.Equal(t, "x", full[0].Text)

	repo.Store("vid", []model.TranscriptSegment{{Start: 5, Duration: 1, Text: "y"}})
	full = repo.Full("vid")
	require.Len(t, full, 1)
	assert.Equal(t, "y", full[0].Text)
}
