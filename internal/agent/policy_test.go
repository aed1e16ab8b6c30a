package agent

import (
	"context"
	"errors"
	"testing"

	"ai-sportscast-be/internal/pkg/logger"
	"ai-sportscast-be/pkg/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStalling(t *testing.T) {
	assert.True(t, IsStalling("Great question! I'm going to pull up their profiles now."))
	assert.True(t, IsStalling("Let me pull up the stats."))
	assert.False(t, IsStalling("Khabib retired undefeated at 29-0."))
}

func TestHasAthleteIntent(t *testing.T) {
	assert.True(t, HasAthleteIntent("Who are the fighters in this match?"))
	assert.True(t, HasAthleteIntent("Tell me about these players"))
	assert.False(t, HasAthleteIntent("What is the weather like?"))
}

func TestBuildFallbackQuery(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "known sport keyword enriches the query",
			title: "UFC 300: Pereira vs Hill",
			want:  "UFC 300: Pereira vs Hill UFC MMA professional athletes fighter stats",
		},
		{
			name:  "first keyword in table order wins",
			title: "NFL football highlights",
			want:  "NFL football highlights NFL football professional athletes fighter stats",
		},
		{
			name:  "no keyword falls back to generic query",
			title: "Chess speedrun",
			want:  "Chess speedrun professional athletes stats",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFallbackQuery(tt.title))
		})
	}
}

func TestReviewReplacesStalledAnswer(t *testing.T) {
	searcher := &stubSearcher{findings: []search.Finding{
		{Title: "Pereira profile", URL: "https://example.com/pereira"},
	}}
	policy := NewForcedSearchPolicy(searcher, logger.NewNopLogger())
	req := NewRequestContext("vid", 0, "UFC 300: Pereira vs Hill", "")

	answer, replaced := policy.Review(context.Background(),
		"who are the fighters?",
		"I'm going to pull up their profiles right now!",
		req)

	assert.True(t, replaced)
	assert.Contains(t, answer, "found profiles")
	require.Len(t, searcher.queries, 1)
	assert.Contains(t, searcher.queries[0], "UFC MMA")
	assert.True(t, req.Used(ToolSearch))
	assert.NotEmpty(t, req.Sources())
}

func TestReviewKeepsHealthyAnswer(t *testing.T) {
	searcher := &stubSearcher{}
	policy := NewForcedSearchPolicy(searcher, logger.NewNopLogger())
	req := NewRequestContext("vid", 0, "UFC 300", "")

	answer, replaced := policy.Review(context.Background(),
		"who are the fighters?",
		"Pereira faces Hill in the main event.",
		req)

	assert.False(t, replaced)
	assert.Equal(t, "Pereira faces Hill in the main event.", answer)
	assert.Empty(t, searcher.queries)
}

func TestReviewSkipsWhenSearchAlreadyRan(t *testing.T) {
	searcher := &stubSearcher{}
	policy := NewForcedSearchPolicy(searcher, logger.NewNopLogger())
	req := NewRequestContext("vid", 0, "UFC 300", "")
	req.Record(ToolSearch, nil, "prior search")

	answer, replaced := policy.Review(context.Background(),
		"who are the fighters?",
		"Let me pull up more on them.",
		req)

	assert.False(t, replaced)
	assert.Contains(t, answer, "Let me pull up")
	assert.Empty(t, searcher.queries)
}

func TestReviewNoAthleteIntent(t *testing.T) {
	searcher := &stubSearcher{}
	policy := NewForcedSearchPolicy(searcher, logger.NewNopLogger())
	req := NewRequestContext("vid", 0, "UFC 300", "")

	_, replaced := policy.Review(context.Background(),
		"what round is it?",
		"Let me pull up that information.",
		req)

	assert.False(t, replaced)
	assert.Empty(t, searcher.queries)
}

func TestReviewForcedSearchEmptyResults(t *testing.T) {
	policy := NewForcedSearchPolicy(&stubSearcher{}, logger.NewNopLogger())
	req := NewRequestContext("vid", 0, "UFC 300", "")

	answer, replaced := policy.Review(context.Background(),
		"who is fighting?",
		"I'll pull up the fighter info.",
		req)

	assert.True(t, replaced)
	assert.Contains(t, answer, "trouble finding")
}

func TestReviewForcedSearchError(t *testing.T) {
	policy := NewForcedSearchPolicy(&stubSearcher{err: errors.New("down")}, logger.NewNopLogger())
	req := NewRequestContext("vid", 0, "UFC 300", "")

	original := "I'll pull up the fighter info."
	answer, replaced := policy.Review(context.Background(), "who is fighting?", original, req)

	assert.False(t, replaced)
	assert.Equal(t, original, answer)
}
