package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnhanceQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		category string
		want     string
	}{
		{
			name:     "bare name gets athlete context",
			query:    "Conor McGregor",
			category: CategoryPeople,
			want:     "Conor McGregor professional athlete fighter",
		},
		{
			name:     "query with sport signal is untouched",
			query:    "Conor McGregor UFC record",
			category: CategoryPeople,
			want:     "Conor McGregor UFC record",
		},
		{
			name:     "non-people category is untouched",
			query:    "Conor McGregor",
			category: "",
			want:     "Conor McGregor",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnhanceQuery(tt.query, tt.category))
		})
	}
}

func TestFilterDropsSpam(t *testing.T) {
	findings := []Finding{
		{Title: "Alex Pereira UFC champion", URL: "https://ufc.com/pereira"},
		{Title: "McGregor Projects property maintenance Ltd", URL: "https://example.biz"},
		{Title: "Crypto mining with fighter tokens", URL: "https://cryptocurrency.example"},
	}

	out := Filter(findings, "")
	require.Len(t, out, 1)
	assert.Equal(t, "Alex Pereira UFC champion", out[0].Title)
}

func TestFilterPeopleRequiresSportSignal(t *testing.T) {
	findings := []Finding{
		{Title: "Alex Pereira", Highlights: []string{"former kickboxing champion, now UFC"}, URL: "https://example.com/a"},
		{Title: "Alex Pereira", Highlights: []string{"accountant in Porto"}, URL: "https://example.com/b"},
		{Title: "Jamahal Hill", URL: "https://mma.example.com/hill"},
	}

	out := Filter(findings, CategoryPeople)
	require.Len(t, out, 2)
	assert.Equal(t, "https://example.com/a", out[0].URL)
	assert.Equal(t, "https://mma.example.com/hill", out[1].URL)
}

func TestFilterCapsResults(t *testing.T) {
	var findings []Finding
	for i := 0; i < 10; i++ {
		findings = append(findings, Finding{Title: "UFC fighter", URL: "https://example.com"})
	}
	assert.Len(t, Filter(findings, CategoryPeople), 5)
}

func TestCondense(t *testing.T) {
	out := Condense([]Finding{
		{Title: "Pereira profile", Highlights: []string{"champ at 205"}, URL: "https://example.com/p"},
		{Title: "Hill profile", URL: "https://example.com/h"},
	})

	assert.True(t, strings.HasPrefix(out, "1. Pereira profile"))
	assert.Contains(t, out, "champ at 205")
	assert.Contains(t, out, "2. Hill profile")
	assert.Contains(t, out, "Source: https://example.com/h")
}

func TestCondenseEmpty(t *testing.T) {
	assert.Equal(t, "No relevant results found.", Condense(nil))
}
