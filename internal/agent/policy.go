package agent

import (
	"context"
	"strings"

	"ai-sportscast-be/internal/constant"
	"ai-sportscast-be/internal/pkg/logger"
)

// AnswerPolicy reviews a candidate final answer after the reasoning
// loop and may replace it. It exists because the reasoning backend is
// a black box: when its phrasing changes, swap the policy, not the
// orchestrator.
type AnswerPolicy interface {
	Review(ctx context.Context, question, answer string, req *RequestContext) (string, bool)
}

// ForcedSearchPolicy is the deterministic safety net for stalled
// answers: if the answer promises a future action, the question has
// athlete intent, and no search ran, it executes one search itself and
// substitutes a templated answer.
type ForcedSearchPolicy struct {
	searcher Searcher
	logger   logger.ILogger
}

func NewForcedSearchPolicy(searcher Searcher, log logger.ILogger) *ForcedSearchPolicy {
	return &ForcedSearchPolicy{searcher: searcher, logger: log}
}

func (p *ForcedSearchPolicy) Review(ctx context.Context, question, answer string, req *RequestContext) (string, bool) {
	if !IsStalling(answer) {
		return answer, false
	}

	p.logger.Warn("ForcedSearchPolicy", "Answer promised action without taking it", map[string]interface{}{
		"video_id": req.VideoID,
	})

	if !HasAthleteIntent(question) || req.Used(ToolSearch) {
		return answer, false
	}

	query := BuildFallbackQuery(req.VideoTitle)
	findings, err := p.searcher.Search(ctx, query, "people")
	if err != nil {
		p.logger.Warn("ForcedSearchPolicy", "Forced search failed", map[string]interface{}{
			"error": err.Error(),
			"query": query,
		})
		return answer, false
	}

	req.AddFindings(findings)
	req.Record(ToolSearch, map[string]interface{}{"query": query, "category": "people"}, "forced search")

	if len(findings) > 0 {
		return "Based on the event, I found profiles for the athletes. Check the cards for their stats and backgrounds!", true
	}
	return "I'm having trouble finding specific athlete information. Could you ask about a specific person by name?", true
}

// IsStalling reports whether the answer contains a phrase promising a
// future action instead of a result. The phrase list is best effort.
func IsStalling(answer string) bool {
	lower := strings.ToLower(answer)
	for _, phrase := range constant.StallingPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// HasAthleteIntent is the keyword heuristic for people questions.
func HasAthleteIntent(question string) bool {
	lower := strings.ToLower(question)
	for _, keyword := range constant.AthleteIntentKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// BuildFallbackQuery derives the forced-search query from the video
// title, enriched with a sport context term when the title names one.
func BuildFallbackQuery(videoTitle string) string {
	titleLower := strings.ToLower(videoTitle)
	for _, kw := range constant.SportKeywords {
		if strings.Contains(titleLower, kw.Token) {
			return videoTitle + " " + kw.Context + " professional athletes fighter stats"
		}
	}
	return videoTitle + " professional athletes stats"
}
