package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"ai-sportscast-be/internal/model"
)

// ResearchRepository keeps per-video proactive research summaries.
// Entries outlive a single question but not the viewing session.
type ResearchRepository struct {
	cache *cache.Cache
}

func NewResearchRepository() *ResearchRepository {
	return &ResearchRepository{
		cache: cache.New(2*time.Hour, 15*time.Minute),
	}
}

func (r *ResearchRepository) Store(videoID string, summary model.ResearchSummary) {
	r.cache.Set(videoID, summary, cache.DefaultExpiration)
}

func (r *ResearchRepository) Get(videoID string) (model.ResearchSummary, bool) {
	if x, found := r.cache.Get(videoID); found {
		return x.(model.ResearchSummary), true
	}
	return model.ResearchSummary{}, false
}
