package memory

import (
	"sync"

	"ai-sportscast-be/internal/model"
)

// MetadataRepository caches per-video metadata. Last writer wins, no
// eviction; entries live for the process lifetime.
type MetadataRepository struct {
	mu       sync.RWMutex
	metadata map[string]model.VideoMetadata
}

func NewMetadataRepository() *MetadataRepository {
	return &MetadataRepository{
		metadata: make(map[string]model.VideoMetadata),
	}
}

func (r *MetadataRepository) Store(videoID string, meta model.VideoMetadata) {
	r.mu.Lock()
	r.metadata[videoID] = meta
	r.mu.Unlock()
}

func (r *MetadataRepository) Get(videoID string) (model.VideoMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.metadata[videoID]
	return meta, ok
}
