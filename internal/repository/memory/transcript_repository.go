package memory

import (
	"sync"

	"ai-sportscast-be/internal/model"
)

// TranscriptRepository holds per-video transcript segments in memory.
// Live streams append out of strict order; queries scan regardless of
// order, so append stays O(1).
type TranscriptRepository struct {
	mu       sync.RWMutex
	segments map[string][]model.TranscriptSegment
}

func NewTranscriptRepository() *TranscriptRepository {
	return &TranscriptRepository{
		segments: make(map[string][]model.TranscriptSegment),
	}
}

// Store replaces the whole transcript for a video.
func (r *TranscriptRepository) Store(videoID string, segments []model.TranscriptSegment) {
	copied := make([]model.TranscriptSegment, len(segments))
	copy(copied, segments)

	r.mu.Lock()
	r.segments[videoID] = copied
	r.mu.Unlock()
}

// Append adds one live segment.
func (r *TranscriptRepository) Append(videoID string, segment model.TranscriptSegment) {
	r.mu.Lock()
	r.segments[videoID] = append(r.segments[videoID], segment)
	r.mu.Unlock()
}

// Window returns the segments covering [center-window, center]. A
// segment that started before the window but still overlaps its lower
// edge is included. The lower edge is clamped to zero. Unknown videos
// yield an empty slice.
func (r *TranscriptRepository) Window(videoID string, centerTime, windowSeconds float64) []model.TranscriptSegment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.segments[videoID]
	if len(stored) == 0 {
		return nil
	}

	lower := centerTime - windowSeconds
	if lower < 0 {
		lower = 0
	}

	var out []model.TranscriptSegment
	for _, s := range stored {
		inWindow := s.Start >= lower && s.Start <= centerTime
		overlapsEdge := s.Start <= lower && s.End() >= lower
		if inWindow || overlapsEdge {
			out = append(out, s)
		}
	}
	return out
}

// Has reports whether a transcript slot exists for the video, even an
// empty one. Live streams start with zero segments.
func (r *TranscriptRepository) Has(videoID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.segments[videoID]
	return ok
}

// Full returns a copy of everything stored for a video.
func (r *TranscriptRepository) Full(videoID string) []model.TranscriptSegment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.segments[videoID]
	if len(stored) == 0 {
		return nil
	}
	out := make([]model.TranscriptSegment, len(stored))
	copy(out, stored)
	return out
}
