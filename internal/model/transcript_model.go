package model

// TranscriptSegment is one timestamped line of commentary text.
// Start and Duration are in seconds.
type TranscriptSegment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// End returns the moment the segment stops covering.
func (s TranscriptSegment) End() float64 {
	return s.Start + s.Duration
}

// VideoMetadata is the cached per-video description fetched from the
// source platform.
type VideoMetadata struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

// ResearchSummary is what proactive background research leaves behind
// for a video: enough to warm later questions, nothing user-visible.
type ResearchSummary struct {
	Sport        string `json:"sport"`
	ProfileCount int    `json:"profile_count"`
	Query        string `json:"query"`
}
