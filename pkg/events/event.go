package events

// TopicVideoLoaded carries fire-and-forget notifications that a video
// session was created, consumed by the background research workers.
const TopicVideoLoaded = "video.loaded"

// VideoLoadedPayload is the message body published on TopicVideoLoaded.
type VideoLoadedPayload struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
	IsLive  bool   `json:"is_live"`
}
