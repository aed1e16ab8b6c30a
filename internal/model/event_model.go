package model

// Server-emitted websocket event types.
const (
	EventPauseVideo         = "PAUSE_VIDEO"
	EventResumeVideo        = "RESUME_VIDEO"
	EventAudioResponse      = "AUDIO_RESPONSE"
	EventTranscriptUpdate   = "TRANSCRIPT_UPDATE"
	EventProcessingStart    = "PROCESSING_START"
	EventProcessingComplete = "PROCESSING_COMPLETE"
	EventError              = "ERROR"
	EventPushCommentary     = "PUSH_COMMENTARY"
	EventPushEventUpdate    = "PUSH_EVENT_UPDATE"
)

// Client-emitted websocket event types.
const (
	EventVoiceDetected  = "VOICE_DETECTED"
	EventPlaybackUpdate = "PLAYBACK_UPDATE"
	EventQuestion       = "QUESTION"
	EventLiveTranscript = "LIVE_TRANSCRIPT"
)

// Event is the envelope for every websocket message in both
// directions.
type Event struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// NewEvent builds an envelope with a non-nil data map.
func NewEvent(eventType string, data map[string]interface{}) Event {
	if data == nil {
		data = map[string]interface{}{}
	}
	return Event{Type: eventType, Data: data}
}
