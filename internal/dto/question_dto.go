package dto

import "ai-sportscast-be/internal/model"

type AskQuestionRequest struct {
	Question     string  `json:"question" validate:"required"`
	VideoID      string  `json:"video_id"`
	PlaybackTime float64 `json:"playback_time"`
	FrameBase64  string  `json:"frame_base64,omitempty"`
}

type ExplainSportRequest struct {
	Sport string `json:"sport" validate:"required"`
}

type ExplainSportResponse struct {
	Sport       string `json:"sport"`
	Explanation string `json:"explanation"`
	AudioURL    string `json:"audio_url,omitempty"`
}

type AskQuestionResponse struct {
	Answer           string                    `json:"answer"`
	AudioID          string                    `json:"-"`
	AudioURL         string                    `json:"audio_url,omitempty"`
	TranscriptWindow []model.TranscriptSegment `json:"transcript_window"`
	Sources          []string                  `json:"sources"`
	ToolsUsed        []string                  `json:"tools_used"`
}
