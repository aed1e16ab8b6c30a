package dto

import "ai-sportscast-be/internal/model"

type LoadVideoRequest struct {
	URL string `json:"url" validate:"required"`
}

type LoadVideoResponse struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	IsLive      bool   `json:"is_live"`
	HasCaptions bool   `json:"has_captions"`
	Message     string `json:"message"`
}

type GetTranscriptResponse struct {
	VideoID      string                    `json:"video_id"`
	Entries      []model.TranscriptSegment `json:"entries"`
	TotalEntries int                       `json:"total_entries"`
}
