package dto

import "ai-sportscast-be/internal/model"

type PushCommentaryRequest struct {
	Type       string                `json:"type" validate:"required"`
	Title      string                `json:"title"`
	Content    string                `json:"content" validate:"required"`
	Highlight  *model.CardHighlight  `json:"highlight,omitempty"`
	Comparison *model.CardComparison `json:"comparison,omitempty"`
}

type PushCommentaryResponse struct {
	CardID    string `json:"card_id"`
	Delivered int    `json:"delivered"`
}

type EventUpdateRequest struct {
	WinProbability    *float64               `json:"winProbability,omitempty"`
	ProbabilityChange *float64               `json:"probabilityChange,omitempty"`
	TechnicalScore    *float64               `json:"technicalScore,omitempty"`
	RiskWarning       map[string]interface{} `json:"riskWarning,omitempty"`
}

type EventUpdateResponse struct {
	Delivered int `json:"delivered"`
}
