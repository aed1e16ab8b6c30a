package model

import (
	"time"

	"github.com/google/uuid"
)

// Card types pushed to viewers.
const (
	CardTypeMarketShift   = "market_shift"
	CardTypeHistorical    = "historical"
	CardTypeAnalysis      = "analysis"
	CardTypeNarration     = "narration"
	CardTypePlayerProfile = "player_profile"
)

// CardHighlight is the optional emphasized block of a card.
type CardHighlight struct {
	Value string   `json:"value"`
	Label string   `json:"label,omitempty"`
	Image string   `json:"image,omitempty"`
	Stats []string `json:"stats,omitempty"`
}

// CardComparison pairs a current value against a record.
type CardComparison struct {
	Current float64 `json:"current"`
	Record  float64 `json:"record"`
	Note    string  `json:"note,omitempty"`
}

// CommentaryCard is a short structured unit of proactive information.
// Cards are broadcast once and never stored; a viewer joining later
// does not see past cards.
type CommentaryCard struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Timestamp  time.Time       `json:"timestamp"`
	Title      string          `json:"title,omitempty"`
	Content    string          `json:"content"`
	Highlight  *CardHighlight  `json:"highlight,omitempty"`
	Comparison *CardComparison `json:"comparison,omitempty"`
}

// Normalize assigns the auto fields when the producer left them empty.
func (c *CommentaryCard) Normalize() {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now()
	}
	if c.Type == "" {
		c.Type = CardTypeAnalysis
	}
}
