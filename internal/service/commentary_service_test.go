package service

import (
	"testing"

	"ai-sportscast-be/internal/dto"
	"ai-sportscast-be/internal/model"
	"ai-sportscast-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBroadcaster struct {
	events    []model.Event
	delivered int
}

func (b *recordingBroadcaster) Broadcast(event model.Event) int {
	b.events = append(b.events, event)
	return b.delivered
}

func TestPushCardBroadcasts(t *testing.T) {
	broadcaster := &recordingBroadcaster{delivered: 2}
	svc := NewCommentaryService(broadcaster, logger.NewNopLogger())

	res, err := svc.PushCard(&dto.PushCommentaryRequest{
		Type:    model.CardTypeMarketShift,
		Title:   "Odds moving",
		Content: "Pereira now heavy favorite",
		Highlight: &model.CardHighlight{
			Value: "-320",
			Label: "Moneyline",
		},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.CardID)
	assert.Equal(t, 2, res.Delivered)

	require.Len(t, broadcaster.events, 1)
	event := broadcaster.events[0]
	assert.Equal(t, model.EventPushCommentary, event.Type)
	assert.Equal(t, model.CardTypeMarketShift, event.Data["type"])
	assert.Equal(t, "Odds moving", event.Data["title"])
	assert.NotEmpty(t, event.Data["id"])
	assert.NotEmpty(t, event.Data["timestamp"])
}

func TestPushEventUpdateOnlySetFields(t *testing.T) {
	broadcaster := &recordingBroadcaster{delivered: 1}
	svc := NewCommentaryService(broadcaster, logger.NewNopLogger())

	prob := 0.62
	res, err := svc.PushEventUpdate(&dto.EventUpdateRequest{
		WinProbability: &prob,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Delivered)

	require.Len(t, broadcaster.events, 1)
	event := broadcaster.events[0]
	assert.Equal(t, model.EventPushEventUpdate, event.Type)
	assert.Equal(t, 0.62, event.Data["winProbability"])
	assert.NotContains(t, event.Data, "technicalScore")
}
