package service

import (
	"encoding/json"

	"ai-sportscast-be/internal/agent"
	"ai-sportscast-be/internal/dto"
	"ai-sportscast-be/internal/model"
	"ai-sportscast-be/internal/pkg/logger"
)

type ICommentaryService interface {
	PushCard(req *dto.PushCommentaryRequest) (*dto.PushCommentaryResponse, error)
	PushEventUpdate(req *dto.EventUpdateRequest) (*dto.EventUpdateResponse, error)
}

type commentaryService struct {
	broadcaster agent.Broadcaster
	log         logger.ILogger
}

func NewCommentaryService(broadcaster agent.Broadcaster, log logger.ILogger) ICommentaryService {
	return &commentaryService{
		broadcaster: broadcaster,
		log:         log,
	}
}

func (s *commentaryService) PushCard(req *dto.PushCommentaryRequest) (*dto.PushCommentaryResponse, error) {
	card := model.CommentaryCard{
		Type:       req.Type,
		Title:      req.Title,
		Content:    req.Content,
		Highlight:  req.Highlight,
		Comparison: req.Comparison,
	}
	card.Normalize()

	data, err := cardToData(card)
	if err != nil {
		return nil, err
	}

	delivered := s.broadcaster.Broadcast(model.NewEvent(model.EventPushCommentary, data))
	s.log.Info("commentary", "card pushed", map[string]interface{}{
		"card_id":   card.ID,
		"type":      card.Type,
		"delivered": delivered,
	})

	return &dto.PushCommentaryResponse{CardID: card.ID, Delivered: delivered}, nil
}

func (s *commentaryService) PushEventUpdate(req *dto.EventUpdateRequest) (*dto.EventUpdateResponse, error) {
	data := map[string]interface{}{}
	if req.WinProbability != nil {
		data["winProbability"] = *req.WinProbability
	}
	if req.ProbabilityChange != nil {
		data["probabilityChange"] = *req.ProbabilityChange
	}
	if req.TechnicalScore != nil {
		data["technicalScore"] = *req.TechnicalScore
	}
	if req.RiskWarning != nil {
		data["riskWarning"] = req.RiskWarning
	}

	delivered := s.broadcaster.Broadcast(model.NewEvent(model.EventPushEventUpdate, data))
	return &dto.EventUpdateResponse{Delivered: delivered}, nil
}

func cardToData(card model.CommentaryCard) (map[string]interface{}, error) {
	raw, err := json.Marshal(card)
	if err != nil {
		return nil, err
	}
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}
