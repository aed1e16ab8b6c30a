package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"ai-sportscast-be/internal/agent"
	"ai-sportscast-be/internal/constant"
	"ai-sportscast-be/internal/model"
	"ai-sportscast-be/internal/pkg/logger"
	"ai-sportscast-be/internal/repository/memory"
	"ai-sportscast-be/pkg/llm"
)

type IMonitorService interface {
	StartProactiveResearch(videoID, title string)
	StartLiveMonitor(videoID string)
	StopLiveMonitor(videoID string)
	StopAll()
}

type monitorService struct {
	engine      llm.Engine
	searcher    agent.Searcher
	broadcaster agent.Broadcaster
	session     ISessionService
	research    *memory.ResearchRepository
	interval    time.Duration
	log         logger.ILogger

	mu       sync.Mutex
	monitors map[string]context.CancelFunc
}

func NewMonitorService(
	engine llm.Engine,
	searcher agent.Searcher,
	broadcaster agent.Broadcaster,
	session ISessionService,
	research *memory.ResearchRepository,
	interval time.Duration,
	log logger.ILogger,
) IMonitorService {
	return &monitorService{
		engine:      engine,
		searcher:    searcher,
		broadcaster: broadcaster,
		session:     session,
		research:    research,
		interval:    interval,
		log:         log,
		monitors:    make(map[string]context.CancelFunc),
	}
}

// StartProactiveResearch warms the research cache for a freshly loaded
// video. It is fire and forget: failures are logged and never surface
// to the caller.
func (s *monitorService) StartProactiveResearch(videoID, title string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		sport := s.detectSport(ctx, title)
		if sport == "" {
			s.log.Info("monitor", "no sport detected, skipping research", map[string]interface{}{
				"video_id": videoID,
				"title":    title,
			})
			return
		}

		query := title + " " + sport + " athletes profiles"
		findings, err := s.searcher.Search(ctx, query, "people")
		if err != nil {
			s.log.Warn("monitor", "proactive research search failed", map[string]interface{}{
				"video_id": videoID,
				"error":    err.Error(),
			})
			return
		}

		s.research.Store(videoID, model.ResearchSummary{
			Sport:        sport,
			ProfileCount: len(findings),
			Query:        query,
		})
		s.log.Info("monitor", "proactive research completed", map[string]interface{}{
			"video_id": videoID,
			"sport":    sport,
			"profiles": len(findings),
		})
	}()
}

// detectSport first matches the title against the known keyword table,
// then falls back to asking the model for a structured read of the title.
func (s *monitorService) detectSport(ctx context.Context, title string) string {
	titleLower := strings.ToLower(title)
	for _, kw := range constant.SportKeywords {
		if strings.Contains(titleLower, kw.Token) {
			return kw.Context
		}
	}

	raw, err := s.engine.Generate(ctx, fmt.Sprintf(constant.ResearchExtractionPrompt, title))
	if err != nil {
		return ""
	}
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var parsed struct {
		Sport string `json:"sport"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err != nil {
		return ""
	}
	return parsed.Sport
}

// StartLiveMonitor begins periodic commentary checks for a live stream.
// A second call for the same video cancels the previous monitor before
// starting the new one, so at most one runs per video.
func (s *monitorService) StartLiveMonitor(videoID string) {
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if prev, ok := s.monitors[videoID]; ok {
		prev()
	}
	s.monitors[videoID] = cancel
	s.mu.Unlock()

	go s.runMonitor(ctx, videoID)
}

func (s *monitorService) StopLiveMonitor(videoID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.monitors[videoID]; ok {
		cancel()
		delete(s.monitors, videoID)
	}
}

func (s *monitorService) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for videoID, cancel := range s.monitors {
		cancel()
		delete(s.monitors, videoID)
	}
}

func (s *monitorService) runMonitor(ctx context.Context, videoID string) {
	s.log.Info("monitor", "live monitor started", map[string]interface{}{
		"video_id": videoID,
		"interval": s.interval.String(),
	})

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	checkCount := 0
	for {
		select {
		case <-ctx.Done():
			s.log.Info("monitor", "live monitor stopped", map[string]interface{}{
				"video_id": videoID,
			})
			return
		case <-ticker.C:
			checkCount++
			s.checkOnce(videoID, checkCount)
		}
	}
}

// checkOnce runs a single monitor iteration. Errors are logged and the
// monitor keeps ticking.
func (s *monitorService) checkOnce(videoID string, checkCount int) {
	estimatedTime := float64(checkCount) * s.interval.Seconds()

	if !s.session.HasWindow(videoID, estimatedTime) {
		return
	}
	contextText := s.session.ContextText(videoID, estimatedTime)
	if len(contextText) < 50 {
		return
	}

	card := model.CommentaryCard{
		Type:    model.CardTypeNarration,
		Title:   "Live Update",
		Content: fmt.Sprintf("Currently around %.0f seconds into the stream. Recent commentary is coming in.", estimatedTime),
	}
	card.Normalize()

	data := map[string]interface{}{
		"id":        card.ID,
		"type":      card.Type,
		"timestamp": card.Timestamp,
		"title":     card.Title,
		"content":   card.Content,
	}
	delivered := s.broadcaster.Broadcast(model.NewEvent(model.EventPushCommentary, data))
	s.log.Info("monitor", "live update pushed", map[string]interface{}{
		"video_id":  videoID,
		"check":     checkCount,
		"delivered": delivered,
	})
}
