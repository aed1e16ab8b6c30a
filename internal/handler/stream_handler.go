package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"ai-sportscast-be/internal/dto"
	"ai-sportscast-be/internal/model"
	"ai-sportscast-be/internal/pkg/logger"
	"ai-sportscast-be/internal/repository/memory"
	"ai-sportscast-be/internal/service"
	internalWS "ai-sportscast-be/internal/websocket"

	"github.com/gofiber/websocket/v2"
)

// StreamHandler owns both websocket surfaces: the viewer event channel
// and the live transcript ingest channel.
type StreamHandler struct {
	hub          *internalWS.Hub
	agentService service.IAgentService
	session      service.ISessionService
	audioRepo    *memory.AudioRepository
	log          logger.ILogger
}

func NewStreamHandler(
	hub *internalWS.Hub,
	agentService service.IAgentService,
	session service.ISessionService,
	audioRepo *memory.AudioRepository,
	log logger.ILogger,
) *StreamHandler {
	return &StreamHandler{
		hub:          hub,
		agentService: agentService,
		session:      session,
		audioRepo:    audioRepo,
		log:          log,
	}
}

// ServeEvents handles one viewer connection on /ws/events.
func (h *StreamHandler) ServeEvents(conn *websocket.Conn) {
	client := internalWS.NewClient(h.hub, conn)
	h.hub.Register(client)

	go client.WritePump()
	client.ReadPump(func(payload []byte) {
		var event model.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			h.log.Warn("stream", "unreadable event from viewer", map[string]interface{}{
				"client_id": client.ID.String(),
				"error":     err.Error(),
			})
			return
		}
		h.handleViewerEvent(client, event)
	})
}

func (h *StreamHandler) handleViewerEvent(client *internalWS.Client, event model.Event) {
	switch event.Type {
	case model.EventVoiceDetected:
		h.hub.SendTo(client, model.NewEvent(model.EventPauseVideo, nil))
	case model.EventPlaybackUpdate:
		// Position-only heartbeat, nothing to do server side.
	case model.EventQuestion:
		h.handleQuestion(client, event.Data)
	default:
		h.log.Warn("stream", "unknown event type from viewer", map[string]interface{}{
			"client_id": client.ID.String(),
			"type":      event.Type,
		})
	}
}

// handleQuestion runs the full spoken question flow: signal processing,
// answer, deliver audio, and always release the viewer at the end.
func (h *StreamHandler) handleQuestion(client *internalWS.Client, data map[string]interface{}) {
	h.hub.SendTo(client, model.NewEvent(model.EventProcessingStart, nil))
	defer h.hub.SendTo(client, model.NewEvent(model.EventProcessingComplete, nil))

	req := &dto.AskQuestionRequest{
		Question:     stringField(data, "question"),
		VideoID:      stringField(data, "video_id"),
		PlaybackTime: floatField(data, "playback_time"),
		FrameBase64:  stringField(data, "frame_base64"),
	}

	res, err := h.agentService.Answer(context.Background(), req)
	if err != nil {
		h.log.Error("stream", "failed to answer question", map[string]interface{}{
			"client_id": client.ID.String(),
			"error":     err.Error(),
		})
		h.hub.SendTo(client, model.NewEvent(model.EventError, map[string]interface{}{
			"message": "Sorry, I couldn't process that question. Please try again.",
		}))
		return
	}

	response := map[string]interface{}{
		"answer":     res.Answer,
		"sources":    res.Sources,
		"tools_used": res.ToolsUsed,
	}
	if res.AudioID != "" {
		if audio, ok := h.audioRepo.Get(res.AudioID); ok {
			response["audio_base64"] = base64.StdEncoding.EncodeToString(audio)
			response["audio_url"] = res.AudioURL
		}
	}

	h.hub.SendTo(client, model.NewEvent(model.EventAudioResponse, response))
}

// ServeTranscript handles one producer connection on /ws/transcript.
// Incoming live segments are appended to the store and fanned out to
// every viewer. The producer is not registered as a viewer, so it does
// not receive its own fanout.
func (h *StreamHandler) ServeTranscript(conn *websocket.Conn) {
	client := internalWS.NewClient(h.hub, conn)

	go client.WritePump()
	client.ReadPump(func(payload []byte) {
		var event model.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			h.log.Warn("stream", "unreadable transcript message", map[string]interface{}{
				"error": err.Error(),
			})
			return
		}
		if event.Type != model.EventLiveTranscript {
			return
		}
		h.handleLiveTranscript(event.Data)
	})
}

func (h *StreamHandler) handleLiveTranscript(data map[string]interface{}) {
	videoID := stringField(data, "video_id")
	if videoID == "" {
		return
	}

	segment := model.TranscriptSegment{
		Start:    floatField(data, "start"),
		Duration: floatField(data, "duration"),
		Text:     stringField(data, "text"),
	}
	h.session.AppendLive(videoID, segment)

	h.hub.Broadcast(model.NewEvent(model.EventTranscriptUpdate, map[string]interface{}{
		"video_id": videoID,
		"start":    segment.Start,
		"duration": segment.Duration,
		"text":     segment.Text,
	}))
}

func stringField(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func floatField(data map[string]interface{}, key string) float64 {
	if v, ok := data[key].(float64); ok {
		return v
	}
	return 0
}
