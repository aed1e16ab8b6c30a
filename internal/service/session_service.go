package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-sportscast-be/internal/dto"
	"ai-sportscast-be/internal/model"
	"ai-sportscast-be/internal/pkg/logger"
	"ai-sportscast-be/internal/pkg/serverutils"
	"ai-sportscast-be/internal/repository/memory"
	"ai-sportscast-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gofiber/fiber/v2"
)

// PlatformClient fetches video metadata and transcripts from the hosting platform.
type PlatformClient interface {
	FetchMetadata(ctx context.Context, videoID string) (model.VideoMetadata, error)
	FetchTranscript(ctx context.Context, videoID string) ([]model.TranscriptSegment, bool, error)
}

type ISessionService interface {
	LoadVideo(ctx context.Context, url string) (*dto.LoadVideoResponse, error)
	GetTranscript(videoID string, start float64, end *float64) (*dto.GetTranscriptResponse, error)
	AppendLive(videoID string, segment model.TranscriptSegment)
	Window(videoID string, at float64) []model.TranscriptSegment
	ContextText(videoID string, at float64) string
	HasWindow(videoID string, at float64) bool
	EnsureMetadata(ctx context.Context, videoID string) (model.VideoMetadata, error)
}

type sessionService struct {
	platform      PlatformClient
	transcripts   *memory.TranscriptRepository
	metadata      *memory.MetadataRepository
	publisher     message.Publisher
	windowSeconds float64
	extractID     func(url string) (string, bool)
	log           logger.ILogger
}

func NewSessionService(
	platform PlatformClient,
	transcripts *memory.TranscriptRepository,
	metadata *memory.MetadataRepository,
	publisher message.Publisher,
	windowSeconds float64,
	extractID func(url string) (string, bool),
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		platform:      platform,
		transcripts:   transcripts,
		metadata:      metadata,
		publisher:     publisher,
		windowSeconds: windowSeconds,
		extractID:     extractID,
		log:           log,
	}
}

func (s *sessionService) LoadVideo(ctx context.Context, url string) (*dto.LoadVideoResponse, error) {
	videoID, ok := s.extractID(url)
	if !ok {
		return nil, serverutils.NewApiError(fiber.StatusBadRequest, "Invalid video URL. Please provide a valid YouTube link.")
	}

	meta, err := s.platform.FetchMetadata(ctx, videoID)
	if err != nil {
		s.log.Error("session", "failed to fetch video metadata", map[string]interface{}{
			"video_id": videoID,
			"error":    err.Error(),
		})
		meta = model.VideoMetadata{VideoID: videoID}
	}
	s.metadata.Store(videoID, meta)

	segments, hasCaptions, err := s.platform.FetchTranscript(ctx, videoID)
	if err != nil {
		s.log.Warn("session", "failed to fetch transcript", map[string]interface{}{
			"video_id": videoID,
			"error":    err.Error(),
		})
		segments = nil
		hasCaptions = false
	}
	s.transcripts.Store(videoID, segments)

	isLive := !hasCaptions && len(segments) == 0

	loadMessage := fmt.Sprintf("Video loaded with %d transcript entries.", len(segments))
	if isLive {
		loadMessage = "Live stream detected. Transcript will build up as the stream plays."
	}

	s.publishLoaded(videoID, meta.Title, isLive)

	return &dto.LoadVideoResponse{
		VideoID:     videoID,
		Title:       meta.Title,
		IsLive:      isLive,
		HasCaptions: hasCaptions,
		Message:     loadMessage,
	}, nil
}

func (s *sessionService) publishLoaded(videoID, title string, isLive bool) {
	payload, err := json.Marshal(events.VideoLoadedPayload{
		VideoID: videoID,
		Title:   title,
		IsLive:  isLive,
	})
	if err != nil {
		s.log.Error("session", "failed to marshal video loaded payload", map[string]interface{}{
			"video_id": videoID,
			"error":    err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.publisher.Publish(events.TopicVideoLoaded, msg); err != nil {
		s.log.Error("session", "failed to publish video loaded event", map[string]interface{}{
			"video_id": videoID,
			"error":    err.Error(),
		})
	}
}

func (s *sessionService) GetTranscript(videoID string, start float64, end *float64) (*dto.GetTranscriptResponse, error) {
	if !s.transcripts.Has(videoID) {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "No transcript found for this video.")
	}
	segments := s.transcripts.Full(videoID)

	filtered := make([]model.TranscriptSegment, 0, len(segments))
	for _, seg := range segments {
		if seg.Start < start {
			continue
		}
		if end != nil && seg.Start > *end {
			continue
		}
		filtered = append(filtered, seg)
	}

	return &dto.GetTranscriptResponse{
		VideoID:      videoID,
		Entries:      filtered,
		TotalEntries: len(segments),
	}, nil
}

func (s *sessionService) AppendLive(videoID string, segment model.TranscriptSegment) {
	s.transcripts.Append(videoID, segment)
}

func (s *sessionService) Window(videoID string, at float64) []model.TranscriptSegment {
	return s.transcripts.Window(videoID, at, s.windowSeconds)
}

func (s *sessionService) HasWindow(videoID string, at float64) bool {
	return len(s.Window(videoID, at)) > 0
}

// ContextText builds the grounding text for a playback position. It prefers
// the recent transcript window, falls back to stored metadata, and finally
// reports that nothing is known about the video.
func (s *sessionService) ContextText(videoID string, at float64) string {
	window := s.Window(videoID, at)
	if len(window) > 0 {
		var b strings.Builder
		b.WriteString("Recent commentary transcript:\n")
		for _, seg := range window {
			minutes := int(seg.Start) / 60
			seconds := int(seg.Start) % 60
			fmt.Fprintf(&b, "[%d:%02d] %s\n", minutes, seconds, seg.Text)
		}
		return strings.TrimRight(b.String(), "\n")
	}

	if meta, ok := s.metadata.Get(videoID); ok && (meta.Title != "" || meta.Author != "" || meta.Description != "") {
		var b strings.Builder
		b.WriteString("Video information (no transcript available):\n")
		if meta.Title != "" {
			fmt.Fprintf(&b, "Title: %s\n", meta.Title)
		}
		if meta.Author != "" {
			fmt.Fprintf(&b, "Channel: %s\n", meta.Author)
		}
		if meta.Description != "" {
			fmt.Fprintf(&b, "Description: %s\n", meta.Description)
		}
		return strings.TrimRight(b.String(), "\n")
	}

	return "No transcript or video information available."
}

func (s *sessionService) EnsureMetadata(ctx context.Context, videoID string) (model.VideoMetadata, error) {
	if meta, ok := s.metadata.Get(videoID); ok {
		return meta, nil
	}

	meta, err := s.platform.FetchMetadata(ctx, videoID)
	if err != nil {
		return model.VideoMetadata{}, err
	}
	s.metadata.Store(videoID, meta)
	return meta, nil
}
