package service

import (
	"context"
	"fmt"

	"ai-sportscast-be/internal/agent"
	"ai-sportscast-be/internal/constant"
	"ai-sportscast-be/internal/dto"
	"ai-sportscast-be/internal/pkg/logger"
	"ai-sportscast-be/internal/repository/memory"
	"ai-sportscast-be/pkg/llm"
	"ai-sportscast-be/pkg/tts"
)

type IAgentService interface {
	Answer(ctx context.Context, req *dto.AskQuestionRequest) (*dto.AskQuestionResponse, error)
	Explain(ctx context.Context, req *dto.ExplainSportRequest) (*dto.ExplainSportResponse, error)
}

type agentService struct {
	engine        llm.Engine
	searcher      agent.Searcher
	broadcaster   agent.Broadcaster
	session       ISessionService
	metadata      *memory.MetadataRepository
	audio         *memory.AudioRepository
	synthesizer   tts.Synthesizer
	analyzer      agent.FrameAnalyzer
	policy        agent.AnswerPolicy
	maxIterations int
	log           logger.ILogger
}

func NewAgentService(
	engine llm.Engine,
	searcher agent.Searcher,
	broadcaster agent.Broadcaster,
	session ISessionService,
	metadata *memory.MetadataRepository,
	audio *memory.AudioRepository,
	synthesizer tts.Synthesizer,
	analyzer agent.FrameAnalyzer,
	policy agent.AnswerPolicy,
	maxIterations int,
	log logger.ILogger,
) IAgentService {
	return &agentService{
		engine:        engine,
		searcher:      searcher,
		broadcaster:   broadcaster,
		session:       session,
		metadata:      metadata,
		audio:         audio,
		synthesizer:   synthesizer,
		analyzer:      analyzer,
		policy:        policy,
		maxIterations: maxIterations,
		log:           log,
	}
}

func (s *agentService) Answer(ctx context.Context, req *dto.AskQuestionRequest) (*dto.AskQuestionResponse, error) {
	if req.VideoID == "" {
		return &dto.AskQuestionResponse{
			Answer:           "I need a video to be loaded first. Please load a video and try again.",
			TranscriptWindow: nil,
			Sources:          []string{},
			ToolsUsed:        []string{},
		}, nil
	}

	meta, err := s.session.EnsureMetadata(ctx, req.VideoID)
	if err != nil {
		s.log.Error("agent", "failed to fetch metadata before answering", map[string]interface{}{
			"video_id": req.VideoID,
			"error":    err.Error(),
		})
		return &dto.AskQuestionResponse{
			Answer:    "I'm having trouble accessing the video information. Please try reloading the video.",
			Sources:   []string{},
			ToolsUsed: []string{},
		}, nil
	}

	reqCtx := agent.NewRequestContext(req.VideoID, req.PlaybackTime, meta.Title, req.FrameBase64)
	toolset := agent.NewToolset(reqCtx, s.searcher, s.broadcaster, s.session, s.metadata, s.analyzer, s.log)

	answer := s.runLoop(ctx, req.Question, reqCtx, toolset)
	answer, forced := s.policy.Review(ctx, req.Question, answer, reqCtx)
	if forced {
		s.log.Info("agent", "stalling answer replaced by forced search", map[string]interface{}{
			"video_id": req.VideoID,
		})
	}

	resp := &dto.AskQuestionResponse{
		Answer:           answer,
		TranscriptWindow: s.session.Window(req.VideoID, req.PlaybackTime),
		Sources:          reqCtx.Sources(),
		ToolsUsed:        reqCtx.ToolsUsed(),
	}

	if audio, err := s.synthesizer.Synthesize(ctx, answer); err != nil {
		s.log.Warn("agent", "speech synthesis failed", map[string]interface{}{
			"video_id": req.VideoID,
			"error":    err.Error(),
		})
	} else {
		resp.AudioID = s.audio.Put(audio)
		resp.AudioURL = "/api/audio/v1/" + resp.AudioID
	}

	return resp, nil
}

// Explain produces a spoken-style introduction to a sport for viewers
// who have never watched it.
func (s *agentService) Explain(ctx context.Context, req *dto.ExplainSportRequest) (*dto.ExplainSportResponse, error) {
	explanation := llm.ExplainSport(ctx, s.engine, req.Sport)

	resp := &dto.ExplainSportResponse{
		Sport:       req.Sport,
		Explanation: explanation,
	}
	if audio, err := s.synthesizer.Synthesize(ctx, explanation); err != nil {
		s.log.Warn("agent", "speech synthesis failed", map[string]interface{}{
			"sport": req.Sport,
			"error": err.Error(),
		})
	} else {
		resp.AudioURL = "/api/audio/v1/" + s.audio.Put(audio)
	}
	return resp, nil
}

// runLoop drives the reasoning loop: the model either calls a tool, which
// feeds an observation back into the conversation, or produces the final
// answer. The loop is bounded; on exhaustion the model is forced to answer
// from whatever it has gathered so far.
func (s *agentService) runLoop(ctx context.Context, question string, reqCtx *agent.RequestContext, toolset *agent.Toolset) string {
	frameNote := "no"
	if reqCtx.FrameJPEG != "" {
		frameNote = "yes"
	}

	conversation := []llm.Content{{
		Role: constant.ChatMessageRoleUser,
		Text: fmt.Sprintf(
			"Event: %s\nCurrent playback time: %.0f seconds\nFrame available: %s\n\nQuestion: %s",
			reqCtx.VideoTitle, reqCtx.PlaybackTime, frameNote, question,
		),
	}}
	definitions := toolset.Definitions()

	for i := 0; i < s.maxIterations; i++ {
		result, err := s.engine.Step(ctx, constant.AgentSystemPromptV2, conversation, definitions)
		if err != nil {
			s.log.Error("agent", "reasoning step failed", map[string]interface{}{
				"video_id":  reqCtx.VideoID,
				"iteration": i,
				"error":     err.Error(),
			})
			return fmt.Sprintf(
				"I'm having a technical issue right now. Here's what I know based on the title: %s. Please try asking again in a moment.",
				reqCtx.VideoTitle,
			)
		}

		if len(result.Calls) > 0 {
			call := result.Calls[0]
			observation := toolset.Execute(ctx, call)
			conversation = append(conversation,
				llm.Content{Role: constant.ChatMessageRoleModel, Call: &call},
				llm.Content{Role: constant.ChatMessageRoleUser, Observation: &llm.ToolObservation{
					Name:    call.Name,
					Content: observation,
				}},
			)
			continue
		}

		if result.Text != "" {
			return result.Text
		}
	}

	return s.forceAnswer(ctx, conversation)
}

func (s *agentService) forceAnswer(ctx context.Context, conversation []llm.Content) string {
	conversation = append(conversation, llm.Content{
		Role: constant.ChatMessageRoleUser,
		Text: constant.ForcedAnswerPrompt,
	})

	result, err := s.engine.Step(ctx, constant.AgentSystemPromptV2, conversation, nil)
	if err == nil && result.Text != "" {
		return result.Text
	}
	if err != nil {
		s.log.Error("agent", "forced answer generation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return "I've gathered some information but couldn't put together a full answer. Could you rephrase the question or ask about a specific athlete?"
}
