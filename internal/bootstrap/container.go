package bootstrap

import (
	"time"

	"ai-sportscast-be/internal/agent"
	"ai-sportscast-be/internal/config"
	"ai-sportscast-be/internal/controller"
	"ai-sportscast-be/internal/handler"
	"ai-sportscast-be/internal/pkg/logger"
	"ai-sportscast-be/internal/repository/memory"
	"ai-sportscast-be/internal/service"
	internalWS "ai-sportscast-be/internal/websocket"
	"ai-sportscast-be/pkg/llm"
	"ai-sportscast-be/pkg/platform"
	"ai-sportscast-be/pkg/search"
	"ai-sportscast-be/pkg/tts"
	"ai-sportscast-be/pkg/vision"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	VideoController      controller.IVideoController
	QuestionController   controller.IQuestionController
	CommentaryController controller.ICommentaryController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService
	MonitorService  service.IMonitorService

	// WebSockets
	StreamHandler *handler.StreamHandler
	WebSocketHub  *internalWS.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Outbound clients
	engine := llm.NewGeminiEngine(cfg.Keys.Gemini, cfg.Agent.Model)
	searcher := search.NewClient(cfg.Keys.Exa)
	synthesizer := tts.NewElevenLabsClient(cfg.Keys.ElevenLabs, cfg.TTS.VoiceID, cfg.TTS.ModelID)
	analyzer := vision.NewGeminiAnalyzer(cfg.Keys.Gemini, cfg.Agent.Model)
	platformClient := platform.NewClient()

	// 4. In-memory stores
	transcriptRepo := memory.NewTranscriptRepository()
	metadataRepo := memory.NewMetadataRepository()
	audioRepo := memory.NewAudioRepository(time.Duration(cfg.Agent.AudioCacheTTLMinutes) * time.Minute)
	researchRepo := memory.NewResearchRepository()

	// 5. WebSocket hub
	hub := internalWS.NewHub(sysLogger)

	// 6. Services
	sessionService := service.NewSessionService(
		platformClient,
		transcriptRepo,
		metadataRepo,
		pubSub,
		cfg.Agent.TranscriptWindowSeconds,
		platform.ExtractVideoID,
		sysLogger,
	)

	policy := agent.NewForcedSearchPolicy(searcher, sysLogger)
	agentService := service.NewAgentService(
		engine,
		searcher,
		hub,
		sessionService,
		metadataRepo,
		audioRepo,
		synthesizer,
		analyzer,
		policy,
		cfg.Agent.MaxIterations,
		sysLogger,
	)

	commentaryService := service.NewCommentaryService(hub, sysLogger)

	monitorService := service.NewMonitorService(
		engine,
		searcher,
		hub,
		sessionService,
		researchRepo,
		time.Duration(cfg.Agent.MonitorIntervalSeconds)*time.Second,
		sysLogger,
	)

	consumerService := service.NewConsumerService(pubSub, monitorService, sysLogger)

	// 7. Handlers and controllers
	streamHandler := handler.NewStreamHandler(hub, agentService, sessionService, audioRepo, sysLogger)

	return &Container{
		VideoController:      controller.NewVideoController(sessionService),
		QuestionController:   controller.NewQuestionController(agentService, audioRepo),
		CommentaryController: controller.NewCommentaryController(commentaryService),
		ConsumerService:      consumerService,
		MonitorService:       monitorService,
		StreamHandler:        streamHandler,
		WebSocketHub:         hub,
	}
}
