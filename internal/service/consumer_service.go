package service

import (
	"context"
	"encoding/json"

	"ai-sportscast-be/internal/pkg/logger"
	"ai-sportscast-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub  *gochannel.GoChannel
	monitor IMonitorService
	log     logger.ILogger
}

func NewConsumerService(pubSub *gochannel.GoChannel, monitor IMonitorService, log logger.ILogger) IConsumerService {
	return &consumerService{
		pubSub:  pubSub,
		monitor: monitor,
		log:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, events.TopicVideoLoaded)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload events.VideoLoadedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "failed to unmarshal video loaded event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}
	msg.Ack()

	cs.log.Info("consumer", "video loaded event received", map[string]interface{}{
		"video_id": payload.VideoID,
		"is_live":  payload.IsLive,
	})

	cs.monitor.StartProactiveResearch(payload.VideoID, payload.Title)
	if payload.IsLive {
		cs.monitor.StartLiveMonitor(payload.VideoID)
	}
}
