package worker

import (
	"context"

	"github.com/rookgm/foodorder/internal/logger"
	"go.uber.org/zap"
)

// MessageHandler is interface for processing one message payload
type MessageHandler interface {
	Handle(ctx context.Context, payload []byte) error
}

// Consumer is interface for reading a message topic
type Consumer interface {
	Subscribe(ctx context.Context, topic string) error
	Consume(ctx context.Context, topic string, handle func(ctx context.Context, payload []byte) error) error
}

// MessageProcessor is worker pumping one topic into its handler
type MessageProcessor struct {
	consumer Consumer
	topic    string
	handler  MessageHandler
}

// NewMessageProcessor creates new message processor
func NewMessageProcessor(consumer Consumer, topic string, handler MessageHandler) *MessageProcessor {
	return &MessageProcessor{
		consumer: consumer,
		topic:    topic,
		handler:  handler,
	}
}

// Run subscribes to the topic and consumes it until ctx is done
func (mp *MessageProcessor) Run(ctx context.Context) error {
	if err := mp.consumer.Subscribe(ctx, mp.topic); err != nil {
		return err
	}

	logger.Log.Debug("message processor is running", zap.String("topic", mp.topic))
	return mp.consumer.Consume(ctx, mp.topic, mp.handler.Handle)
}
