// Package messaging carries saga messages between services over Redis
// Streams. Consumer groups give at-least-once delivery: a message is
// acknowledged only after its handler returns without error, so a crash
// or a failed handler leaves it in the pending list, from where it is
// redelivered.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rookgm/foodorder/internal/logger"
	"go.uber.org/zap"
)

// stream topics
const (
	TopicPaymentRequest   = "payment-request"
	TopicPaymentResponse  = "payment-response"
	TopicApprovalRequest  = "restaurant-approval-request"
	TopicApprovalResponse = "restaurant-approval-response"
)

const payloadField = "payload"

const (
	// readBlock bounds one blocking read so the loop gets back to
	// reclaiming stale pending entries
	readBlock = 5 * time.Second
	// staleMinIdle is how long a pending entry must sit unacknowledged
	// before it is claimed for redelivery
	staleMinIdle = 30 * time.Second
)

// Publisher appends JSON-encoded messages to a stream per topic
type Publisher struct {
	client *redis.Client
}

// NewPublisher creates new Publisher instance
func NewPublisher(addr string) *Publisher {
	return &Publisher{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Publish appends message to the topic stream
func (p *Publisher) Publish(ctx context.Context, topic string, message any) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: topic,
		Values: map[string]any{payloadField: payload},
	}).Err()
}

// Close closes the underlying client
func (p *Publisher) Close() error {
	return p.client.Close()
}

// Consumer reads a topic stream through a consumer group
type Consumer struct {
	client   *redis.Client
	group    string
	consumer string
}

// NewConsumer creates new Consumer instance
func NewConsumer(addr, group, consumer string) *Consumer {
	return &Consumer{
		client:   redis.NewClient(&redis.Options{Addr: addr}),
		group:    group,
		consumer: consumer,
	}
}

// Subscribe creates the consumer group for the topic if it does not exist yet
func (c *Consumer) Subscribe(ctx context.Context, topic string) error {
	err := c.client.XGroupCreateMkStream(ctx, topic, c.group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

// Consume reads messages from the topic and passes payloads to handle.
// A message is acknowledged only when handle returns nil. Unacked
// messages are redelivered: own pending entries are drained first so a
// restart picks up where the crash happened, and entries idle longer
// than staleMinIdle are reclaimed between reads.
func (c *Consumer) Consume(ctx context.Context, topic string, handle func(ctx context.Context, payload []byte) error) error {
	if err := c.drainPending(ctx, topic, handle); err != nil {
		return err
	}

	for {
		if err := c.claimStale(ctx, topic, handle); err != nil {
			if isCanceled(ctx, err) {
				logger.Log.Debug("consumer is done", zap.String("topic", topic))
				return nil
			}
			return err
		}

		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.group,
			Consumer: c.consumer,
			Streams:  []string{topic, ">"},
			Count:    10,
			Block:    readBlock,
		}).Result()
		if err != nil {
			if isCanceled(ctx, err) {
				logger.Log.Debug("consumer is done", zap.String("topic", topic))
				return nil
			}
			if errors.Is(err, redis.Nil) {
				continue
			}
			return err
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				c.deliver(ctx, topic, msg, handle)
			}
		}
	}
}

// drainPending re-reads this consumer's own pending entries, left over
// from a crash between handling and ack. It stops once a pass acks
// nothing, leaving persistently failing entries to claimStale retries.
func (c *Consumer) drainPending(ctx context.Context, topic string, handle func(ctx context.Context, payload []byte) error) error {
	for {
		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.group,
			Consumer: c.consumer,
			Streams:  []string{topic, "0"},
			Count:    10,
		}).Result()
		if err != nil {
			if isCanceled(ctx, err) || errors.Is(err, redis.Nil) {
				return nil
			}
			return err
		}

		acked := 0
		for _, stream := range streams {
			for _, msg := range stream.Messages {
				if c.deliver(ctx, topic, msg, handle) {
					acked++
				}
			}
		}
		if acked == 0 {
			return nil
		}
	}
}

// claimStale takes over pending entries idle for longer than
// staleMinIdle, own failed deliveries and entries abandoned by dead
// consumers alike
func (c *Consumer) claimStale(ctx context.Context, topic string, handle func(ctx context.Context, payload []byte) error) error {
	start := "0-0"
	for {
		msgs, next, err := c.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   topic,
			Group:    c.group,
			Consumer: c.consumer,
			MinIdle:  staleMinIdle,
			Start:    start,
			Count:    10,
		}).Result()
		if err != nil {
			return err
		}

		for _, msg := range msgs {
			c.deliver(ctx, topic, msg, handle)
		}

		if len(msgs) == 0 || next == "0-0" {
			return nil
		}
		start = next
	}
}

// deliver passes one message payload to handle and acks it when the
// handler succeeds. Messages without a payload field are acked and
// skipped; redelivering them can never change the outcome.
func (c *Consumer) deliver(ctx context.Context, topic string, msg redis.XMessage, handle func(ctx context.Context, payload []byte) error) bool {
	payload, ok := msg.Values[payloadField].(string)
	if !ok {
		logger.Log.Error("message without payload", zap.String("topic", topic), zap.String("id", msg.ID))
		c.ack(ctx, topic, msg.ID)
		return true
	}

	if err := handle(ctx, []byte(payload)); err != nil {
		logger.Log.Error("message handling failed",
			zap.String("topic", topic), zap.String("id", msg.ID), zap.Error(err))
		return false
	}

	c.ack(ctx, topic, msg.ID)
	return true
}

func (c *Consumer) ack(ctx context.Context, topic, id string) {
	if err := c.client.XAck(ctx, topic, c.group, id).Err(); err != nil {
		logger.Log.Error("message ack failed", zap.String("topic", topic), zap.String("id", id), zap.Error(err))
	}
}

func isCanceled(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled)
}

// Close closes the underlying client
func (c *Consumer) Close() error {
	return c.client.Close()
}
