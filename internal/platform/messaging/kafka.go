package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	skafka "github.com/segmentio/kafka-go"

	"coursebay/contexts/commerce/enrollment-service/ports"
)

// Bus is the event transport the outbox relay publishes to and the
// subscription workers consume from.
type Bus interface {
	ports.EventPublisher
	ports.EventSubscriber
	Close() error
}

// writer is the subset of the kafka writer Publish needs, split out so tests
// can inject a capture.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// Kafka moves event envelopes through a Kafka cluster. Messages are keyed by
// the envelope partition key so all events for one course land on the same
// partition in order.
type Kafka struct {
	mu      sync.Mutex
	brokers []string
	writer  writer
	readers []*skafka.Reader
	logger  *slog.Logger
}

func NewKafka(brokers []string, logger *slog.Logger) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one kafka broker is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Kafka{
		brokers: brokers,
		writer: &skafka.Writer{
			Addr:                   skafka.TCP(brokers...),
			Balancer:               &skafka.Hash{},
			RequiredAcks:           skafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
		logger: logger,
	}, nil
}

func (k *Kafka) Publish(ctx context.Context, topic string, event ports.EventEnvelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = k.writer.WriteMessages(ctx, skafka.Message{
		Topic: topic,
		Key:   []byte(event.PartitionKey),
		Value: payload,
	})
	if err != nil {
		k.logger.Error("kafka publish failed",
			"event", "kafka_publish_failed",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"topic", topic,
			"event_id", event.EventID,
			"error", err.Error(),
		)
		return err
	}

	k.logger.Info("event published",
		"event", "kafka_publish",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"topic", topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
	)
	return nil
}

// Subscribe starts a consumer-group reader for the topic. A handler error
// leaves the offset uncommitted so the broker redelivers; consumers are
// expected to dedup replays themselves.
func (k *Kafka) Subscribe(
	ctx context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, ports.EventEnvelope) error,
) error {
	reader := skafka.NewReader(skafka.ReaderConfig{
		Brokers:  k.brokers,
		Topic:    topic,
		GroupID:  consumerGroup,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	k.mu.Lock()
	k.readers = append(k.readers, reader)
	k.mu.Unlock()

	go k.consume(ctx, reader, topic, consumerGroup, handler)
	return nil
}

func (k *Kafka) consume(
	ctx context.Context,
	reader *skafka.Reader,
	topic string,
	consumerGroup string,
	handler func(context.Context, ports.EventEnvelope) error,
) {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			k.logger.Warn("kafka fetch failed",
				"event", "kafka_fetch_failed",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"error", err.Error(),
			)
			time.Sleep(time.Second)
			continue
		}

		var envelope ports.EventEnvelope
		if err := json.Unmarshal(msg.Value, &envelope); err != nil {
			k.logger.Error("dropping undecodable message",
				"event", "kafka_message_undecodable",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"offset", msg.Offset,
				"error", err.Error(),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := handler(ctx, envelope); err != nil {
			k.logger.Error("consumer handler failed",
				"event", "kafka_consume_failed",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"consumer_group", consumerGroup,
				"event_id", envelope.EventID,
				"event_type", envelope.EventType,
				"error", err.Error(),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			k.logger.Error("offset commit failed",
				"event", "kafka_commit_failed",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"error", err.Error(),
			)
		}
	}
}

func (k *Kafka) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	err := k.writer.Close()
	for _, reader := range k.readers {
		if closeErr := reader.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}
