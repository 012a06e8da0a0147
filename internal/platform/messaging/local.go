package messaging

import (
	"context"
	"log/slog"
	"sync"

	"coursebay/contexts/commerce/enrollment-service/ports"
)

// LocalBus delivers envelopes in-process. It is the bus used when no brokers
// are configured: single-node deployments and tests. Each (topic, group) pair
// gets one buffered channel, so subscribers sharing a group split the work
// the way a consumer group would.
type LocalBus struct {
	mu     sync.RWMutex
	topics map[string]map[string]chan ports.EventEnvelope
	logger *slog.Logger
}

func NewLocalBus(logger *slog.Logger) *LocalBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalBus{
		topics: make(map[string]map[string]chan ports.EventEnvelope),
		logger: logger,
	}
}

func (b *LocalBus) Publish(ctx context.Context, topic string, event ports.EventEnvelope) error {
	b.mu.RLock()
	groups := make([]chan ports.EventEnvelope, 0, len(b.topics[topic]))
	for _, ch := range b.topics[topic] {
		groups = append(groups, ch)
	}
	b.mu.RUnlock()

	for _, ch := range groups {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ch <- event:
		default:
			b.logger.Warn("dropping event for saturated group",
				"event", "local_bus_drop",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"event_id", event.EventID,
			)
		}
	}
	return nil
}

func (b *LocalBus) Subscribe(
	ctx context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, ports.EventEnvelope) error,
) error {
	b.mu.Lock()
	if b.topics[topic] == nil {
		b.topics[topic] = make(map[string]chan ports.EventEnvelope)
	}
	ch, ok := b.topics[topic][consumerGroup]
	if !ok {
		ch = make(chan ports.EventEnvelope, 128)
		b.topics[topic][consumerGroup] = ch
	}
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-ch:
				if err := handler(ctx, event); err != nil {
					b.logger.Error("consumer handler failed",
						"event", "local_bus_consume_failed",
						"module", "internal/platform/messaging",
						"layer", "platform",
						"topic", topic,
						"consumer_group", consumerGroup,
						"event_id", event.EventID,
						"error", err.Error(),
					)
				}
			}
		}
	}()
	return nil
}

func (b *LocalBus) Close() error {
	return nil
}
