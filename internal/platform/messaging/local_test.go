package messaging

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"coursebay/contexts/commerce/enrollment-service/ports"
)

func TestLocalBusFansOutPerGroup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := NewLocalBus(slog.Default())
	groupA := make(chan string, 1)
	groupB := make(chan string, 1)

	err := bus.Subscribe(ctx, "enrollment.activated", "group-a", func(_ context.Context, event ports.EventEnvelope) error {
		groupA <- event.EventID
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe group-a: %v", err)
	}
	err = bus.Subscribe(ctx, "enrollment.activated", "group-b", func(_ context.Context, event ports.EventEnvelope) error {
		groupB <- event.EventID
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe group-b: %v", err)
	}

	if err := bus.Publish(ctx, "enrollment.activated", ports.EventEnvelope{EventID: "evt_1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	for name, ch := range map[string]chan string{"group-a": groupA, "group-b": groupB} {
		select {
		case got := <-ch:
			if got != "evt_1" {
				t.Fatalf("%s received %q, want evt_1", name, got)
			}
		case <-time.After(time.Second):
			t.Fatalf("%s did not receive the event", name)
		}
	}
}

func TestLocalBusIgnoresUnsubscribedTopics(t *testing.T) {
	bus := NewLocalBus(slog.Default())
	if err := bus.Publish(context.Background(), "nobody.listens", ports.EventEnvelope{EventID: "evt_1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
}
