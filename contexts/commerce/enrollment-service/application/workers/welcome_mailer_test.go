package workers

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"coursebay/contexts/commerce/enrollment-service/adapters/memory"
	"coursebay/contexts/commerce/enrollment-service/ports"
)

type recordingMailer struct {
	mu    sync.Mutex
	sends []string
}

func (m *recordingMailer) SendWelcome(_ context.Context, userID string, courseSlug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, userID+"/"+courseSlug)
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sends)
}

func activatedEnvelope(t *testing.T, eventID string) ports.EventEnvelope {
	t.Helper()
	data, err := json.Marshal(map[string]string{
		"enrollment_id": "enr_1",
		"user_id":       "user_1",
		"course_id":     "course_1",
		"course_slug":   "intro-to-go",
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return ports.EventEnvelope{
		EventID:       eventID,
		EventType:     "enrollment.activated",
		OccurredAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		SourceService: "enrollment-service",
		SchemaVersion: 1,
		PartitionKey:  "course_1",
		Data:          data,
	}
}

func TestWelcomeMailerSendsOncePerEvent(t *testing.T) {
	store := memory.NewStore()
	mailer := &recordingMailer{}
	worker := WelcomeMailer{
		Mailer: mailer,
		Dedup:  store,
		Clock:  store,
	}

	envelope := activatedEnvelope(t, "evt_1")
	if err := worker.handleActivated(context.Background(), envelope); err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}
	if err := worker.handleActivated(context.Background(), envelope); err != nil {
		t.Fatalf("redelivery failed: %v", err)
	}

	if mailer.count() != 1 {
		t.Fatalf("expected exactly one welcome mail, got %d", mailer.count())
	}
}

func TestWelcomeMailerRejectsIncompletePayload(t *testing.T) {
	store := memory.NewStore()
	mailer := &recordingMailer{}
	worker := WelcomeMailer{
		Mailer: mailer,
		Dedup:  store,
		Clock:  store,
	}

	envelope := activatedEnvelope(t, "evt_2")
	envelope.Data = []byte(`{"enrollment_id":"enr_2"}`)
	if err := worker.handleActivated(context.Background(), envelope); err == nil {
		t.Fatal("expected error for payload missing user_id and course_slug")
	}
	if mailer.count() != 0 {
		t.Fatal("incomplete payload must not trigger a send")
	}
}
