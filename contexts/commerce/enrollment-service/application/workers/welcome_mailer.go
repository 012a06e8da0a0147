package workers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	application "coursebay/contexts/commerce/enrollment-service/application"
	"coursebay/contexts/commerce/enrollment-service/ports"
	contractsv1 "coursebay/contracts/gen/events/v1"
)

const (
	activatedTopic       = contractsv1.EventTypeEnrollmentActivated
	defaultConsumerGroup = "enrollment-welcome-mailer-cg"
)

// WelcomeMailer sends one welcome message per activation. The dedup store
// is the guard against bus redelivery; the outbox already guarantees at most
// one activation event per enrollment.
type WelcomeMailer struct {
	Subscriber    ports.EventSubscriber
	Mailer        ports.Mailer
	Dedup         ports.EventDedupStore
	Clock         ports.Clock
	ConsumerGroup string
	DedupTTL      time.Duration
	Logger        *slog.Logger
}

type activatedPayload struct {
	EnrollmentID string `json:"enrollment_id"`
	UserID       string `json:"user_id"`
	CourseID     string `json:"course_id"`
	CourseSlug   string `json:"course_slug"`
}

func (w WelcomeMailer) Start(ctx context.Context) error {
	group := w.ConsumerGroup
	if group == "" {
		group = defaultConsumerGroup
	}
	return w.Subscriber.Subscribe(ctx, activatedTopic, group, w.handleActivated)
}

func (w WelcomeMailer) handleActivated(ctx context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(w.Logger)
	now := time.Now().UTC()
	if w.Clock != nil {
		now = w.Clock.Now().UTC()
	}

	payloadHash := hashPayload(event.Data)
	alreadyProcessed, err := w.Dedup.ReserveEvent(ctx, event.EventID, payloadHash, now.Add(w.dedupTTL()))
	if err != nil {
		logger.Error("activation event dedupe failed",
			"event", "enrollment_welcome_dedupe_failed",
			"module", "commerce/enrollment-service",
			"layer", "worker",
			"event_id", event.EventID,
			"error", err.Error(),
		)
		return err
	}
	if alreadyProcessed {
		logger.Debug("activation event already processed",
			"event", "enrollment_welcome_event_replayed",
			"module", "commerce/enrollment-service",
			"layer", "worker",
			"event_id", event.EventID,
		)
		return nil
	}

	var payload activatedPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return fmt.Errorf("decode activation event payload: %w", err)
	}
	if payload.UserID == "" || payload.CourseSlug == "" {
		return fmt.Errorf("activation event missing user_id or course_slug")
	}

	if err := w.Mailer.SendWelcome(ctx, payload.UserID, payload.CourseSlug); err != nil {
		logger.Error("welcome mail send failed",
			"event", "enrollment_welcome_send_failed",
			"module", "commerce/enrollment-service",
			"layer", "worker",
			"event_id", event.EventID,
			"user_id", payload.UserID,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("welcome mail sent",
		"event", "enrollment_welcome_sent",
		"module", "commerce/enrollment-service",
		"layer", "worker",
		"event_id", event.EventID,
		"user_id", payload.UserID,
		"course_slug", payload.CourseSlug,
	)
	return nil
}

func (w WelcomeMailer) dedupTTL() time.Duration {
	if w.DedupTTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return w.DedupTTL
}

func hashPayload(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
