package ports

import (
	"context"
	"time"

	"coursebay/contexts/commerce/enrollment-service/domain/entities"
	contractsv1 "coursebay/contracts/gen/events/v1"
)

// CreateCheckoutInput carries everything the provider needs to open a
// session. Course and user ids travel in provider metadata so verification
// can attribute the payment without a local pending record.
type CreateCheckoutInput struct {
	CourseID    string
	CourseSlug  string
	CourseTitle string
	UserID      string
	UserEmail   string
	AmountCents int64
	Currency    string
}

// PaymentProvider is the external checkout collaborator. RetrieveSession is
// the verification read; retry policy, if any, lives behind this port.
type PaymentProvider interface {
	CreateSession(ctx context.Context, input CreateCheckoutInput) (string, error)
	RetrieveSession(ctx context.Context, providerSessionID string) (entities.CheckoutSession, error)
}

// CourseSummary is the slice of catalog data enrollment needs for checkout
// and post-activation navigation.
type CourseSummary struct {
	CourseID   string
	Slug       string
	Title      string
	PriceCents int64
}

// CourseDirectory reads course data owned by the catalog module.
type CourseDirectory interface {
	GetCourse(ctx context.Context, courseID string) (CourseSummary, error)
}

// ActivatedEvent is the outbound integration payload persisted to outbox
// alongside a newly created enrollment.
type ActivatedEvent struct {
	EventID      string
	EventType    string
	EnrollmentID string
	UserID       string
	CourseID     string
	CourseSlug   string
	PartitionKey string
	OccurredAt   time.Time
}

// EnrollmentRepository owns enrollment persistence and the activation write
// boundary.
type EnrollmentRepository interface {
	// CreateEnrollmentWithOutbox atomically persists the enrollment and its
	// activation outbox row. A (user_id, course_id) duplicate is not an
	// error: it reports created=false and writes nothing.
	CreateEnrollmentWithOutbox(ctx context.Context, enrollment entities.Enrollment, event ActivatedEvent) (bool, error)
	GetEnrollment(ctx context.Context, userID string, courseID string) (entities.Enrollment, bool, error)
	ListEnrollmentsByUser(ctx context.Context, userID string) ([]entities.Enrollment, error)
}

// OutboxMessage is a row ready to relay from the module outbox.
type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

// OutboxRepository models worker-side outbox polling/acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error
}

// EventDedupStore provides idempotent processing guarantees for consumed
// events.
type EventDedupStore interface {
	ReserveEvent(ctx context.Context, eventID string, payloadHash string, expiresAt time.Time) (bool, error)
}

// Mailer sends learner-facing notifications triggered by activation.
type Mailer interface {
	SendWelcome(ctx context.Context, userID string, courseSlug string) error
}

// Clock allows deterministic testing of activation timestamps.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts enrollment/event identifier generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// EventEnvelope reuses the canonical cross-module envelope contract.
type EventEnvelope = contractsv1.Envelope

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// EventSubscriber registers a topic consumer callback.
type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}
