package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"coursebay/contexts/commerce/enrollment-service/domain/entities"
	domainerrors "coursebay/contexts/commerce/enrollment-service/domain/errors"
	"coursebay/contexts/commerce/enrollment-service/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// CreateEnrollmentWithOutbox inserts the enrollment and its activation outbox
// row in one transaction. The (user_id, course_id) unique index resolves
// concurrent activation: the losing insert reports created=false and leaves
// no outbox row behind.
func (r *Repository) CreateEnrollmentWithOutbox(
	ctx context.Context,
	enrollment entities.Enrollment,
	event ports.ActivatedEvent,
) (bool, error) {
	envelope, err := buildActivatedEnvelope(event)
	if err != nil {
		return false, err
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return false, err
	}

	created := false
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := enrollmentModelFromEntity(enrollment)
		insert := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "course_id"},
			},
			DoNothing: true,
		}).Create(&row)
		if insert.Error != nil {
			return insert.Error
		}
		if insert.RowsAffected == 0 {
			return nil
		}
		created = true

		outboxRow := outboxModel{
			OutboxID:     event.EventID,
			EventType:    event.EventType,
			PartitionKey: event.PartitionKey,
			Payload:      payload,
			Status:       outboxStatusPending,
			CreatedAt:    event.OccurredAt.UTC(),
		}
		return tx.Create(&outboxRow).Error
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (r *Repository) GetEnrollment(
	ctx context.Context,
	userID string,
	courseID string,
) (entities.Enrollment, bool, error) {
	var row enrollmentModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Enrollment{}, false, nil
		}
		return entities.Enrollment{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListEnrollmentsByUser(ctx context.Context, userID string) ([]entities.Enrollment, error) {
	var rows []enrollmentModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Enrollment, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toPort())
	}
	return items, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":  outboxStatusSent,
			"sent_at": sentAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrEnrollmentNotFound
	}
	return nil
}

func (r *Repository) ReserveEvent(
	ctx context.Context,
	eventID string,
	payloadHash string,
	expiresAt time.Time,
) (bool, error) {
	row := eventDedupModel{
		EventID:     eventID,
		PayloadHash: payloadHash,
		ExpiresAt:   expiresAt.UTC(),
		ProcessedAt: time.Now().UTC(),
	}

	createResult := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if createResult.Error != nil {
		return false, createResult.Error
	}
	if createResult.RowsAffected > 0 {
		return false, nil
	}

	var existing eventDedupModel
	if err := r.db.WithContext(ctx).
		Select("payload_hash").
		Where("event_id = ?", eventID).
		First(&existing).
		Error; err != nil {
		return false, err
	}
	if existing.PayloadHash != payloadHash {
		return false, domainerrors.ErrDuplicateActivatedEvent
	}
	return true, nil
}

type enrollmentModel struct {
	EnrollmentID string    `gorm:"column:enrollment_id;primaryKey"`
	UserID       string    `gorm:"column:user_id;uniqueIndex:enrollments_user_course"`
	CourseID     string    `gorm:"column:course_id;uniqueIndex:enrollments_user_course"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (enrollmentModel) TableName() string {
	return "enrollments"
}

func enrollmentModelFromEntity(enrollment entities.Enrollment) enrollmentModel {
	return enrollmentModel{
		EnrollmentID: enrollment.EnrollmentID,
		UserID:       enrollment.UserID,
		CourseID:     enrollment.CourseID,
		CreatedAt:    enrollment.CreatedAt.UTC(),
	}
}

func (m enrollmentModel) toEntity() entities.Enrollment {
	return entities.Enrollment{
		EnrollmentID: m.EnrollmentID,
		UserID:       m.UserID,
		CourseID:     m.CourseID,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	SentAt       *time.Time `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string {
	return "enrollment_outbox"
}

func (m outboxModel) toPort() ports.OutboxMessage {
	return ports.OutboxMessage{
		OutboxID:     m.OutboxID,
		EventType:    m.EventType,
		PartitionKey: m.PartitionKey,
		Payload:      append([]byte(nil), m.Payload...),
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

type eventDedupModel struct {
	EventID     string    `gorm:"column:event_id;primaryKey"`
	PayloadHash string    `gorm:"column:payload_hash"`
	ExpiresAt   time.Time `gorm:"column:expires_at"`
	ProcessedAt time.Time `gorm:"column:processed_at"`
}

func (eventDedupModel) TableName() string {
	return "enrollment_event_dedup"
}

func buildActivatedEnvelope(event ports.ActivatedEvent) (ports.EventEnvelope, error) {
	data, err := json.Marshal(map[string]string{
		"enrollment_id": event.EnrollmentID,
		"user_id":       event.UserID,
		"course_id":     event.CourseID,
		"course_slug":   event.CourseSlug,
	})
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          event.EventID,
		EventType:        event.EventType,
		OccurredAt:       event.OccurredAt.UTC(),
		SourceService:    "enrollment-service",
		SchemaVersion:    1,
		PartitionKeyPath: "course_id",
		PartitionKey:     event.PartitionKey,
		Data:             data,
	}, nil
}
