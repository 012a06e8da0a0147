package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "coursebay/contexts/commerce/enrollment-service/application"
	"coursebay/contexts/commerce/enrollment-service/domain/entities"
	domainerrors "coursebay/contexts/commerce/enrollment-service/domain/errors"
	"coursebay/contexts/commerce/enrollment-service/ports"
	contractsv1 "coursebay/contracts/gen/events/v1"
)

const activatedEventType = contractsv1.EventTypeEnrollmentActivated

type VerifyAndActivateCommand struct {
	ProviderSessionID string
	UserID            string
}

type VerifyAndActivateResult struct {
	Enrollment      entities.Enrollment
	CourseID        string
	CourseSlug      string
	AlreadyEnrolled bool
}

type VerifyAndActivateUseCase struct {
	Provider    ports.PaymentProvider
	Enrollments ports.EnrollmentRepository
	Courses     ports.CourseDirectory
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute runs the activation workflow in this order:
// 1) local session id validation, before any provider call
// 2) provider retrieval, a point-in-time check with no internal retries
// 3) status gate: only complete sessions activate
// 4) atomic enrollment + outbox persistence, idempotent on (user, course).
func (u VerifyAndActivateUseCase) Execute(
	ctx context.Context,
	cmd VerifyAndActivateCommand,
) (VerifyAndActivateResult, error) {
	logger := application.ResolveLogger(u.Logger)
	sessionID := strings.TrimSpace(cmd.ProviderSessionID)
	if !validProviderSessionID(sessionID) {
		return VerifyAndActivateResult{}, domainerrors.ErrInvalidProviderSession
	}

	session, err := u.Provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		logger.Error("checkout session retrieval failed",
			"event", "enrollment_verification_failed",
			"module", "commerce/enrollment-service",
			"layer", "application",
			"provider_session_id", sessionID,
			"error", err.Error(),
		)
		return VerifyAndActivateResult{}, domainerrors.ErrVerificationFailed
	}

	if session.Status != entities.CheckoutStatusComplete {
		logger.Warn("checkout session not completed",
			"event", "enrollment_payment_not_completed",
			"module", "commerce/enrollment-service",
			"layer", "application",
			"provider_session_id", session.ProviderSessionID,
			"status", string(session.Status),
		)
		return VerifyAndActivateResult{}, domainerrors.ErrPaymentNotCompleted
	}

	if session.UserID == "" || session.CourseID == "" {
		return VerifyAndActivateResult{}, domainerrors.ErrSessionOwnerMismatch
	}
	// The session is authoritative for attribution; the caller's identity is
	// only cross-checked when present so a stolen success URL cannot enroll
	// someone else's account.
	if cmd.UserID != "" && cmd.UserID != session.UserID {
		return VerifyAndActivateResult{}, domainerrors.ErrSessionOwnerMismatch
	}

	course, err := u.Courses.GetCourse(ctx, session.CourseID)
	if err != nil {
		logger.Error("checkout session references unknown course",
			"event", "enrollment_course_lookup_failed",
			"module", "commerce/enrollment-service",
			"layer", "application",
			"provider_session_id", session.ProviderSessionID,
			"course_id", session.CourseID,
			"error", err.Error(),
		)
		return VerifyAndActivateResult{}, domainerrors.ErrSessionOwnerMismatch
	}

	now := u.now()
	enrollmentID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return VerifyAndActivateResult{}, err
	}
	enrollment, err := entities.NewEnrollment(enrollmentID, session.UserID, session.CourseID, now)
	if err != nil {
		return VerifyAndActivateResult{}, err
	}

	eventID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return VerifyAndActivateResult{}, err
	}
	event := ports.ActivatedEvent{
		EventID:      eventID,
		EventType:    activatedEventType,
		EnrollmentID: enrollment.EnrollmentID,
		UserID:       enrollment.UserID,
		CourseID:     enrollment.CourseID,
		CourseSlug:   course.Slug,
		PartitionKey: enrollment.CourseID,
		OccurredAt:   now,
	}

	created, err := u.Enrollments.CreateEnrollmentWithOutbox(ctx, enrollment, event)
	if err != nil {
		logger.Error("enrollment activation write failed",
			"event", "enrollment_write_failed",
			"module", "commerce/enrollment-service",
			"layer", "application",
			"user_id", enrollment.UserID,
			"course_id", enrollment.CourseID,
			"error", err.Error(),
		)
		return VerifyAndActivateResult{}, err
	}

	if !created {
		existing, found, err := u.Enrollments.GetEnrollment(ctx, session.UserID, session.CourseID)
		if err != nil {
			return VerifyAndActivateResult{}, err
		}
		if found {
			enrollment = existing
		}
		logger.Info("enrollment activation replayed",
			"event", "enrollment_activation_replayed",
			"module", "commerce/enrollment-service",
			"layer", "application",
			"user_id", enrollment.UserID,
			"course_id", enrollment.CourseID,
		)
		return VerifyAndActivateResult{
			Enrollment:      enrollment,
			CourseID:        course.CourseID,
			CourseSlug:      course.Slug,
			AlreadyEnrolled: true,
		}, nil
	}

	logger.Info("enrollment activated",
		"event", "enrollment_activated",
		"module", "commerce/enrollment-service",
		"layer", "application",
		"enrollment_id", enrollment.EnrollmentID,
		"user_id", enrollment.UserID,
		"course_id", enrollment.CourseID,
		"course_slug", course.Slug,
	)
	return VerifyAndActivateResult{
		Enrollment: enrollment,
		CourseID:   course.CourseID,
		CourseSlug: course.Slug,
	}, nil
}

func (u VerifyAndActivateUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}

// validProviderSessionID filters out requests that can never resolve so no
// provider round trip is spent on them.
func validProviderSessionID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
