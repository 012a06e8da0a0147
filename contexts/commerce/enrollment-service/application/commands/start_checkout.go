package commands

import (
	"context"
	"log/slog"
	"strings"

	application "coursebay/contexts/commerce/enrollment-service/application"
	domainerrors "coursebay/contexts/commerce/enrollment-service/domain/errors"
	"coursebay/contexts/commerce/enrollment-service/ports"
)

type StartCheckoutCommand struct {
	CourseID  string
	UserID    string
	UserEmail string
}

type StartCheckoutResult struct {
	ProviderSessionID string
	AlreadyEnrolled   bool
	CourseSlug        string
}

type StartCheckoutUseCase struct {
	Provider    ports.PaymentProvider
	Enrollments ports.EnrollmentRepository
	Courses     ports.CourseDirectory
	Currency    string
	Logger      *slog.Logger
}

// Execute opens a provider checkout session for a course. An existing
// enrollment short-circuits so a learner is never charged twice.
func (u StartCheckoutUseCase) Execute(ctx context.Context, cmd StartCheckoutCommand) (StartCheckoutResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.CourseID) == "" || strings.TrimSpace(cmd.UserID) == "" {
		return StartCheckoutResult{}, domainerrors.ErrInvalidEnrollment
	}

	course, err := u.Courses.GetCourse(ctx, cmd.CourseID)
	if err != nil {
		return StartCheckoutResult{}, err
	}
	if course.PriceCents <= 0 {
		return StartCheckoutResult{}, domainerrors.ErrCheckoutAmountInvalid
	}

	if _, found, err := u.Enrollments.GetEnrollment(ctx, cmd.UserID, cmd.CourseID); err != nil {
		return StartCheckoutResult{}, err
	} else if found {
		return StartCheckoutResult{AlreadyEnrolled: true, CourseSlug: course.Slug}, nil
	}

	sessionID, err := u.Provider.CreateSession(ctx, ports.CreateCheckoutInput{
		CourseID:    course.CourseID,
		CourseSlug:  course.Slug,
		CourseTitle: course.Title,
		UserID:      cmd.UserID,
		UserEmail:   cmd.UserEmail,
		AmountCents: course.PriceCents,
		Currency:    u.currency(),
	})
	if err != nil {
		logger.Error("checkout session creation failed",
			"event", "checkout_session_create_failed",
			"module", "commerce/enrollment-service",
			"layer", "application",
			"course_id", course.CourseID,
			"user_id", cmd.UserID,
			"error", err.Error(),
		)
		return StartCheckoutResult{}, domainerrors.ErrVerificationFailed
	}

	logger.Info("checkout session opened",
		"event", "checkout_session_opened",
		"module", "commerce/enrollment-service",
		"layer", "application",
		"course_id", course.CourseID,
		"user_id", cmd.UserID,
		"provider_session_id", sessionID,
	)
	return StartCheckoutResult{ProviderSessionID: sessionID, CourseSlug: course.Slug}, nil
}

func (u StartCheckoutUseCase) currency() string {
	if u.Currency == "" {
		return "usd"
	}
	return u.Currency
}
