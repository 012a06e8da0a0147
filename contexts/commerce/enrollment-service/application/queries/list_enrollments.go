package queries

import (
	"context"
	"log/slog"
	"strings"

	application "coursebay/contexts/commerce/enrollment-service/application"
	"coursebay/contexts/commerce/enrollment-service/domain/entities"
	domainerrors "coursebay/contexts/commerce/enrollment-service/domain/errors"
	"coursebay/contexts/commerce/enrollment-service/ports"
)

type ListEnrollmentsUseCase struct {
	Enrollments ports.EnrollmentRepository
	Logger      *slog.Logger
}

func (u ListEnrollmentsUseCase) Execute(ctx context.Context, userID string) ([]entities.Enrollment, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(userID) == "" {
		return nil, domainerrors.ErrInvalidEnrollment
	}
	items, err := u.Enrollments.ListEnrollmentsByUser(ctx, userID)
	if err != nil {
		logger.Error("enrollment list failed",
			"event", "enrollment_list_failed",
			"module", "commerce/enrollment-service",
			"layer", "application",
			"user_id", userID,
			"error", err.Error(),
		)
		return nil, err
	}
	return items, nil
}
