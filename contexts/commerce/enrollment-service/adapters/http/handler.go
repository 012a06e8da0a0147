package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"coursebay/contexts/commerce/enrollment-service/application/commands"
	"coursebay/contexts/commerce/enrollment-service/application/queries"
	"coursebay/contexts/commerce/enrollment-service/domain/entities"
	httptransport "coursebay/contexts/commerce/enrollment-service/transport/http"
)

type Handler struct {
	StartCheckout   commands.StartCheckoutUseCase
	VerifyCheckout  commands.VerifyAndActivateUseCase
	ListEnrollments queries.ListEnrollmentsUseCase
	Logger          *slog.Logger
}

// StartCheckoutHandler godoc
// @Summary Open a checkout session for a course
// @Tags enrollment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body httptransport.StartCheckoutRequest true "Checkout payload"
// @Success 200 {object} httptransport.StartCheckoutResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 502 {object} httptransport.ErrorResponse
// @Router /enrollments/checkout [post]
func (h Handler) StartCheckoutHandler(
	ctx context.Context,
	userID string,
	userEmail string,
	req httptransport.StartCheckoutRequest,
) (httptransport.StartCheckoutResponse, error) {
	result, err := h.StartCheckout.Execute(ctx, commands.StartCheckoutCommand{
		CourseID:  req.CourseID,
		UserID:    userID,
		UserEmail: userEmail,
	})
	if err != nil {
		return httptransport.StartCheckoutResponse{}, err
	}
	return httptransport.StartCheckoutResponse{
		ProviderSessionID: result.ProviderSessionID,
		AlreadyEnrolled:   result.AlreadyEnrolled,
		CourseSlug:        result.CourseSlug,
	}, nil
}

// VerifyCheckoutHandler godoc
// @Summary Verify a checkout session and activate the enrollment
// @Description Point-in-time provider check; replay-safe on refresh.
// @Tags enrollment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body httptransport.VerifyCheckoutRequest true "Provider session id"
// @Success 200 {object} httptransport.VerifyCheckoutResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 402 {object} httptransport.ErrorResponse
// @Failure 502 {object} httptransport.ErrorResponse
// @Router /enrollments/verify [post]
func (h Handler) VerifyCheckoutHandler(
	ctx context.Context,
	userID string,
	req httptransport.VerifyCheckoutRequest,
) (httptransport.VerifyCheckoutResponse, error) {
	result, err := h.VerifyCheckout.Execute(ctx, commands.VerifyAndActivateCommand{
		ProviderSessionID: req.SessionID,
		UserID:            userID,
	})
	if err != nil {
		return httptransport.VerifyCheckoutResponse{}, err
	}
	return httptransport.VerifyCheckoutResponse{
		Enrollment:      mapEnrollment(result.Enrollment),
		CourseID:        result.CourseID,
		CourseSlug:      result.CourseSlug,
		AlreadyEnrolled: result.AlreadyEnrolled,
	}, nil
}

// ListEnrollmentsHandler godoc
// @Summary List the caller's enrollments
// @Tags enrollment
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httptransport.ListEnrollmentsResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /enrollments [get]
func (h Handler) ListEnrollmentsHandler(ctx context.Context, userID string) (httptransport.ListEnrollmentsResponse, error) {
	items, err := h.ListEnrollments.Execute(ctx, userID)
	if err != nil {
		return httptransport.ListEnrollmentsResponse{}, err
	}
	dtos := make([]httptransport.EnrollmentDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, mapEnrollment(item))
	}
	return httptransport.ListEnrollmentsResponse{Items: dtos}, nil
}

func mapEnrollment(enrollment entities.Enrollment) httptransport.EnrollmentDTO {
	return httptransport.EnrollmentDTO{
		EnrollmentID: enrollment.EnrollmentID,
		UserID:       enrollment.UserID,
		CourseID:     enrollment.CourseID,
		CreatedAt:    enrollment.CreatedAt.UTC().Format(time.RFC3339),
	}
}
