package entities

import (
	"strings"
	"time"

	domainerrors "coursebay/contexts/commerce/enrollment-service/domain/errors"
)

// Enrollment grants a learner permanent access to a course. At most one row
// exists per (UserID, CourseID); the store's unique index enforces this under
// concurrent activation.
type Enrollment struct {
	EnrollmentID string
	UserID       string
	CourseID     string
	CreatedAt    time.Time
}

func NewEnrollment(enrollmentID, userID, courseID string, createdAt time.Time) (Enrollment, error) {
	if strings.TrimSpace(enrollmentID) == "" ||
		strings.TrimSpace(userID) == "" ||
		strings.TrimSpace(courseID) == "" {
		return Enrollment{}, domainerrors.ErrInvalidEnrollment
	}
	return Enrollment{
		EnrollmentID: enrollmentID,
		UserID:       userID,
		CourseID:     courseID,
		CreatedAt:    createdAt.UTC(),
	}, nil
}
