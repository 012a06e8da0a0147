package queries

import (
	"context"
	"log/slog"
	"strings"

	"coursebay/contexts/course-catalog/catalog-service/domain/entities"
	domainerrors "coursebay/contexts/course-catalog/catalog-service/domain/errors"
	"coursebay/contexts/course-catalog/catalog-service/ports"
)

// ListCoursesUseCase backs the public catalog page.
type ListCoursesUseCase struct {
	Courses ports.CourseRepository
	Logger  *slog.Logger
}

func (u ListCoursesUseCase) Execute(ctx context.Context) ([]entities.Course, error) {
	return u.Courses.List(ctx)
}

// ListInstructorCoursesUseCase backs the instructor dashboard.
type ListInstructorCoursesUseCase struct {
	Courses ports.CourseRepository
	Logger  *slog.Logger
}

func (u ListInstructorCoursesUseCase) Execute(ctx context.Context, instructorID string) ([]entities.Course, error) {
	if strings.TrimSpace(instructorID) == "" {
		return nil, domainerrors.ErrInvalidCourse
	}
	return u.Courses.ListByInstructor(ctx, instructorID)
}
