package queries

import (
	"context"
	"log/slog"
	"strings"

	"coursebay/contexts/course-catalog/catalog-service/domain/entities"
	domainerrors "coursebay/contexts/course-catalog/catalog-service/domain/errors"
	"coursebay/contexts/course-catalog/catalog-service/ports"
)

type GetCourseBySlugQuery struct {
	Slug string
}

type GetCourseBySlugUseCase struct {
	Courses ports.CourseRepository
	Logger  *slog.Logger
}

func (u GetCourseBySlugUseCase) Execute(ctx context.Context, query GetCourseBySlugQuery) (entities.Course, error) {
	slug := strings.TrimSpace(query.Slug)
	if slug == "" {
		return entities.Course{}, domainerrors.ErrCourseNotFound
	}
	return u.Courses.FindBySlug(ctx, slug)
}
