package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "coursebay/contexts/course-catalog/catalog-service/application"
	"coursebay/contexts/course-catalog/catalog-service/domain/entities"
	domainerrors "coursebay/contexts/course-catalog/catalog-service/domain/errors"
	"coursebay/contexts/course-catalog/catalog-service/domain/services"
	"coursebay/contexts/course-catalog/catalog-service/ports"
)

type CreateCourseCommand struct {
	Title        string
	Description  string
	InstructorID string
	PriceCents   int64
}

type CreateCourseResult struct {
	Course entities.Course
}

type CreateCourseUseCase struct {
	Courses     ports.CourseRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute derives the slug with the numeric policy for readable URLs. The
// slug-set snapshot is advisory; when a concurrent insert beats us to the
// store's unique index we retry once with the random-suffix policy.
func (u CreateCourseUseCase) Execute(ctx context.Context, cmd CreateCourseCommand) (CreateCourseResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.InstructorID) == "" {
		return CreateCourseResult{}, domainerrors.ErrInvalidCourse
	}

	candidate := services.NormalizeSlug(cmd.Title)
	if candidate == "" {
		return CreateCourseResult{}, domainerrors.ErrInvalidCourseTitle
	}

	existing, err := u.slugSnapshot(ctx)
	if err != nil {
		return CreateCourseResult{}, err
	}

	slug, err := services.ResolveUniqueSlug(candidate, existing, services.PolicyNumeric)
	if err != nil {
		return CreateCourseResult{}, err
	}

	course, err := u.buildCourse(ctx, cmd, slug)
	if err != nil {
		return CreateCourseResult{}, err
	}

	if err := u.Courses.Create(ctx, course); err != nil {
		if !errors.Is(err, domainerrors.ErrSlugTaken) {
			return CreateCourseResult{}, err
		}

		logger.Warn("slug lost creation race, retrying with random suffix",
			"event", "create_course_slug_race",
			"module", "course-catalog/catalog-service",
			"layer", "application",
			"slug", slug,
		)
		existing[slug] = struct{}{}
		slug, err = services.ResolveUniqueSlug(candidate, existing, services.PolicyRandom)
		if err != nil {
			return CreateCourseResult{}, err
		}
		course, err = u.buildCourse(ctx, cmd, slug)
		if err != nil {
			return CreateCourseResult{}, err
		}
		if err := u.Courses.Create(ctx, course); err != nil {
			if errors.Is(err, domainerrors.ErrSlugTaken) {
				return CreateCourseResult{}, domainerrors.ErrSlugGenerationExhausted
			}
			return CreateCourseResult{}, err
		}
	}

	logger.Info("course created",
		"event", "course_created",
		"module", "course-catalog/catalog-service",
		"layer", "application",
		"course_id", course.CourseID,
		"slug", course.Slug,
		"instructor_id", course.InstructorID,
	)
	return CreateCourseResult{Course: course}, nil
}

func (u CreateCourseUseCase) buildCourse(
	ctx context.Context,
	cmd CreateCourseCommand,
	slug string,
) (entities.Course, error) {
	courseID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Course{}, err
	}
	return entities.NewCourse(
		courseID,
		slug,
		cmd.Title,
		cmd.Description,
		cmd.InstructorID,
		cmd.PriceCents,
		u.now(),
	)
}

func (u CreateCourseUseCase) slugSnapshot(ctx context.Context) (map[string]struct{}, error) {
	slugs, err := u.Courses.ListSlugs(ctx)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]struct{}, len(slugs))
	for _, slug := range slugs {
		existing[slug] = struct{}{}
	}
	return existing, nil
}

func (u CreateCourseUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
