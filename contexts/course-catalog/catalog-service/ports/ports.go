package ports

import (
	"context"
	"time"

	"coursebay/contexts/course-catalog/catalog-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for course rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// CourseRepository is the course directory boundary. Create must enforce slug
// uniqueness with a store-level constraint and surface ErrSlugTaken on
// violation; the caller retries with a fresh suffix.
type CourseRepository interface {
	Create(ctx context.Context, course entities.Course) error
	GetCourse(ctx context.Context, courseID string) (entities.Course, error)
	FindBySlug(ctx context.Context, slug string) (entities.Course, error)
	List(ctx context.Context) ([]entities.Course, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]entities.Course, error)
	ListSlugs(ctx context.Context) ([]string, error)
}
