package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"coursebay/contexts/course-catalog/catalog-service/domain/entities"
	domainerrors "coursebay/contexts/course-catalog/catalog-service/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
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

func (r *Repository) Create(ctx context.Context, course entities.Course) error {
	row := courseModelFromEntity(course)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		// The unique index on slug is the authoritative collision guard.
		if isUniqueViolation(err) {
			return domainerrors.ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *Repository) GetCourse(ctx context.Context, courseID string) (entities.Course, error) {
	var row courseModel
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Course{}, domainerrors.ErrCourseNotFound
		}
		return entities.Course{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) FindBySlug(ctx context.Context, slug string) (entities.Course, error) {
	var row courseModel
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Course{}, domainerrors.ErrCourseNotFound
		}
		return entities.Course{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) List(ctx context.Context) ([]entities.Course, error) {
	var rows []courseModel
	if err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) ListByInstructor(ctx context.Context, instructorID string) ([]entities.Course, error) {
	var rows []courseModel
	if err := r.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) ListSlugs(ctx context.Context) ([]string, error) {
	var slugs []string
	if err := r.db.WithContext(ctx).
		Model(&courseModel{}).
		Pluck("slug", &slugs).
		Error; err != nil {
		return nil, err
	}
	return slugs, nil
}

type courseModel struct {
	CourseID     string    `gorm:"column:course_id;primaryKey"`
	Slug         string    `gorm:"column:slug;uniqueIndex"`
	Title        string    `gorm:"column:title"`
	Description  string    `gorm:"column:description"`
	InstructorID string    `gorm:"column:instructor_id;index"`
	PriceCents   int64     `gorm:"column:price_cents"`
	Published    bool      `gorm:"column:published"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (courseModel) TableName() string {
	return "courses"
}

func courseModelFromEntity(course entities.Course) courseModel {
	return courseModel{
		CourseID:     course.CourseID,
		Slug:         course.Slug,
		Title:        course.Title,
		Description:  course.Description,
		InstructorID: course.InstructorID,
		PriceCents:   course.PriceCents,
		Published:    course.Published,
		CreatedAt:    course.CreatedAt.UTC(),
		UpdatedAt:    course.UpdatedAt.UTC(),
	}
}

func (m courseModel) toEntity() entities.Course {
	return entities.Course{
		CourseID:     m.CourseID,
		Slug:         m.Slug,
		Title:        m.Title,
		Description:  m.Description,
		InstructorID: m.InstructorID,
		PriceCents:   m.PriceCents,
		Published:    m.Published,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

func toEntities(rows []courseModel) []entities.Course {
	items := make([]entities.Course, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
