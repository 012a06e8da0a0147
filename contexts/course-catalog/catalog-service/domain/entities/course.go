package entities

import (
	"strings"
	"time"

	domainerrors "coursebay/contexts/course-catalog/catalog-service/domain/errors"
)

// Course is an addressable catalog record. Slug is unique within the course
// namespace and stable once assigned.
type Course struct {
	CourseID     string
	Slug         string
	Title        string
	Description  string
	InstructorID string
	PriceCents   int64
	Published    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewCourse(
	courseID string,
	slug string,
	title string,
	description string,
	instructorID string,
	priceCents int64,
	createdAt time.Time,
) (Course, error) {
	if strings.TrimSpace(courseID) == "" ||
		strings.TrimSpace(slug) == "" ||
		strings.TrimSpace(title) == "" ||
		strings.TrimSpace(instructorID) == "" {
		return Course{}, domainerrors.ErrInvalidCourse
	}
	if priceCents < 0 {
		return Course{}, domainerrors.ErrInvalidCourse
	}

	return Course{
		CourseID:     courseID,
		Slug:         slug,
		Title:        strings.TrimSpace(title),
		Description:  strings.TrimSpace(description),
		InstructorID: instructorID,
		PriceCents:   priceCents,
		Published:    true,
		CreatedAt:    createdAt.UTC(),
		UpdatedAt:    createdAt.UTC(),
	}, nil
}
