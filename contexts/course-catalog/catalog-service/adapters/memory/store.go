package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"coursebay/contexts/course-catalog/catalog-service/domain/entities"
	domainerrors "coursebay/contexts/course-catalog/catalog-service/domain/errors"
)

// Store is the in-memory course directory used by tests and local runs. It
// doubles as Clock and IDGenerator, mirroring the postgres adapter surface.
type Store struct {
	mu       sync.RWMutex
	byID     map[string]entities.Course
	bySlug   map[string]string
	sequence int
	now      time.Time
}

func NewStore() *Store {
	return &Store{
		byID:   make(map[string]entities.Course),
		bySlug: make(map[string]string),
		now:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence++
	return fmt.Sprintf("course_mem_%d", s.sequence), nil
}

func (s *Store) Create(_ context.Context, course entities.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.bySlug[course.Slug]; taken {
		return domainerrors.ErrSlugTaken
	}
	s.byID[course.CourseID] = course
	s.bySlug[course.Slug] = course.CourseID
	return nil
}

func (s *Store) GetCourse(_ context.Context, courseID string) (entities.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	course, ok := s.byID[courseID]
	if !ok {
		return entities.Course{}, domainerrors.ErrCourseNotFound
	}
	return course, nil
}

func (s *Store) FindBySlug(_ context.Context, slug string) (entities.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	courseID, ok := s.bySlug[slug]
	if !ok {
		return entities.Course{}, domainerrors.ErrCourseNotFound
	}
	return s.byID[courseID], nil
}

func (s *Store) List(_ context.Context) ([]entities.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Course, 0, len(s.byID))
	for _, course := range s.byID {
		items = append(items, course)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Slug < items[j].Slug
	})
	return items, nil
}

func (s *Store) ListByInstructor(_ context.Context, instructorID string) ([]entities.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Course, 0)
	for _, course := range s.byID {
		if course.InstructorID == instructorID {
			items = append(items, course)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Slug < items[j].Slug
	})
	return items, nil
}

func (s *Store) ListSlugs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slugs := make([]string, 0, len(s.bySlug))
	for slug := range s.bySlug {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs, nil
}

// SeedSlug reserves a slug without a full course row, for race simulations.
func (s *Store) SeedSlug(slug string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bySlug[slug] = "seeded_" + slug
}
