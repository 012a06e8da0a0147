package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"coursebay/contexts/course-catalog/catalog-service/adapters/memory"
	domainerrors "coursebay/contexts/course-catalog/catalog-service/domain/errors"
)

func newUseCase(store *memory.Store) CreateCourseUseCase {
	return CreateCourseUseCase{
		Courses:     store,
		Clock:       store,
		IDGenerator: store,
	}
}

func TestCreateCourseDerivesSlug(t *testing.T) {
	store := memory.NewStore()
	useCase := newUseCase(store)

	result, err := useCase.Execute(context.Background(), CreateCourseCommand{
		Title:        "Intro to Go",
		Description:  "Fundamentals for newcomers.",
		InstructorID: "inst_1",
		PriceCents:   4900,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if result.Course.Slug != "intro-to-go" {
		t.Fatalf("expected slug intro-to-go, got %q", result.Course.Slug)
	}

	stored, err := store.FindBySlug(context.Background(), "intro-to-go")
	if err != nil {
		t.Fatalf("stored course missing: %v", err)
	}
	if stored.CourseID != result.Course.CourseID {
		t.Fatalf("slug points at wrong course: %+v", stored)
	}
}

func TestCreateCourseNumericSuffixOnCollision(t *testing.T) {
	store := memory.NewStore()
	useCase := newUseCase(store)

	if _, err := useCase.Execute(context.Background(), CreateCourseCommand{
		Title:        "Intro to Go",
		InstructorID: "inst_1",
		PriceCents:   4900,
	}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	result, err := useCase.Execute(context.Background(), CreateCourseCommand{
		Title:        "Intro to Go",
		InstructorID: "inst_2",
		PriceCents:   5900,
	})
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if result.Course.Slug != "intro-to-go-1" {
		t.Fatalf("expected intro-to-go-1, got %q", result.Course.Slug)
	}
}

func TestCreateCourseEmptyTitle(t *testing.T) {
	store := memory.NewStore()
	useCase := newUseCase(store)

	for _, title := range []string{"", "   ", "!!!"} {
		_, err := useCase.Execute(context.Background(), CreateCourseCommand{
			Title:        title,
			InstructorID: "inst_1",
		})
		if !errors.Is(err, domainerrors.ErrInvalidCourseTitle) {
			t.Fatalf("title %q: expected invalid title error, got %v", title, err)
		}
	}
}

// staleSnapshotStore simulates a concurrent insert the snapshot missed: the
// slug set read by the use case is empty, but the store already holds the
// contested slug and rejects it on write.
type staleSnapshotStore struct {
	*memory.Store
}

func (s staleSnapshotStore) ListSlugs(_ context.Context) ([]string, error) {
	return nil, nil
}

func TestCreateCourseRetriesWithRandomSuffixWhenStoreWinsRace(t *testing.T) {
	store := memory.NewStore()
	store.SeedSlug("race-course")

	useCase := CreateCourseUseCase{
		Courses:     staleSnapshotStore{store},
		Clock:       store,
		IDGenerator: store,
	}

	result, err := useCase.Execute(context.Background(), CreateCourseCommand{
		Title:        "Race Course",
		InstructorID: "inst_1",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.HasPrefix(result.Course.Slug, "race-course-") {
		t.Fatalf("expected random-suffixed slug, got %q", result.Course.Slug)
	}
	if len(strings.TrimPrefix(result.Course.Slug, "race-course-")) != 6 {
		t.Fatalf("expected 6-character random suffix, got %q", result.Course.Slug)
	}
}
