package commands

import (
	"context"
	"errors"
	"testing"

	"coursebay/contexts/commerce/enrollment-service/adapters/memory"
	domainerrors "coursebay/contexts/commerce/enrollment-service/domain/errors"
	"coursebay/contexts/commerce/enrollment-service/ports"
)

func newCheckoutUseCase(store *memory.Store, provider *memory.FakeProvider, courses stubCourses) StartCheckoutUseCase {
	return StartCheckoutUseCase{
		Provider:    provider,
		Enrollments: store,
		Courses:     courses,
	}
}

func TestStartCheckoutOpensProviderSession(t *testing.T) {
	store := memory.NewStore()
	provider := memory.NewFakeProvider()
	useCase := newCheckoutUseCase(store, provider, fixtureCourses())

	result, err := useCase.Execute(context.Background(), StartCheckoutCommand{
		CourseID:  "course_1",
		UserID:    "user_1",
		UserEmail: "learner@example.com",
	})
	if err != nil {
		t.Fatalf("start checkout failed: %v", err)
	}
	if result.ProviderSessionID == "" {
		t.Fatal("expected a provider session id")
	}
	if result.AlreadyEnrolled {
		t.Fatal("fresh checkout must not report already enrolled")
	}
	if provider.CreateCalls != 1 {
		t.Fatalf("expected one provider create call, got %d", provider.CreateCalls)
	}
}

func TestStartCheckoutShortCircuitsWhenEnrolled(t *testing.T) {
	store := memory.NewStore()
	provider := memory.NewFakeProvider()
	provider.SeedSession(completedSession("cs_live_1"))
	verify := newVerifyUseCase(store, provider)
	if _, err := verify.Execute(context.Background(), VerifyAndActivateCommand{ProviderSessionID: "cs_live_1"}); err != nil {
		t.Fatalf("seed enrollment failed: %v", err)
	}

	useCase := newCheckoutUseCase(store, provider, fixtureCourses())
	result, err := useCase.Execute(context.Background(), StartCheckoutCommand{
		CourseID: "course_1",
		UserID:   "user_1",
	})
	if err != nil {
		t.Fatalf("start checkout failed: %v", err)
	}
	if !result.AlreadyEnrolled {
		t.Fatal("expected already-enrolled short circuit")
	}
	if provider.CreateCalls != 0 {
		t.Fatalf("enrolled learner must not open a new session, got %d create calls", provider.CreateCalls)
	}
}

func TestStartCheckoutRejectsFreeCourse(t *testing.T) {
	store := memory.NewStore()
	provider := memory.NewFakeProvider()
	courses := stubCourses{
		"course_free": {CourseID: "course_free", Slug: "free-course", Title: "Free Course", PriceCents: 0},
	}
	useCase := newCheckoutUseCase(store, provider, courses)

	_, err := useCase.Execute(context.Background(), StartCheckoutCommand{
		CourseID: "course_free",
		UserID:   "user_1",
	})
	if !errors.Is(err, domainerrors.ErrCheckoutAmountInvalid) {
		t.Fatalf("expected ErrCheckoutAmountInvalid, got %v", err)
	}
}

func TestStartCheckoutValidatesInput(t *testing.T) {
	useCase := newCheckoutUseCase(memory.NewStore(), memory.NewFakeProvider(), fixtureCourses())
	cases := []StartCheckoutCommand{
		{CourseID: "", UserID: "user_1"},
		{CourseID: "course_1", UserID: ""},
	}
	for _, cmd := range cases {
		if _, err := useCase.Execute(context.Background(), cmd); !errors.Is(err, domainerrors.ErrInvalidEnrollment) {
			t.Fatalf("command %+v: expected ErrInvalidEnrollment, got %v", cmd, err)
		}
	}
}

var _ ports.CourseDirectory = stubCourses{}
