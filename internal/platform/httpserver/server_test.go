package httpserver

import (
	"context"
	"testing"

	enrollmentservice "coursebay/contexts/commerce/enrollment-service"
	mailadapter "coursebay/contexts/commerce/enrollment-service/adapters/mail"
	enrollmentmemory "coursebay/contexts/commerce/enrollment-service/adapters/memory"
	enrollmentports "coursebay/contexts/commerce/enrollment-service/ports"
	catalogservice "coursebay/contexts/course-catalog/catalog-service"
	catalogmemory "coursebay/contexts/course-catalog/catalog-service/adapters/memory"
	catalogports "coursebay/contexts/course-catalog/catalog-service/ports"
	identityservice "coursebay/contexts/identity-access/identity-service"
	cryptoadapter "coursebay/contexts/identity-access/identity-service/adapters/crypto"
	identitymemory "coursebay/contexts/identity-access/identity-service/adapters/memory"
	identityentities "coursebay/contexts/identity-access/identity-service/domain/entities"
	identityports "coursebay/contexts/identity-access/identity-service/ports"
	sessionservice "coursebay/contexts/identity-access/session-service"
	jwtadapter "coursebay/contexts/identity-access/session-service/adapters/jwt"
	sessionapp "coursebay/contexts/identity-access/session-service/application"
)

// testSessions bridges the token service to the identity ports the same way
// the bootstrap wiring does.
type testSessions struct {
	tokens sessionapp.Service
}

func (s testSessions) Verify(token string) (identityports.VerifiedSession, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return identityports.VerifiedSession{}, err
	}
	return identityports.VerifiedSession{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

func (s testSessions) Sign(userID string, email string, role string) (string, error) {
	return s.tokens.Sign(userID, email, role)
}

type testCourseDirectory struct {
	courses catalogports.CourseRepository
}

func (d testCourseDirectory) GetCourse(ctx context.Context, courseID string) (enrollmentports.CourseSummary, error) {
	course, err := d.courses.GetCourse(ctx, courseID)
	if err != nil {
		return enrollmentports.CourseSummary{}, err
	}
	return enrollmentports.CourseSummary{
		CourseID:   course.CourseID,
		Slug:       course.Slug,
		Title:      course.Title,
		PriceCents: course.PriceCents,
	}, nil
}

type testServer struct {
	server     *Server
	users      *identitymemory.Store
	courses    *catalogmemory.Store
	enrollment *enrollmentmemory.Store
	provider   *enrollmentmemory.FakeProvider
	sessions   testSessions
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	codec, err := jwtadapter.New([]byte("httpserver-test-secret"), "coursebay-test")
	if err != nil {
		t.Fatalf("build codec: %v", err)
	}
	sessionModule := sessionservice.NewModule(sessionservice.Dependencies{Codec: codec})
	sessions := testSessions{tokens: sessionModule.Tokens}

	users := identitymemory.NewStore()
	identityModule := identityservice.NewModule(identityservice.Dependencies{
		Users:       users,
		Sessions:    sessions,
		Issuer:      sessions,
		Passwords:   cryptoadapter.BcryptHasher{Cost: 4},
		Clock:       users,
		IDGenerator: users,
	})

	courses := catalogmemory.NewStore()
	catalogModule := catalogservice.NewModule(catalogservice.Dependencies{
		Courses:     courses,
		Clock:       courses,
		IDGenerator: courses,
	})

	enrollmentStore := enrollmentmemory.NewStore()
	provider := enrollmentmemory.NewFakeProvider()
	enrollmentModule := enrollmentservice.NewModule(enrollmentservice.Dependencies{
		Provider:    provider,
		Enrollments: enrollmentStore,
		Outbox:      enrollmentStore,
		Courses:     testCourseDirectory{courses: courses},
		Dedup:       enrollmentStore,
		Mailer:      mailadapter.LogMailer{},
		Clock:       enrollmentStore,
		IDGenerator: enrollmentStore,
	})

	return &testServer{
		server:     New(identityModule, catalogModule, enrollmentModule, nil, ""),
		users:      users,
		courses:    courses,
		enrollment: enrollmentStore,
		provider:   provider,
		sessions:   sessions,
	}
}

// seedUser creates a directory record and returns a signed token for it.
func (ts *testServer) seedUser(t *testing.T, email string, role identityentities.Role) (identityentities.Identity, string) {
	t.Helper()

	hasher := cryptoadapter.BcryptHasher{Cost: 4}
	hash, err := hasher.Hash("long-enough-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	userID, err := ts.users.NewID(context.Background())
	if err != nil {
		t.Fatalf("allocate id: %v", err)
	}
	identity, err := ts.users.Create(context.Background(), identityports.CreateUserInput{
		UserID:       userID,
		Email:        email,
		Name:         "Test User",
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    ts.users.Now(),
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := ts.sessions.Sign(identity.UserID, identity.Email, string(identity.Role))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return identity, token
}
