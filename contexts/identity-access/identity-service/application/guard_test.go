package application

import (
	"context"
	"errors"
	"testing"

	"coursebay/contexts/identity-access/identity-service/adapters/memory"
	"coursebay/contexts/identity-access/identity-service/domain/entities"
	domainerrors "coursebay/contexts/identity-access/identity-service/domain/errors"
	"coursebay/contexts/identity-access/identity-service/ports"
)

type stubVerifier struct {
	session ports.VerifiedSession
	err     error
}

func (s stubVerifier) Verify(_ string) (ports.VerifiedSession, error) {
	return s.session, s.err
}

func seedUser(t *testing.T, store *memory.Store, userID string, role entities.Role) entities.Identity {
	t.Helper()
	identity, err := store.Create(context.Background(), ports.CreateUserInput{
		UserID:    userID,
		Email:     userID + "@coursebay.dev",
		Name:      "User " + userID,
		Role:      role,
		CreatedAt: store.Now(),
	})
	if err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	return identity
}

func TestAuthorizeRoleOrder(t *testing.T) {
	guard := Guard{}

	admin := entities.Identity{UserID: "u_admin", Role: entities.RoleAdmin}
	instructor := entities.Identity{UserID: "u_inst", Role: entities.RoleInstructor}
	learner := entities.Identity{UserID: "u_learn", Role: entities.RoleLearner}

	cases := []struct {
		name     string
		required entities.Role
		identity entities.Identity
		allowed  bool
	}{
		{"admin meets admin", entities.RoleAdmin, admin, true},
		{"admin meets instructor", entities.RoleInstructor, admin, true},
		{"admin meets learner", entities.RoleLearner, admin, true},
		{"instructor meets instructor", entities.RoleInstructor, instructor, true},
		{"instructor meets learner", entities.RoleLearner, instructor, true},
		{"instructor denied admin", entities.RoleAdmin, instructor, false},
		{"learner meets learner", entities.RoleLearner, learner, true},
		{"learner denied instructor", entities.RoleInstructor, learner, false},
		{"learner denied admin", entities.RoleAdmin, learner, false},
		{"any-authenticated admits learner", "", learner, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision := guard.Authorize(tc.required, &tc.identity)
			if decision.Allowed != tc.allowed {
				t.Fatalf("expected allowed=%v, got %+v", tc.allowed, decision)
			}
			if !tc.allowed && decision.Reason != entities.DenyForbidden {
				t.Fatalf("expected forbidden reason, got %+v", decision)
			}
			if !tc.allowed && decision.Redirect == "" {
				t.Fatalf("denial must carry a redirect target, got %+v", decision)
			}
		})
	}
}

func TestAuthorizeWithoutSessionRedirectsToSignIn(t *testing.T) {
	guard := Guard{}
	decision := guard.Authorize(entities.RoleLearner, nil)
	if decision.Allowed {
		t.Fatal("expected denial without a session")
	}
	if decision.Reason != entities.DenyUnauthorized || decision.Redirect != "/signin" {
		t.Fatalf("expected sign-in redirect, got %+v", decision)
	}
}

func TestAuthorizeInsufficientRoleRedirectsHome(t *testing.T) {
	guard := Guard{}

	learner := entities.Identity{UserID: "u1", Role: entities.RoleLearner}
	decision := guard.Authorize(entities.RoleInstructor, &learner)
	if decision.Allowed || decision.Redirect != "/" {
		t.Fatalf("expected learner home redirect, got %+v", decision)
	}

	instructor := entities.Identity{UserID: "u2", Role: entities.RoleInstructor}
	decision = guard.Authorize(entities.RoleAdmin, &instructor)
	if decision.Allowed || decision.Redirect != "/instructor" {
		t.Fatalf("expected instructor home redirect, got %+v", decision)
	}
}

func TestResolveSessionCollapsesTokenFailures(t *testing.T) {
	store := memory.NewStore()
	guard := Guard{
		Sessions: stubVerifier{err: errors.New("signature mismatch")},
		Users:    store,
	}

	if _, err := guard.ResolveSession(context.Background(), "whatever"); !errors.Is(err, domainerrors.ErrNoSession) {
		t.Fatalf("expected no-session error, got %v", err)
	}
	if _, err := guard.ResolveSession(context.Background(), "  "); !errors.Is(err, domainerrors.ErrNoSession) {
		t.Fatalf("expected no-session error for blank token, got %v", err)
	}
}

func TestResolveSessionUsesDirectoryRole(t *testing.T) {
	store := memory.NewStore()
	seedUser(t, store, "u_promoted", entities.RoleAdmin)

	// Token still carries the stale learner role from before promotion.
	guard := Guard{
		Sessions: stubVerifier{session: ports.VerifiedSession{
			UserID: "u_promoted",
			Email:  "u_promoted@coursebay.dev",
			Role:   string(entities.RoleLearner),
		}},
		Users: store,
	}

	identity, err := guard.ResolveSession(context.Background(), "token")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if identity.Role != entities.RoleAdmin {
		t.Fatalf("expected directory role to win, got %s", identity.Role)
	}
}

func TestResolveSessionUnknownSubject(t *testing.T) {
	store := memory.NewStore()
	guard := Guard{
		Sessions: stubVerifier{session: ports.VerifiedSession{UserID: "ghost"}},
		Users:    store,
	}
	if _, err := guard.ResolveSession(context.Background(), "token"); !errors.Is(err, domainerrors.ErrNoSession) {
		t.Fatalf("expected no-session error, got %v", err)
	}
}
