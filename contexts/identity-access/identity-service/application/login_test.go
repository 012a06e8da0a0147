package application

import (
	"context"
	"errors"
	"testing"

	cryptoadapter "coursebay/contexts/identity-access/identity-service/adapters/crypto"
	"coursebay/contexts/identity-access/identity-service/adapters/memory"
	"coursebay/contexts/identity-access/identity-service/domain/entities"
	domainerrors "coursebay/contexts/identity-access/identity-service/domain/errors"
	"coursebay/contexts/identity-access/identity-service/ports"
)

type stubIssuer struct{}

func (stubIssuer) Sign(userID string, _ string, role string) (string, error) {
	return "token:" + userID + ":" + role, nil
}

func registerTestUser(t *testing.T, store *memory.Store, email string, password string) entities.Identity {
	t.Helper()
	register := RegisterUseCase{
		Users:       store,
		Passwords:   cryptoadapter.BcryptHasher{Cost: 4},
		Clock:       store,
		IDGenerator: store,
	}
	identity, err := register.Execute(context.Background(), RegisterCommand{
		Email:    email,
		Name:     "Test User",
		Password: password,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return identity
}

func TestLoginIssuesTokenForValidCredentials(t *testing.T) {
	store := memory.NewStore()
	identity := registerTestUser(t, store, "learner@coursebay.dev", "correct-horse-1")

	login := LoginUseCase{
		Users:     store,
		Passwords: cryptoadapter.BcryptHasher{Cost: 4},
		Sessions:  stubIssuer{},
	}
	result, err := login.Execute(context.Background(), LoginCommand{
		Email:    "Learner@CourseBay.dev",
		Password: "correct-horse-1",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Identity.UserID != identity.UserID {
		t.Fatalf("unexpected identity %+v", result.Identity)
	}
	if result.Token == "" {
		t.Fatal("expected a session token")
	}
	if result.Identity.Role != entities.RoleLearner {
		t.Fatalf("registration must yield learner tier, got %s", result.Identity.Role)
	}
}

func TestLoginRejectsWrongPasswordAndUnknownEmailAlike(t *testing.T) {
	store := memory.NewStore()
	registerTestUser(t, store, "learner@coursebay.dev", "correct-horse-1")

	login := LoginUseCase{
		Users:     store,
		Passwords: cryptoadapter.BcryptHasher{Cost: 4},
		Sessions:  stubIssuer{},
	}

	_, wrongPassErr := login.Execute(context.Background(), LoginCommand{
		Email:    "learner@coursebay.dev",
		Password: "wrong",
	})
	_, unknownErr := login.Execute(context.Background(), LoginCommand{
		Email:    "nobody@coursebay.dev",
		Password: "correct-horse-1",
	})
	if !errors.Is(wrongPassErr, domainerrors.ErrInvalidCredentials) ||
		!errors.Is(unknownErr, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected indistinguishable credential failures, got %v / %v", wrongPassErr, unknownErr)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	store := memory.NewStore()
	registerTestUser(t, store, "learner@coursebay.dev", "correct-horse-1")

	register := RegisterUseCase{
		Users:       store,
		Passwords:   cryptoadapter.BcryptHasher{Cost: 4},
		Clock:       store,
		IDGenerator: store,
	}
	_, err := register.Execute(context.Background(), RegisterCommand{
		Email:    "learner@coursebay.dev",
		Name:     "Someone Else",
		Password: "other-password-2",
	})
	if !errors.Is(err, domainerrors.ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}
}

func TestPromoteRoleValidation(t *testing.T) {
	store := memory.NewStore()
	identity := registerTestUser(t, store, "future-admin@coursebay.dev", "correct-horse-1")

	promote := PromoteRoleUseCase{Users: store, Clock: store}

	if _, err := promote.Execute(context.Background(), PromoteRoleCommand{
		UserID: identity.UserID,
		Role:   entities.Role("superuser"),
	}); !errors.Is(err, domainerrors.ErrInvalidRole) {
		t.Fatalf("expected invalid role, got %v", err)
	}

	updated, err := promote.Execute(context.Background(), PromoteRoleCommand{
		UserID: identity.UserID,
		Role:   entities.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	if updated.Role != entities.RoleAdmin {
		t.Fatalf("expected admin, got %s", updated.Role)
	}

	if _, err := promote.Execute(context.Background(), PromoteRoleCommand{
		UserID: "ghost",
		Role:   entities.RoleAdmin,
	}); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

var _ ports.SessionIssuer = stubIssuer{}
