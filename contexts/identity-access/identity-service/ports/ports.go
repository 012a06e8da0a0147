package ports

import (
	"context"
	"time"

	"coursebay/contexts/identity-access/identity-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for directory rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// CreateUserInput carries everything persisted for a new directory record.
type CreateUserInput struct {
	UserID       string
	Email        string
	Name         string
	Role         entities.Role
	PasswordHash string
	CreatedAt    time.Time
}

// Credentials pairs a directory record with its stored password hash for the
// login path. The hash never leaves the application layer.
type Credentials struct {
	Identity     entities.Identity
	PasswordHash string
}

// UserRepository is the user directory boundary.
type UserRepository interface {
	FindByID(ctx context.Context, userID string) (entities.Identity, error)
	FindByEmail(ctx context.Context, email string) (entities.Identity, error)
	FindCredentialsByEmail(ctx context.Context, email string) (Credentials, error)
	List(ctx context.Context) ([]entities.Identity, error)
	Create(ctx context.Context, input CreateUserInput) (entities.Identity, error)
	UpdateRole(ctx context.Context, userID string, role entities.Role, updatedAt time.Time) (entities.Identity, error)
}

// VerifiedSession is the claims shape the guard consumes. Only signature- and
// expiry-checked tokens produce one.
type VerifiedSession struct {
	UserID string
	Email  string
	Role   string
}

// SessionVerifier is implemented by the session-service wiring in bootstrap.
type SessionVerifier interface {
	Verify(token string) (VerifiedSession, error)
}

// SessionIssuer signs fresh claims at login.
type SessionIssuer interface {
	Sign(userID string, email string, role string) (string, error)
}

// PasswordHasher hashes and checks login secrets.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}
