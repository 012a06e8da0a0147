package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"coursebay/contexts/identity-access/identity-service/domain/entities"
	domainerrors "coursebay/contexts/identity-access/identity-service/domain/errors"
	"coursebay/contexts/identity-access/identity-service/ports"
)

type RegisterCommand struct {
	Email    string
	Name     string
	Password string
}

type RegisterUseCase struct {
	Users       ports.UserRepository
	Passwords   ports.PasswordHasher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute creates a learner-tier directory record. Higher tiers are only ever
// reached through the promotion path.
func (u RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (entities.Identity, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	name := strings.TrimSpace(cmd.Name)
	if email == "" || !strings.Contains(email, "@") || name == "" || len(cmd.Password) < 8 {
		return entities.Identity{}, domainerrors.ErrInvalidRequest
	}

	hash, err := u.Passwords.Hash(cmd.Password)
	if err != nil {
		return entities.Identity{}, err
	}
	userID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Identity{}, err
	}

	identity, err := u.Users.Create(ctx, ports.CreateUserInput{
		UserID:       userID,
		Email:        email,
		Name:         name,
		Role:         entities.RoleLearner,
		PasswordHash: hash,
		CreatedAt:    u.now(),
	})
	if err != nil {
		return entities.Identity{}, err
	}

	ResolveLogger(u.Logger).Info("user registered",
		"event", "user_registered",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", identity.UserID,
	)
	return identity, nil
}

func (u RegisterUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
