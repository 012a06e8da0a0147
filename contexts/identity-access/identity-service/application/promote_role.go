package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"coursebay/contexts/identity-access/identity-service/domain/entities"
	domainerrors "coursebay/contexts/identity-access/identity-service/domain/errors"
	"coursebay/contexts/identity-access/identity-service/domain/services"
	"coursebay/contexts/identity-access/identity-service/ports"
)

type PromoteRoleCommand struct {
	UserID string
	Role   entities.Role
}

// PromoteRoleUseCase is the administrative role mutation consumed by the
// admin surface and the one-shot promotion CLI.
type PromoteRoleUseCase struct {
	Users  ports.UserRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (u PromoteRoleUseCase) Execute(ctx context.Context, cmd PromoteRoleCommand) (entities.Identity, error) {
	if strings.TrimSpace(cmd.UserID) == "" {
		return entities.Identity{}, domainerrors.ErrInvalidRequest
	}
	if !services.IsValidRole(cmd.Role) {
		return entities.Identity{}, domainerrors.ErrInvalidRole
	}

	identity, err := u.Users.UpdateRole(ctx, cmd.UserID, cmd.Role, u.now())
	if err != nil {
		return entities.Identity{}, err
	}

	ResolveLogger(u.Logger).Info("role updated",
		"event", "role_updated",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", identity.UserID,
		"role", identity.Role,
	)
	return identity, nil
}

func (u PromoteRoleUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
