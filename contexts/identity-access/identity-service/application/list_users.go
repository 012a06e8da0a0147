package application

import (
	"context"
	"log/slog"

	"coursebay/contexts/identity-access/identity-service/domain/entities"
	"coursebay/contexts/identity-access/identity-service/ports"
)

// ListUsersUseCase backs the admin dashboard and the promotion CLI listing.
type ListUsersUseCase struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

func (u ListUsersUseCase) Execute(ctx context.Context) ([]entities.Identity, error) {
	return u.Users.List(ctx)
}
