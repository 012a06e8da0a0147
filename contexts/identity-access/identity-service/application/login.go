package application

import (
	"context"
	"log/slog"
	"strings"

	"coursebay/contexts/identity-access/identity-service/domain/entities"
	domainerrors "coursebay/contexts/identity-access/identity-service/domain/errors"
	"coursebay/contexts/identity-access/identity-service/ports"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	Identity entities.Identity
	Token    string
}

type LoginUseCase struct {
	Users     ports.UserRepository
	Passwords ports.PasswordHasher
	Sessions  ports.SessionIssuer
	Logger    *slog.Logger
}

// Execute checks credentials and issues a fresh session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (u LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	logger := ResolveLogger(u.Logger)
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || cmd.Password == "" {
		return LoginResult{}, domainerrors.ErrInvalidRequest
	}

	credentials, err := u.Users.FindCredentialsByEmail(ctx, email)
	if err != nil {
		logger.Warn("login rejected",
			"event", "login_rejected",
			"module", "identity-access/identity-service",
			"layer", "application",
			"reason", "unknown_email",
		)
		return LoginResult{}, domainerrors.ErrInvalidCredentials
	}
	if err := u.Passwords.Compare(credentials.PasswordHash, cmd.Password); err != nil {
		logger.Warn("login rejected",
			"event", "login_rejected",
			"module", "identity-access/identity-service",
			"layer", "application",
			"reason", "password_mismatch",
			"user_id", credentials.Identity.UserID,
		)
		return LoginResult{}, domainerrors.ErrInvalidCredentials
	}

	token, err := u.Sessions.Sign(
		credentials.Identity.UserID,
		credentials.Identity.Email,
		string(credentials.Identity.Role),
	)
	if err != nil {
		return LoginResult{}, err
	}

	logger.Info("login succeeded",
		"event", "login_succeeded",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", credentials.Identity.UserID,
		"role", credentials.Identity.Role,
	)
	return LoginResult{Identity: credentials.Identity, Token: token}, nil
}
