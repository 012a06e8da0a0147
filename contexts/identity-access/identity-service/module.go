package identityservice

import (
	"log/slog"

	httpadapter "coursebay/contexts/identity-access/identity-service/adapters/http"
	"coursebay/contexts/identity-access/identity-service/application"
	"coursebay/contexts/identity-access/identity-service/ports"
)

// Module is the identity-service composition root exposed to runtime wiring.
type Module struct {
	Guard   application.Guard
	Handler httpadapter.Handler
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Users       ports.UserRepository
	Sessions    ports.SessionVerifier
	Issuer      ports.SessionIssuer
	Passwords   ports.PasswordHasher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	guard := application.Guard{
		Sessions: deps.Sessions,
		Users:    deps.Users,
		Logger:   deps.Logger,
	}
	login := application.LoginUseCase{
		Users:     deps.Users,
		Passwords: deps.Passwords,
		Sessions:  deps.Issuer,
		Logger:    deps.Logger,
	}
	register := application.RegisterUseCase{
		Users:       deps.Users,
		Passwords:   deps.Passwords,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	promote := application.PromoteRoleUseCase{
		Users:  deps.Users,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	listUsers := application.ListUsersUseCase{
		Users:  deps.Users,
		Logger: deps.Logger,
	}

	return Module{
		Guard: guard,
		Handler: httpadapter.Handler{
			Guard:    guard,
			Login:    login,
			Register: register,
			Promote:  promote,
			Users:    listUsers,
			Logger:   deps.Logger,
		},
	}
}
