package sessionservice

import (
	"log/slog"
	"time"

	"coursebay/contexts/identity-access/session-service/application"
	"coursebay/contexts/identity-access/session-service/ports"
)

// Module is the session-service composition root exposed to runtime wiring.
type Module struct {
	Tokens application.Service
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Codec  ports.TokenCodec
	Clock  ports.Clock
	TTL    time.Duration
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Tokens: application.Service{
			Codec:  deps.Codec,
			Clock:  deps.Clock,
			TTL:    deps.TTL,
			Logger: deps.Logger,
		},
	}
}
