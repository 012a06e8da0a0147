package application

import (
	"context"
	"log/slog"
	"strings"

	"coursebay/contexts/identity-access/identity-service/domain/entities"
	domainerrors "coursebay/contexts/identity-access/identity-service/domain/errors"
	"coursebay/contexts/identity-access/identity-service/domain/services"
	"coursebay/contexts/identity-access/identity-service/ports"
)

const signInTarget = "/signin"

// Guard resolves callers and gates role-scoped surfaces.
//
// ResolveSession does the I/O (token check + directory lookup); Authorize is a
// pure decision over its inputs so it composes with any transport.
type Guard struct {
	Sessions ports.SessionVerifier
	Users    ports.UserRepository
	Logger   *slog.Logger
}

// ResolveSession turns a raw token into a directory-backed identity. Every
// token failure collapses into ErrNoSession; the directory role wins over the
// role claim so promotions and demotions apply without reissuing tokens.
func (g Guard) ResolveSession(ctx context.Context, token string) (entities.Identity, error) {
	if strings.TrimSpace(token) == "" {
		return entities.Identity{}, domainerrors.ErrNoSession
	}

	session, err := g.Sessions.Verify(token)
	if err != nil {
		return entities.Identity{}, domainerrors.ErrNoSession
	}

	identity, err := g.Users.FindByID(ctx, session.UserID)
	if err != nil {
		ResolveLogger(g.Logger).Warn("session subject missing from directory",
			"event", "guard_session_subject_missing",
			"module", "identity-access/identity-service",
			"layer", "application",
			"user_id", session.UserID,
		)
		return entities.Identity{}, domainerrors.ErrNoSession
	}
	return identity, nil
}

// Authorize gates a surface requiring the given minimum role. A nil identity
// means no session. An empty required role admits any authenticated caller.
func (g Guard) Authorize(required entities.Role, identity *entities.Identity) entities.Decision {
	if identity == nil {
		return entities.Redirect(signInTarget, entities.DenyUnauthorized)
	}
	if services.Satisfies(identity.Role, required) {
		return entities.Allow()
	}
	return entities.Redirect(services.HomeTarget(identity.Role), entities.DenyForbidden)
}
