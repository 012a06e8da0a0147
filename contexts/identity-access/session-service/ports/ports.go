package ports

import (
	"time"

	"coursebay/contexts/identity-access/session-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// TokenCodec signs, verifies, and decodes session tokens.
//
// Decode returns claims without checking the signature and must never be
// consulted for authorization decisions. It exists for non-security
// introspection only (client-side display, diagnostics).
type TokenCodec interface {
	Sign(claims entities.SessionClaims) (string, error)
	Verify(token string, now time.Time) (entities.SessionClaims, error)
	Decode(token string) (entities.SessionClaims, bool)
}
