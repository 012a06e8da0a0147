package entities

import "time"

// SessionClaims is the identity/role payload embedded in a session token.
// Claims are immutable once issued; a new login always produces a new token.
type SessionClaims struct {
	UserID    string
	Email     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
