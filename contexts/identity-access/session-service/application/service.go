package application

import (
	"log/slog"
	"strings"
	"time"

	"coursebay/contexts/identity-access/session-service/domain/entities"
	domainerrors "coursebay/contexts/identity-access/session-service/domain/errors"
	"coursebay/contexts/identity-access/session-service/ports"
)

// Service issues and checks session tokens with a fixed TTL. There is no
// refresh or revocation flow: revocation is the client discarding the token
// plus expiry.
type Service struct {
	Codec  ports.TokenCodec
	Clock  ports.Clock
	TTL    time.Duration
	Logger *slog.Logger
}

func (s Service) Sign(userID string, email string, role string) (string, error) {
	if strings.TrimSpace(userID) == "" ||
		strings.TrimSpace(email) == "" ||
		strings.TrimSpace(role) == "" {
		return "", domainerrors.ErrInvalidClaims
	}

	now := s.now()
	token, err := s.Codec.Sign(entities.SessionClaims{
		UserID:    strings.TrimSpace(userID),
		Email:     strings.TrimSpace(email),
		Role:      strings.TrimSpace(role),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl()),
	})
	if err != nil {
		return "", err
	}

	s.logger().Info("session token issued",
		"event", "session_token_issued",
		"module", "identity-access/session-service",
		"layer", "application",
		"user_id", userID,
		"role", role,
	)
	return token, nil
}

// Verify returns claims only for a well-formed, untampered, unexpired token.
func (s Service) Verify(token string) (entities.SessionClaims, error) {
	if strings.TrimSpace(token) == "" {
		return entities.SessionClaims{}, domainerrors.ErrTokenInvalid
	}
	claims, err := s.Codec.Verify(token, s.now())
	if err != nil {
		s.logger().Warn("session token rejected",
			"event", "session_token_rejected",
			"module", "identity-access/session-service",
			"layer", "application",
			"error", err.Error(),
		)
		return entities.SessionClaims{}, err
	}
	return claims, nil
}

// Decode returns unverified claims for introspection. The second return is
// false for malformed input; Decode itself never returns an error and its
// output is never valid evidence of identity.
func (s Service) Decode(token string) (entities.SessionClaims, bool) {
	if strings.TrimSpace(token) == "" {
		return entities.SessionClaims{}, false
	}
	return s.Codec.Decode(token)
}

func (s Service) ttl() time.Duration {
	if s.TTL <= 0 {
		return 24 * time.Hour
	}
	return s.TTL
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
