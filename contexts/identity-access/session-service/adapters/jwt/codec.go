package jwtadapter

import (
	"errors"
	"time"

	"coursebay/contexts/identity-access/session-service/domain/entities"
	domainerrors "coursebay/contexts/identity-access/session-service/domain/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Codec implements ports.TokenCodec with HS256 over a shared secret.
// The secret is immutable process-wide configuration, read-only after New.
type Codec struct {
	secret []byte
	issuer string
}

type tokenClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func New(secret []byte, issuer string) (*Codec, error) {
	if len(secret) == 0 {
		return nil, domainerrors.ErrSecretNotConfigured
	}
	return &Codec{
		secret: append([]byte(nil), secret...),
		issuer: issuer,
	}, nil
}

func (c *Codec) Sign(claims entities.SessionClaims) (string, error) {
	if len(c.secret) == 0 {
		return "", domainerrors.ErrSecretNotConfigured
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt.UTC()),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt.UTC()),
		},
	})
	return token.SignedString(c.secret)
}

func (c *Codec) Verify(token string, now time.Time) (entities.SessionClaims, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(_ *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now.UTC() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return entities.SessionClaims{}, domainerrors.ErrTokenExpired
		}
		return entities.SessionClaims{}, domainerrors.ErrTokenInvalid
	}
	return claims.toEntity(), nil
}

// Decode parses without signature verification and never fails hard: malformed
// input yields ok=false. Output must not feed authorization decisions.
func (c *Codec) Decode(token string) (entities.SessionClaims, bool) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return entities.SessionClaims{}, false
	}
	return claims.toEntity(), true
}

func (t tokenClaims) toEntity() entities.SessionClaims {
	out := entities.SessionClaims{
		UserID: t.UserID,
		Email:  t.Email,
		Role:   t.Role,
	}
	if t.IssuedAt != nil {
		out.IssuedAt = t.IssuedAt.Time.UTC()
	}
	if t.ExpiresAt != nil {
		out.ExpiresAt = t.ExpiresAt.Time.UTC()
	}
	return out
}
