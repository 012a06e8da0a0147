package errors

import "errors"

var (
	ErrSecretNotConfigured = errors.New("session signing secret is not configured")
	ErrInvalidClaims       = errors.New("invalid session claims")
	ErrTokenExpired        = errors.New("session token expired")
	ErrTokenInvalid        = errors.New("session token invalid")
)
