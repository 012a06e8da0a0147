package errors

import "errors"

var (
	ErrInvalidEnrollment       = errors.New("enrollment is missing required fields")
	ErrInvalidProviderSession  = errors.New("provider session id is empty or malformed")
	ErrVerificationFailed      = errors.New("could not verify payment with the provider")
	ErrPaymentNotCompleted     = errors.New("payment has not been completed")
	ErrSessionOwnerMismatch    = errors.New("checkout session does not reference a known user and course")
	ErrEnrollmentNotFound      = errors.New("enrollment not found")
	ErrCheckoutAmountInvalid   = errors.New("checkout amount must be positive")
	ErrDuplicateActivatedEvent = errors.New("activation event payload diverged for the same event id")
)
