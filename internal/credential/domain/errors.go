package domain

import (
	apperrors "github.com/allisson/hawkpair/internal/errors"
)

// AuthError is an expected authentication failure. Message is part of the external
// contract and is rendered to clients unchanged.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Unwrap lets callers match AuthError values against apperrors.ErrUnauthorized.
func (e *AuthError) Unwrap() error {
	return apperrors.ErrUnauthorized
}

// Verification and login failures.
var (
	ErrUnknownCredentials = &AuthError{Message: "Unknown credentials"}
	ErrInactiveAccount    = &AuthError{Message: "Not active"}
	ErrExpiredToken       = &AuthError{Message: "Expired token"}
)

// ErrCredentialNotFound is returned by stores when no record matches a lookup.
var ErrCredentialNotFound = apperrors.Wrap(apperrors.ErrNotFound, "credential not found")

// OutcomeOf classifies a Verify result for metrics and logging.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeValid
	case apperrors.Is(err, ErrUnknownCredentials):
		return OutcomeUnknown
	case apperrors.Is(err, ErrInactiveAccount):
		return OutcomeInactive
	case apperrors.Is(err, ErrExpiredToken):
		return OutcomeExpired
	default:
		return OutcomeError
	}
}
