package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/hawkpair/internal/errors"
)

func TestCredential_IsExpired(t *testing.T) {
	expiresAt := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	credential := &Credential{ExpiresAt: expiresAt}

	assert.False(t, credential.IsExpired(expiresAt.Add(-time.Nanosecond)))
	assert.True(t, credential.IsExpired(expiresAt))
	assert.True(t, credential.IsExpired(expiresAt.Add(time.Second)))
}

func TestCredential_Renew(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	credential := &Credential{ExpiresAt: now.Add(time.Minute)}

	credential.Renew(now, 24*time.Hour)

	assert.Equal(t, now.Add(24*time.Hour), credential.ExpiresAt)
}

func TestAuthError(t *testing.T) {
	assert.Equal(t, "Unknown credentials", ErrUnknownCredentials.Error())
	assert.Equal(t, "Not active", ErrInactiveAccount.Error())
	assert.Equal(t, "Expired token", ErrExpiredToken.Error())

	wrapped := fmt.Errorf("verify: %w", ErrExpiredToken)
	assert.True(t, apperrors.Is(wrapped, apperrors.ErrUnauthorized))

	var authErr *AuthError
	assert.True(t, errors.As(wrapped, &authErr))
	assert.Equal(t, "Expired token", authErr.Message)
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, OutcomeValid, OutcomeOf(nil))
	assert.Equal(t, OutcomeUnknown, OutcomeOf(ErrUnknownCredentials))
	assert.Equal(t, OutcomeInactive, OutcomeOf(ErrInactiveAccount))
	assert.Equal(t, OutcomeExpired, OutcomeOf(ErrExpiredToken))
	assert.Equal(t, OutcomeError, OutcomeOf(errors.New("connection refused")))
}
