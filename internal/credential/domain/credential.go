// Package domain defines the credential pair model issued at login and verified on
// every signed request.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// MACAlgorithm is the digest clients must use when signing requests with a secret key.
const MACAlgorithm = "sha256"

// Credential is one issued credential pair. ID is sent on every request to locate the
// record; SecretKey is the MAC key and is only ever returned to the client at login.
type Credential struct {
	ID        string
	SecretKey string
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// IsExpired reports whether the credential is no longer valid at now.
// A credential is invalid at or after its ExpiresAt instant.
func (c *Credential) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Renew slides the expiry window so it ends ttl after now.
func (c *Credential) Renew(now time.Time, ttl time.Duration) {
	c.ExpiresAt = now.Add(ttl)
}

// Assertion is handed to the request-signature check after a successful verification.
type Assertion struct {
	Username  string
	UserID    uuid.UUID
	ProfileID uuid.UUID
	SecretKey string
	Algorithm string
}

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput is returned by a successful login.
type LoginOutput struct {
	CredentialID string
	SecretKey    string
	ProfileID    uuid.UUID
	ExpiresAt    time.Time
}

// Outcome labels the terminal state of one verification pass.
type Outcome string

const (
	OutcomeValid    Outcome = "valid"
	OutcomeUnknown  Outcome = "unknown"
	OutcomeInactive Outcome = "inactive"
	OutcomeExpired  Outcome = "expired"
	OutcomeError    Outcome = "error"
)
