// Package service provides technical services for credential issuance and storage:
// random identifier generation, secret-key digests and sealing of secret keys at rest.
package service

import "context"

// CredentialGenerator creates the random halves of a credential pair.
// Both values must come from a cryptographically secure source.
type CredentialGenerator interface {
	// NewCredentialID returns a fresh public credential identifier.
	NewCredentialID() (string, error)

	// NewSecretKey returns a fresh MAC secret.
	NewSecretKey() (string, error)
}

// SecretSealer protects secret keys persisted by durable backends.
// Seal output is opaque text suitable for a VARCHAR/TEXT column.
type SecretSealer interface {
	Seal(ctx context.Context, secretKey string) (string, error)
	Open(ctx context.Context, sealed string) (string, error)
	Close() error
}
