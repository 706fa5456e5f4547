// Package usecase defines the credential lifecycle: issuance at login, per-request
// verification with sliding expiry, and revocation at logout.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/hawkpair/internal/account/domain"
	credentialDomain "github.com/allisson/hawkpair/internal/credential/domain"
)

// CredentialRepository is the credential store. Every record is reachable by both its
// ID and its SecretKey, or by neither; implementations update both indexes atomically.
type CredentialRepository interface {
	// Set inserts or replaces the record keyed by credential.ID.
	Set(ctx context.Context, credential *credentialDomain.Credential) error

	// Renew moves the expiry of an existing record to expiresAt. It never creates a record:
	// it reports false when the id is no longer stored.
	Renew(ctx context.Context, credentialID string, expiresAt time.Time) (bool, error)

	// Unset removes the record from both indexes. Unknown ids are a no-op.
	Unset(ctx context.Context, credentialID string) error

	// GetByID returns ErrCredentialNotFound if no record has the id.
	GetByID(ctx context.Context, credentialID string) (*credentialDomain.Credential, error)

	// GetBySecretKey returns ErrCredentialNotFound if no record has the secret key.
	GetBySecretKey(ctx context.Context, secretKey string) (*credentialDomain.Credential, error)

	Exists(ctx context.Context, credentialID string) (bool, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// AccountProvider is the slice of account behavior the credential engine consumes.
type AccountProvider interface {
	Authenticate(ctx context.Context, username, password string) (*accountDomain.Account, error)
	Get(ctx context.Context, id uuid.UUID) (*accountDomain.Account, error)
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*accountDomain.Profile, error)
}

// CredentialUseCase orchestrates the credential lifecycle. All operations take now
// explicitly so expiry decisions never depend on the wall clock of the callee.
type CredentialUseCase interface {
	// Login authenticates an account and issues a new credential for it.
	// Returns ErrUnknownCredentials or ErrInactiveAccount for expected failures.
	Login(
		ctx context.Context,
		input *credentialDomain.LoginInput,
		now time.Time,
	) (*credentialDomain.LoginOutput, error)

	// Issue creates and stores a new credential valid until now plus the configured TTL.
	Issue(ctx context.Context, userID uuid.UUID, now time.Time) (*credentialDomain.Credential, error)

	// Verify resolves a credential id to an assertion, renewing the credential on success
	// and purging it when expired. Returns ErrUnknownCredentials, ErrInactiveAccount or
	// ErrExpiredToken for the expected terminal states; anything else is an infrastructure error.
	Verify(ctx context.Context, credentialID string, now time.Time) (*credentialDomain.Assertion, error)

	// Revoke removes the credential holding secretKey if it belongs to userID.
	// Missing credentials are not an error.
	Revoke(ctx context.Context, secretKey string, userID uuid.UUID) error
}
