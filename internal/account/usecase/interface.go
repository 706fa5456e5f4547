// Package usecase defines account business logic and the persistence ports it depends on.
package usecase

import (
	"context"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/hawkpair/internal/account/domain"
)

// AccountRepository defines persistence operations for accounts.
// Implementations must support transaction-aware operations via context propagation.
type AccountRepository interface {
	Create(ctx context.Context, account *accountDomain.Account) error

	Update(ctx context.Context, account *accountDomain.Account) error

	// Get returns ErrAccountNotFound if no account has the id.
	Get(ctx context.Context, id uuid.UUID) (*accountDomain.Account, error)

	// GetByUsername returns ErrAccountNotFound if no account has the username.
	GetByUsername(ctx context.Context, username string) (*accountDomain.Account, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

// ProfileRepository defines persistence operations for profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *accountDomain.Profile) error

	// GetByUserID returns ErrProfileNotFound if the account has no profile.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*accountDomain.Profile, error)

	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// AccountUseCase manages accounts and answers the authentication questions the
// credential engine asks: who is this user, is the password right, is the account active.
type AccountUseCase interface {
	// Register creates an account and its profile in one transaction.
	Register(ctx context.Context, input *accountDomain.RegisterAccountInput) (*accountDomain.Account, error)

	// Authenticate checks a username/password pair. Unknown usernames and wrong
	// passwords both yield ErrInvalidCredentials. Inactive accounts are returned
	// so the caller can decide how to report them.
	Authenticate(ctx context.Context, username, password string) (*accountDomain.Account, error)

	Get(ctx context.Context, id uuid.UUID) (*accountDomain.Account, error)

	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*accountDomain.Profile, error)

	// SetPassword replaces the password after verifying the current one.
	SetPassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error

	// ForceSetPassword replaces the password without verification (administrative use).
	ForceSetPassword(ctx context.Context, id uuid.UUID, newPassword string) error

	Activate(ctx context.Context, id uuid.UUID) error

	Deactivate(ctx context.Context, id uuid.UUID) error

	// Remove deletes the profile and the account in one transaction.
	Remove(ctx context.Context, id uuid.UUID) error
}
