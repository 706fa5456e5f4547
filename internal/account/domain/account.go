// Package domain defines user accounts and their profiles.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/hawkpair/internal/errors"
)

// Account is a login identity. Username is the account email.
type Account struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile holds the public-facing user data linked to an account.
type Profile struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	FullName  string
	Email     string
	CreatedAt time.Time
}

// RegisterAccountInput contains the data needed to register an account.
type RegisterAccountInput struct {
	Email    string
	Password string
	FullName string
	IsActive bool
}

// Account errors.
var (
	// ErrAccountNotFound indicates no account exists with the given id or username.
	ErrAccountNotFound = errors.Wrap(errors.ErrNotFound, "account not found")

	// ErrProfileNotFound indicates the account has no profile.
	ErrProfileNotFound = errors.Wrap(errors.ErrNotFound, "profile not found")

	// ErrAccountAlreadyExists indicates the username is taken.
	ErrAccountAlreadyExists = errors.Wrap(errors.ErrConflict, "account already exists")

	// ErrInvalidCredentials is returned for unknown usernames and wrong passwords alike.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")
)
