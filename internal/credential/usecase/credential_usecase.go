package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/hawkpair/internal/account/domain"
	"github.com/allisson/hawkpair/internal/config"
	credentialDomain "github.com/allisson/hawkpair/internal/credential/domain"
	credentialService "github.com/allisson/hawkpair/internal/credential/service"
)

// credentialUseCase implements CredentialUseCase.
type credentialUseCase struct {
	ttl       time.Duration
	repo      CredentialRepository
	accounts  AccountProvider
	generator credentialService.CredentialGenerator
}

// Login authenticates the account, rejects inactive accounts and issues a credential.
//
// Unknown emails and wrong passwords are both reported as ErrUnknownCredentials so the
// response does not reveal which accounts exist.
func (c *credentialUseCase) Login(
	ctx context.Context,
	input *credentialDomain.LoginInput,
	now time.Time,
) (*credentialDomain.LoginOutput, error) {
	username := strings.ToLower(strings.TrimSpace(input.Email))

	account, err := c.accounts.Authenticate(ctx, username, input.Password)
	if err != nil {
		if errors.Is(err, accountDomain.ErrInvalidCredentials) {
			return nil, credentialDomain.ErrUnknownCredentials
		}
		return nil, err
	}

	if !account.IsActive {
		return nil, credentialDomain.ErrInactiveAccount
	}

	profile, err := c.profileOf(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	credential, err := c.Issue(ctx, account.ID, now)
	if err != nil {
		return nil, err
	}

	return &credentialDomain.LoginOutput{
		CredentialID: credential.ID,
		SecretKey:    credential.SecretKey,
		ProfileID:    profile.ID,
		ExpiresAt:    credential.ExpiresAt,
	}, nil
}

// Issue generates a credential pair for userID and stores it.
func (c *credentialUseCase) Issue(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*credentialDomain.Credential, error) {
	id, err := c.generator.NewCredentialID()
	if err != nil {
		return nil, err
	}

	secretKey, err := c.generator.NewSecretKey()
	if err != nil {
		return nil, err
	}

	credential := &credentialDomain.Credential{
		ID:        id,
		SecretKey: secretKey,
		UserID:    userID,
		ExpiresAt: now.Add(c.ttl),
	}

	if err := c.repo.Set(ctx, credential); err != nil {
		return nil, err
	}

	return credential, nil
}

// Verify runs one verification pass:
//
//  1. Lookup by id; absent is ErrUnknownCredentials.
//  2. Account check; inactive is ErrInactiveAccount and the record is left untouched.
//  3. Expiry check; expired records are removed and ErrExpiredToken is returned,
//     live records are renewed to now plus the TTL. Renewal only touches a record that
//     is still stored; one removed in the meantime reports ErrUnknownCredentials.
//
// The account check runs before the expiry check, so an inactive account with an expired
// credential reports ErrInactiveAccount.
func (c *credentialUseCase) Verify(
	ctx context.Context,
	credentialID string,
	now time.Time,
) (*credentialDomain.Assertion, error) {
	credential, err := c.repo.GetByID(ctx, credentialID)
	if err != nil {
		if errors.Is(err, credentialDomain.ErrCredentialNotFound) {
			return nil, credentialDomain.ErrUnknownCredentials
		}
		return nil, err
	}

	account, err := c.accounts.Get(ctx, credential.UserID)
	if err != nil {
		if errors.Is(err, accountDomain.ErrAccountNotFound) {
			return nil, credentialDomain.ErrUnknownCredentials
		}
		return nil, err
	}

	if !account.IsActive {
		return nil, credentialDomain.ErrInactiveAccount
	}

	if credential.IsExpired(now) {
		if err := c.repo.Unset(ctx, credential.ID); err != nil {
			return nil, err
		}
		return nil, credentialDomain.ErrExpiredToken
	}

	profile, err := c.profileOf(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	// A record removed since the lookup (logout, a concurrent purge) must stay removed.
	credential.Renew(now, c.ttl)
	renewed, err := c.repo.Renew(ctx, credential.ID, credential.ExpiresAt)
	if err != nil {
		return nil, err
	}
	if !renewed {
		return nil, credentialDomain.ErrUnknownCredentials
	}

	return &credentialDomain.Assertion{
		Username:  account.Username,
		UserID:    account.ID,
		ProfileID: profile.ID,
		SecretKey: credential.SecretKey,
		Algorithm: credentialDomain.MACAlgorithm,
	}, nil
}

// profileOf returns the account's profile. An account without a profile cannot hold a
// session, so a missing profile reads as unknown credentials.
func (c *credentialUseCase) profileOf(ctx context.Context, userID uuid.UUID) (*accountDomain.Profile, error) {
	profile, err := c.accounts.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, accountDomain.ErrProfileNotFound) {
			return nil, credentialDomain.ErrUnknownCredentials
		}
		return nil, err
	}
	return profile, nil
}

// Revoke deletes the credential holding secretKey when it is owned by userID.
func (c *credentialUseCase) Revoke(ctx context.Context, secretKey string, userID uuid.UUID) error {
	credential, err := c.repo.GetBySecretKey(ctx, secretKey)
	if err != nil {
		if errors.Is(err, credentialDomain.ErrCredentialNotFound) {
			return nil
		}
		return err
	}

	if credential.UserID != userID {
		return nil
	}

	return c.repo.Unset(ctx, credential.ID)
}

// NewCredentialUseCase creates a CredentialUseCase using the credential TTL from cfg.
func NewCredentialUseCase(
	cfg *config.Config,
	repo CredentialRepository,
	accounts AccountProvider,
	generator credentialService.CredentialGenerator,
) CredentialUseCase {
	return &credentialUseCase{
		ttl:       cfg.CredentialTTL,
		repo:      repo,
		accounts:  accounts,
		generator: generator,
	}
}
