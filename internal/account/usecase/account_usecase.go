package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	accountDomain "github.com/allisson/hawkpair/internal/account/domain"
	"github.com/allisson/hawkpair/internal/database"
	apperrors "github.com/allisson/hawkpair/internal/errors"
	appValidation "github.com/allisson/hawkpair/internal/validation"
)

var passwordRules = []validation.Rule{
	validation.Required.Error("password is required"),
	validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
	appValidation.PasswordStrength{
		MinLength:     8,
		RequireUpper:  true,
		RequireLower:  true,
		RequireNumber: true,
	},
}

// accountUseCase implements AccountUseCase.
type accountUseCase struct {
	txManager      database.TxManager
	accountRepo    AccountRepository
	profileRepo    ProfileRepository
	passwordHasher *pwdhash.PasswordHasher
}

// NewAccountUseCase creates an AccountUseCase hashing passwords with Argon2id.
func NewAccountUseCase(
	txManager database.TxManager,
	accountRepo AccountRepository,
	profileRepo ProfileRepository,
) (AccountUseCase, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &accountUseCase{
		txManager:      txManager,
		accountRepo:    accountRepo,
		profileRepo:    profileRepo,
		passwordHasher: hasher,
	}, nil
}

func validateRegisterInput(input *accountDomain.RegisterAccountInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password, passwordRules...),
		validation.Field(&input.FullName, validation.Length(0, 255)),
	)
	return appValidation.WrapValidationError(err)
}

// Register validates the input, hashes the password and stores the account and its
// profile atomically. Accounts are inactive unless IsActive is set.
func (a *accountUseCase) Register(
	ctx context.Context,
	input *accountDomain.RegisterAccountInput,
) (*accountDomain.Account, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	hash, err := a.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	now := time.Now().UTC()
	email := strings.ToLower(strings.TrimSpace(input.Email))

	account := &accountDomain.Account{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     email,
		PasswordHash: hash,
		IsActive:     input.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := &accountDomain.Profile{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    account.ID,
		FullName:  strings.TrimSpace(input.FullName),
		Email:     email,
		CreatedAt: now,
	}

	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.accountRepo.Create(ctx, account); err != nil {
			return err
		}
		return a.profileRepo.Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (a *accountUseCase) Authenticate(
	ctx context.Context,
	username, password string,
) (*accountDomain.Account, error) {
	account, err := a.accountRepo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if apperrors.Is(err, accountDomain.ErrAccountNotFound) {
			return nil, accountDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.verifyPassword(password, account.PasswordHash) {
		return nil, accountDomain.ErrInvalidCredentials
	}

	return account, nil
}

func (a *accountUseCase) Get(ctx context.Context, id uuid.UUID) (*accountDomain.Account, error) {
	return a.accountRepo.Get(ctx, id)
}

func (a *accountUseCase) GetProfileByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*accountDomain.Profile, error) {
	return a.profileRepo.GetByUserID(ctx, userID)
}

func (a *accountUseCase) SetPassword(
	ctx context.Context,
	id uuid.UUID,
	currentPassword, newPassword string,
) error {
	account, err := a.accountRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if !a.verifyPassword(currentPassword, account.PasswordHash) {
		return accountDomain.ErrInvalidCredentials
	}

	return a.replacePassword(ctx, account, newPassword)
}

func (a *accountUseCase) ForceSetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	account, err := a.accountRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	return a.replacePassword(ctx, account, newPassword)
}

func (a *accountUseCase) Activate(ctx context.Context, id uuid.UUID) error {
	return a.setActive(ctx, id, true)
}

func (a *accountUseCase) Deactivate(ctx context.Context, id uuid.UUID) error {
	return a.setActive(ctx, id, false)
}

func (a *accountUseCase) Remove(ctx context.Context, id uuid.UUID) error {
	return a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := a.accountRepo.Get(ctx, id); err != nil {
			return err
		}
		if err := a.profileRepo.DeleteByUserID(ctx, id); err != nil {
			return err
		}
		return a.accountRepo.Delete(ctx, id)
	})
}

func (a *accountUseCase) setActive(ctx context.Context, id uuid.UUID, active bool) error {
	account, err := a.accountRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	account.IsActive = active
	account.UpdatedAt = time.Now().UTC()

	return a.accountRepo.Update(ctx, account)
}

func (a *accountUseCase) replacePassword(
	ctx context.Context,
	account *accountDomain.Account,
	newPassword string,
) error {
	if err := validation.Validate(newPassword, passwordRules...); err != nil {
		return appValidation.WrapValidationError(err)
	}

	hash, err := a.passwordHasher.Hash([]byte(newPassword))
	if err != nil {
		return apperrors.Wrap(err, "failed to hash password")
	}

	account.PasswordHash = hash
	account.UpdatedAt = time.Now().UTC()

	return a.accountRepo.Update(ctx, account)
}

// verifyPassword treats hash parse failures as a mismatch.
func (a *accountUseCase) verifyPassword(password, hash string) bool {
	ok, err := a.passwordHasher.Verify([]byte(password), hash)
	return err == nil && ok
}
