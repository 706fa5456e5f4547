package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/allisson/hawkpair/internal/account/domain"
	apperrors "github.com/allisson/hawkpair/internal/errors"
)

// mockTxManager runs the function inline, recording how many transactions were opened.
type mockTxManager struct {
	calls int
}

func (m *mockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// mockAccountRepository is a mock implementation of AccountRepository for testing.
type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) Create(ctx context.Context, account *accountDomain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *mockAccountRepository) Update(ctx context.Context, account *accountDomain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *mockAccountRepository) Get(ctx context.Context, id uuid.UUID) (*accountDomain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

func (m *mockAccountRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*accountDomain.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

func (m *mockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockProfileRepository is a mock implementation of ProfileRepository for testing.
type mockProfileRepository struct {
	mock.Mock
}

func (m *mockProfileRepository) Create(ctx context.Context, profile *accountDomain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileRepository) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*accountDomain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Profile), args.Error(1)
}

func (m *mockProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func setupAccountUseCase(t *testing.T) (
	*accountUseCase,
	*mockTxManager,
	*mockAccountRepository,
	*mockProfileRepository,
) {
	t.Helper()

	txManager := &mockTxManager{}
	accountRepo := &mockAccountRepository{}
	profileRepo := &mockProfileRepository{}

	uc, err := NewAccountUseCase(txManager, accountRepo, profileRepo)
	require.NoError(t, err)

	return uc.(*accountUseCase), txManager, accountRepo, profileRepo
}

// hashedAccount returns an account whose stored hash matches password.
func hashedAccount(t *testing.T, uc *accountUseCase, password string, active bool) *accountDomain.Account {
	t.Helper()

	hash, err := uc.passwordHasher.Hash([]byte(password))
	require.NoError(t, err)

	return &accountDomain.Account{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     "auth1@users.com",
		PasswordHash: hash,
		IsActive:     active,
	}
}

func TestAccountUseCase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CreatesAccountAndProfileInTransaction", func(t *testing.T) {
		uc, txManager, accountRepo, profileRepo := setupAccountUseCase(t)

		var created *accountDomain.Account
		accountRepo.On("Create", ctx, mock.MatchedBy(func(a *accountDomain.Account) bool {
			return a.Username == "auth1@users.com" && !a.IsActive && a.PasswordHash != "Passw0rd!"
		})).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*accountDomain.Account)
			}).
			Return(nil).
			Once()
		profileRepo.On("Create", ctx, mock.MatchedBy(func(p *accountDomain.Profile) bool {
			return p.UserID == created.ID && p.Email == "auth1@users.com" && p.FullName == "Auth One"
		})).
			Return(nil).
			Once()

		account, err := uc.Register(ctx, &accountDomain.RegisterAccountInput{
			Email:    "  Auth1@Users.com ",
			Password: "Passw0rd!",
			FullName: "Auth One",
		})

		require.NoError(t, err)
		assert.Equal(t, "auth1@users.com", account.Username)
		assert.False(t, account.IsActive)
		assert.Equal(t, 1, txManager.calls)
		accountRepo.AssertExpectations(t)
		profileRepo.AssertExpectations(t)
	})

	t.Run("Error_InvalidEmail", func(t *testing.T) {
		uc, _, accountRepo, _ := setupAccountUseCase(t)

		_, err := uc.Register(ctx, &accountDomain.RegisterAccountInput{
			Email:    "not-an-email",
			Password: "Passw0rd!",
		})

		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_WeakPassword", func(t *testing.T) {
		uc, _, _, _ := setupAccountUseCase(t)

		_, err := uc.Register(ctx, &accountDomain.RegisterAccountInput{
			Email:    "auth1@users.com",
			Password: "password",
		})

		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("Error_DuplicateUsername", func(t *testing.T) {
		uc, _, accountRepo, profileRepo := setupAccountUseCase(t)

		accountRepo.On("Create", ctx, mock.Anything).
			Return(accountDomain.ErrAccountAlreadyExists).
			Once()

		_, err := uc.Register(ctx, &accountDomain.RegisterAccountInput{
			Email:    "auth1@users.com",
			Password: "Passw0rd!",
		})

		assert.ErrorIs(t, err, accountDomain.ErrAccountAlreadyExists)
		profileRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAccountUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ValidPassword", func(t *testing.T) {
		uc, _, accountRepo, _ := setupAccountUseCase(t)
		account := hashedAccount(t, uc, "Passw0rd!", true)

		accountRepo.On("GetByUsername", ctx, "auth1@users.com").Return(account, nil).Once()

		result, err := uc.Authenticate(ctx, "Auth1@users.com", "Passw0rd!")

		require.NoError(t, err)
		assert.Equal(t, account.ID, result.ID)
	})

	t.Run("Success_InactiveAccountIsStillReturned", func(t *testing.T) {
		uc, _, accountRepo, _ := setupAccountUseCase(t)
		account := hashedAccount(t, uc, "Passw0rd!", false)

		accountRepo.On("GetByUsername", ctx, "auth1@users.com").Return(account, nil).Once()

		result, err := uc.Authenticate(ctx, "auth1@users.com", "Passw0rd!")

		require.NoError(t, err)
		assert.False(t, result.IsActive)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		uc, _, accountRepo, _ := setupAccountUseCase(t)
		account := hashedAccount(t, uc, "Passw0rd!", true)

		accountRepo.On("GetByUsername", ctx, "auth1@users.com").Return(account, nil).Once()

		_, err := uc.Authenticate(ctx, "auth1@users.com", "wrongPassword")

		assert.ErrorIs(t, err, accountDomain.ErrInvalidCredentials)
	})

	t.Run("Error_UnknownUsername", func(t *testing.T) {
		uc, _, accountRepo, _ := setupAccountUseCase(t)

		accountRepo.On("GetByUsername", ctx, "ghost@users.com").
			Return(nil, accountDomain.ErrAccountNotFound).
			Once()

		_, err := uc.Authenticate(ctx, "ghost@users.com", "Passw0rd!")

		assert.ErrorIs(t, err, accountDomain.ErrInvalidCredentials)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		uc, _, accountRepo, _ := setupAccountUseCase(t)
		dbErr := errors.New("connection refused")

		accountRepo.On("GetByUsername", ctx, "auth1@users.com").Return(nil, dbErr).Once()

		_, err := uc.Authenticate(ctx, "auth1@users.com", "Passw0rd!")

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestAccountUseCase_SetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CurrentPasswordMatches", func(t *testing.T) {
		uc, _, accountRepo, _ := setupAccountUseCase(t)
		account := hashedAccount(t, uc, "Passw0rd!", true)
		oldHash := account.PasswordHash

		accountRepo.On("Get", ctx, account.ID).Return(account, nil).Once()
		accountRepo.On("Update", ctx, mock.MatchedBy(func(a *accountDomain.Account) bool {
			return a.PasswordHash != oldHash
		})).Return(nil).Once()

		err := uc.SetPassword(ctx, account.ID, "Passw0rd!", "N3wPassword")

		require.NoError(t, err)
		assert.True(t, uc.verifyPassword("N3wPassword", account.PasswordHash))
		accountRepo.AssertExpectations(t)
	})

	t.Run("Error_CurrentPasswordMismatch", func(t *testing.T) {
		uc, _, accountRepo, _ := setupAccountUseCase(t)
		account := hashedAccount(t, uc, "Passw0rd!", true)

		accountRepo.On("Get", ctx, account.ID).Return(account, nil).Once()

		err := uc.SetPassword(ctx, account.ID, "nope", "N3wPassword")

		assert.ErrorIs(t, err, accountDomain.ErrInvalidCredentials)
		accountRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestAccountUseCase_ForceSetPassword(t *testing.T) {
	ctx := context.Background()
	uc, _, accountRepo, _ := setupAccountUseCase(t)
	account := hashedAccount(t, uc, "Passw0rd!", true)

	accountRepo.On("Get", ctx, account.ID).Return(account, nil).Once()
	accountRepo.On("Update", ctx, account).Return(nil).Once()

	err := uc.ForceSetPassword(ctx, account.ID, "Forc3dPassword")

	require.NoError(t, err)
	assert.True(t, uc.verifyPassword("Forc3dPassword", account.PasswordHash))
}

func TestAccountUseCase_ActivateDeactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("Activate", func(t *testing.T) {
		uc, _, accountRepo, _ := setupAccountUseCase(t)
		account := &accountDomain.Account{ID: uuid.Must(uuid.NewV7())}

		accountRepo.On("Get", ctx, account.ID).Return(account, nil).Once()
		accountRepo.On("Update", ctx, mock.MatchedBy(func(a *accountDomain.Account) bool {
			return a.IsActive
		})).Return(nil).Once()

		require.NoError(t, uc.Activate(ctx, account.ID))
		accountRepo.AssertExpectations(t)
	})

	t.Run("Deactivate", func(t *testing.T) {
		uc, _, accountRepo, _ := setupAccountUseCase(t)
		account := &accountDomain.Account{ID: uuid.Must(uuid.NewV7()), IsActive: true}

		accountRepo.On("Get", ctx, account.ID).Return(account, nil).Once()
		accountRepo.On("Update", ctx, mock.MatchedBy(func(a *accountDomain.Account) bool {
			return !a.IsActive
		})).Return(nil).Once()

		require.NoError(t, uc.Deactivate(ctx, account.ID))
		accountRepo.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		uc, _, accountRepo, _ := setupAccountUseCase(t)
		id := uuid.Must(uuid.NewV7())

		accountRepo.On("Get", ctx, id).Return(nil, accountDomain.ErrAccountNotFound).Once()

		assert.ErrorIs(t, uc.Activate(ctx, id), accountDomain.ErrAccountNotFound)
	})
}

func TestAccountUseCase_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DeletesProfileThenAccount", func(t *testing.T) {
		uc, txManager, accountRepo, profileRepo := setupAccountUseCase(t)
		account := &accountDomain.Account{ID: uuid.Must(uuid.NewV7())}

		accountRepo.On("Get", ctx, account.ID).Return(account, nil).Once()
		profileRepo.On("DeleteByUserID", ctx, account.ID).Return(nil).Once()
		accountRepo.On("Delete", ctx, account.ID).Return(nil).Once()

		require.NoError(t, uc.Remove(ctx, account.ID))
		assert.Equal(t, 1, txManager.calls)
		accountRepo.AssertExpectations(t)
		profileRepo.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		uc, _, accountRepo, profileRepo := setupAccountUseCase(t)
		id := uuid.Must(uuid.NewV7())

		accountRepo.On("Get", ctx, id).Return(nil, accountDomain.ErrAccountNotFound).Once()

		assert.ErrorIs(t, uc.Remove(ctx, id), accountDomain.ErrAccountNotFound)
		profileRepo.AssertNotCalled(t, "DeleteByUserID", mock.Anything, mock.Anything)
	})
}
