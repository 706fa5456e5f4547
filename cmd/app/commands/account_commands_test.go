package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/allisson/hawkpair/internal/account/domain"
	accountMocks "github.com/allisson/hawkpair/internal/account/usecase/mocks"
)

func TestRunCreateAccount(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.Must(uuid.NewV7())
	account := &accountDomain.Account{ID: accountID, Username: "ines@example.com", IsActive: true}

	t.Run("password-flag-text", func(t *testing.T) {
		uc := &accountMocks.MockAccountUseCase{}
		uc.On("Register", ctx, &accountDomain.RegisterAccountInput{
			Email:    "ines@example.com",
			Password: "correct horse",
			FullName: "Ines",
			IsActive: true,
		}).Return(account, nil).Once()

		var out bytes.Buffer
		err := RunCreateAccount(ctx, uc, discardLogger(), IOTuple{Writer: &out},
			"ines@example.com", "correct horse", "Ines", true, "text")

		require.NoError(t, err)
		assert.Contains(t, out.String(), accountID.String())
		assert.Contains(t, out.String(), "ines@example.com")
		uc.AssertExpectations(t)
	})

	t.Run("prompted-password-json", func(t *testing.T) {
		uc := &accountMocks.MockAccountUseCase{}
		uc.On("Register", ctx, &accountDomain.RegisterAccountInput{
			Email:    "ines@example.com",
			Password: "typed secret",
			IsActive: true,
		}).Return(account, nil).Once()

		var out bytes.Buffer
		streams := IOTuple{Reader: strings.NewReader("typed secret\n"), Writer: &out}
		err := RunCreateAccount(ctx, uc, discardLogger(), streams,
			"ines@example.com", "", "", true, "json")
		require.NoError(t, err)

		body := strings.TrimPrefix(out.String(), "Password: ")
		var decoded createAccountOutput
		require.NoError(t, json.Unmarshal([]byte(body), &decoded))
		assert.Equal(t, accountID.String(), decoded.ID)
		assert.True(t, decoded.IsActive)
		uc.AssertExpectations(t)
	})

	t.Run("no-input", func(t *testing.T) {
		uc := &accountMocks.MockAccountUseCase{}

		err := RunCreateAccount(ctx, uc, discardLogger(), IOTuple{Writer: &bytes.Buffer{}},
			"ines@example.com", "", "", true, "text")

		require.Error(t, err)
		uc.AssertNotCalled(t, "Register")
	})

	t.Run("register-error", func(t *testing.T) {
		uc := &accountMocks.MockAccountUseCase{}
		uc.On("Register", ctx, &accountDomain.RegisterAccountInput{
			Email:    "ines@example.com",
			Password: "pw",
		}).Return(nil, accountDomain.ErrAccountAlreadyExists).Once()

		err := RunCreateAccount(ctx, uc, discardLogger(), IOTuple{Writer: &bytes.Buffer{}},
			"ines@example.com", "pw", "", false, "text")

		assert.ErrorIs(t, err, accountDomain.ErrAccountAlreadyExists)
	})
}

func TestRunSetAccountActive(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.Must(uuid.NewV7())

	t.Run("activate", func(t *testing.T) {
		uc := &accountMocks.MockAccountUseCase{}
		uc.On("Activate", ctx, accountID).Return(nil).Once()

		var out bytes.Buffer
		require.NoError(t, RunSetAccountActive(ctx, uc, discardLogger(), IOTuple{Writer: &out},
			accountID.String(), true))

		assert.Contains(t, out.String(), "activated")
		uc.AssertExpectations(t)
	})

	t.Run("deactivate", func(t *testing.T) {
		uc := &accountMocks.MockAccountUseCase{}
		uc.On("Deactivate", ctx, accountID).Return(nil).Once()

		var out bytes.Buffer
		require.NoError(t, RunSetAccountActive(ctx, uc, discardLogger(), IOTuple{Writer: &out},
			accountID.String(), false))

		assert.Contains(t, out.String(), "deactivated")
		uc.AssertExpectations(t)
	})

	t.Run("invalid-id", func(t *testing.T) {
		uc := &accountMocks.MockAccountUseCase{}

		err := RunSetAccountActive(ctx, uc, discardLogger(), IOTuple{Writer: &bytes.Buffer{}},
			"not-a-uuid", true)

		assert.ErrorContains(t, err, "invalid account id")
	})
}

func TestRunSetPassword(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.Must(uuid.NewV7())

	uc := &accountMocks.MockAccountUseCase{}
	uc.On("ForceSetPassword", ctx, accountID, "new secret").Return(nil).Once()

	var out bytes.Buffer
	streams := IOTuple{Reader: strings.NewReader("new secret"), Writer: &out}
	require.NoError(t, RunSetPassword(ctx, uc, discardLogger(), streams, accountID.String(), ""))

	assert.Contains(t, out.String(), "Password updated")
	uc.AssertExpectations(t)
}

func TestRunRemoveAccount(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.Must(uuid.NewV7())

	t.Run("success", func(t *testing.T) {
		uc := &accountMocks.MockAccountUseCase{}
		uc.On("Remove", ctx, accountID).Return(nil).Once()

		var out bytes.Buffer
		require.NoError(t, RunRemoveAccount(ctx, uc, discardLogger(), IOTuple{Writer: &out}, accountID.String()))

		assert.Contains(t, out.String(), "removed")
		uc.AssertExpectations(t)
	})

	t.Run("not-found", func(t *testing.T) {
		uc := &accountMocks.MockAccountUseCase{}
		uc.On("Remove", ctx, accountID).Return(accountDomain.ErrAccountNotFound).Once()

		err := RunRemoveAccount(ctx, uc, discardLogger(), IOTuple{Writer: &bytes.Buffer{}}, accountID.String())

		assert.True(t, errors.Is(err, accountDomain.ErrAccountNotFound))
	})
}
