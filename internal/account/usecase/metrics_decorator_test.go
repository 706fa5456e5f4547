package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/allisson/hawkpair/internal/account/domain"
)

type stubAccountUseCase struct {
	AccountUseCase
	err error
}

func (s *stubAccountUseCase) Register(
	context.Context,
	*accountDomain.RegisterAccountInput,
) (*accountDomain.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &accountDomain.Account{ID: uuid.Must(uuid.NewV7())}, nil
}

func (s *stubAccountUseCase) Deactivate(context.Context, uuid.UUID) error {
	return s.err
}

type recordingMetrics struct {
	mock.Mock
}

func (m *recordingMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *recordingMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *recordingMetrics) expect(ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "account", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "account", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestAccountUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Register success", func(t *testing.T) {
		m := &recordingMetrics{}
		m.expect(ctx, "register", "success")

		uc := NewAccountUseCaseWithMetrics(&stubAccountUseCase{}, m)
		account, err := uc.Register(ctx, &accountDomain.RegisterAccountInput{})

		require.NoError(t, err)
		assert.NotNil(t, account)
		m.AssertExpectations(t)
	})

	t.Run("Deactivate error", func(t *testing.T) {
		m := &recordingMetrics{}
		m.expect(ctx, "deactivate", "error")

		boom := errors.New("boom")
		uc := NewAccountUseCaseWithMetrics(&stubAccountUseCase{err: boom}, m)

		assert.ErrorIs(t, uc.Deactivate(ctx, uuid.Must(uuid.NewV7())), boom)
		m.AssertExpectations(t)
	})
}
