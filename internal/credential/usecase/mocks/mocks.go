// Package mocks provides mock implementations of the credential use case for testing.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	credentialDomain "github.com/allisson/hawkpair/internal/credential/domain"
)

// MockCredentialUseCase is a mock implementation of CredentialUseCase for testing.
type MockCredentialUseCase struct {
	mock.Mock
}

// Login mocks the Login method of CredentialUseCase.
func (m *MockCredentialUseCase) Login(
	ctx context.Context,
	input *credentialDomain.LoginInput,
	now time.Time,
) (*credentialDomain.LoginOutput, error) {
	args := m.Called(ctx, input, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.LoginOutput), args.Error(1)
}

// Issue mocks the Issue method of CredentialUseCase.
func (m *MockCredentialUseCase) Issue(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*credentialDomain.Credential, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.Credential), args.Error(1)
}

// Verify mocks the Verify method of CredentialUseCase.
func (m *MockCredentialUseCase) Verify(
	ctx context.Context,
	credentialID string,
	now time.Time,
) (*credentialDomain.Assertion, error) {
	args := m.Called(ctx, credentialID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.Assertion), args.Error(1)
}

// Revoke mocks the Revoke method of CredentialUseCase.
func (m *MockCredentialUseCase) Revoke(ctx context.Context, secretKey string, userID uuid.UUID) error {
	args := m.Called(ctx, secretKey, userID)
	return args.Error(0)
}
