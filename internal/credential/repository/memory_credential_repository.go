// Package repository implements the credential store backends: in-process memory,
// PostgreSQL, MySQL and Redis.
package repository

import (
	"context"
	"sync"
	"time"

	credentialDomain "github.com/allisson/hawkpair/internal/credential/domain"
)

// MemoryCredentialRepository keeps credentials in two maps guarded by one lock. It is
// scoped to a single process; construct it once and share the pointer.
type MemoryCredentialRepository struct {
	mu       sync.RWMutex
	byID     map[string]credentialDomain.Credential
	bySecret map[string]string
}

// Set stores a copy of credential under both indexes. A previous record with the same
// id is replaced, including its secret key index entry.
func (m *MemoryCredentialRepository) Set(_ context.Context, credential *credentialDomain.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if previous, ok := m.byID[credential.ID]; ok && previous.SecretKey != credential.SecretKey {
		delete(m.bySecret, previous.SecretKey)
	}

	m.byID[credential.ID] = *credential
	m.bySecret[credential.SecretKey] = credential.ID
	return nil
}

// Renew updates the expiry only while the id is still stored.
func (m *MemoryCredentialRepository) Renew(_ context.Context, credentialID string, expiresAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	credential, ok := m.byID[credentialID]
	if !ok {
		return false, nil
	}

	credential.ExpiresAt = expiresAt
	m.byID[credentialID] = credential
	return true, nil
}

func (m *MemoryCredentialRepository) Unset(_ context.Context, credentialID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	credential, ok := m.byID[credentialID]
	if !ok {
		return nil
	}

	delete(m.byID, credentialID)
	delete(m.bySecret, credential.SecretKey)
	return nil
}

func (m *MemoryCredentialRepository) GetByID(
	_ context.Context,
	credentialID string,
) (*credentialDomain.Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	credential, ok := m.byID[credentialID]
	if !ok {
		return nil, credentialDomain.ErrCredentialNotFound
	}
	return &credential, nil
}

func (m *MemoryCredentialRepository) GetBySecretKey(
	_ context.Context,
	secretKey string,
) (*credentialDomain.Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySecret[secretKey]
	if !ok {
		return nil, credentialDomain.ErrCredentialNotFound
	}
	credential := m.byID[id]
	return &credential, nil
}

func (m *MemoryCredentialRepository) Exists(_ context.Context, credentialID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.byID[credentialID]
	return ok, nil
}

// Ping always succeeds.
func (m *MemoryCredentialRepository) Ping(context.Context) error {
	return nil
}

// Len returns the number of stored credentials.
func (m *MemoryCredentialRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}

// NewMemoryCredentialRepository creates an empty in-memory credential store.
func NewMemoryCredentialRepository() *MemoryCredentialRepository {
	return &MemoryCredentialRepository{
		byID:     make(map[string]credentialDomain.Credential),
		bySecret: make(map[string]string),
	}
}
