package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credentialDomain "github.com/allisson/hawkpair/internal/credential/domain"
	"github.com/allisson/hawkpair/internal/credential/usecase"
)

func newTestCredential() *credentialDomain.Credential {
	return &credentialDomain.Credential{
		ID:        uuid.NewString(),
		SecretKey: uuid.NewString(),
		UserID:    uuid.Must(uuid.NewV7()),
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour).Truncate(time.Millisecond),
	}
}

// testStoreContract runs the behavior every credential store must share.
func testStoreContract(t *testing.T, newStore func(t *testing.T) usecase.CredentialRepository) {
	ctx := context.Background()

	t.Run("SetThenGetByBothIndexes", func(t *testing.T) {
		store := newStore(t)
		credential := newTestCredential()

		require.NoError(t, store.Set(ctx, credential))

		byID, err := store.GetByID(ctx, credential.ID)
		require.NoError(t, err)
		assert.Equal(t, credential.ID, byID.ID)
		assert.Equal(t, credential.SecretKey, byID.SecretKey)
		assert.Equal(t, credential.UserID, byID.UserID)
		assert.True(t, credential.ExpiresAt.Equal(byID.ExpiresAt))

		bySecret, err := store.GetBySecretKey(ctx, credential.SecretKey)
		require.NoError(t, err)
		assert.Equal(t, byID, bySecret)

		exists, err := store.Exists(ctx, credential.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("UnsetClearsBothIndexes", func(t *testing.T) {
		store := newStore(t)
		credential := newTestCredential()
		require.NoError(t, store.Set(ctx, credential))

		require.NoError(t, store.Unset(ctx, credential.ID))

		_, err := store.GetByID(ctx, credential.ID)
		assert.ErrorIs(t, err, credentialDomain.ErrCredentialNotFound)
		_, err = store.GetBySecretKey(ctx, credential.SecretKey)
		assert.ErrorIs(t, err, credentialDomain.ErrCredentialNotFound)

		exists, err := store.Exists(ctx, credential.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("UnsetUnknownIsNoOp", func(t *testing.T) {
		store := newStore(t)
		assert.NoError(t, store.Unset(ctx, uuid.NewString()))
	})

	t.Run("SetReplacesExistingRecord", func(t *testing.T) {
		store := newStore(t)
		credential := newTestCredential()
		require.NoError(t, store.Set(ctx, credential))

		renewed := *credential
		renewed.ExpiresAt = credential.ExpiresAt.Add(time.Hour)
		require.NoError(t, store.Set(ctx, &renewed))

		got, err := store.GetBySecretKey(ctx, credential.SecretKey)
		require.NoError(t, err)
		assert.True(t, renewed.ExpiresAt.Equal(got.ExpiresAt))
	})

	t.Run("SetWithNewSecretDropsOldIndex", func(t *testing.T) {
		store := newStore(t)
		credential := newTestCredential()
		require.NoError(t, store.Set(ctx, credential))

		rotated := *credential
		rotated.SecretKey = uuid.NewString()
		require.NoError(t, store.Set(ctx, &rotated))

		_, err := store.GetBySecretKey(ctx, credential.SecretKey)
		assert.ErrorIs(t, err, credentialDomain.ErrCredentialNotFound)

		got, err := store.GetBySecretKey(ctx, rotated.SecretKey)
		require.NoError(t, err)
		assert.Equal(t, credential.ID, got.ID)
	})

	t.Run("RenewMovesExpiry", func(t *testing.T) {
		store := newStore(t)
		credential := newTestCredential()
		require.NoError(t, store.Set(ctx, credential))

		expiresAt := credential.ExpiresAt.Add(2 * time.Hour)
		renewed, err := store.Renew(ctx, credential.ID, expiresAt)
		require.NoError(t, err)
		assert.True(t, renewed)

		got, err := store.GetBySecretKey(ctx, credential.SecretKey)
		require.NoError(t, err)
		assert.True(t, expiresAt.Equal(got.ExpiresAt))
		assert.Equal(t, credential.SecretKey, got.SecretKey)
	})

	t.Run("RenewAfterUnsetDoesNotRecreate", func(t *testing.T) {
		store := newStore(t)
		credential := newTestCredential()
		require.NoError(t, store.Set(ctx, credential))

		read, err := store.GetByID(ctx, credential.ID)
		require.NoError(t, err)
		require.NoError(t, store.Unset(ctx, credential.ID))

		renewed, err := store.Renew(ctx, read.ID, read.ExpiresAt.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, renewed)

		exists, err := store.Exists(ctx, credential.ID)
		require.NoError(t, err)
		assert.False(t, exists)
		_, err = store.GetBySecretKey(ctx, credential.SecretKey)
		assert.ErrorIs(t, err, credentialDomain.ErrCredentialNotFound)
	})

	t.Run("MissingLookups", func(t *testing.T) {
		store := newStore(t)

		_, err := store.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, credentialDomain.ErrCredentialNotFound)
		_, err = store.GetBySecretKey(ctx, "missing")
		assert.ErrorIs(t, err, credentialDomain.ErrCredentialNotFound)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, newStore(t).Ping(ctx))
	})
}
