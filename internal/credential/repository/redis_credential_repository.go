package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	credentialDomain "github.com/allisson/hawkpair/internal/credential/domain"
	credentialService "github.com/allisson/hawkpair/internal/credential/service"
	apperrors "github.com/allisson/hawkpair/internal/errors"
)

// maxWatchRetries bounds optimistic transaction retries when a key changes under WATCH.
const maxWatchRetries = 5

// redisGetter is satisfied by both *redis.Client and *redis.Tx.
type redisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// redisCredential is the JSON document stored under the id key.
type redisCredential struct {
	ID        string    `json:"credential_id"`
	UserID    uuid.UUID `json:"user_id"`
	SecretKey string    `json:"secret_key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RedisCredentialRepository stores credentials in Redis. Each record lives under
// "<prefix>credential:id:<id>" and is indexed by "<prefix>credential:key:<sha256(secret)>".
// Keys carry no TTL; expiry is decided when a record is read.
type RedisCredentialRepository struct {
	client *redis.Client
	prefix string
	sealer credentialService.SecretSealer
}

// Set writes the record and its secret key index in one MULTI/EXEC. If the id already
// held a different secret key, the stale index entry is removed in the same transaction.
func (r *RedisCredentialRepository) Set(ctx context.Context, credential *credentialDomain.Credential) error {
	sealed, err := r.sealer.Seal(ctx, credential.SecretKey)
	if err != nil {
		return apperrors.Wrap(err, "failed to seal secret key")
	}

	data, err := json.Marshal(redisCredential{
		ID:        credential.ID,
		UserID:    credential.UserID,
		SecretKey: sealed,
		ExpiresAt: credential.ExpiresAt.UTC(),
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential")
	}

	idKey := r.idKey(credential.ID)
	indexKey := r.indexKey(credential.SecretKey)

	return r.watch(ctx, func(tx *redis.Tx) error {
		previous, err := r.load(ctx, tx, idKey)
		if err != nil && !errors.Is(err, credentialDomain.ErrCredentialNotFound) {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if previous != nil && previous.SecretKey != credential.SecretKey {
				pipe.Del(ctx, r.indexKey(previous.SecretKey))
			}
			pipe.Set(ctx, idKey, data, 0)
			pipe.Set(ctx, indexKey, credential.ID, 0)
			return nil
		})
		return err
	}, idKey)
}

// Renew rewrites the stored document with the new expiry. The id key is watched, so a
// concurrent Unset either lands first (nothing is renewed) or aborts and retries the renewal.
func (r *RedisCredentialRepository) Renew(ctx context.Context, credentialID string, expiresAt time.Time) (bool, error) {
	idKey := r.idKey(credentialID)
	renewed := false

	err := r.watch(ctx, func(tx *redis.Tx) error {
		renewed = false

		data, err := tx.Get(ctx, idKey).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil
			}
			return apperrors.Wrap(err, "failed to get credential")
		}

		var stored redisCredential
		if err := json.Unmarshal(data, &stored); err != nil {
			return apperrors.Wrap(err, "failed to unmarshal credential")
		}
		stored.ExpiresAt = expiresAt.UTC()

		updated, err := json.Marshal(stored)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal credential")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, idKey, updated, 0)
			return nil
		})
		if err != nil {
			return err
		}
		renewed = true
		return nil
	}, idKey)
	if err != nil {
		return false, err
	}
	return renewed, nil
}

func (r *RedisCredentialRepository) Unset(ctx context.Context, credentialID string) error {
	idKey := r.idKey(credentialID)

	return r.watch(ctx, func(tx *redis.Tx) error {
		credential, err := r.load(ctx, tx, idKey)
		if err != nil {
			if errors.Is(err, credentialDomain.ErrCredentialNotFound) {
				return nil
			}
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, idKey, r.indexKey(credential.SecretKey))
			return nil
		})
		return err
	}, idKey)
}

func (r *RedisCredentialRepository) GetByID(
	ctx context.Context,
	credentialID string,
) (*credentialDomain.Credential, error) {
	return r.load(ctx, r.client, r.idKey(credentialID))
}

func (r *RedisCredentialRepository) GetBySecretKey(
	ctx context.Context,
	secretKey string,
) (*credentialDomain.Credential, error) {
	credentialID, err := r.client.Get(ctx, r.indexKey(secretKey)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, credentialDomain.ErrCredentialNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential index")
	}

	credential, err := r.load(ctx, r.client, r.idKey(credentialID))
	if err != nil {
		return nil, err
	}
	if credential.SecretKey != secretKey {
		return nil, credentialDomain.ErrCredentialNotFound
	}
	return credential, nil
}

func (r *RedisCredentialRepository) Exists(ctx context.Context, credentialID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.idKey(credentialID)).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check credential")
	}
	return n > 0, nil
}

func (r *RedisCredentialRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCredentialRepository) load(
	ctx context.Context,
	cmd redisGetter,
	idKey string,
) (*credentialDomain.Credential, error) {
	data, err := cmd.Get(ctx, idKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, credentialDomain.ErrCredentialNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential")
	}

	var stored redisCredential
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal credential")
	}

	secretKey, err := r.sealer.Open(ctx, stored.SecretKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open secret key")
	}

	return &credentialDomain.Credential{
		ID:        stored.ID,
		SecretKey: secretKey,
		UserID:    stored.UserID,
		ExpiresAt: stored.ExpiresAt.UTC(),
	}, nil
}

func (r *RedisCredentialRepository) watch(ctx context.Context, fn func(*redis.Tx) error, keys ...string) error {
	for i := 0; i < maxWatchRetries; i++ {
		err := r.client.Watch(ctx, fn, keys...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return apperrors.Wrap(err, "redis transaction failed")
		}
		return nil
	}
	return apperrors.New("redis transaction failed: too many concurrent updates")
}

func (r *RedisCredentialRepository) idKey(credentialID string) string {
	return r.prefix + "credential:id:" + credentialID
}

func (r *RedisCredentialRepository) indexKey(secretKey string) string {
	return r.prefix + "credential:key:" + credentialService.HashSecretKey(secretKey)
}

// NewRedisCredentialRepository creates a Redis credential store. prefix namespaces every key.
func NewRedisCredentialRepository(
	client *redis.Client,
	prefix string,
	sealer credentialService.SecretSealer,
) *RedisCredentialRepository {
	return &RedisCredentialRepository{client: client, prefix: prefix, sealer: sealer}
}
