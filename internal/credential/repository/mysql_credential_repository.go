package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	credentialDomain "github.com/allisson/hawkpair/internal/credential/domain"
	credentialService "github.com/allisson/hawkpair/internal/credential/service"
	"github.com/allisson/hawkpair/internal/database"
	apperrors "github.com/allisson/hawkpair/internal/errors"
)

// MySQLCredentialRepository implements the durable credential store for MySQL.
// User ids are stored as BINARY(16).
type MySQLCredentialRepository struct {
	db     *sql.DB
	sealer credentialService.SecretSealer
}

// Set upserts the credential in a single statement so both lookup columns change together.
func (m *MySQLCredentialRepository) Set(ctx context.Context, credential *credentialDomain.Credential) error {
	querier := database.GetTx(ctx, m.db)

	userID, err := credential.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	sealed, err := m.sealer.Seal(ctx, credential.SecretKey)
	if err != nil {
		return apperrors.Wrap(err, "failed to seal secret key")
	}

	query := `INSERT INTO credentials (credential_id, user_id, secret_key_hash, secret_key, expires_at)
			  VALUES (?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
				  user_id = VALUES(user_id),
				  secret_key_hash = VALUES(secret_key_hash),
				  secret_key = VALUES(secret_key),
				  expires_at = VALUES(expires_at)`

	_, err = querier.ExecContext(
		ctx,
		query,
		credential.ID,
		userID,
		credentialService.HashSecretKey(credential.SecretKey),
		sealed,
		credential.ExpiresAt.UTC(),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to set credential")
	}
	return nil
}

// Renew is a plain UPDATE so a record deleted since it was read is not recreated.
func (m *MySQLCredentialRepository) Renew(ctx context.Context, credentialID string, expiresAt time.Time) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(
		ctx,
		`UPDATE credentials SET expires_at = ? WHERE credential_id = ?`,
		expiresAt.UTC(),
		credentialID,
	)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to renew credential")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows > 0 {
		return true, nil
	}

	// MySQL counts changed rows, so an unchanged expiry also reports zero.
	return m.Exists(ctx, credentialID)
}

func (m *MySQLCredentialRepository) Unset(ctx context.Context, credentialID string) error {
	querier := database.GetTx(ctx, m.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM credentials WHERE credential_id = ?`, credentialID); err != nil {
		return apperrors.Wrap(err, "failed to unset credential")
	}
	return nil
}

func (m *MySQLCredentialRepository) GetByID(
	ctx context.Context,
	credentialID string,
) (*credentialDomain.Credential, error) {
	query := `SELECT credential_id, user_id, secret_key, expires_at
			  FROM credentials WHERE credential_id = ?`

	return m.scanOne(ctx, query, credentialID)
}

func (m *MySQLCredentialRepository) GetBySecretKey(
	ctx context.Context,
	secretKey string,
) (*credentialDomain.Credential, error) {
	query := `SELECT credential_id, user_id, secret_key, expires_at
			  FROM credentials WHERE secret_key_hash = ?`

	return m.scanOne(ctx, query, credentialService.HashSecretKey(secretKey))
}

func (m *MySQLCredentialRepository) Exists(ctx context.Context, credentialID string) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM credentials WHERE credential_id = ?)`
	if err := querier.QueryRowContext(ctx, query, credentialID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check credential")
	}
	return exists, nil
}

func (m *MySQLCredentialRepository) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *MySQLCredentialRepository) scanOne(
	ctx context.Context,
	query string,
	arg any,
) (*credentialDomain.Credential, error) {
	querier := database.GetTx(ctx, m.db)

	var (
		credential  credentialDomain.Credential
		userIDBytes []byte
		sealed      string
		expiresAt   time.Time
	)
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&credential.ID,
		&userIDBytes,
		&sealed,
		&expiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, credentialDomain.ErrCredentialNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential")
	}

	if err := credential.UserID.UnmarshalBinary(userIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}

	secretKey, err := m.sealer.Open(ctx, sealed)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open secret key")
	}
	credential.SecretKey = secretKey
	credential.ExpiresAt = expiresAt.UTC()

	return &credential, nil
}

// NewMySQLCredentialRepository creates a new MySQL credential store.
func NewMySQLCredentialRepository(db *sql.DB, sealer credentialService.SecretSealer) *MySQLCredentialRepository {
	return &MySQLCredentialRepository{db: db, sealer: sealer}
}
