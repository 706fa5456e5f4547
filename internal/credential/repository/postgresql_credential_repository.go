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

// PostgreSQLCredentialRepository implements the durable credential store for PostgreSQL.
// Secret keys are looked up by their SHA-256 digest and stored sealed.
type PostgreSQLCredentialRepository struct {
	db     *sql.DB
	sealer credentialService.SecretSealer
}

// Set upserts the credential in a single statement so both lookup columns change together.
func (p *PostgreSQLCredentialRepository) Set(ctx context.Context, credential *credentialDomain.Credential) error {
	querier := database.GetTx(ctx, p.db)

	sealed, err := p.sealer.Seal(ctx, credential.SecretKey)
	if err != nil {
		return apperrors.Wrap(err, "failed to seal secret key")
	}

	query := `INSERT INTO credentials (credential_id, user_id, secret_key_hash, secret_key, expires_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (credential_id) DO UPDATE
			  SET user_id = EXCLUDED.user_id,
				  secret_key_hash = EXCLUDED.secret_key_hash,
				  secret_key = EXCLUDED.secret_key,
				  expires_at = EXCLUDED.expires_at`

	_, err = querier.ExecContext(
		ctx,
		query,
		credential.ID,
		credential.UserID,
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
func (p *PostgreSQLCredentialRepository) Renew(ctx context.Context, credentialID string, expiresAt time.Time) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(
		ctx,
		`UPDATE credentials SET expires_at = $1 WHERE credential_id = $2`,
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
	return rows > 0, nil
}

func (p *PostgreSQLCredentialRepository) Unset(ctx context.Context, credentialID string) error {
	querier := database.GetTx(ctx, p.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM credentials WHERE credential_id = $1`, credentialID); err != nil {
		return apperrors.Wrap(err, "failed to unset credential")
	}
	return nil
}

func (p *PostgreSQLCredentialRepository) GetByID(
	ctx context.Context,
	credentialID string,
) (*credentialDomain.Credential, error) {
	query := `SELECT credential_id, user_id, secret_key, expires_at
			  FROM credentials WHERE credential_id = $1`

	return p.scanOne(ctx, query, credentialID)
}

func (p *PostgreSQLCredentialRepository) GetBySecretKey(
	ctx context.Context,
	secretKey string,
) (*credentialDomain.Credential, error) {
	query := `SELECT credential_id, user_id, secret_key, expires_at
			  FROM credentials WHERE secret_key_hash = $1`

	return p.scanOne(ctx, query, credentialService.HashSecretKey(secretKey))
}

func (p *PostgreSQLCredentialRepository) Exists(ctx context.Context, credentialID string) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM credentials WHERE credential_id = $1)`
	if err := querier.QueryRowContext(ctx, query, credentialID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check credential")
	}
	return exists, nil
}

func (p *PostgreSQLCredentialRepository) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *PostgreSQLCredentialRepository) scanOne(
	ctx context.Context,
	query string,
	arg any,
) (*credentialDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	var (
		credential credentialDomain.Credential
		sealed     string
		expiresAt  time.Time
	)
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&credential.ID,
		&credential.UserID,
		&sealed,
		&expiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, credentialDomain.ErrCredentialNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential")
	}

	secretKey, err := p.sealer.Open(ctx, sealed)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open secret key")
	}
	credential.SecretKey = secretKey
	credential.ExpiresAt = expiresAt.UTC()

	return &credential, nil
}

// NewPostgreSQLCredentialRepository creates a new PostgreSQL credential store.
func NewPostgreSQLCredentialRepository(
	db *sql.DB,
	sealer credentialService.SecretSealer,
) *PostgreSQLCredentialRepository {
	return &PostgreSQLCredentialRepository{db: db, sealer: sealer}
}

