// Package repository implements account and profile persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	accountDomain "github.com/allisson/hawkpair/internal/account/domain"
	"github.com/allisson/hawkpair/internal/database"
	apperrors "github.com/allisson/hawkpair/internal/errors"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgreSQLAccountRepository implements Account persistence for PostgreSQL.
type PostgreSQLAccountRepository struct {
	db *sql.DB
}

// Create inserts a new account. Returns ErrAccountAlreadyExists on a duplicate username.
func (p *PostgreSQLAccountRepository) Create(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO accounts (id, username, password_hash, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		account.ID,
		account.Username,
		account.PasswordHash,
		account.IsActive,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return accountDomain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// Update modifies the password hash, active flag and update timestamp of an account.
func (p *PostgreSQLAccountRepository) Update(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE accounts
			  SET password_hash = $1,
				  is_active = $2,
				  updated_at = $3
			  WHERE id = $4`

	result, err := querier.ExecContext(
		ctx,
		query,
		account.PasswordHash,
		account.IsActive,
		account.UpdatedAt,
		account.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update account")
	}

	return requireAffected(result, accountDomain.ErrAccountNotFound)
}

// Get retrieves an account by ID. Returns ErrAccountNotFound if it doesn't exist.
func (p *PostgreSQLAccountRepository) Get(ctx context.Context, id uuid.UUID) (*accountDomain.Account, error) {
	query := `SELECT id, username, password_hash, is_active, created_at, updated_at
			  FROM accounts WHERE id = $1`

	return p.scanOne(ctx, query, id)
}

// GetByUsername retrieves an account by username. Returns ErrAccountNotFound if it doesn't exist.
func (p *PostgreSQLAccountRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*accountDomain.Account, error) {
	query := `SELECT id, username, password_hash, is_active, created_at, updated_at
			  FROM accounts WHERE username = $1`

	return p.scanOne(ctx, query, username)
}

// Delete removes an account. Returns ErrAccountNotFound if nothing was deleted.
func (p *PostgreSQLAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete account")
	}

	return requireAffected(result, accountDomain.ErrAccountNotFound)
}

func (p *PostgreSQLAccountRepository) scanOne(
	ctx context.Context,
	query string,
	arg any,
) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, p.db)

	var account accountDomain.Account
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&account.IsActive,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountDomain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account")
	}

	return &account, nil
}

// NewPostgreSQLAccountRepository creates a new PostgreSQL Account repository.
func NewPostgreSQLAccountRepository(db *sql.DB) *PostgreSQLAccountRepository {
	return &PostgreSQLAccountRepository{db: db}
}

// requireAffected maps a zero-row write to notFound.
func requireAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
