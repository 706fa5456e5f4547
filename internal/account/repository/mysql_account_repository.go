package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	accountDomain "github.com/allisson/hawkpair/internal/account/domain"
	"github.com/allisson/hawkpair/internal/database"
	apperrors "github.com/allisson/hawkpair/internal/errors"
)

// mysqlDuplicateEntry is the MySQL error number for unique key violations.
const mysqlDuplicateEntry = 1062

// MySQLAccountRepository implements Account persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLAccountRepository struct {
	db *sql.DB
}

// Create inserts a new account. Returns ErrAccountAlreadyExists on a duplicate username.
func (m *MySQLAccountRepository) Create(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, m.db)

	id, err := account.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `INSERT INTO accounts (id, username, password_hash, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		account.Username,
		account.PasswordHash,
		account.IsActive,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
			return accountDomain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// Update modifies the password hash, active flag and update timestamp of an account.
func (m *MySQLAccountRepository) Update(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, m.db)

	id, err := account.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `UPDATE accounts
			  SET password_hash = ?,
				  is_active = ?,
				  updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		account.PasswordHash,
		account.IsActive,
		account.UpdatedAt,
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update account")
	}

	return requireAffected(result, accountDomain.ErrAccountNotFound)
}

// Get retrieves an account by ID. Returns ErrAccountNotFound if it doesn't exist.
func (m *MySQLAccountRepository) Get(ctx context.Context, accountID uuid.UUID) (*accountDomain.Account, error) {
	id, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `SELECT id, username, password_hash, is_active, created_at, updated_at
			  FROM accounts WHERE id = ?`

	return m.scanOne(ctx, query, id)
}

// GetByUsername retrieves an account by username. Returns ErrAccountNotFound if it doesn't exist.
func (m *MySQLAccountRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*accountDomain.Account, error) {
	query := `SELECT id, username, password_hash, is_active, created_at, updated_at
			  FROM accounts WHERE username = ?`

	return m.scanOne(ctx, query, username)
}

// Delete removes an account. Returns ErrAccountNotFound if nothing was deleted.
func (m *MySQLAccountRepository) Delete(ctx context.Context, accountID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := accountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete account")
	}

	return requireAffected(result, accountDomain.ErrAccountNotFound)
}

func (m *MySQLAccountRepository) scanOne(
	ctx context.Context,
	query string,
	arg any,
) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, m.db)

	var account accountDomain.Account
	var idBytes []byte

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&idBytes,
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

	if err := account.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal account id")
	}

	return &account, nil
}

// NewMySQLAccountRepository creates a new MySQL Account repository.
func NewMySQLAccountRepository(db *sql.DB) *MySQLAccountRepository {
	return &MySQLAccountRepository{db: db}
}
