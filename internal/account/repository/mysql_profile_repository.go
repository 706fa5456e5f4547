package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/hawkpair/internal/account/domain"
	"github.com/allisson/hawkpair/internal/database"
	apperrors "github.com/allisson/hawkpair/internal/errors"
)

// MySQLProfileRepository implements Profile persistence for MySQL.
type MySQLProfileRepository struct {
	db *sql.DB
}

func (m *MySQLProfileRepository) Create(ctx context.Context, profile *accountDomain.Profile) error {
	querier := database.GetTx(ctx, m.db)

	id, err := profile.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal profile id")
	}

	userID, err := profile.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `INSERT INTO profiles (id, user_id, full_name, email, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, userID, profile.FullName, profile.Email, profile.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create profile")
	}
	return nil
}

func (m *MySQLProfileRepository) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*accountDomain.Profile, error) {
	querier := database.GetTx(ctx, m.db)

	uid, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `SELECT id, user_id, full_name, email, created_at
			  FROM profiles WHERE user_id = ?`

	var profile accountDomain.Profile
	var idBytes, userIDBytes []byte

	err = querier.QueryRowContext(ctx, query, uid).Scan(
		&idBytes,
		&userIDBytes,
		&profile.FullName,
		&profile.Email,
		&profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountDomain.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get profile")
	}

	if err := profile.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal profile id")
	}
	if err := profile.UserID.UnmarshalBinary(userIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}

	return &profile, nil
}

func (m *MySQLProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	uid, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	if _, err := querier.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = ?`, uid); err != nil {
		return apperrors.Wrap(err, "failed to delete profile")
	}
	return nil
}

// NewMySQLProfileRepository creates a new MySQL Profile repository.
func NewMySQLProfileRepository(db *sql.DB) *MySQLProfileRepository {
	return &MySQLProfileRepository{db: db}
}
