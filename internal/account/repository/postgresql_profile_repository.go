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

// PostgreSQLProfileRepository implements Profile persistence for PostgreSQL.
type PostgreSQLProfileRepository struct {
	db *sql.DB
}

func (p *PostgreSQLProfileRepository) Create(ctx context.Context, profile *accountDomain.Profile) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO profiles (id, user_id, full_name, email, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.UserID,
		profile.FullName,
		profile.Email,
		profile.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create profile")
	}
	return nil
}

func (p *PostgreSQLProfileRepository) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*accountDomain.Profile, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, full_name, email, created_at
			  FROM profiles WHERE user_id = $1`

	var profile accountDomain.Profile
	err := querier.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
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

	return &profile, nil
}

func (p *PostgreSQLProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		return apperrors.Wrap(err, "failed to delete profile")
	}
	return nil
}

// NewPostgreSQLProfileRepository creates a new PostgreSQL Profile repository.
func NewPostgreSQLProfileRepository(db *sql.DB) *PostgreSQLProfileRepository {
	return &PostgreSQLProfileRepository{db: db}
}
