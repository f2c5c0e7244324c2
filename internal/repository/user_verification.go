package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bloghub/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type userVerificationRepository struct {
	db *sqlx.DB
}

func newUserVerificationRepository(db *sqlx.DB) *userVerificationRepository {
	return &userVerificationRepository{
		db: db,
	}
}

func (r *userVerificationRepository) Create(ctx context.Context, userVerification *domain.UserVerification) error {
	const op = "repository.userVerification.Create"

	const query = `
	INSERT INTO user_verification (id, user_id, email, code)
	VALUES (uuid_to_bin(:id), uuid_to_bin(:user_id), :email, :code)
	`

	res, err := r.db.NamedExecContext(ctx, query, userVerification)
	if err != nil {
		return fmt.Errorf("%s: insert user verification failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return fmt.Errorf("%s: expected 1 row affected, got %d", op, rows)
	}

	return nil
}

func (r *userVerificationRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.UserVerification, error) {
	const op = "repository.userVerification.GetOneByID"

	const query = `
	SELECT bin_to_uuid(id) as id, bin_to_uuid(user_id) as user_id, email, code, attempts, confirmed, confirmed_at, created_at, updated_at
	FROM user_verification
	WHERE id = uuid_to_bin(?)
	`

	var userVerification domain.UserVerification
	if err := r.db.GetContext(ctx, &userVerification, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select user verification failed: %w", op, err)
	}

	return &userVerification, nil
}

func (r *userVerificationRepository) Confirm(ctx context.Context, id uuid.UUID, confirmedAt time.Time) error {
	const op = "repository.userVerification.Confirm"

	const query = `
	UPDATE user_verification
	SET confirmed = TRUE, confirmed_at = ?
	WHERE id = uuid_to_bin(?) AND confirmed = FALSE
	`

	res, err := r.db.ExecContext(ctx, query, confirmedAt, id)
	if err != nil {
		return fmt.Errorf("%s: update user_verification failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *userVerificationRepository) IncrementAttempts(ctx context.Context, id uuid.UUID) error {
	const op = "repository.userVerification.IncrementAttempts"

	const query = `UPDATE user_verification SET attempts = attempts + 1 WHERE id = uuid_to_bin(?)`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: update attempts failed: %w", op, err)
	}

	return nil
}
