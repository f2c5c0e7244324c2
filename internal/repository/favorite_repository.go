package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bloghub/backend/internal/db"
	"github.com/bloghub/backend/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type favoriteRepository struct {
	db *sqlx.DB
}

func newFavoriteRepository(db *sqlx.DB) *favoriteRepository {
	return &favoriteRepository{
		db: db,
	}
}

// Toggle runs delete-then-insert against the favorite table and reads the
// post's count before committing, so two interleaved toggles can never observe
// a stale count. The unique index on (user_id, post_id) closes the remaining
// race: a concurrent duplicate insert fails with a duplicate-entry error
// instead of producing a second row.
func (r *favoriteRepository) Toggle(ctx context.Context, userID, postID uuid.UUID) (bool, int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("begin toggle favorite tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	const postQuery = `SELECT 1 FROM post WHERE id = uuid_to_bin(?) AND deleted_at IS NULL`
	if err = tx.GetContext(ctx, &exists, postQuery, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, 0, domain.ErrNotFound
		}
		return false, 0, fmt.Errorf("select post for toggle: %w", err)
	}

	const deleteQuery = `DELETE FROM favorite WHERE user_id = uuid_to_bin(?) AND post_id = uuid_to_bin(?)`
	result, err := tx.ExecContext(ctx, deleteQuery, userID, postID)
	if err != nil {
		return false, 0, fmt.Errorf("db delete favorite: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("rows affected failed: %w", err)
	}

	favorited := rowsAffected == 0
	if favorited {
		id, err := uuid.NewV7()
		if err != nil {
			return false, 0, fmt.Errorf("generate favorite id failed: %w", err)
		}
		favorite := domain.Favorite{ID: id, UserID: userID, PostID: postID}

		const insertQuery = `
		INSERT INTO favorite (id, user_id, post_id) VALUES (uuid_to_bin(?), uuid_to_bin(?), uuid_to_bin(?))
		`
		if _, err = tx.ExecContext(ctx, insertQuery, favorite.ID, favorite.UserID, favorite.PostID); err != nil {
			var mysqlError *mysql.MySQLError
			if errors.As(err, &mysqlError) && mysqlError.Number == db.DuplicateEntry {
				return false, 0, fmt.Errorf("concurrent favorite insert for pair: %w", domain.ErrDuplicateEntry)
			}
			return false, 0, fmt.Errorf("db insert favorite: %w", err)
		}
	}

	var count int64
	const countQuery = `SELECT COUNT(*) FROM favorite WHERE post_id = uuid_to_bin(?)`
	if err = tx.GetContext(ctx, &count, countQuery, postID); err != nil {
		return false, 0, fmt.Errorf("count favorites in toggle tx: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("commit toggle favorite tx: %w", err)
	}

	return favorited, count, nil
}

func (r *favoriteRepository) CountByPostID(ctx context.Context, postID uuid.UUID) (int64, error) {
	const query = `SELECT COUNT(*) FROM favorite WHERE post_id = uuid_to_bin(?)`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, postID); err != nil {
		return 0, fmt.Errorf("count favorites by post id failed: %w", err)
	}
	return count, nil
}

func (r *favoriteRepository) CountByPostIDs(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	query := `SELECT bin_to_uuid(post_id) as post_id, COUNT(*) as count FROM favorite WHERE post_id IN (`
	args := make([]interface{}, 0, len(postIDs))
	for i, id := range postIDs {
		if i > 0 {
			query += `, `
		}
		query += `uuid_to_bin(?)`
		args = append(args, id)
	}
	query += `) GROUP BY post_id`

	type postCount struct {
		PostID uuid.UUID `db:"post_id"`
		Count  int64     `db:"count"`
	}

	var rows []postCount
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count favorites by post ids failed: %w", err)
	}

	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	const query = `SELECT 1 FROM favorite WHERE user_id = uuid_to_bin(?) AND post_id = uuid_to_bin(?)`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, userID, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("select favorite by pair failed: %w", err)
	}
	return true, nil
}

func (r *favoriteRepository) ExistsByPostIDs(ctx context.Context, userID uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	favorited := make(map[uuid.UUID]bool, len(postIDs))
	if len(postIDs) == 0 {
		return favorited, nil
	}

	query := `SELECT bin_to_uuid(post_id) as post_id FROM favorite WHERE user_id = uuid_to_bin(?) AND post_id IN (`
	args := []interface{}{userID}
	for i, id := range postIDs {
		if i > 0 {
			query += `, `
		}
		query += `uuid_to_bin(?)`
		args = append(args, id)
	}
	query += `)`

	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select favorites by post ids failed: %w", err)
	}

	for _, id := range ids {
		favorited[id] = true
	}
	return favorited, nil
}

func (r *favoriteRepository) GetTotalCount(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM favorite`
	var count int64
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count favorites failed: %w", err)
	}
	return count, nil
}
