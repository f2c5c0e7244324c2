package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bloghub/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type postRepository struct {
	db *sqlx.DB
}

func newPostRepository(db *sqlx.DB) *postRepository {
	return &postRepository{
		db: db,
	}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	const query = `
	INSERT INTO post (id, author_id, title, body)
	VALUES (uuid_to_bin(?), uuid_to_bin(?), ?, ?);
	`
	_, err := r.db.ExecContext(ctx, query, post.ID, post.AuthorID, post.Title, post.Body)
	if err != nil {
		return fmt.Errorf("db insert post: %w", err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	const query = `
	SELECT bin_to_uuid(id) as id, bin_to_uuid(author_id) as author_id, title, body, created_at, updated_at, deleted_at
	FROM post
	WHERE id = uuid_to_bin(?) AND deleted_at IS NULL
	`
	var post domain.Post
	if err := r.db.GetContext(ctx, &post, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select post by id failed: %w", err)
	}
	return &post, nil
}

func (r *postRepository) GetAll(ctx context.Context, limit, offset int) ([]*domain.Post, error) {
	const query = `
	SELECT bin_to_uuid(id) as id, bin_to_uuid(author_id) as author_id, title, body, created_at, updated_at, deleted_at
	FROM post
	WHERE deleted_at IS NULL
	ORDER BY created_at DESC
	LIMIT ? OFFSET ?
	`
	var posts []*domain.Post
	if err := r.db.SelectContext(ctx, &posts, query, limit, offset); err != nil {
		return nil, fmt.Errorf("select posts failed: %w", err)
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM post WHERE deleted_at IS NULL`
	var count int64
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count posts failed: %w", err)
	}
	return count, nil
}
