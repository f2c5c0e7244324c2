package repository

import (
	"context"
	"time"

	"github.com/bloghub/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Users            Users
	Posts            Posts
	Favorites        Favorites
	RefreshSession   RefreshSession
	UserVerification UserVerification
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Users:            newUserRepository(db),
		Posts:            newPostRepository(db),
		Favorites:        newFavoriteRepository(db),
		RefreshSession:   newRefreshSessionRepository(db),
		UserVerification: newUserVerificationRepository(db),
	}
}

type Users interface {
	Create(ctx context.Context, user *domain.User) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetVerified(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type Posts interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	GetAll(ctx context.Context, limit, offset int) ([]*domain.Post, error)
	Count(ctx context.Context) (int64, error)
}

type Favorites interface {
	// Toggle inserts a favorite for the pair if absent and deletes it if
	// present, then reads the post's favorite count, all inside a single
	// transaction. Returns whether the pair is favorited after the call.
	Toggle(ctx context.Context, userID, postID uuid.UUID) (bool, int64, error)
	CountByPostID(ctx context.Context, postID uuid.UUID) (int64, error)
	CountByPostIDs(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	ExistsByPostIDs(ctx context.Context, userID uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	GetTotalCount(ctx context.Context) (int64, error)
}

type RefreshSession interface {
	Create(ctx context.Context, session *domain.RefreshSession) error
	GetByRefreshToken(ctx context.Context, refreshToken uuid.UUID) (*domain.RefreshSession, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type UserVerification interface {
	Create(ctx context.Context, userVerification *domain.UserVerification) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.UserVerification, error)
	Confirm(ctx context.Context, id uuid.UUID, confirmedAt time.Time) error
	IncrementAttempts(ctx context.Context, id uuid.UUID) error
}
