package service

import (
	"context"

	"github.com/bloghub/backend/internal/cache"
	"github.com/bloghub/backend/internal/config"
	"github.com/bloghub/backend/internal/domain"
	"github.com/bloghub/backend/internal/repository"
	"github.com/bloghub/backend/pkg/auth"
	"github.com/bloghub/backend/pkg/hash"
	"github.com/bloghub/backend/pkg/otp"

	"github.com/google/uuid"
)

type Services struct {
	Users     Users
	Posts     Posts
	Favorites Favorites
}

type Deps struct {
	Config         *config.Config
	Hasher         hash.PasswordHasher
	TokenManager   auth.TokenManager
	OtpGenerator   otp.Generator
	Repos          *repository.Repositories
	FavoriteCounts *cache.FavoriteCounts
}

func NewServices(deps Deps) *Services {
	return &Services{
		Users: newUserService(
			deps.Repos.Users,
			deps.Repos.RefreshSession,
			deps.Repos.UserVerification,
			deps.Hasher,
			deps.TokenManager,
			deps.OtpGenerator,
			deps.Config.Auth,
		),
		Posts: newPostService(deps.Repos.Posts, deps.Repos.Favorites),
		Favorites: newFavoriteService(
			deps.Repos.Favorites,
			deps.Repos.Users,
			deps.FavoriteCounts,
		),
	}
}

type Users interface {
	SignUp(ctx context.Context, input SignUpInput) (uuid.UUID, error)
	SignIn(ctx context.Context, input SignInInput) (*Tokens, error)
	Verify(ctx context.Context, verificationID uuid.UUID, code string) error
	Refresh(ctx context.Context, refreshToken uuid.UUID, userAgent, userIP string) (*Tokens, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type Posts interface {
	Create(ctx context.Context, authorID uuid.UUID, title, body string) (*domain.Post, error)
	GetByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*PostWithStats, error)
	GetAll(ctx context.Context, page, limit int, viewerID *uuid.UUID) ([]PostWithStats, int64, error)
	Count(ctx context.Context) (int64, error)
}

type Favorites interface {
	Toggle(ctx context.Context, postID, userID uuid.UUID) (bool, int64, error)
	Count(ctx context.Context, postID uuid.UUID) (int64, error)
	HasFavorited(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	GetTotalCount(ctx context.Context) (int64, error)
}
