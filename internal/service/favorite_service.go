package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bloghub/backend/internal/cache"
	"github.com/bloghub/backend/internal/domain"
	"github.com/bloghub/backend/internal/queue/client"
	"github.com/bloghub/backend/internal/queue/task"
	"github.com/bloghub/backend/internal/repository"
	"github.com/bloghub/backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type favoriteService struct {
	favoriteRepository repository.Favorites
	userRepository     repository.Users
	counts             *cache.FavoriteCounts
}

func newFavoriteService(
	favoriteRepository repository.Favorites,
	userRepository repository.Users,
	counts *cache.FavoriteCounts,
) *favoriteService {
	return &favoriteService{
		favoriteRepository: favoriteRepository,
		userRepository:     userRepository,
		counts:             counts,
	}
}

// Toggle flips the favorite state for the (user, post) pair and returns the
// post's count after the mutation. The repository runs the flip and the count
// read in one transaction, so the returned count can never be stale relative
// to the mutation. Cache and queue failures are logged and swallowed: the
// toggle itself has already committed.
func (s *favoriteService) Toggle(ctx context.Context, postID, userID uuid.UUID) (bool, int64, error) {
	if _, err := s.userRepository.GetOneByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, 0, ErrUserNotFound
		}
		return false, 0, fmt.Errorf("get user for toggle failed: %w", err)
	}

	favorited, count, err := s.favoriteRepository.Toggle(ctx, userID, postID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, 0, ErrPostNotFound
		}
		return false, 0, fmt.Errorf("toggle favorite failed: %w", err)
	}

	if s.counts != nil {
		if err := s.counts.Set(ctx, postID, count); err != nil {
			logger.Warn("refresh favorite count cache failed", zap.Error(err), zap.String("post_id", postID.String()))
		}
	}

	if favorited {
		s.enqueueNotification(ctx, postID, userID)
	}

	return favorited, count, nil
}

func (s *favoriteService) Count(ctx context.Context, postID uuid.UUID) (int64, error) {
	if s.counts != nil {
		count, err := s.counts.Get(ctx, postID)
		if err == nil {
			return count, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Warn("read favorite count cache failed", zap.Error(err), zap.String("post_id", postID.String()))
		}
	}

	count, err := s.favoriteRepository.CountByPostID(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("count favorites failed: %w", err)
	}

	if s.counts != nil {
		if err := s.counts.Set(ctx, postID, count); err != nil {
			logger.Warn("populate favorite count cache failed", zap.Error(err), zap.String("post_id", postID.String()))
		}
	}

	return count, nil
}

func (s *favoriteService) HasFavorited(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	return s.favoriteRepository.Exists(ctx, userID, postID)
}

func (s *favoriteService) GetTotalCount(ctx context.Context) (int64, error) {
	return s.favoriteRepository.GetTotalCount(ctx)
}

func (s *favoriteService) enqueueNotification(ctx context.Context, postID, userID uuid.UUID) {
	c := client.GetClient(ctx)
	if c == nil {
		return
	}

	t, err := task.NewFavoriteNotificationTask(postID, userID)
	if err != nil {
		logger.Error("build favorite notification task failed", zap.Error(err))
		return
	}

	if _, err := c.EnqueueContext(ctx, t); err != nil {
		logger.Error("enqueue favorite notification failed", zap.Error(err), zap.String("post_id", postID.String()))
	}
}
