package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bloghub/backend/internal/domain"
	"github.com/bloghub/backend/internal/repository"

	"github.com/google/uuid"
)

// PostWithStats bundles a post with the favorite data the display layer needs
// for star rendering: the aggregate count and whether the viewer has starred
// the post. Favorited is always false for anonymous viewers.
type PostWithStats struct {
	Post          *domain.Post
	FavoriteCount int64
	Favorited     bool
}

type postService struct {
	postRepository     repository.Posts
	favoriteRepository repository.Favorites
}

func newPostService(postRepository repository.Posts, favoriteRepository repository.Favorites) *postService {
	return &postService{
		postRepository:     postRepository,
		favoriteRepository: favoriteRepository,
	}
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, title, body string) (*domain.Post, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate post id failed: %w", err)
	}

	post := &domain.Post{
		ID:       id,
		AuthorID: authorID,
		Title:    title,
		Body:     body,
	}

	if err := s.postRepository.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post failed: %w", err)
	}

	return post, nil
}

func (s *postService) GetByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*PostWithStats, error) {
	post, err := s.postRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("get post by id failed: %w", err)
	}

	count, err := s.favoriteRepository.CountByPostID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count post favorites failed: %w", err)
	}

	result := &PostWithStats{
		Post:          post,
		FavoriteCount: count,
	}

	if viewerID != nil {
		favorited, err := s.favoriteRepository.Exists(ctx, *viewerID, id)
		if err != nil {
			return nil, fmt.Errorf("check post favorited failed: %w", err)
		}
		result.Favorited = favorited
	}

	return result, nil
}

// GetAll loads a page of posts and resolves the favorite data with two batch
// queries instead of one pair per post.
func (s *postService) GetAll(ctx context.Context, page, limit int, viewerID *uuid.UUID) ([]PostWithStats, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	offset := (page - 1) * limit

	posts, err := s.postRepository.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("get posts failed: %w", err)
	}

	total, err := s.postRepository.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts failed: %w", err)
	}

	postIDs := make([]uuid.UUID, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
	}

	counts, err := s.favoriteRepository.CountByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("count favorites for posts failed: %w", err)
	}

	favorited := make(map[uuid.UUID]bool)
	if viewerID != nil {
		favorited, err = s.favoriteRepository.ExistsByPostIDs(ctx, *viewerID, postIDs)
		if err != nil {
			return nil, 0, fmt.Errorf("check favorited for posts failed: %w", err)
		}
	}

	result := make([]PostWithStats, 0, len(posts))
	for _, post := range posts {
		result = append(result, PostWithStats{
			Post:          post,
			FavoriteCount: counts[post.ID],
			Favorited:     favorited[post.ID],
		})
	}

	return result, total, nil
}

func (s *postService) Count(ctx context.Context) (int64, error) {
	return s.postRepository.Count(ctx)
}
