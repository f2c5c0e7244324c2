package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// FavoriteCounts keeps per-post favorite counts in redis so the read path does
// not hit MySQL on every post render. The database count stays authoritative:
// toggles invalidate the key and readers repopulate it on a miss.
type FavoriteCounts struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewFavoriteCounts(client redis.UniversalClient, ttl time.Duration) *FavoriteCounts {
	return &FavoriteCounts{
		client: client,
		ttl:    ttl,
	}
}

func (c *FavoriteCounts) Get(ctx context.Context, postID uuid.UUID) (int64, error) {
	count, err := c.client.Get(ctx, countKey(postID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrCacheMiss
		}
		return 0, fmt.Errorf("redis get favorite count: %w", err)
	}
	return count, nil
}

func (c *FavoriteCounts) Set(ctx context.Context, postID uuid.UUID, count int64) error {
	if err := c.client.Set(ctx, countKey(postID), count, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set favorite count: %w", err)
	}
	return nil
}

func (c *FavoriteCounts) Invalidate(ctx context.Context, postID uuid.UUID) error {
	if err := c.client.Del(ctx, countKey(postID)).Err(); err != nil {
		return fmt.Errorf("redis del favorite count: %w", err)
	}
	return nil
}

func countKey(postID uuid.UUID) string {
	return "post:" + postID.String() + ":favorites"
}
