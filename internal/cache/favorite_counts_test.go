package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFavoriteCounts(t *testing.T, ttl time.Duration) (*FavoriteCounts, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewFavoriteCounts(client, ttl), mr
}

func TestFavoriteCounts_SetGet(t *testing.T) {
	counts, _ := newTestFavoriteCounts(t, time.Minute)
	ctx := context.Background()
	postID := uuid.New()

	require.NoError(t, counts.Set(ctx, postID, 42))

	count, err := counts.Get(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
}

func TestFavoriteCounts_GetMiss(t *testing.T) {
	counts, _ := newTestFavoriteCounts(t, time.Minute)

	_, err := counts.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestFavoriteCounts_Invalidate(t *testing.T) {
	counts, _ := newTestFavoriteCounts(t, time.Minute)
	ctx := context.Background()
	postID := uuid.New()

	require.NoError(t, counts.Set(ctx, postID, 7))
	require.NoError(t, counts.Invalidate(ctx, postID))

	_, err := counts.Get(ctx, postID)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestFavoriteCounts_EntriesExpire(t *testing.T) {
	counts, mr := newTestFavoriteCounts(t, time.Minute)
	ctx := context.Background()
	postID := uuid.New()

	require.NoError(t, counts.Set(ctx, postID, 3))

	mr.FastForward(2 * time.Minute)

	_, err := counts.Get(ctx, postID)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
