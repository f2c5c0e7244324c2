package service

import (
	"context"
	"sync"
	"testing"

	"github.com/bloghub/backend/internal/cache"
	"github.com/bloghub/backend/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type favoritePair struct {
	userID uuid.UUID
	postID uuid.UUID
}

// memFavoriteRepo mirrors the MySQL repository contract in memory: the mutex
// stands in for the transaction and the map key for the unique index on
// (user_id, post_id).
type memFavoriteRepo struct {
	mu    sync.Mutex
	rows  map[favoritePair]struct{}
	posts map[uuid.UUID]struct{}
}

func newMemFavoriteRepo(postIDs ...uuid.UUID) *memFavoriteRepo {
	posts := make(map[uuid.UUID]struct{}, len(postIDs))
	for _, id := range postIDs {
		posts[id] = struct{}{}
	}
	return &memFavoriteRepo{
		rows:  make(map[favoritePair]struct{}),
		posts: posts,
	}
}

func (r *memFavoriteRepo) Toggle(_ context.Context, userID, postID uuid.UUID) (bool, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[postID]; !ok {
		return false, 0, domain.ErrNotFound
	}

	pair := favoritePair{userID: userID, postID: postID}
	_, exists := r.rows[pair]
	if exists {
		delete(r.rows, pair)
	} else {
		r.rows[pair] = struct{}{}
	}

	return !exists, r.countLocked(postID), nil
}

func (r *memFavoriteRepo) CountByPostID(_ context.Context, postID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countLocked(postID), nil
}

func (r *memFavoriteRepo) CountByPostIDs(_ context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[uuid.UUID]int64, len(postIDs))
	for _, id := range postIDs {
		if c := r.countLocked(id); c > 0 {
			counts[id] = c
		}
	}
	return counts, nil
}

func (r *memFavoriteRepo) Exists(_ context.Context, userID, postID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[favoritePair{userID: userID, postID: postID}]
	return ok, nil
}

func (r *memFavoriteRepo) ExistsByPostIDs(_ context.Context, userID uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	favorited := make(map[uuid.UUID]bool, len(postIDs))
	for _, id := range postIDs {
		if _, ok := r.rows[favoritePair{userID: userID, postID: id}]; ok {
			favorited[id] = true
		}
	}
	return favorited, nil
}

func (r *memFavoriteRepo) GetTotalCount(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

func (r *memFavoriteRepo) countLocked(postID uuid.UUID) int64 {
	var count int64
	for pair := range r.rows {
		if pair.postID == postID {
			count++
		}
	}
	return count
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMemUserRepo(userIDs ...uuid.UUID) *memUserRepo {
	users := make(map[uuid.UUID]*domain.User, len(userIDs))
	for _, id := range userIDs {
		users[id] = &domain.User{ID: id}
	}
	return &memUserRepo{users: users}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; ok {
		return domain.ErrDuplicateEntry
	}
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetOneByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) SetVerified(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.Verified = true
	return nil
}

func (r *memUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func TestFavoriteService_CountUnfavoritedPost(t *testing.T) {
	postID := uuid.New()
	svc := newFavoriteService(newMemFavoriteRepo(postID), newMemUserRepo(), nil)

	count, err := svc.Count(context.Background(), postID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestFavoriteService_SingleToggle(t *testing.T) {
	postID := uuid.New()
	userID := uuid.New()
	svc := newFavoriteService(newMemFavoriteRepo(postID), newMemUserRepo(userID), nil)
	ctx := context.Background()

	favorited, count, err := svc.Toggle(ctx, postID, userID)
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.Equal(t, int64(1), count)

	has, err := svc.HasFavorited(ctx, postID, userID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestFavoriteService_DoubleToggleIsIdempotent(t *testing.T) {
	postID := uuid.New()
	userID := uuid.New()
	svc := newFavoriteService(newMemFavoriteRepo(postID), newMemUserRepo(userID), nil)
	ctx := context.Background()

	_, _, err := svc.Toggle(ctx, postID, userID)
	require.NoError(t, err)

	favorited, count, err := svc.Toggle(ctx, postID, userID)
	require.NoError(t, err)
	assert.False(t, favorited)
	assert.Equal(t, int64(0), count)

	has, err := svc.HasFavorited(ctx, postID, userID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestFavoriteService_ToggleFavoriteUnfavoriteFavorite(t *testing.T) {
	postID := uuid.New()
	userID := uuid.New()
	svc := newFavoriteService(newMemFavoriteRepo(postID), newMemUserRepo(userID), nil)
	ctx := context.Background()

	favorited, count, err := svc.Toggle(ctx, postID, userID)
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.Equal(t, int64(1), count)

	favorited, count, err = svc.Toggle(ctx, postID, userID)
	require.NoError(t, err)
	assert.False(t, favorited)
	assert.Equal(t, int64(0), count)

	favorited, count, err = svc.Toggle(ctx, postID, userID)
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.Equal(t, int64(1), count)
}

func TestFavoriteService_ToggleUnknownPost(t *testing.T) {
	userID := uuid.New()
	svc := newFavoriteService(newMemFavoriteRepo(), newMemUserRepo(userID), nil)

	_, _, err := svc.Toggle(context.Background(), uuid.New(), userID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestFavoriteService_ToggleUnknownUser(t *testing.T) {
	postID := uuid.New()
	svc := newFavoriteService(newMemFavoriteRepo(postID), newMemUserRepo(), nil)

	_, _, err := svc.Toggle(context.Background(), postID, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFavoriteService_ConcurrentDistinctUsers(t *testing.T) {
	const users = 50

	postID := uuid.New()
	userIDs := make([]uuid.UUID, users)
	for i := range userIDs {
		userIDs[i] = uuid.New()
	}

	repo := newMemFavoriteRepo(postID)
	svc := newFavoriteService(repo, newMemUserRepo(userIDs...), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, userID := range userIDs {
		wg.Add(1)
		go func(userID uuid.UUID) {
			defer wg.Done()
			_, _, err := svc.Toggle(ctx, postID, userID)
			assert.NoError(t, err)
		}(userID)
	}
	wg.Wait()

	count, err := svc.Count(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(users), count)

	total, err := svc.GetTotalCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(users), total)
}

func TestFavoriteService_ConcurrentSamePairNoDuplicates(t *testing.T) {
	const toggles = 20

	postID := uuid.New()
	userID := uuid.New()
	repo := newMemFavoriteRepo(postID)
	svc := newFavoriteService(repo, newMemUserRepo(userID), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.Toggle(ctx, postID, userID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// an even number of toggles for one pair nets out to zero rows, and the
	// pair can never hold more than one row regardless of interleaving
	count, err := svc.Count(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestFavoriteService_ToggleRefreshesCountCache(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	counts := cache.NewFavoriteCounts(redisClient, 0)

	postID := uuid.New()
	userID := uuid.New()
	svc := newFavoriteService(newMemFavoriteRepo(postID), newMemUserRepo(userID), counts)
	ctx := context.Background()

	_, count, err := svc.Toggle(ctx, postID, userID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	cached, err := counts.Get(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached)
}

func TestFavoriteService_CountRepopulatesCacheOnMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	counts := cache.NewFavoriteCounts(redisClient, 0)

	postID := uuid.New()
	userID := uuid.New()
	repo := newMemFavoriteRepo(postID)
	svc := newFavoriteService(repo, newMemUserRepo(userID), counts)
	ctx := context.Background()

	_, _, err := repo.Toggle(ctx, userID, postID)
	require.NoError(t, err)

	count, err := svc.Count(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	cached, err := counts.Get(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached)
}
