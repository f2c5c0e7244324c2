package v1

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bloghub/backend/internal/config"
	"github.com/bloghub/backend/internal/service"
	"github.com/bloghub/backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type favoritesServiceStub struct {
	toggle func(ctx context.Context, postID, userID uuid.UUID) (bool, int64, error)
}

func (s *favoritesServiceStub) Toggle(ctx context.Context, postID, userID uuid.UUID) (bool, int64, error) {
	return s.toggle(ctx, postID, userID)
}

func (s *favoritesServiceStub) Count(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *favoritesServiceStub) HasFavorited(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

func (s *favoritesServiceStub) GetTotalCount(context.Context) (int64, error) {
	return 0, nil
}

func setupFavoriteRouter(t *testing.T, favorites service.Favorites) (*gin.Engine, auth.TokenManager) {
	t.Helper()

	tokenManager, err := auth.NewManager(config.JWTConfig{
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		SigningKey:      "test-signing-key",
	})
	require.NoError(t, err)

	handler := NewHandler(&service.Services{Favorites: favorites}, tokenManager, &config.Config{})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.Init(router.Group("/api"))

	return router, tokenManager
}

func bearerToken(t *testing.T, tokenManager auth.TokenManager, userID uuid.UUID) string {
	t.Helper()
	token, _, err := tokenManager.NewJWT(&userID)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestToggleFavorite_ReturnsCount(t *testing.T) {
	userID := uuid.New()
	postID := uuid.New()

	var gotPostID, gotUserID uuid.UUID
	favorites := &favoritesServiceStub{
		toggle: func(_ context.Context, postID, userID uuid.UUID) (bool, int64, error) {
			gotPostID, gotUserID = postID, userID
			return true, 5, nil
		},
	}
	router, tokenManager := setupFavoriteRouter(t, favorites)

	body := []byte(`{"post_id": "` + postID.String() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/favorite", bytes.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, tokenManager, userID))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5", w.Body.String())
	assert.Equal(t, postID, gotPostID)
	assert.Equal(t, userID, gotUserID)
}

func TestToggleFavorite_Unauthorized(t *testing.T) {
	favorites := &favoritesServiceStub{
		toggle: func(context.Context, uuid.UUID, uuid.UUID) (bool, int64, error) {
			t.Fatal("toggle must not be called without auth")
			return false, 0, nil
		},
	}
	router, _ := setupFavoriteRouter(t, favorites)

	body := []byte(`{"post_id": "` + uuid.New().String() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/favorite", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestToggleFavorite_PostNotFound(t *testing.T) {
	favorites := &favoritesServiceStub{
		toggle: func(context.Context, uuid.UUID, uuid.UUID) (bool, int64, error) {
			return false, 0, service.ErrPostNotFound
		},
	}
	router, tokenManager := setupFavoriteRouter(t, favorites)

	body := []byte(`{"post_id": "` + uuid.New().String() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/favorite", bytes.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, tokenManager, uuid.New()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "post not found")
}

func TestToggleFavorite_InvalidPostID(t *testing.T) {
	favorites := &favoritesServiceStub{
		toggle: func(context.Context, uuid.UUID, uuid.UUID) (bool, int64, error) {
			t.Fatal("toggle must not be called for an invalid post id")
			return false, 0, nil
		},
	}
	router, tokenManager := setupFavoriteRouter(t, favorites)

	body := []byte(`{"post_id": "not-a-uuid"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/favorite", bytes.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, tokenManager, uuid.New()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleFavorite_StorageError(t *testing.T) {
	favorites := &favoritesServiceStub{
		toggle: func(context.Context, uuid.UUID, uuid.UUID) (bool, int64, error) {
			return false, 0, assert.AnError
		},
	}
	router, tokenManager := setupFavoriteRouter(t, favorites)

	body := []byte(`{"post_id": "` + uuid.New().String() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/favorite", bytes.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, tokenManager, uuid.New()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
