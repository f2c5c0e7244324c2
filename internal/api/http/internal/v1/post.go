package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bloghub/backend/internal/service"
	"github.com/bloghub/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) initPostsRoutes(api *gin.RouterGroup) {
	posts := api.Group("/posts")
	{
		posts.GET("", h.optionalUserIdentityMiddleware, h.getPostsList)
		posts.GET("/:id", h.optionalUserIdentityMiddleware, h.getPostByID)
		posts.POST("", h.userIdentityMiddleware, h.createPost)
	}
}

type postResponse struct {
	ID            string `json:"id"`
	AuthorID      string `json:"author_id"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
	FavoriteCount int64  `json:"favorite_count"`
	IsFavorited   bool   `json:"is_favorited"`
}

type postsListResponse struct {
	Posts []postResponse `json:"posts"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func toPostResponse(p service.PostWithStats) postResponse {
	return postResponse{
		ID:            p.Post.ID.String(),
		AuthorID:      p.Post.AuthorID.String(),
		Title:         p.Post.Title,
		Body:          p.Post.Body,
		CreatedAt:     p.Post.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     p.Post.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		FavoriteCount: p.FavoriteCount,
		IsFavorited:   p.Favorited,
	}
}

// @Summary Get Posts List
// @Tags Posts
// @Description List posts with pagination. For an authenticated caller every
// @Description post carries is_favorited so the client can render the star.
// @ModuleID getPostsList
// @Accept  json
// @Produce  json
// @Param page query int false "page number (default 1)"
// @Param limit query int false "page size (default 10, max 100)"
// @Success 200 {object} postsListResponse
// @Failure 500 {object} ErrorStruct
// @Router /posts [get]
func (h *Handler) getPostsList(c *gin.Context) {
	page := 1
	limit := 10

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	var viewerID *uuid.UUID
	if userID, err := h.getUserUUID(c); err == nil {
		viewerID = &userID
	}

	posts, total, err := h.services.Posts.GetAll(c.Request.Context(), page, limit, viewerID)
	if err != nil {
		logger.Error("failed to get posts list", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	response := postsListResponse{
		Posts: make([]postResponse, 0, len(posts)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for _, post := range posts {
		response.Posts = append(response.Posts, toPostResponse(post))
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get Post By ID
// @Tags Posts
// @ModuleID getPostByID
// @Accept  json
// @Produce  json
// @Param id path string true "Post ID (UUID)"
// @Success 200 {object} postResponse
// @Failure 400 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /posts/{id} [get]
func (h *Handler) getPostByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, PostNotFoundCode)
		return
	}

	var viewerID *uuid.UUID
	if userID, err := h.getUserUUID(c); err == nil {
		viewerID = &userID
	}

	post, err := h.services.Posts.GetByID(c.Request.Context(), id, viewerID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			errorResponse(c, http.StatusNotFound, PostNotFoundCode)
			return
		}
		logger.Error("failed to get post by id", zap.Error(err), zap.String("id", id.String()))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	c.JSON(http.StatusOK, toPostResponse(*post))
}

type createPostRequest struct {
	Title string `json:"title" binding:"required,min=1,max=255"`
	Body  string `json:"body" binding:"required"`
}

// @Summary Create Post
// @Tags Posts
// @ModuleID createPost
// @Accept  json
// @Produce  json
// @Param input body createPostRequest true "post content"
// @Security UserAuth
// @Success 201 {object} postResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 500 {object} ErrorStruct
// @Router /posts [post]
func (h *Handler) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	userID, err := h.getUserUUID(c)
	if err != nil {
		logger.Error("failed to get user id", zap.Error(err))
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	post, err := h.services.Posts.Create(c.Request.Context(), userID, req.Title, req.Body)
	if err != nil {
		logger.Error("failed to create post", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	c.JSON(http.StatusCreated, toPostResponse(service.PostWithStats{Post: post}))
}
