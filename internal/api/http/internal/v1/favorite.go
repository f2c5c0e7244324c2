package v1

import (
	"errors"
	"net/http"

	"github.com/bloghub/backend/internal/service"
	"github.com/bloghub/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) initFavoriteRoutes(api *gin.RouterGroup) {
	api.POST("/favorite", h.userIdentityMiddleware, h.toggleFavorite)
}

type toggleFavoriteRequest struct {
	PostID string `json:"post_id" binding:"required,uuid"`
}

// @Summary Toggle Post Favorite
// @Tags Favorites
// @Description Toggle the favorite state of a post for the authenticated user.
// @Description Creates the favorite when absent, removes it when present, and
// @Description returns the post's favorite count after the change.
// @ModuleID toggleFavorite
// @Accept  json
// @Produce  json
// @Param input body toggleFavoriteRequest true "post to toggle"
// @Security UserAuth
// @Success 200 {integer} int64 "favorite count after the toggle"
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /favorite [post]
func (h *Handler) toggleFavorite(c *gin.Context) {
	var req toggleFavoriteRequest
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

	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		validationErrorResponse(c, err)
		return
	}

	_, count, err := h.services.Favorites.Toggle(c.Request.Context(), postID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			errorResponse(c, http.StatusNotFound, PostNotFoundCode)
		case errors.Is(err, service.ErrUserNotFound):
			errorResponse(c, http.StatusNotFound, UserNotFoundCode)
		default:
			logger.Error("failed to toggle favorite", zap.Error(err), zap.String("post_id", req.PostID))
			errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		}
		return
	}

	c.JSON(http.StatusOK, count)
}
