package v1

import (
	"net/http"

	"github.com/bloghub/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	admin.GET("/stats", h.getAdminStats)
}

type adminStatsResponse struct {
	TotalUsers     int64 `json:"total_users"`
	TotalPosts     int64 `json:"total_posts"`
	TotalFavorites int64 `json:"total_favorites"`
}

// @Summary Get Admin Stats
// @Tags Admin
// @ModuleID getAdminStats
// @Accept  json
// @Produce  json
// @Success 200 {object} adminStatsResponse
// @Router /admin/stats [get]
func (h *Handler) getAdminStats(c *gin.Context) {
	ctx := c.Request.Context()

	totalUsers, err := h.services.Users.Count(ctx)
	if err != nil {
		logger.Error("failed to get users count", zap.Error(err))
		totalUsers = 0
	}

	totalPosts, err := h.services.Posts.Count(ctx)
	if err != nil {
		logger.Error("failed to get posts count", zap.Error(err))
		totalPosts = 0
	}

	totalFavorites, err := h.services.Favorites.GetTotalCount(ctx)
	if err != nil {
		logger.Error("failed to get favorites count", zap.Error(err))
		totalFavorites = 0
	}

	c.JSON(http.StatusOK, adminStatsResponse{
		TotalUsers:     totalUsers,
		TotalPosts:     totalPosts,
		TotalFavorites: totalFavorites,
	})
}
