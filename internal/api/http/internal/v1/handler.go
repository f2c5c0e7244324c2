package v1

import (
	"github.com/bloghub/backend/internal/config"
	"github.com/bloghub/backend/internal/service"
	"github.com/bloghub/backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title Blog API
// @version 1.0
// @description Teaching blog backend with post favorites

// @BasePath /api/v1

// @securityDefinitions.apikey UserAuth
// @in header
// @name Authorization

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	config *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initUsersRoutes(v1)
	h.initPostsRoutes(v1)
	h.initFavoriteRoutes(v1)
	h.initAdminRoutes(v1)
}
