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

func (h *Handler) initUsersRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	users.GET("/me", h.userIdentityMiddleware, h.getMe)

	auth := api.Group("/auth")
	auth.POST("/sign-up", h.signUp)
	auth.POST("/sign-in", h.signIn)
	auth.POST("/verify", h.verify)
	auth.POST("/refresh", h.refresh)
}

type signUpRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}

type signUpResponse struct {
	VerificationID string `json:"verification_id"`
}

// @Summary User SignUp
// @Tags Auth
// @ModuleID signUp
// @Accept  json
// @Produce  json
// @Param input body signUpRequest true "sign up info"
// @Success 201 {object} signUpResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	verificationID, err := h.services.Users.SignUp(c.Request.Context(), service.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExist) {
			errorResponse(c, http.StatusConflict, UserAlreadyExistsCode)
			return
		}
		logger.Error("failed to sign up", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	c.JSON(http.StatusCreated, signUpResponse{VerificationID: verificationID.String()})
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type tokensResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// @Summary User SignIn
// @Tags Auth
// @ModuleID signIn
// @Accept  json
// @Produce  json
// @Param input body signInRequest true "credentials"
// @Success 200 {object} tokensResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	tokens, err := h.services.Users.SignIn(c.Request.Context(), service.SignInInput{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		UserIP:    c.ClientIP(),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			errorResponse(c, http.StatusUnauthorized, InvalidCredentialsCode)
			return
		}
		logger.Error("failed to sign in", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	c.JSON(http.StatusOK, tokensResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken.String(),
		ExpiresIn:    int64(tokens.AccessTTL.Seconds()),
	})
}

type verifyRequest struct {
	VerificationID string `json:"verification_id" binding:"required,uuid"`
	Code           string `json:"code" binding:"required"`
}

// @Summary Confirm Email Verification
// @Tags Auth
// @ModuleID verify
// @Accept  json
// @Produce  json
// @Param input body verifyRequest true "verification id and code"
// @Success 200
// @Failure 400 {object} ValidationErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /auth/verify [post]
func (h *Handler) verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	err := h.services.Users.Verify(c.Request.Context(), uuid.MustParse(req.VerificationID), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVerificationCodeNotFound):
			errorResponse(c, http.StatusNotFound, VerificationNotFoundCode)
		case errors.Is(err, service.ErrVerificationCodeMismatch):
			errorResponse(c, http.StatusBadRequest, VerificationMismatchCode)
		case errors.Is(err, service.ErrVerificationAlreadyConfirmed):
			errorResponse(c, http.StatusBadRequest, VerificationConfirmedCode)
		default:
			logger.Error("failed to verify", zap.Error(err))
			errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		}
		return
	}

	c.Status(http.StatusOK)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required,uuid"`
}

// @Summary Refresh Tokens
// @Tags Auth
// @ModuleID refresh
// @Accept  json
// @Produce  json
// @Param input body refreshRequest true "refresh token"
// @Success 200 {object} tokensResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /auth/refresh [post]
func (h *Handler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	refreshToken, err := h.tokenManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		validationErrorResponse(c, err)
		return
	}

	tokens, err := h.services.Users.Refresh(c.Request.Context(), *refreshToken, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) || errors.Is(err, service.ErrSessionExpired) {
			errorResponse(c, http.StatusUnauthorized, RefreshTokenExpiredCode)
			return
		}
		logger.Error("failed to refresh tokens", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	c.JSON(http.StatusOK, tokensResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken.String(),
		ExpiresIn:    int64(tokens.AccessTTL.Seconds()),
	})
}

type userResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

// @Summary Get Current User
// @Tags Users
// @ModuleID getMe
// @Accept  json
// @Produce  json
// @Security UserAuth
// @Success 200 {object} userResponse
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /users/me [get]
func (h *Handler) getMe(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		logger.Error("failed to get user id", zap.Error(err))
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	user, err := h.services.Users.GetOneByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			errorResponse(c, http.StatusNotFound, UserNotFoundCode)
			return
		}
		logger.Error("failed to get user", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	c.JSON(http.StatusOK, userResponse{
		ID:       user.ID.String(),
		Name:     user.Name,
		Email:    user.Email,
		Verified: user.Verified,
	})
}
