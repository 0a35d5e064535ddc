package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bce-online/bce_backend/internal/apperrors"
	portssvc "github.com/bce-online/bce_backend/internal/core/ports/services"
	"github.com/bce-online/bce_backend/internal/dto"
	"github.com/bce-online/bce_backend/internal/middleware"
	"github.com/bce-online/bce_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// googleOAuthHandler handles the Google sign-in code exchange.
type googleOAuthHandler struct {
	oauthService portssvc.GoogleOAuthSvcFacade
	cfg          *config.Config
}

// registerGoogleOAuthRoutes mounts the Google exchange endpoint on the public
// auth group.
func registerGoogleOAuthRoutes(auth *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := &googleOAuthHandler{oauthService: services.GoogleOAuth, cfg: cfg}
	auth.POST("/google/exchange", h.exchangeCode)
}

// exchangeCode godoc
// @Summary Google sign-in
// @Description Exchanges a Google authorization code for a session, bootstrapping the player on first sign-in.
// @Tags auth
// @Accept json
// @Produce json
// @Param exchange body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Google sign-in not configured"
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/exchange [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.oauthService.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			switch appErr.Code {
			case http.StatusUnauthorized, http.StatusServiceUnavailable, http.StatusBadGateway:
				c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
				return
			}
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Google sign-in failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Google sign-in failed"})
		return
	}

	maxAge := int(h.cfg.SessionExpiryDuration.Seconds())
	c.SetCookie(h.cfg.RefreshTokenCookieName, resp.RefreshToken, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
	c.JSON(http.StatusOK, resp)
}
