package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bce-online/bce_backend/internal/apperrors"
	portssvc "github.com/bce-online/bce_backend/internal/core/ports/services"
	"github.com/bce-online/bce_backend/internal/dto"
	"github.com/bce-online/bce_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type playerHandler struct {
	playerService portssvc.PlayerSvcFacade
}

func registerPlayerRoutes(rg *gin.RouterGroup, playerService portssvc.PlayerSvcFacade) {
	h := &playerHandler{playerService: playerService}
	rg.GET("/me", h.getMe)
}

// getMe godoc
// @Summary Get own profile
// @Description Returns the authenticated player's profile.
// @Tags players
// @Produce json
// @Success 200 {object} dto.PlayerResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /me [get]
func (h *playerHandler) getMe(c *gin.Context) {
	playerID, ok := middleware.GetPlayerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	player, err := h.playerService.GetPlayerByID(c.Request.Context(), playerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Player not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to fetch player", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch player"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPlayerResponse(player))
}
