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

// actionsHandler serves the economic game actions that move currency.
type actionsHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newActionsHandler(ls portssvc.LedgerSvcFacade) *actionsHandler {
	return &actionsHandler{ledgerService: ls}
}

// registerActionRoutes sets up the currency-moving action routes under the
// authenticated group.
func registerActionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newActionsHandler(ledgerService)

	actions := rg.Group("/me/actions")
	{
		actions.POST("/wage", h.earnWage)
		actions.POST("/rent", h.payRent)
	}
}

// earnWage godoc
// @Summary Earn a wage
// @Description Credits the player from the city treasury for completed work.
// @Tags actions
// @Accept json
// @Produce json
// @Param wage body dto.WageRequest true "Wage amount"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Player has no wallet"
// @Failure 500 {object} ErrorResponse
// @Router /me/actions/wage [post]
func (h *actionsHandler) earnWage(c *gin.Context) {
	playerID, ok := middleware.GetPlayerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.WageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	err := h.ledgerService.EarnWage(c.Request.Context(), playerID, req.AmountCents, req.ActionID, req.Memo)
	if err != nil {
		h.respondTransferError(c, err, "Failed to pay wage")
		return
	}

	h.respondWithBalance(c, playerID)
}

// payRent godoc
// @Summary Pay rent
// @Description Debits the player towards the rent sink after an affordability check.
// @Tags actions
// @Accept json
// @Produce json
// @Param rent body dto.RentRequest true "Rent amount"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Player has no wallet"
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Failure 500 {object} ErrorResponse
// @Router /me/actions/rent [post]
func (h *actionsHandler) payRent(c *gin.Context) {
	playerID, ok := middleware.GetPlayerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.RentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	err := h.ledgerService.PayRent(c.Request.Context(), playerID, req.AmountCents, req.ActionID, req.Memo)
	if err != nil {
		h.respondTransferError(c, err, "Failed to pay rent")
		return
	}

	h.respondWithBalance(c, playerID)
}

// respondTransferError maps transfer failures onto HTTP statuses.
func (h *actionsHandler) respondTransferError(c *gin.Context, err error, fallbackMsg string) {
	if errors.Is(err, apperrors.ErrInsufficientFunds) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "Insufficient funds"})
		return
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Player has no wallet"})
		return
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: appErr.Message})
		return
	}
	if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid transfer request"})
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Error(fallbackMsg, slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallbackMsg})
}

// respondWithBalance returns the post-action balance so the client can render
// the result without a second round trip.
func (h *actionsHandler) respondWithBalance(c *gin.Context, playerID string) {
	balance, err := h.ledgerService.GetPlayerBalance(c.Request.Context(), playerID)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to derive post-action balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Action applied, but balance lookup failed"})
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(playerID, balance))
}
