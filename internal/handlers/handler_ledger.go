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

// ledgerHandler serves the authenticated player's balance and entry history.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes sets up the read-side ledger routes under the
// authenticated group.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	me := rg.Group("/me")
	{
		me.GET("/balance", h.getBalance)
		me.GET("/ledger/entries", h.listEntries)
	}
}

// getBalance godoc
// @Summary Get current balance
// @Description Derives the authenticated player's balance from the entry history.
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /me/balance [get]
func (h *ledgerHandler) getBalance(c *gin.Context) {
	playerID, ok := middleware.GetPlayerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	balance, err := h.ledgerService.GetPlayerBalance(c.Request.Context(), playerID)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to derive balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to derive balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(playerID, balance))
}

// listEntries godoc
// @Summary List ledger entries
// @Description Returns a cursor-paginated page of the player's entries, newest first.
// @Tags ledger
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /me/ledger/entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	playerID, ok := middleware.GetPlayerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	entries, newToken, err := h.ledgerService.ListPlayerEntries(c.Request.Context(), playerID, params.Limit, nextToken)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid pagination token"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list ledger entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list ledger entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListEntriesResponse(entries, newToken))
}
