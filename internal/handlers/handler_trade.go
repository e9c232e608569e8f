package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/foliotrack/folio_backend/internal/core/ports/services"
	"github.com/foliotrack/folio_backend/internal/dto"
	"github.com/foliotrack/folio_backend/internal/middleware"
)

// tradeHandler handles HTTP requests related to trades.
type tradeHandler struct {
	tradeService portssvc.TradeSvcFacade
}

func newTradeHandler(ts portssvc.TradeSvcFacade) *tradeHandler {
	return &tradeHandler{tradeService: ts}
}

// registerTradeRoutes registers routes related to trades.
func registerTradeRoutes(rg *gin.RouterGroup, tradeService portssvc.TradeSvcFacade) {
	h := newTradeHandler(tradeService)

	rg.POST("/accounts/:id/trades", h.createTrade)
	rg.GET("/accounts/:id/trades", h.listTrades)

	trades := rg.Group("/trades")
	{
		trades.GET("/:id", h.getTrade)
		trades.DELETE("/:id", h.deleteTrade)
	}
}

// createTrade godoc
// @Summary Record a trade
// @Description Records a buy or sell and applies it to the account atomically. A buy exceeding buying power or a sell exceeding the position is rejected.
// @Tags trades
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param trade body dto.CreateTradeRequest true "Trade details"
// @Success 201 {object} dto.TradeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/trades [post]
func (h *tradeHandler) createTrade(c *gin.Context) {
	var req dto.CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	trade, err := h.tradeService.CreateTrade(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record trade")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTradeResponse(trade))
}

// listTrades godoc
// @Summary List trades for an account
// @Tags trades
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {array} dto.TradeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/trades [get]
func (h *tradeHandler) listTrades(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	trades, err := h.tradeService.ListTrades(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to list trades")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTradeResponse(trades))
}

// getTrade godoc
// @Summary Get a trade by ID
// @Tags trades
// @Produce json
// @Param id path string true "Trade ID"
// @Success 200 {object} dto.TradeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades/{id} [get]
func (h *tradeHandler) getTrade(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	trade, err := h.tradeService.GetTradeByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve trade")
		return
	}

	c.JSON(http.StatusOK, dto.ToTradeResponse(trade))
}

// deleteTrade godoc
// @Summary Delete a trade
// @Description Deletes a trade and reprocesses the account's history without it. Rejected if the remaining history cannot replay.
// @Tags trades
// @Produce json
// @Param id path string true "Trade ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades/{id} [delete]
func (h *tradeHandler) deleteTrade(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.tradeService.DeleteTrade(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete trade")
		return
	}

	c.Status(http.StatusNoContent)
}
