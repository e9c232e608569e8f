package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/foliotrack/folio_backend/internal/core/ports/services"
	"github.com/foliotrack/folio_backend/internal/dto"
	"github.com/foliotrack/folio_backend/internal/middleware"
)

// ledgerHandler handles HTTP requests related to cash movements.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers routes related to ledger entries.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	rg.POST("/accounts/:id/ledger", h.createLedger)
	rg.GET("/accounts/:id/ledger", h.listLedger)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/:id", h.getLedger)
		ledger.DELETE("/:id", h.deleteLedger)
	}
}

// createLedger godoc
// @Summary Record a cash movement
// @Description Records a deposit or withdrawal and applies it to the account's buying power atomically. A withdrawal exceeding buying power is rejected.
// @Tags ledger
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param ledger body dto.CreateLedgerRequest true "Cash movement details"
// @Success 201 {object} dto.LedgerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/ledger [post]
func (h *ledgerHandler) createLedger(c *gin.Context) {
	var req dto.CreateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	ledger, err := h.ledgerService.CreateLedger(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record cash movement")
		return
	}

	c.JSON(http.StatusCreated, dto.ToLedgerResponse(ledger))
}

// listLedger godoc
// @Summary List cash movements for an account
// @Tags ledger
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {array} dto.LedgerResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/ledger [get]
func (h *ledgerHandler) listLedger(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entries, err := h.ledgerService.ListLedger(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to list ledger entries")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLedgerResponse(entries))
}

// getLedger godoc
// @Summary Get a ledger entry by ID
// @Tags ledger
// @Produce json
// @Param id path string true "Ledger entry ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/{id} [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	ledger, err := h.ledgerService.GetLedgerByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve ledger entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

// deleteLedger godoc
// @Summary Delete a ledger entry
// @Description Deletes a cash movement and reprocesses the account's history without it. Rejected if the remaining history cannot replay.
// @Tags ledger
// @Produce json
// @Param id path string true "Ledger entry ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/{id} [delete]
func (h *ledgerHandler) deleteLedger(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.ledgerService.DeleteLedger(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete ledger entry")
		return
	}

	c.Status(http.StatusNoContent)
}
