package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/foliotrack/folio_backend/internal/core/ports/services"
	"github.com/foliotrack/folio_backend/internal/dto"
	"github.com/foliotrack/folio_backend/internal/middleware"
)

// securityHandler handles HTTP requests related to securities.
type securityHandler struct {
	securityService portssvc.SecuritySvcFacade
}

func newSecurityHandler(ss portssvc.SecuritySvcFacade) *securityHandler {
	return &securityHandler{securityService: ss}
}

// registerSecurityRoutes registers routes related to securities. Creation and
// listing are nested under the owning account; item routes are flat.
func registerSecurityRoutes(rg *gin.RouterGroup, securityService portssvc.SecuritySvcFacade) {
	h := newSecurityHandler(securityService)

	rg.POST("/accounts/:id/securities", h.createSecurity)
	rg.GET("/accounts/:id/securities", h.listSecurities)

	securities := rg.Group("/securities")
	{
		securities.GET("/:id", h.getSecurity)
		securities.PUT("/:id", h.updateSecurity)
		securities.DELETE("/:id", h.deleteSecurity)
	}
}

// createSecurity godoc
// @Summary Add a security to an account
// @Description Creates a security with an optional target allocation. Target allocations across the account may not sum above 1.
// @Tags securities
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param security body dto.CreateSecurityRequest true "Security details"
// @Success 201 {object} dto.SecurityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/securities [post]
func (h *securityHandler) createSecurity(c *gin.Context) {
	var req dto.CreateSecurityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	security, err := h.securityService.CreateSecurity(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create security")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSecurityResponse(security))
}

// listSecurities godoc
// @Summary List securities on an account
// @Description Lists all securities on an account with their derived position state
// @Tags securities
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {array} dto.SecurityResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/securities [get]
func (h *securityHandler) listSecurities(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	securities, err := h.securityService.ListSecurities(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to list securities")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSecurityResponse(securities))
}

// getSecurity godoc
// @Summary Get a security by ID
// @Tags securities
// @Produce json
// @Param id path string true "Security ID"
// @Success 200 {object} dto.SecurityResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /securities/{id} [get]
func (h *securityHandler) getSecurity(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	security, err := h.securityService.GetSecurityByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve security")
		return
	}

	c.JSON(http.StatusOK, dto.ToSecurityResponse(security))
}

// updateSecurity godoc
// @Summary Update a security
// @Description Updates symbol, name or target allocation. The allocation sum is re-validated.
// @Tags securities
// @Accept json
// @Produce json
// @Param id path string true "Security ID"
// @Param security body dto.UpdateSecurityRequest true "Fields to update"
// @Success 200 {object} dto.SecurityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /securities/{id} [put]
func (h *securityHandler) updateSecurity(c *gin.Context) {
	var req dto.UpdateSecurityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	security, err := h.securityService.UpdateSecurity(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update security")
		return
	}

	c.JSON(http.StatusOK, dto.ToSecurityResponse(security))
}

// deleteSecurity godoc
// @Summary Delete a security
// @Description Deletes a security and its trades, reprocessing the account's remaining history
// @Tags securities
// @Produce json
// @Param id path string true "Security ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /securities/{id} [delete]
func (h *securityHandler) deleteSecurity(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.securityService.DeleteSecurity(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete security")
		return
	}

	c.Status(http.StatusNoContent)
}
