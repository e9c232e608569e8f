package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/foliotrack/folio_backend/internal/core/ports/services"
	"github.com/foliotrack/folio_backend/internal/dto"
	"github.com/foliotrack/folio_backend/internal/middleware"
)

// allocationHandler handles allocation plan requests.
type allocationHandler struct {
	allocationService portssvc.AllocationSvcFacade
}

func newAllocationHandler(as portssvc.AllocationSvcFacade) *allocationHandler {
	return &allocationHandler{allocationService: as}
}

// registerAllocationRoutes registers the allocation planner route.
func registerAllocationRoutes(rg *gin.RouterGroup, allocationService portssvc.AllocationSvcFacade) {
	h := newAllocationHandler(allocationService)

	rg.POST("/accounts/:id/allocation", h.getAllocationPlan)
}

// getAllocationPlan godoc
// @Summary Compute an allocation plan
// @Description Refreshes prices and recommends how to split a new cash investment across the account's securities, per their target allocations.
// @Tags allocation
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param plan body dto.AllocationPlanRequest true "Investment amount and strategy"
// @Success 200 {object} dto.AllocationPlanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/allocation [post]
func (h *allocationHandler) getAllocationPlan(c *gin.Context) {
	var req dto.AllocationPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	items, err := h.allocationService.GetAllocationPlan(c.Request.Context(), c.Param("id"), userID, req.NewInvestment, req.Strategy)
	if err != nil {
		respondError(c, err, "Failed to compute allocation plan")
		return
	}

	c.JSON(http.StatusOK, dto.AllocationPlanResponse{Items: items})
}
