package dto

import (
	"github.com/foliotrack/folio_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllocationPlanRequest defines the inputs for computing an allocation plan.
type AllocationPlanRequest struct {
	NewInvestment decimal.Decimal           `json:"newInvestment" binding:"required"`
	Strategy      domain.AllocationStrategy `json:"strategy" binding:"omitempty,oneof=SCALE FIXED"`
}

// AllocationPlanResponse wraps the computed per-security plan items.
type AllocationPlanResponse struct {
	Items []domain.AllocationPlanItem `json:"items"`
}
