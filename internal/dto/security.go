package dto

import (
	"time"

	"github.com/foliotrack/folio_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSecurityRequest defines the data needed to add a security to an account.
type CreateSecurityRequest struct {
	Symbol           string          `json:"symbol" binding:"required"`
	Name             string          `json:"name"`
	TargetAllocation decimal.Decimal `json:"targetAllocation"` // Fraction in [0,1]
}

// UpdateSecurityRequest defines the data allowed for updating a security.
type UpdateSecurityRequest struct {
	Symbol           *string          `json:"symbol"`
	Name             *string          `json:"name"`
	TargetAllocation *decimal.Decimal `json:"targetAllocation"`
}

// SecurityResponse defines the data returned for a security, including the
// derived position fields.
type SecurityResponse struct {
	SecurityID       string          `json:"securityID"`
	AccountID        string          `json:"accountID"`
	Symbol           string          `json:"symbol"`
	Name             string          `json:"name"`
	TargetAllocation decimal.Decimal `json:"targetAllocation"`
	Position         decimal.Decimal `json:"position"`
	CostBasis        decimal.Decimal `json:"costBasis"`
	AveragePrice     decimal.Decimal `json:"averagePrice"`
	LatestPrice      decimal.Decimal `json:"latestPrice"`
	CreatedAt        time.Time       `json:"createdAt"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
}

// ToSecurityResponse converts a domain.Security to SecurityResponse DTO
func ToSecurityResponse(sec *domain.Security) SecurityResponse {
	return SecurityResponse{
		SecurityID:       sec.SecurityID,
		AccountID:        sec.AccountID,
		Symbol:           sec.Symbol,
		Name:             sec.Name,
		TargetAllocation: sec.TargetAllocation,
		Position:         sec.Position,
		CostBasis:        sec.CostBasis,
		AveragePrice:     sec.AveragePrice,
		LatestPrice:      sec.LatestPrice,
		CreatedAt:        sec.CreatedAt,
		LastUpdatedAt:    sec.LastUpdatedAt,
	}
}

// ToListSecurityResponse converts a slice of domain.Security to response DTOs
func ToListSecurityResponse(securities []domain.Security) []SecurityResponse {
	res := make([]SecurityResponse, len(securities))
	for i := range securities {
		res[i] = ToSecurityResponse(&securities[i])
	}
	return res
}
