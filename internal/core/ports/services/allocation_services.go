package services

import (
	"context"

	"github.com/foliotrack/folio_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllocationSvcFacade computes how to distribute new cash across an
// account's securities against their target weights.
type AllocationSvcFacade interface {
	// GetAllocationPlan refreshes every security's latest price through the
	// market data collaborator, then computes the per-security recommended
	// investment. Output order matches the account's security insertion
	// order.
	GetAllocationPlan(ctx context.Context, accountID string, userID string, newInvestment decimal.Decimal, strategy domain.AllocationStrategy) ([]domain.AllocationPlanItem, error)
}

// MarketDataSvcFacade is the external price feed collaborator. It must fail
// explicitly (never return partial data) if any symbol is unresolvable.
type MarketDataSvcFacade interface {
	// FetchPrices returns the latest price for every requested symbol, or
	// apperrors.ErrPriceUnavailable if any symbol cannot be resolved.
	FetchPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error)
}
