package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/foliotrack/folio_backend/internal/apperrors"
	"github.com/foliotrack/folio_backend/internal/core/domain"
	portsrepo "github.com/foliotrack/folio_backend/internal/core/ports/repositories"
	portssvc "github.com/foliotrack/folio_backend/internal/core/ports/services"
	"github.com/foliotrack/folio_backend/internal/middleware"
)

const (
	// valuePlaces is the rounding precision for monetary output fields,
	// weightPlaces for allocation/weight fractions. Both use banker's
	// rounding.
	valuePlaces  = 8
	weightPlaces = 2
)

// allocationService computes per-security investment recommendations.
type allocationService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	securityRepo portsrepo.SecurityRepositoryFacade
	marketData   portssvc.MarketDataSvcFacade
}

// NewAllocationService creates the allocation planner.
func NewAllocationService(
	accountRepo portsrepo.AccountRepositoryFacade,
	securityRepo portsrepo.SecurityRepositoryFacade,
	marketData portssvc.MarketDataSvcFacade,
) portssvc.AllocationSvcFacade {
	return &allocationService{
		accountRepo:  accountRepo,
		securityRepo: securityRepo,
		marketData:   marketData,
	}
}

var _ portssvc.AllocationSvcFacade = (*allocationService)(nil)

// GetAllocationPlan refreshes latest prices and computes the plan.
func (s *allocationService) GetAllocationPlan(ctx context.Context, accountID string, userID string, newInvestment decimal.Decimal, strategy domain.AllocationStrategy) ([]domain.AllocationPlanItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !newInvestment.IsPositive() {
		return nil, fmt.Errorf("%w: new investment must be positive", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrForbidden
	}

	securities, err := s.securityRepo.FindSecuritiesByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load securities for account %s: %w", accountID, err)
	}

	if err := s.refreshPrices(ctx, securities); err != nil {
		return nil, err
	}

	plan, err := ComputeAllocationPlan(securities, newInvestment, strategy)
	if err != nil {
		return nil, err
	}

	logger.Info("Allocation plan created", slog.String("account_id", accountID), slog.Int("securities", len(plan)))
	return plan, nil
}

// refreshPrices fetches the latest price for every security and persists it.
// A feed failure aborts the plan; stale prices are never silently used.
func (s *allocationService) refreshPrices(ctx context.Context, securities []domain.Security) error {
	if len(securities) == 0 {
		return nil
	}

	symbols := make([]string, len(securities))
	for i, sec := range securities {
		symbols[i] = sec.Symbol
	}

	prices, err := s.marketData.FetchPrices(ctx, symbols)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for i := range securities {
		price, ok := prices[securities[i].Symbol]
		if !ok {
			return fmt.Errorf("%w: no price returned for symbol %s", apperrors.ErrPriceUnavailable, securities[i].Symbol)
		}
		securities[i].LatestPrice = price
		if err := s.securityRepo.UpdateLatestPrice(ctx, securities[i].SecurityID, price, now); err != nil {
			return fmt.Errorf("failed to store latest price for security %s: %w", securities[i].SecurityID, err)
		}
	}
	return nil
}

// ComputeAllocationPlan is the pure planner: given securities with fresh
// prices, a positive cash amount and a strategy, it returns one plan item per
// security in input order.
//
// current_weight is intentionally computed against the pre-investment total:
// it answers "how concentrated is this position today".
func ComputeAllocationPlan(securities []domain.Security, newInvestment decimal.Decimal, strategy domain.AllocationStrategy) ([]domain.AllocationPlanItem, error) {
	currentTotalValue := decimal.Zero
	totalTarget := decimal.Zero
	for i := range securities {
		currentTotalValue = currentTotalValue.Add(securities[i].CurrentValue())
		totalTarget = totalTarget.Add(securities[i].TargetAllocation)
	}

	if totalTarget.IsZero() {
		return nil, apperrors.ErrNoTargetAllocation
	}
	if totalTarget.LessThan(decimal.NewFromInt(1)) && strategy == domain.StrategyNone {
		return nil, apperrors.ErrAllocationStrategyRequired
	}

	newTotal := currentTotalValue.Add(newInvestment)
	plan := make([]domain.AllocationPlanItem, 0, len(securities))

	for i := range securities {
		sec := &securities[i]

		effectiveTarget := sec.TargetAllocation
		if strategy == domain.StrategyScale {
			effectiveTarget = effectiveTarget.Div(totalTarget)
		}

		idealValue := newTotal.Mul(effectiveTarget)
		currentValue := sec.CurrentValue()

		neededInvestment := idealValue.Sub(currentValue)
		if neededInvestment.IsNegative() {
			neededInvestment = decimal.Zero
		}
		if neededInvestment.GreaterThan(newInvestment) {
			neededInvestment = newInvestment
		}

		currentWeight := decimal.Zero
		if !currentTotalValue.IsZero() {
			currentWeight = currentValue.Div(currentTotalValue)
		}

		plan = append(plan, domain.AllocationPlanItem{
			SecurityID:                sec.SecurityID,
			Symbol:                    sec.Symbol,
			CurrentValue:              currentValue.RoundBank(valuePlaces),
			EffectiveTargetAllocation: effectiveTarget.RoundBank(weightPlaces),
			IdealValue:                idealValue.RoundBank(valuePlaces),
			CurrentWeight:             currentWeight.RoundBank(weightPlaces),
			NeededInvestment:          neededInvestment.RoundBank(valuePlaces),
		})
	}

	return plan, nil
}
