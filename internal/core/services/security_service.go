package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/foliotrack/folio_backend/internal/apperrors"
	"github.com/foliotrack/folio_backend/internal/core/domain"
	portsrepo "github.com/foliotrack/folio_backend/internal/core/ports/repositories"
	portssvc "github.com/foliotrack/folio_backend/internal/core/ports/services"
	"github.com/foliotrack/folio_backend/internal/dto"
	"github.com/foliotrack/folio_backend/internal/middleware"
)

// securityService provides security CRUD plus the scheduled price refresh.
// Deletion routes through the reprocessing engine so derived account state
// stays consistent with the surviving history.
type securityService struct {
	accountRepo  portsrepo.AccountRepositoryWithTx
	securityRepo portsrepo.SecurityRepositoryWithTx
	tradeRepo    portsrepo.TradeRepositoryFacade
	txnProcessor portssvc.TransactionProcessorSvc
	marketData   portssvc.MarketDataSvcFacade
}

// NewSecurityService creates a new security service.
func NewSecurityService(
	accountRepo portsrepo.AccountRepositoryWithTx,
	securityRepo portsrepo.SecurityRepositoryWithTx,
	tradeRepo portsrepo.TradeRepositoryFacade,
	txnProcessor portssvc.TransactionProcessorSvc,
	marketData portssvc.MarketDataSvcFacade,
) portssvc.SecuritySvcFacade {
	return &securityService{
		accountRepo:  accountRepo,
		securityRepo: securityRepo,
		tradeRepo:    tradeRepo,
		txnProcessor: txnProcessor,
		marketData:   marketData,
	}
}

var _ portssvc.SecuritySvcFacade = (*securityService)(nil)

func (s *securityService) CreateSecurity(ctx context.Context, accountID string, req dto.CreateSecurityRequest, userID string) (*domain.Security, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := getOwnedAccount(ctx, s.accountRepo, accountID, userID); err != nil {
		return nil, err
	}

	if err := s.validateTargetAllocation(ctx, accountID, "", req.TargetAllocation); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	security := domain.Security{
		SecurityID:       uuid.NewString(),
		AccountID:        accountID,
		Symbol:           req.Symbol,
		Name:             req.Name,
		TargetAllocation: req.TargetAllocation,
		Position:         decimal.Zero,
		CostBasis:        decimal.Zero,
		AveragePrice:     decimal.Zero,
		LatestPrice:      decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.securityRepo.SaveSecurity(ctx, security); err != nil {
		logger.Error("Failed to save security", slog.String("error", err.Error()), slog.String("symbol", req.Symbol))
		return nil, err
	}

	logger.Info("Security created", slog.String("security_id", security.SecurityID), slog.String("symbol", security.Symbol))
	return &security, nil
}

func (s *securityService) GetSecurityByID(ctx context.Context, securityID string, userID string) (*domain.Security, error) {
	security, err := s.securityRepo.FindSecurityByID(ctx, securityID)
	if err != nil {
		return nil, err
	}
	if _, err := getOwnedAccount(ctx, s.accountRepo, security.AccountID, userID); err != nil {
		return nil, err
	}
	return security, nil
}

func (s *securityService) ListSecurities(ctx context.Context, accountID string, userID string) ([]domain.Security, error) {
	if _, err := getOwnedAccount(ctx, s.accountRepo, accountID, userID); err != nil {
		return nil, err
	}

	securities, err := s.securityRepo.FindSecuritiesByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list securities for account %s: %w", accountID, err)
	}
	if securities == nil {
		securities = []domain.Security{}
	}
	return securities, nil
}

func (s *securityService) UpdateSecurity(ctx context.Context, securityID string, req dto.UpdateSecurityRequest, userID string) (*domain.Security, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	security, err := s.GetSecurityByID(ctx, securityID, userID)
	if err != nil {
		return nil, err
	}

	if req.Symbol != nil {
		security.Symbol = *req.Symbol
	}
	if req.Name != nil {
		security.Name = *req.Name
	}
	if req.TargetAllocation != nil {
		if err := s.validateTargetAllocation(ctx, security.AccountID, securityID, *req.TargetAllocation); err != nil {
			return nil, err
		}
		security.TargetAllocation = *req.TargetAllocation
	}
	security.LastUpdatedAt = time.Now().UTC()
	security.LastUpdatedBy = userID

	if err := s.securityRepo.UpdateSecurity(ctx, *security); err != nil {
		logger.Error("Failed to update security", slog.String("error", err.Error()), slog.String("security_id", securityID))
		return nil, fmt.Errorf("failed to update security: %w", err)
	}

	logger.Info("Security updated", slog.String("security_id", securityID))
	return security, nil
}

// DeleteSecurity replays the account's history with every trade of this
// security excluded, then deletes the row. Replay, state persistence and the
// delete commit in one database transaction.
func (s *securityService) DeleteSecurity(ctx context.Context, securityID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	security, err := s.GetSecurityByID(ctx, securityID, userID)
	if err != nil {
		return err
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.accountRepo.Rollback(ctx, tx) }()

	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, security.AccountID)
	if err != nil {
		return err
	}

	all, err := s.securityRepo.FindSecuritiesByAccountID(ctx, security.AccountID)
	if err != nil {
		return fmt.Errorf("failed to load securities for account %s: %w", security.AccountID, err)
	}
	remaining := make([]*domain.Security, 0, len(all))
	for i := range all {
		if all[i].SecurityID == securityID {
			continue
		}
		remaining = append(remaining, &all[i])
	}

	trades, err := s.tradeRepo.FindTradesBySecurityID(ctx, securityID)
	if err != nil {
		return fmt.Errorf("failed to load trades for security %s: %w", securityID, err)
	}
	exclude := make(map[string]struct{}, len(trades))
	for i := range trades {
		exclude[trades[i].TradeID] = struct{}{}
	}

	if err := s.txnProcessor.ReprocessTransactions(ctx, tx, account, remaining, exclude); err != nil {
		return err
	}

	if err := s.securityRepo.DeleteSecurityInTx(ctx, tx, securityID); err != nil {
		return err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Security deleted", slog.String("security_id", securityID), slog.Int("excluded_trades", len(exclude)))
	return nil
}

// RefreshAllPrices fetches and stores the latest price for every security.
// Failures are logged per symbol; one bad symbol does not abort the sweep.
func (s *securityService) RefreshAllPrices(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	securities, err := s.securityRepo.ListAllSecurities(ctx)
	if err != nil {
		return fmt.Errorf("failed to list securities: %w", err)
	}
	if len(securities) == 0 {
		return nil
	}

	symbolSet := make(map[string]struct{}, len(securities))
	symbols := make([]string, 0, len(securities))
	for i := range securities {
		if _, seen := symbolSet[securities[i].Symbol]; seen {
			continue
		}
		symbolSet[securities[i].Symbol] = struct{}{}
		symbols = append(symbols, securities[i].Symbol)
	}

	prices, err := s.marketData.FetchPrices(ctx, symbols)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	var failed int
	for i := range securities {
		price, ok := prices[securities[i].Symbol]
		if !ok {
			logger.Warn("No price returned for symbol", slog.String("symbol", securities[i].Symbol))
			failed++
			continue
		}
		if err := s.securityRepo.UpdateLatestPrice(ctx, securities[i].SecurityID, price, now); err != nil {
			logger.Error("Failed to store latest price", slog.String("error", err.Error()), slog.String("security_id", securities[i].SecurityID))
			failed++
		}
	}

	logger.Info("Price refresh complete", slog.Int("securities", len(securities)), slog.Int("failed", failed))
	return nil
}

// validateTargetAllocation ensures the account's target allocations, with
// excludeSecurityID's replaced by newTarget, still sum to at most 1.
func (s *securityService) validateTargetAllocation(ctx context.Context, accountID string, excludeSecurityID string, newTarget decimal.Decimal) error {
	if newTarget.IsNegative() || newTarget.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: target allocation must be between 0 and 1", apperrors.ErrValidation)
	}

	securities, err := s.securityRepo.FindSecuritiesByAccountID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to load securities for account %s: %w", accountID, err)
	}

	total := newTarget
	for i := range securities {
		if securities[i].SecurityID == excludeSecurityID {
			continue
		}
		total = total.Add(securities[i].TargetAllocation)
	}
	if total.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: target allocations would sum to %s, exceeding 1", apperrors.ErrValidation, total.String())
	}
	return nil
}
