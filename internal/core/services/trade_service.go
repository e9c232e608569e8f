package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/foliotrack/folio_backend/internal/apperrors"
	"github.com/foliotrack/folio_backend/internal/core/domain"
	portsrepo "github.com/foliotrack/folio_backend/internal/core/ports/repositories"
	portssvc "github.com/foliotrack/folio_backend/internal/core/ports/services"
	"github.com/foliotrack/folio_backend/internal/dto"
	"github.com/foliotrack/folio_backend/internal/middleware"
)

// tradeService records and deletes trades. Every mutation runs through the
// transaction engine inside one database transaction, with the account row
// locked for the duration.
type tradeService struct {
	accountRepo  portsrepo.AccountRepositoryWithTx
	securityRepo portsrepo.SecurityRepositoryWithTx
	tradeRepo    portsrepo.TradeRepositoryWithTx
	txnProcessor portssvc.TransactionProcessorSvc
}

// NewTradeService creates a new trade service.
func NewTradeService(
	accountRepo portsrepo.AccountRepositoryWithTx,
	securityRepo portsrepo.SecurityRepositoryWithTx,
	tradeRepo portsrepo.TradeRepositoryWithTx,
	txnProcessor portssvc.TransactionProcessorSvc,
) portssvc.TradeSvcFacade {
	return &tradeService{
		accountRepo:  accountRepo,
		securityRepo: securityRepo,
		tradeRepo:    tradeRepo,
		txnProcessor: txnProcessor,
	}
}

var _ portssvc.TradeSvcFacade = (*tradeService)(nil)

func (s *tradeService) CreateTrade(ctx context.Context, accountID string, req dto.CreateTradeRequest, userID string) (*domain.Trade, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	if !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", apperrors.ErrValidation)
	}

	if _, err := getOwnedAccount(ctx, s.accountRepo, accountID, userID); err != nil {
		return nil, err
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.accountRepo.Rollback(ctx, tx) }()

	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	security, err := s.securityRepo.FindSecurityByID(ctx, req.SecurityID)
	if err != nil {
		return nil, err
	}
	if security.AccountID != accountID {
		return nil, fmt.Errorf("%w: security %s does not belong to account %s", apperrors.ErrValidation, req.SecurityID, accountID)
	}

	now := time.Now().UTC()
	trade := domain.Trade{
		TradeID:    uuid.NewString(),
		AccountID:  accountID,
		SecurityID: req.SecurityID,
		Type:       req.Type,
		Quantity:   req.Quantity,
		Price:      req.Price,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	txnCtx := domain.NewTradeContext(account, security, &trade)
	if err := s.txnProcessor.ProcessTransaction(ctx, tx, txnCtx); err != nil {
		return nil, err
	}

	if err := s.tradeRepo.SaveTradeInTx(ctx, tx, trade); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Trade recorded",
		slog.String("trade_id", trade.TradeID),
		slog.String("type", string(trade.Type)),
		slog.String("symbol", security.Symbol))
	return &trade, nil
}

func (s *tradeService) GetTradeByID(ctx context.Context, tradeID string, userID string) (*domain.Trade, error) {
	trade, err := s.tradeRepo.FindTradeByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if _, err := getOwnedAccount(ctx, s.accountRepo, trade.AccountID, userID); err != nil {
		return nil, err
	}
	return trade, nil
}

func (s *tradeService) ListTrades(ctx context.Context, accountID string, userID string) ([]domain.Trade, error) {
	if _, err := getOwnedAccount(ctx, s.accountRepo, accountID, userID); err != nil {
		return nil, err
	}

	trades, err := s.tradeRepo.FindTradesByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades for account %s: %w", accountID, err)
	}
	if trades == nil {
		trades = []domain.Trade{}
	}
	return trades, nil
}

// DeleteTrade replays the account's history without this trade, then deletes
// the row. A replay failure (e.g. a sell that the remaining history can no
// longer fund) rejects the deletion.
func (s *tradeService) DeleteTrade(ctx context.Context, tradeID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	trade, err := s.GetTradeByID(ctx, tradeID, userID)
	if err != nil {
		return err
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.accountRepo.Rollback(ctx, tx) }()

	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, trade.AccountID)
	if err != nil {
		return err
	}

	all, err := s.securityRepo.FindSecuritiesByAccountID(ctx, trade.AccountID)
	if err != nil {
		return fmt.Errorf("failed to load securities for account %s: %w", trade.AccountID, err)
	}
	securities := make([]*domain.Security, len(all))
	for i := range all {
		securities[i] = &all[i]
	}

	exclude := map[string]struct{}{tradeID: {}}
	if err := s.txnProcessor.ReprocessTransactions(ctx, tx, account, securities, exclude); err != nil {
		return err
	}

	if err := s.tradeRepo.DeleteTradeInTx(ctx, tx, tradeID); err != nil {
		return err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Trade deleted", slog.String("trade_id", tradeID))
	return nil
}
