package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/foliotrack/folio_backend/internal/apperrors"
	"github.com/foliotrack/folio_backend/internal/core/domain"
	portsrepo "github.com/foliotrack/folio_backend/internal/core/ports/repositories"
	portssvc "github.com/foliotrack/folio_backend/internal/core/ports/services"
	"github.com/foliotrack/folio_backend/internal/middleware"
)

// transactionService is the transaction processing and reprocessing engine.
type transactionService struct {
	accountRepo  portsrepo.AccountRepositoryWithTx
	securityRepo portsrepo.SecurityRepositoryWithTx
	tradeRepo    portsrepo.TradeRepositoryWithTx
	ledgerRepo   portsrepo.LedgerRepositoryWithTx
}

// NewTransactionService creates the transaction engine.
func NewTransactionService(
	accountRepo portsrepo.AccountRepositoryWithTx,
	securityRepo portsrepo.SecurityRepositoryWithTx,
	tradeRepo portsrepo.TradeRepositoryWithTx,
	ledgerRepo portsrepo.LedgerRepositoryWithTx,
) portssvc.TransactionProcessorSvc {
	return &transactionService{
		accountRepo:  accountRepo,
		securityRepo: securityRepo,
		tradeRepo:    tradeRepo,
		ledgerRepo:   ledgerRepo,
	}
}

var _ portssvc.TransactionProcessorSvc = (*transactionService)(nil)

// ProcessTransaction applies one transaction context: account effect first,
// persisted; then the security effect for trades, persisted. Both writes go
// through the caller's tx, so a later failure rolls back the earlier write.
func (s *transactionService) ProcessTransaction(ctx context.Context, tx pgx.Tx, txnCtx domain.TransactionContext) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Debug("Processing transaction", slog.String("type", string(txnCtx.Type)), slog.String("account_id", txnCtx.Account.AccountID))

	applyToAccount, ok := accountOperations[txnCtx.Type]
	if !ok {
		return fmt.Errorf("unknown transaction type %q", txnCtx.Type)
	}
	if err := applyToAccount(txnCtx); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrTransactionProcessing, err)
	}
	if err := s.accountRepo.UpdateAccountInTx(ctx, tx, *txnCtx.Account); err != nil {
		return fmt.Errorf("failed to persist account %s: %w", txnCtx.Account.AccountID, err)
	}

	if txnCtx.Security != nil {
		applyToSecurity, ok := securityOperations[txnCtx.Type]
		if !ok {
			return fmt.Errorf("transaction type %q has no security effect", txnCtx.Type)
		}
		if err := applyToSecurity(txnCtx); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrTransactionProcessing, err)
		}
		if err := s.securityRepo.UpdateSecurityInTx(ctx, tx, *txnCtx.Security); err != nil {
			return fmt.Errorf("failed to persist security %s: %w", txnCtx.Security.SecurityID, err)
		}
	}

	return nil
}

// replayItem pairs a historical transaction with its ordering timestamp.
type replayItem struct {
	at     time.Time
	trade  *domain.Trade
	ledger *domain.Ledger
}

// ReprocessTransactions re-derives the account's entire state from its
// transaction history. FIFO lot state is order-dependent and cannot be
// locally patched, so edits and deletions replay everything.
func (s *transactionService) ReprocessTransactions(ctx context.Context, tx pgx.Tx, account *domain.Account, securities []*domain.Security, exclude map[string]struct{}) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("Reprocessing all transactions", slog.String("account_id", account.AccountID), slog.Int("excluded", len(exclude)))

	account.BuyingPower = decimal.Zero
	securitiesByID := make(map[string]*domain.Security, len(securities))
	for _, sec := range securities {
		sec.ResetDerivedState()
		securitiesByID[sec.SecurityID] = sec
	}

	trades, err := s.tradeRepo.FindTradesByAccountID(ctx, account.AccountID)
	if err != nil {
		return fmt.Errorf("failed to load trades for account %s: %w", account.AccountID, err)
	}
	ledgerEntries, err := s.ledgerRepo.FindLedgerByAccountID(ctx, account.AccountID)
	if err != nil {
		return fmt.Errorf("failed to load ledger entries for account %s: %w", account.AccountID, err)
	}

	items := make([]replayItem, 0, len(trades)+len(ledgerEntries))
	for i := range trades {
		items = append(items, replayItem{at: trades[i].LastUpdatedAt, trade: &trades[i]})
	}
	for i := range ledgerEntries {
		items = append(items, replayItem{at: ledgerEntries[i].LastUpdatedAt, ledger: &ledgerEntries[i]})
	}
	// Stable: equal timestamps keep insertion order, which defines the
	// transaction order for FIFO purposes.
	sort.SliceStable(items, func(i, j int) bool { return items[i].at.Before(items[j].at) })

	for _, item := range items {
		var txnCtx domain.TransactionContext
		switch {
		case item.trade != nil:
			if _, skip := exclude[item.trade.TradeID]; skip {
				continue
			}
			sec, ok := securitiesByID[item.trade.SecurityID]
			if !ok {
				return fmt.Errorf("security %s referenced by trade %s is not loaded for account %s",
					item.trade.SecurityID, item.trade.TradeID, account.AccountID)
			}
			txnCtx = domain.NewTradeContext(account, sec, item.trade)
		default:
			if _, skip := exclude[item.ledger.LedgerID]; skip {
				continue
			}
			txnCtx = domain.NewLedgerContext(account, item.ledger)
		}
		if err := s.ProcessTransaction(ctx, tx, txnCtx); err != nil {
			return err
		}
	}

	// Securities whose history was entirely excluded (and an account with no
	// remaining items) are never touched by the replay loop; persist the
	// reset state explicitly.
	if err := s.accountRepo.UpdateAccountInTx(ctx, tx, *account); err != nil {
		return fmt.Errorf("failed to persist account %s after reprocessing: %w", account.AccountID, err)
	}
	for _, sec := range securities {
		if err := s.securityRepo.UpdateSecurityInTx(ctx, tx, *sec); err != nil {
			return fmt.Errorf("failed to persist security %s after reprocessing: %w", sec.SecurityID, err)
		}
	}

	logger.Info("All transactions reprocessed", slog.String("account_id", account.AccountID), slog.Int("replayed", len(items)))
	return nil
}
