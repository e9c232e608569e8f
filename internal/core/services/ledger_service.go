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

// ledgerService records and deletes cash movements, mirroring tradeService.
type ledgerService struct {
	accountRepo  portsrepo.AccountRepositoryWithTx
	securityRepo portsrepo.SecurityRepositoryWithTx
	ledgerRepo   portsrepo.LedgerRepositoryWithTx
	txnProcessor portssvc.TransactionProcessorSvc
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(
	accountRepo portsrepo.AccountRepositoryWithTx,
	securityRepo portsrepo.SecurityRepositoryWithTx,
	ledgerRepo portsrepo.LedgerRepositoryWithTx,
	txnProcessor portssvc.TransactionProcessorSvc,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo:  accountRepo,
		securityRepo: securityRepo,
		ledgerRepo:   ledgerRepo,
		txnProcessor: txnProcessor,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) CreateLedger(ctx context.Context, accountID string, req dto.CreateLedgerRequest, userID string) (*domain.Ledger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
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

	now := time.Now().UTC()
	ledger := domain.Ledger{
		LedgerID:  uuid.NewString(),
		AccountID: accountID,
		Type:      req.Type,
		Amount:    req.Amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	txnCtx := domain.NewLedgerContext(account, &ledger)
	if err := s.txnProcessor.ProcessTransaction(ctx, tx, txnCtx); err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.SaveLedgerInTx(ctx, tx, ledger); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Ledger entry recorded",
		slog.String("ledger_id", ledger.LedgerID),
		slog.String("type", string(ledger.Type)))
	return &ledger, nil
}

func (s *ledgerService) GetLedgerByID(ctx context.Context, ledgerID string, userID string) (*domain.Ledger, error) {
	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	if _, err := getOwnedAccount(ctx, s.accountRepo, ledger.AccountID, userID); err != nil {
		return nil, err
	}
	return ledger, nil
}

func (s *ledgerService) ListLedger(ctx context.Context, accountID string, userID string) ([]domain.Ledger, error) {
	if _, err := getOwnedAccount(ctx, s.accountRepo, accountID, userID); err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.FindLedgerByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries for account %s: %w", accountID, err)
	}
	if entries == nil {
		entries = []domain.Ledger{}
	}
	return entries, nil
}

// DeleteLedger replays the account's history without this entry, then deletes
// the row. Removing a deposit that later trades relied on fails the replay
// and rejects the deletion.
func (s *ledgerService) DeleteLedger(ctx context.Context, ledgerID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	ledger, err := s.GetLedgerByID(ctx, ledgerID, userID)
	if err != nil {
		return err
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.accountRepo.Rollback(ctx, tx) }()

	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, ledger.AccountID)
	if err != nil {
		return err
	}

	all, err := s.securityRepo.FindSecuritiesByAccountID(ctx, ledger.AccountID)
	if err != nil {
		return fmt.Errorf("failed to load securities for account %s: %w", ledger.AccountID, err)
	}
	securities := make([]*domain.Security, len(all))
	for i := range all {
		securities[i] = &all[i]
	}

	exclude := map[string]struct{}{ledgerID: {}}
	if err := s.txnProcessor.ReprocessTransactions(ctx, tx, account, securities, exclude); err != nil {
		return err
	}

	if err := s.ledgerRepo.DeleteLedgerInTx(ctx, tx, ledgerID); err != nil {
		return err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Ledger entry deleted", slog.String("ledger_id", ledgerID))
	return nil
}
