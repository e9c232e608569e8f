package services

import (
	"context"

	"github.com/foliotrack/folio_backend/internal/core/domain"
	"github.com/foliotrack/folio_backend/internal/dto"
)

// TradeSvcFacade defines trade recording and deletion. Both run through the
// transaction engine inside a single database transaction.
type TradeSvcFacade interface {
	// CreateTrade processes a buy/sell against the account and persists the
	// trade; state mutations and the trade row commit atomically.
	CreateTrade(ctx context.Context, accountID string, req dto.CreateTradeRequest, userID string) (*domain.Trade, error)

	// GetTradeByID retrieves a trade, enforcing account ownership.
	GetTradeByID(ctx context.Context, tradeID string, userID string) (*domain.Trade, error)

	// ListTrades retrieves all trades for an account, oldest first.
	ListTrades(ctx context.Context, accountID string, userID string) ([]domain.Trade, error)

	// DeleteTrade reprocesses the account's full history with this trade
	// excluded, then deletes the row. A replay failure rejects the deletion.
	DeleteTrade(ctx context.Context, tradeID string, userID string) error
}

// LedgerSvcFacade defines cash movement recording and deletion, mirroring
// TradeSvcFacade.
type LedgerSvcFacade interface {
	// CreateLedger processes a deposit/withdrawal against the account and
	// persists the ledger entry atomically.
	CreateLedger(ctx context.Context, accountID string, req dto.CreateLedgerRequest, userID string) (*domain.Ledger, error)

	// GetLedgerByID retrieves a ledger entry, enforcing account ownership.
	GetLedgerByID(ctx context.Context, ledgerID string, userID string) (*domain.Ledger, error)

	// ListLedger retrieves all ledger entries for an account, oldest first.
	ListLedger(ctx context.Context, accountID string, userID string) ([]domain.Ledger, error)

	// DeleteLedger reprocesses the account's history with this entry
	// excluded, then deletes the row.
	DeleteLedger(ctx context.Context, ledgerID string, userID string) error
}
