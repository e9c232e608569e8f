package repositories

import (
	"context"

	"github.com/foliotrack/folio_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerReader defines read operations for ledger (cash movement) data
type LedgerReader interface {
	// FindLedgerByID retrieves a specific ledger entry by its unique identifier.
	FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error)

	// FindLedgerByAccountID retrieves all ledger entries for an account,
	// ordered by creation time ascending.
	FindLedgerByAccountID(ctx context.Context, accountID string) ([]domain.Ledger, error)
}

// LedgerWriter defines write operations for ledger data
type LedgerWriter interface {
	// SaveLedgerInTx persists a new ledger entry within the given transaction.
	SaveLedgerInTx(ctx context.Context, tx pgx.Tx, ledger domain.Ledger) error

	// DeleteLedgerInTx removes a ledger entry within the given transaction.
	DeleteLedgerInTx(ctx context.Context, tx pgx.Tx, ledgerID string) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
