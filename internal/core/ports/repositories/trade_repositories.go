package repositories

import (
	"context"

	"github.com/foliotrack/folio_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TradeReader defines read operations for trade data
type TradeReader interface {
	// FindTradeByID retrieves a specific trade by its unique identifier.
	FindTradeByID(ctx context.Context, tradeID string) (*domain.Trade, error)

	// FindTradesByAccountID retrieves all trades for an account, ordered by
	// creation time ascending.
	FindTradesByAccountID(ctx context.Context, accountID string) ([]domain.Trade, error)

	// FindTradesBySecurityID retrieves all trades referencing a security.
	FindTradesBySecurityID(ctx context.Context, securityID string) ([]domain.Trade, error)
}

// TradeWriter defines write operations for trade data
type TradeWriter interface {
	// SaveTradeInTx persists a new trade within the given transaction, so
	// the trade row and the state mutations it caused commit together.
	SaveTradeInTx(ctx context.Context, tx pgx.Tx, trade domain.Trade) error

	// DeleteTradeInTx removes a trade within the given transaction.
	DeleteTradeInTx(ctx context.Context, tx pgx.Tx, tradeID string) error
}

// TradeRepositoryFacade combines all trade-related repository interfaces
type TradeRepositoryFacade interface {
	TradeReader
	TradeWriter
}

// TradeRepositoryWithTx extends TradeRepositoryFacade with transaction capabilities
type TradeRepositoryWithTx interface {
	TradeRepositoryFacade
	TransactionManager
}
