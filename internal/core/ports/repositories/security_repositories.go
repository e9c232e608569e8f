package repositories

import (
	"context"
	"time"

	"github.com/foliotrack/folio_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// SecurityReader defines read operations for security data
type SecurityReader interface {
	// FindSecurityByID retrieves a specific security by its unique identifier.
	FindSecurityByID(ctx context.Context, securityID string) (*domain.Security, error)

	// FindSecuritiesByAccountID retrieves all securities owned by an
	// account, in insertion (creation) order.
	FindSecuritiesByAccountID(ctx context.Context, accountID string) ([]domain.Security, error)

	// ListAllSecurities retrieves every security across all accounts.
	// Used by the price refresh scheduler.
	ListAllSecurities(ctx context.Context) ([]domain.Security, error)
}

// SecurityWriter defines write operations for security data
type SecurityWriter interface {
	// SaveSecurity persists a new security.
	SaveSecurity(ctx context.Context, security domain.Security) error

	// UpdateSecurity updates an existing security's details and derived state.
	UpdateSecurity(ctx context.Context, security domain.Security) error

	// UpdateLatestPrice stores a freshly fetched market price.
	UpdateLatestPrice(ctx context.Context, securityID string, price decimal.Decimal, now time.Time) error
}

// SecurityTransactionSupport defines operations the transaction engine needs
// inside a database transaction.
type SecurityTransactionSupport interface {
	// UpdateSecurityInTx persists the security's mutated derived state
	// (position, cost basis, average price, FIFO lots) within the given
	// transaction.
	UpdateSecurityInTx(ctx context.Context, tx pgx.Tx, security domain.Security) error

	// DeleteSecurityInTx removes a security within the given transaction.
	// Its trades cascade at the database level.
	DeleteSecurityInTx(ctx context.Context, tx pgx.Tx, securityID string) error
}

// SecurityRepositoryFacade combines all security-related repository interfaces
type SecurityRepositoryFacade interface {
	SecurityReader
	SecurityWriter
	SecurityTransactionSupport
}

// SecurityRepositoryWithTx extends SecurityRepositoryFacade with transaction capabilities
type SecurityRepositoryWithTx interface {
	SecurityRepositoryFacade
	TransactionManager
}
