package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/foliotrack/folio_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider constructs every repository over one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  newPgxAccountRepository(dbPool),
		SecurityRepo: newPgxSecurityRepository(dbPool),
		TradeRepo:    newPgxTradeRepository(dbPool),
		LedgerRepo:   newPgxLedgerRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
	}
}
