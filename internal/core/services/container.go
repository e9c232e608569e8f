package services

import (
	portsrepo "github.com/foliotrack/folio_backend/internal/core/ports/repositories"
	portssvc "github.com/foliotrack/folio_backend/internal/core/ports/services"
	"github.com/foliotrack/folio_backend/internal/platform/config"
)

// NewContainer wires every service with its repositories and returns the
// container handed to the HTTP layer and the scheduler.
func NewContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config, marketData portssvc.MarketDataSvcFacade) *portssvc.ServiceContainer {
	txnProcessor := NewTransactionService(repos.AccountRepo, repos.SecurityRepo, repos.TradeRepo, repos.LedgerRepo)

	return &portssvc.ServiceContainer{
		User:       NewUserService(repos.UserRepo),
		Token:      NewTokenService(cfg),
		Account:    NewAccountService(repos.AccountRepo),
		Security:   NewSecurityService(repos.AccountRepo, repos.SecurityRepo, repos.TradeRepo, txnProcessor, marketData),
		Trade:      NewTradeService(repos.AccountRepo, repos.SecurityRepo, repos.TradeRepo, txnProcessor),
		Ledger:     NewLedgerService(repos.AccountRepo, repos.SecurityRepo, repos.LedgerRepo, txnProcessor),
		Allocation: NewAllocationService(repos.AccountRepo, repos.SecurityRepo, marketData),
	}
}
