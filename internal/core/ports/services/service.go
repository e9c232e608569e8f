package services

// ServiceContainer holds all service facades handed to the HTTP layer.
type ServiceContainer struct {
	User       UserSvcFacade
	Token      TokenSvcFacade
	Account    AccountSvcFacade
	Security   SecuritySvcFacade
	Trade      TradeSvcFacade
	Ledger     LedgerSvcFacade
	Allocation AllocationSvcFacade
}
