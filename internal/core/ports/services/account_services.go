package services

import (
	"context"

	"github.com/foliotrack/folio_backend/internal/core/domain"
	"github.com/foliotrack/folio_backend/internal/dto"
)

// AccountSvcFacade defines account CRUD scoped to the requesting user.
type AccountSvcFacade interface {
	// CreateAccount creates a new account owned by userID.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// GetAccountByID retrieves an account, enforcing ownership.
	GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts owned by userID.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)

	// UpdateAccount updates account details, enforcing ownership.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an account and, via database cascade, its
	// securities, trades and ledger entries. No reprocessing runs: there is
	// nothing left to reconcile.
	DeleteAccount(ctx context.Context, accountID string, userID string) error
}
