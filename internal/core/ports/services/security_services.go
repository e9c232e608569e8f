package services

import (
	"context"

	"github.com/foliotrack/folio_backend/internal/core/domain"
	"github.com/foliotrack/folio_backend/internal/dto"
)

// SecuritySvcFacade defines security CRUD under an account, plus the bulk
// price refresh used by the scheduler.
type SecuritySvcFacade interface {
	// CreateSecurity adds a security to an account. Fails with a validation
	// error when the sum of target allocations on the account would exceed 1.
	CreateSecurity(ctx context.Context, accountID string, req dto.CreateSecurityRequest, userID string) (*domain.Security, error)

	// GetSecurityByID retrieves a security, enforcing account ownership.
	GetSecurityByID(ctx context.Context, securityID string, userID string) (*domain.Security, error)

	// ListSecurities retrieves all securities on an account in insertion order.
	ListSecurities(ctx context.Context, accountID string, userID string) ([]domain.Security, error)

	// UpdateSecurity updates symbol, name or target allocation, re-validating
	// the allocation sum (excluding the security being updated).
	UpdateSecurity(ctx context.Context, securityID string, req dto.UpdateSecurityRequest, userID string) (*domain.Security, error)

	// DeleteSecurity removes a security: the account is reprocessed with the
	// security's trades excluded, then the row (and its trades, via cascade)
	// is deleted, atomically.
	DeleteSecurity(ctx context.Context, securityID string, userID string) error

	// RefreshAllPrices fetches and stores the latest price for every
	// security across all accounts. Used by the price refresh scheduler.
	RefreshAllPrices(ctx context.Context) error
}
