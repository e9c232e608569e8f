package services

import (
	"context"

	"github.com/foliotrack/folio_backend/internal/apperrors"
	"github.com/foliotrack/folio_backend/internal/core/domain"
	portsrepo "github.com/foliotrack/folio_backend/internal/core/ports/repositories"
)

// getOwnedAccount fetches an account and enforces that userID owns it.
func getOwnedAccount(ctx context.Context, reader portsrepo.AccountReader, accountID string, userID string) (*domain.Account, error) {
	account, err := reader.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return account, nil
}
