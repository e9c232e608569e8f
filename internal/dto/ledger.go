package dto

import (
	"time"

	"github.com/foliotrack/folio_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerRequest defines the data needed to record a cash movement.
type CreateLedgerRequest struct {
	Type   domain.LedgerType `json:"type" binding:"required,oneof=DEPOSIT WITHDRAWAL"`
	Amount decimal.Decimal   `json:"amount" binding:"required"`
}

// LedgerResponse defines the data returned for a ledger entry.
type LedgerResponse struct {
	LedgerID  string            `json:"ledgerID"`
	AccountID string            `json:"accountID"`
	Type      domain.LedgerType `json:"type"`
	Amount    decimal.Decimal   `json:"amount"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ToLedgerResponse converts a domain.Ledger to LedgerResponse DTO
func ToLedgerResponse(l *domain.Ledger) LedgerResponse {
	return LedgerResponse{
		LedgerID:  l.LedgerID,
		AccountID: l.AccountID,
		Type:      l.Type,
		Amount:    l.Amount,
		CreatedAt: l.CreatedAt,
	}
}

// ToListLedgerResponse converts a slice of domain.Ledger to response DTOs
func ToListLedgerResponse(entries []domain.Ledger) []LedgerResponse {
	res := make([]LedgerResponse, len(entries))
	for i := range entries {
		res[i] = ToLedgerResponse(&entries[i])
	}
	return res
}
