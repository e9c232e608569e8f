package domain

import (
	"github.com/shopspring/decimal"
)

// LedgerType indicates the direction of a cash movement.
type LedgerType string

const (
	Deposit    LedgerType = "DEPOSIT"
	Withdrawal LedgerType = "WITHDRAWAL"
)

// Ledger represents one cash movement (deposit or withdrawal) against an
// account. Like trades, ledger entries are immutable except for deletion.
type Ledger struct {
	LedgerID  string          `json:"ledgerID"`  // Primary Key (UUID)
	AccountID string          `json:"accountID"` // FK -> accounts.account_id (NON-NULL)
	Type      LedgerType      `json:"type"`
	Amount    decimal.Decimal `json:"amount"` // Positive
	AuditFields
}
