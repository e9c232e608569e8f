package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a brokerage account within the core domain.
// BuyingPower is the available cash balance: debited by buys and
// withdrawals, credited by sells and deposits. It must never be negative
// after a successfully committed operation.
type Account struct {
	AccountID   string          `json:"accountID"` // Primary Key (UUID)
	UserID      string          `json:"userID"`    // FK -> users.user_id (NON-NULL)
	Name        string          `json:"name"`      // User-defined name
	BuyingPower decimal.Decimal `json:"buyingPower"`
	AuditFields
}
