package domain

import (
	"github.com/shopspring/decimal"
)

// TradeType indicates whether a trade bought or sold a security.
type TradeType string

const (
	Buy  TradeType = "BUY"
	Sell TradeType = "SELL"
)

// Trade represents one buy or sell of a security against an account.
// Trades are immutable once created except for deletion, which triggers a
// full reprocessing of the owning account.
type Trade struct {
	TradeID    string          `json:"tradeID"`    // Primary Key (UUID)
	AccountID  string          `json:"accountID"`  // FK -> accounts.account_id (NON-NULL)
	SecurityID string          `json:"securityID"` // FK -> securities.security_id (NON-NULL)
	Type       TradeType       `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"` // Positive
	Price      decimal.Decimal `json:"price"`    // Positive unit price
	AuditFields
}

// Total is the cash value of the trade (quantity * price).
func (t Trade) Total() decimal.Decimal {
	return t.Quantity.Mul(t.Price)
}
