package domain

import (
	"github.com/shopspring/decimal"
)

// Lot is a single open purchase lot: quantity bought at a unit price.
// Lots are consumed oldest-first on sells.
type Lot struct {
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Security represents a holding of one instrument within an account.
// Position, CostBasis, AveragePrice and FifoLots are derived from the
// account's transaction history; they are only ever mutated by the
// transaction engine.
type Security struct {
	SecurityID       string          `json:"securityID"` // Primary Key (UUID)
	AccountID        string          `json:"accountID"`  // FK -> accounts.account_id (NON-NULL)
	Symbol           string          `json:"symbol"`
	Name             string          `json:"name"`
	TargetAllocation decimal.Decimal `json:"targetAllocation"` // Fraction in [0,1]
	Position         decimal.Decimal `json:"position"`         // Quantity held
	CostBasis        decimal.Decimal `json:"costBasis"`        // Total cost of held position
	AveragePrice     decimal.Decimal `json:"averagePrice"`     // CostBasis / Position, 0 when flat
	LatestPrice      decimal.Decimal `json:"latestPrice"`      // Last fetched market price
	FifoLots         []Lot           `json:"fifoLots"`         // Oldest first
	AuditFields
}

// ResetDerivedState zeroes every field derived from the transaction history.
// Used by the reprocessing engine before a replay.
func (s *Security) ResetDerivedState() {
	s.Position = decimal.Zero
	s.CostBasis = decimal.Zero
	s.AveragePrice = decimal.Zero
	s.FifoLots = nil
}

// CurrentValue is the market value of the held position at the latest price.
func (s *Security) CurrentValue() decimal.Decimal {
	return s.LatestPrice.Mul(s.Position)
}
