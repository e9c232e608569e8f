package domain

import (
	"github.com/shopspring/decimal"
)

// AllocationStrategy selects how target allocations that sum below 1 are
// treated when computing a plan.
type AllocationStrategy string

const (
	// StrategyNone means the caller made no choice; only valid when the
	// targets already sum to 1.
	StrategyNone AllocationStrategy = ""
	// StrategyScale normalizes each target by the sum of all targets.
	StrategyScale AllocationStrategy = "SCALE"
	// StrategyFixed uses the targets as-is, leaving the shortfall uninvested.
	StrategyFixed AllocationStrategy = "FIXED"
)

// AllocationPlanItem is the per-security output of the allocation planner.
// It is ephemeral and never persisted.
type AllocationPlanItem struct {
	SecurityID                string          `json:"securityID"`
	Symbol                    string          `json:"symbol"`
	CurrentValue              decimal.Decimal `json:"currentValue"`
	EffectiveTargetAllocation decimal.Decimal `json:"effectiveTargetAllocation"`
	IdealValue                decimal.Decimal `json:"idealValue"`
	CurrentWeight             decimal.Decimal `json:"currentWeight"`
	NeededInvestment          decimal.Decimal `json:"neededInvestment"`
}
