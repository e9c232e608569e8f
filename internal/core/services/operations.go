package services

import (
	"fmt"

	"github.com/foliotrack/folio_backend/internal/apperrors"
	"github.com/foliotrack/folio_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// accountEffect mutates the account for one transaction kind.
type accountEffect func(txnCtx domain.TransactionContext) error

// securityEffect mutates the security's derived state for one trade kind.
type securityEffect func(txnCtx domain.TransactionContext) error

// accountOperations and securityOperations are the dispatch tables: each
// transaction kind maps to its account effect and, for trades, its security
// effect. Ledger movements have no security effect.
var accountOperations = map[domain.OperationType]accountEffect{
	domain.OpBuy:        buyUpdateAccount,
	domain.OpSell:       sellUpdateAccount,
	domain.OpDeposit:    depositUpdateAccount,
	domain.OpWithdrawal: withdrawalUpdateAccount,
}

var securityOperations = map[domain.OperationType]securityEffect{
	domain.OpBuy:  buyUpdateSecurity,
	domain.OpSell: sellUpdateSecurity,
}

func buyUpdateAccount(txnCtx domain.TransactionContext) error {
	total := txnCtx.Trade.Total()
	if total.GreaterThan(txnCtx.Account.BuyingPower) {
		return fmt.Errorf("%w: trade total %s exceeds buying power %s",
			apperrors.ErrInsufficientFunds, total, txnCtx.Account.BuyingPower)
	}
	txnCtx.Account.BuyingPower = txnCtx.Account.BuyingPower.Sub(total)
	return nil
}

func sellUpdateAccount(txnCtx domain.TransactionContext) error {
	txnCtx.Account.BuyingPower = txnCtx.Account.BuyingPower.Add(txnCtx.Trade.Total())
	return nil
}

func depositUpdateAccount(txnCtx domain.TransactionContext) error {
	txnCtx.Account.BuyingPower = txnCtx.Account.BuyingPower.Add(txnCtx.Ledger.Amount)
	return nil
}

func withdrawalUpdateAccount(txnCtx domain.TransactionContext) error {
	if txnCtx.Ledger.Amount.GreaterThan(txnCtx.Account.BuyingPower) {
		return fmt.Errorf("%w: withdrawal %s exceeds buying power %s",
			apperrors.ErrInsufficientFunds, txnCtx.Ledger.Amount, txnCtx.Account.BuyingPower)
	}
	txnCtx.Account.BuyingPower = txnCtx.Account.BuyingPower.Sub(txnCtx.Ledger.Amount)
	return nil
}

// buyUpdateSecurity appends a new lot at the tail of the FIFO queue and
// recomputes the derived fields.
func buyUpdateSecurity(txnCtx domain.TransactionContext) error {
	sec := txnCtx.Security
	trade := txnCtx.Trade

	sec.FifoLots = append(sec.FifoLots, domain.Lot{Quantity: trade.Quantity, Price: trade.Price})
	sec.CostBasis = sec.CostBasis.Add(trade.Total())
	sec.Position = sec.Position.Add(trade.Quantity)
	sec.AveragePrice = averagePrice(sec.CostBasis, sec.Position)
	return nil
}

// sellUpdateSecurity consumes lots from the head of the FIFO queue: a lot
// smaller than or equal to the remaining sell quantity is removed whole and
// its full cost leaves the basis; a larger lot is shrunk in place and only
// the sold portion's cost leaves the basis. A lot reduced to zero is removed.
func sellUpdateSecurity(txnCtx domain.TransactionContext) error {
	sec := txnCtx.Security
	trade := txnCtx.Trade

	if trade.Quantity.GreaterThan(sec.Position) {
		return fmt.Errorf("%w: sell quantity %s exceeds position %s",
			apperrors.ErrInsufficientPosition, trade.Quantity, sec.Position)
	}

	sellQuantity := trade.Quantity
	costRemoved := decimal.Zero
	lots := sec.FifoLots

	for sellQuantity.IsPositive() && len(lots) > 0 {
		head := lots[0]
		if head.Quantity.LessThanOrEqual(sellQuantity) {
			costRemoved = costRemoved.Add(head.Quantity.Mul(head.Price))
			sellQuantity = sellQuantity.Sub(head.Quantity)
			lots = lots[1:]
		} else {
			costRemoved = costRemoved.Add(sellQuantity.Mul(head.Price))
			lots[0].Quantity = head.Quantity.Sub(sellQuantity)
			sellQuantity = decimal.Zero
		}
	}

	sec.FifoLots = lots
	sec.CostBasis = sec.CostBasis.Sub(costRemoved)
	sec.Position = sec.Position.Sub(trade.Quantity)
	sec.AveragePrice = averagePrice(sec.CostBasis, sec.Position)
	return nil
}

// averagePrice is the break-even price per unit: cost basis over position,
// or zero when the position is flat.
func averagePrice(costBasis, position decimal.Decimal) decimal.Decimal {
	if position.IsZero() {
		return decimal.Zero
	}
	return costBasis.Div(position)
}
