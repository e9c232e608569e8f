package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliotrack/folio_backend/internal/apperrors"
	"github.com/foliotrack/folio_backend/internal/core/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestAccount(buyingPower string) *domain.Account {
	return &domain.Account{
		AccountID:   "acc-1",
		UserID:      "user-1",
		Name:        "Test",
		BuyingPower: dec(buyingPower),
	}
}

func newTestSecurity() *domain.Security {
	return &domain.Security{
		SecurityID: "sec-1",
		AccountID:  "acc-1",
		Symbol:     "VTI",
	}
}

func newTestTrade(tradeType domain.TradeType, quantity, price string) *domain.Trade {
	return &domain.Trade{
		TradeID:    "trade-1",
		AccountID:  "acc-1",
		SecurityID: "sec-1",
		Type:       tradeType,
		Quantity:   dec(quantity),
		Price:      dec(price),
	}
}

func applyTrade(t *testing.T, account *domain.Account, security *domain.Security, trade *domain.Trade) error {
	t.Helper()
	txnCtx := domain.NewTradeContext(account, security, trade)
	if err := accountOperations[txnCtx.Type](txnCtx); err != nil {
		return err
	}
	return securityOperations[txnCtx.Type](txnCtx)
}

// assertLotInvariants checks that position and cost basis always equal the
// sums over the open lots.
func assertLotInvariants(t *testing.T, sec *domain.Security) {
	t.Helper()
	lotQuantity := decimal.Zero
	lotCost := decimal.Zero
	for _, lot := range sec.FifoLots {
		lotQuantity = lotQuantity.Add(lot.Quantity)
		lotCost = lotCost.Add(lot.Quantity.Mul(lot.Price))
	}
	assert.True(t, sec.Position.Equal(lotQuantity), "position %s != lot quantity sum %s", sec.Position, lotQuantity)
	assert.True(t, sec.CostBasis.Equal(lotCost), "cost basis %s != lot cost sum %s", sec.CostBasis, lotCost)
}

func TestBuyWithExactFundsSucceeds(t *testing.T) {
	account := newTestAccount("1000")
	security := newTestSecurity()
	trade := newTestTrade(domain.Buy, "10", "100")

	err := applyTrade(t, account, security, trade)
	require.NoError(t, err)

	assert.True(t, account.BuyingPower.IsZero())
	assert.True(t, security.Position.Equal(dec("10")))
	assert.True(t, security.CostBasis.Equal(dec("1000")))
	assert.True(t, security.AveragePrice.Equal(dec("100")))
	assertLotInvariants(t, security)
}

func TestBuyAppendsLotsInOrder(t *testing.T) {
	account := newTestAccount("10000")
	security := newTestSecurity()

	require.NoError(t, applyTrade(t, account, security, newTestTrade(domain.Buy, "10", "100")))
	require.NoError(t, applyTrade(t, account, security, newTestTrade(domain.Buy, "5", "200")))

	assert.True(t, security.Position.Equal(dec("15")))
	assert.True(t, security.CostBasis.Equal(dec("2000")))
	assert.True(t, security.AveragePrice.Round(8).Equal(dec("133.33333333")))

	require.Len(t, security.FifoLots, 2)
	assert.True(t, security.FifoLots[0].Quantity.Equal(dec("10")))
	assert.True(t, security.FifoLots[0].Price.Equal(dec("100")))
	assert.True(t, security.FifoLots[1].Quantity.Equal(dec("5")))
	assert.True(t, security.FifoLots[1].Price.Equal(dec("200")))
	assertLotInvariants(t, security)
}

func TestSellConsumesLotsOldestFirst(t *testing.T) {
	account := newTestAccount("10000")
	security := newTestSecurity()
	require.NoError(t, applyTrade(t, account, security, newTestTrade(domain.Buy, "10", "100")))
	require.NoError(t, applyTrade(t, account, security, newTestTrade(domain.Buy, "5", "200")))

	// Consumes all of lot (10,100) and 2 units of lot (5,200).
	require.NoError(t, applyTrade(t, account, security, newTestTrade(domain.Sell, "12", "300")))

	assert.True(t, security.Position.Equal(dec("3")))
	assert.True(t, security.CostBasis.Equal(dec("600")))
	require.Len(t, security.FifoLots, 1)
	assert.True(t, security.FifoLots[0].Quantity.Equal(dec("3")))
	assert.True(t, security.FifoLots[0].Price.Equal(dec("200")))
	assertLotInvariants(t, security)
}

func TestSellExactOldestLotLeavesNewerLotsUntouched(t *testing.T) {
	account := newTestAccount("10000")
	security := newTestSecurity()
	require.NoError(t, applyTrade(t, account, security, newTestTrade(domain.Buy, "10", "100")))
	require.NoError(t, applyTrade(t, account, security, newTestTrade(domain.Buy, "5", "200")))
	require.NoError(t, applyTrade(t, account, security, newTestTrade(domain.Buy, "7", "300")))

	require.NoError(t, applyTrade(t, account, security, newTestTrade(domain.Sell, "10", "250")))

	require.Len(t, security.FifoLots, 2)
	assert.True(t, security.FifoLots[0].Quantity.Equal(dec("5")))
	assert.True(t, security.FifoLots[0].Price.Equal(dec("200")))
	assert.True(t, security.FifoLots[1].Quantity.Equal(dec("7")))
	assert.True(t, security.FifoLots[1].Price.Equal(dec("300")))
	assertLotInvariants(t, security)
}

func TestSellEntirePositionZeroesAveragePrice(t *testing.T) {
	account := newTestAccount("1000")
	security := newTestSecurity()
	require.NoError(t, applyTrade(t, account, security, newTestTrade(domain.Buy, "10", "100")))

	require.NoError(t, applyTrade(t, account, security, newTestTrade(domain.Sell, "10", "150")))

	assert.True(t, security.Position.IsZero())
	assert.True(t, security.CostBasis.IsZero())
	assert.True(t, security.AveragePrice.IsZero())
	assert.Empty(t, security.FifoLots)
	assert.True(t, account.BuyingPower.Equal(dec("1500")))
}

func TestBuyExceedingBuyingPowerLeavesStateUnchanged(t *testing.T) {
	account := newTestAccount("1000")
	security := newTestSecurity()
	trade := newTestTrade(domain.Buy, "10", "200")

	err := applyTrade(t, account, security, trade)
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	assert.True(t, account.BuyingPower.Equal(dec("1000")))
	assert.True(t, security.Position.IsZero())
	assert.Empty(t, security.FifoLots)
}

func TestSellExceedingPositionFails(t *testing.T) {
	account := newTestAccount("10000")
	security := newTestSecurity()
	require.NoError(t, applyTrade(t, account, security, newTestTrade(domain.Buy, "5", "100")))

	txnCtx := domain.NewTradeContext(account, security, newTestTrade(domain.Sell, "6", "100"))
	err := securityOperations[txnCtx.Type](txnCtx)
	require.ErrorIs(t, err, apperrors.ErrInsufficientPosition)

	assert.True(t, security.Position.Equal(dec("5")))
	require.Len(t, security.FifoLots, 1)
}

func TestDepositCreditsBuyingPower(t *testing.T) {
	account := newTestAccount("100")
	ledger := &domain.Ledger{LedgerID: "led-1", AccountID: "acc-1", Type: domain.Deposit, Amount: dec("400")}

	txnCtx := domain.NewLedgerContext(account, ledger)
	require.NoError(t, accountOperations[txnCtx.Type](txnCtx))

	assert.True(t, account.BuyingPower.Equal(dec("500")))
}

func TestWithdrawalExceedingBuyingPowerFails(t *testing.T) {
	account := newTestAccount("100")
	ledger := &domain.Ledger{LedgerID: "led-1", AccountID: "acc-1", Type: domain.Withdrawal, Amount: dec("150")}

	txnCtx := domain.NewLedgerContext(account, ledger)
	err := accountOperations[txnCtx.Type](txnCtx)
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.True(t, account.BuyingPower.Equal(dec("100")))
}

func TestWithdrawalOfExactBuyingPowerSucceeds(t *testing.T) {
	account := newTestAccount("100")
	ledger := &domain.Ledger{LedgerID: "led-1", AccountID: "acc-1", Type: domain.Withdrawal, Amount: dec("100")}

	txnCtx := domain.NewLedgerContext(account, ledger)
	require.NoError(t, accountOperations[txnCtx.Type](txnCtx))
	assert.True(t, account.BuyingPower.IsZero())
}

func TestAveragePriceZeroWhenFlat(t *testing.T) {
	assert.True(t, averagePrice(decimal.Zero, decimal.Zero).IsZero())
	assert.True(t, averagePrice(dec("600"), dec("3")).Equal(dec("200")))
}
