package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/foliotrack/folio_backend/internal/apperrors"
	"github.com/foliotrack/folio_backend/internal/core/domain"
	"github.com/foliotrack/folio_backend/internal/core/services"
	portssvc "github.com/foliotrack/folio_backend/internal/core/ports/services"
)

func mustDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type TransactionServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockSecurityRepo *MockSecurityRepository
	mockTradeRepo    *MockTradeRepository
	mockLedgerRepo   *MockLedgerRepository
	service          portssvc.TransactionProcessorSvc
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockSecurityRepo = new(MockSecurityRepository)
	suite.mockTradeRepo = new(MockTradeRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewTransactionService(
		suite.mockAccountRepo,
		suite.mockSecurityRepo,
		suite.mockTradeRepo,
		suite.mockLedgerRepo,
	)
}

func (suite *TransactionServiceTestSuite) TestProcessBuyPersistsAccountAndSecurity() {
	ctx := context.Background()
	account := &domain.Account{AccountID: "acc-1", UserID: "user-1", BuyingPower: mustDec("1000")}
	security := &domain.Security{SecurityID: "sec-1", AccountID: "acc-1", Symbol: "VTI"}
	trade := &domain.Trade{TradeID: "trade-1", AccountID: "acc-1", SecurityID: "sec-1", Type: domain.Buy, Quantity: mustDec("4"), Price: mustDec("100")}

	suite.mockAccountRepo.On("UpdateAccountInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Account")).Return(nil).Once()
	suite.mockSecurityRepo.On("UpdateSecurityInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Security")).Return(nil).Once()

	err := suite.service.ProcessTransaction(ctx, nil, domain.NewTradeContext(account, security, trade))

	suite.Require().NoError(err)
	suite.True(account.BuyingPower.Equal(mustDec("600")))
	suite.True(security.Position.Equal(mustDec("4")))
	suite.True(security.CostBasis.Equal(mustDec("400")))
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockSecurityRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestProcessDepositPersistsOnlyAccount() {
	ctx := context.Background()
	account := &domain.Account{AccountID: "acc-1", BuyingPower: mustDec("0")}
	ledger := &domain.Ledger{LedgerID: "led-1", AccountID: "acc-1", Type: domain.Deposit, Amount: mustDec("250")}

	suite.mockAccountRepo.On("UpdateAccountInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	err := suite.service.ProcessTransaction(ctx, nil, domain.NewLedgerContext(account, ledger))

	suite.Require().NoError(err)
	suite.True(account.BuyingPower.Equal(mustDec("250")))
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockSecurityRepo.AssertNotCalled(suite.T(), "UpdateSecurityInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestProcessFailureSignalsUniformError() {
	ctx := context.Background()
	account := &domain.Account{AccountID: "acc-1", BuyingPower: mustDec("100")}
	security := &domain.Security{SecurityID: "sec-1", AccountID: "acc-1"}
	trade := &domain.Trade{TradeID: "trade-1", SecurityID: "sec-1", Type: domain.Buy, Quantity: mustDec("10"), Price: mustDec("200")}

	err := suite.service.ProcessTransaction(ctx, nil, domain.NewTradeContext(account, security, trade))

	suite.Require().ErrorIs(err, apperrors.ErrTransactionProcessing)
	suite.True(account.BuyingPower.Equal(mustDec("100")))
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestProcessUnknownTypeFails() {
	ctx := context.Background()
	account := &domain.Account{AccountID: "acc-1"}
	txnCtx := domain.TransactionContext{Account: account, Type: domain.OperationType("SPLIT")}

	err := suite.service.ProcessTransaction(ctx, nil, txnCtx)
	suite.Require().Error(err)
}

// testHistory is a deposit, a buy, a sell and a withdrawal, in timestamp
// order. The end state after applying all four is buying_power=1250,
// position=5, cost_basis=500.
func (suite *TransactionServiceTestSuite) testHistory() ([]domain.Trade, []domain.Ledger) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	trades := []domain.Trade{
		{
			TradeID: "trade-buy", AccountID: "acc-1", SecurityID: "sec-1",
			Type: domain.Buy, Quantity: mustDec("10"), Price: mustDec("100"),
			AuditFields: domain.AuditFields{LastUpdatedAt: base.Add(1 * time.Hour)},
		},
		{
			TradeID: "trade-sell", AccountID: "acc-1", SecurityID: "sec-1",
			Type: domain.Sell, Quantity: mustDec("5"), Price: mustDec("150"),
			AuditFields: domain.AuditFields{LastUpdatedAt: base.Add(2 * time.Hour)},
		},
	}
	ledger := []domain.Ledger{
		{
			LedgerID: "led-deposit", AccountID: "acc-1",
			Type: domain.Deposit, Amount: mustDec("2000"),
			AuditFields: domain.AuditFields{LastUpdatedAt: base},
		},
		{
			LedgerID: "led-withdrawal", AccountID: "acc-1",
			Type: domain.Withdrawal, Amount: mustDec("500"),
			AuditFields: domain.AuditFields{LastUpdatedAt: base.Add(3 * time.Hour)},
		},
	}
	return trades, ledger
}

func (suite *TransactionServiceTestSuite) expectHistory() {
	trades, ledger := suite.testHistory()
	suite.mockTradeRepo.On("FindTradesByAccountID", mock.Anything, "acc-1").Return(trades, nil).Once()
	suite.mockLedgerRepo.On("FindLedgerByAccountID", mock.Anything, "acc-1").Return(ledger, nil).Once()
	suite.mockAccountRepo.On("UpdateAccountInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Account")).Return(nil)
	suite.mockSecurityRepo.On("UpdateSecurityInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Security")).Return(nil)
}

func (suite *TransactionServiceTestSuite) TestReprocessReproducesEndState() {
	ctx := context.Background()
	suite.expectHistory()

	// State carried over from before the replay is deliberately wrong; the
	// replay must rebuild it from scratch.
	account := &domain.Account{AccountID: "acc-1", BuyingPower: mustDec("99999")}
	security := &domain.Security{
		SecurityID: "sec-1", AccountID: "acc-1", Symbol: "VTI",
		Position: mustDec("42"), CostBasis: mustDec("9000"), AveragePrice: mustDec("3"),
		FifoLots: []domain.Lot{{Quantity: mustDec("42"), Price: mustDec("1")}},
	}

	err := suite.service.ReprocessTransactions(ctx, nil, account, []*domain.Security{security}, nil)

	suite.Require().NoError(err)
	suite.True(account.BuyingPower.Equal(mustDec("1250")), "got %s", account.BuyingPower)
	suite.True(security.Position.Equal(mustDec("5")))
	suite.True(security.CostBasis.Equal(mustDec("500")))
	suite.True(security.AveragePrice.Equal(mustDec("100")))
	suite.Require().Len(security.FifoLots, 1)
	suite.True(security.FifoLots[0].Quantity.Equal(mustDec("5")))
	suite.True(security.FifoLots[0].Price.Equal(mustDec("100")))
}

func (suite *TransactionServiceTestSuite) TestReprocessExcludingSellKeepsFullPosition() {
	ctx := context.Background()
	suite.expectHistory()

	account := &domain.Account{AccountID: "acc-1"}
	security := &domain.Security{SecurityID: "sec-1", AccountID: "acc-1", Symbol: "VTI"}

	exclude := map[string]struct{}{"trade-sell": {}}
	err := suite.service.ReprocessTransactions(ctx, nil, account, []*domain.Security{security}, exclude)

	suite.Require().NoError(err)
	// 2000 deposit - 1000 buy - 500 withdrawal
	suite.True(account.BuyingPower.Equal(mustDec("500")))
	suite.True(security.Position.Equal(mustDec("10")))
	suite.True(security.CostBasis.Equal(mustDec("1000")))
}

func (suite *TransactionServiceTestSuite) TestReprocessExcludingDepositRejectsReplay() {
	ctx := context.Background()
	trades, ledger := suite.testHistory()
	suite.mockTradeRepo.On("FindTradesByAccountID", mock.Anything, "acc-1").Return(trades, nil).Once()
	suite.mockLedgerRepo.On("FindLedgerByAccountID", mock.Anything, "acc-1").Return(ledger, nil).Once()

	account := &domain.Account{AccountID: "acc-1", BuyingPower: mustDec("1000")}
	security := &domain.Security{SecurityID: "sec-1", AccountID: "acc-1", Symbol: "VTI"}

	// Without the deposit, the buy has no funds to draw on.
	exclude := map[string]struct{}{"led-deposit": {}}
	err := suite.service.ReprocessTransactions(ctx, nil, account, []*domain.Security{security}, exclude)

	suite.Require().ErrorIs(err, apperrors.ErrTransactionProcessing)
}

func (suite *TransactionServiceTestSuite) TestReprocessFullyExcludedStillPersistsResetState() {
	ctx := context.Background()
	trades, ledger := suite.testHistory()
	suite.mockTradeRepo.On("FindTradesByAccountID", mock.Anything, "acc-1").Return(trades, nil).Once()
	suite.mockLedgerRepo.On("FindLedgerByAccountID", mock.Anything, "acc-1").Return(ledger, nil).Once()
	suite.mockAccountRepo.On("UpdateAccountInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Account")).Return(nil)
	suite.mockSecurityRepo.On("UpdateSecurityInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Security")).Return(nil)

	account := &domain.Account{AccountID: "acc-1", BuyingPower: mustDec("1250")}
	security := &domain.Security{
		SecurityID: "sec-1", AccountID: "acc-1", Symbol: "VTI",
		Position: mustDec("5"), CostBasis: mustDec("500"),
	}

	exclude := map[string]struct{}{
		"trade-buy": {}, "trade-sell": {}, "led-deposit": {}, "led-withdrawal": {},
	}
	err := suite.service.ReprocessTransactions(ctx, nil, account, []*domain.Security{security}, exclude)

	suite.Require().NoError(err)
	suite.True(account.BuyingPower.IsZero())
	suite.True(security.Position.IsZero())
	suite.True(security.CostBasis.IsZero())
	suite.Empty(security.FifoLots)
	suite.mockSecurityRepo.AssertCalled(suite.T(), "UpdateSecurityInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Security"))
}

func (suite *TransactionServiceTestSuite) TestReprocessTradeWithoutLoadedSecurityFails() {
	ctx := context.Background()
	trades, ledger := suite.testHistory()
	suite.mockTradeRepo.On("FindTradesByAccountID", mock.Anything, "acc-1").Return(trades, nil).Once()
	suite.mockLedgerRepo.On("FindLedgerByAccountID", mock.Anything, "acc-1").Return(ledger, nil).Once()
	suite.mockAccountRepo.On("UpdateAccountInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Account")).Return(nil)

	account := &domain.Account{AccountID: "acc-1"}

	err := suite.service.ReprocessTransactions(ctx, nil, account, nil, nil)
	suite.Require().Error(err)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
