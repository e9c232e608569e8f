package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/foliotrack/folio_backend/internal/apperrors"
	"github.com/foliotrack/folio_backend/internal/core/domain"
	"github.com/foliotrack/folio_backend/internal/core/services"
	portssvc "github.com/foliotrack/folio_backend/internal/core/ports/services"
	"github.com/foliotrack/folio_backend/internal/dto"
)

type TradeServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockSecurityRepo *MockSecurityRepository
	mockTradeRepo    *MockTradeRepository
	mockLedgerRepo   *MockLedgerRepository
	service          portssvc.TradeSvcFacade
}

func (suite *TradeServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockSecurityRepo = new(MockSecurityRepository)
	suite.mockTradeRepo = new(MockTradeRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	txnProcessor := services.NewTransactionService(
		suite.mockAccountRepo, suite.mockSecurityRepo, suite.mockTradeRepo, suite.mockLedgerRepo)
	suite.service = services.NewTradeService(
		suite.mockAccountRepo, suite.mockSecurityRepo, suite.mockTradeRepo, txnProcessor)
}

func (suite *TradeServiceTestSuite) TestCreateTradeRejectsNonPositiveInputs() {
	ctx := context.Background()

	_, err := suite.service.CreateTrade(ctx, "acc-1", dto.CreateTradeRequest{
		SecurityID: "sec-1", Type: domain.Buy, Quantity: mustDec("0"), Price: mustDec("100"),
	}, "user-1")
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.CreateTrade(ctx, "acc-1", dto.CreateTradeRequest{
		SecurityID: "sec-1", Type: domain.Buy, Quantity: mustDec("1"), Price: mustDec("-10"),
	}, "user-1")
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TradeServiceTestSuite) TestCreateTradeRejectsForeignSecurity() {
	ctx := context.Background()
	account := &domain.Account{AccountID: "acc-1", UserID: "user-1", BuyingPower: mustDec("1000")}

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(account, nil).Once()
	suite.mockAccountRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, "acc-1").Return(account, nil).Once()
	suite.mockSecurityRepo.On("FindSecurityByID", ctx, "sec-other").
		Return(&domain.Security{SecurityID: "sec-other", AccountID: "acc-2"}, nil).Once()

	_, err := suite.service.CreateTrade(ctx, "acc-1", dto.CreateTradeRequest{
		SecurityID: "sec-other", Type: domain.Buy, Quantity: mustDec("1"), Price: mustDec("10"),
	}, "user-1")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockTradeRepo.AssertNotCalled(suite.T(), "SaveTradeInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TradeServiceTestSuite) TestCreateTradeCommitsAtomically() {
	ctx := context.Background()
	account := &domain.Account{AccountID: "acc-1", UserID: "user-1", BuyingPower: mustDec("1000")}
	security := &domain.Security{SecurityID: "sec-1", AccountID: "acc-1", Symbol: "VTI"}

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(account, nil).Once()
	suite.mockAccountRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, "acc-1").Return(account, nil).Once()
	suite.mockSecurityRepo.On("FindSecurityByID", ctx, "sec-1").Return(security, nil).Once()
	suite.mockAccountRepo.On("UpdateAccountInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Account")).Return(nil).Once()
	suite.mockSecurityRepo.On("UpdateSecurityInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Security")).Return(nil).Once()
	suite.mockTradeRepo.On("SaveTradeInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Trade")).Return(nil).Once()
	suite.mockAccountRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockAccountRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	trade, err := suite.service.CreateTrade(ctx, "acc-1", dto.CreateTradeRequest{
		SecurityID: "sec-1", Type: domain.Buy, Quantity: mustDec("4"), Price: mustDec("100"),
	}, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(trade)
	suite.NotEmpty(trade.TradeID)
	suite.Equal("user-1", trade.CreatedBy)
	suite.True(account.BuyingPower.Equal(mustDec("600")))
	suite.True(security.Position.Equal(mustDec("4")))
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTradeRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestCreateTradeRejectedWhenProcessingFails() {
	ctx := context.Background()
	account := &domain.Account{AccountID: "acc-1", UserID: "user-1", BuyingPower: mustDec("100")}
	security := &domain.Security{SecurityID: "sec-1", AccountID: "acc-1", Symbol: "VTI"}

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(account, nil).Once()
	suite.mockAccountRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, "acc-1").Return(account, nil).Once()
	suite.mockSecurityRepo.On("FindSecurityByID", ctx, "sec-1").Return(security, nil).Once()

	_, err := suite.service.CreateTrade(ctx, "acc-1", dto.CreateTradeRequest{
		SecurityID: "sec-1", Type: domain.Buy, Quantity: mustDec("10"), Price: mustDec("200"),
	}, "user-1")

	suite.Require().ErrorIs(err, apperrors.ErrTransactionProcessing)
	suite.mockTradeRepo.AssertNotCalled(suite.T(), "SaveTradeInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *TradeServiceTestSuite) TestDeleteTradeReplaysWithoutIt() {
	ctx := context.Background()
	account := &domain.Account{AccountID: "acc-1", UserID: "user-1", BuyingPower: mustDec("0")}
	trade := &domain.Trade{TradeID: "trade-buy", AccountID: "acc-1", SecurityID: "sec-1", Type: domain.Buy, Quantity: mustDec("10"), Price: mustDec("100")}

	suite.mockTradeRepo.On("FindTradeByID", ctx, "trade-buy").Return(trade, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(account, nil).Once()
	suite.mockAccountRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, "acc-1").Return(account, nil).Once()
	suite.mockSecurityRepo.On("FindSecuritiesByAccountID", ctx, "acc-1").
		Return([]domain.Security{{SecurityID: "sec-1", AccountID: "acc-1", Symbol: "VTI"}}, nil).Once()
	suite.mockTradeRepo.On("FindTradesByAccountID", mock.Anything, "acc-1").
		Return([]domain.Trade{*trade}, nil).Once()
	suite.mockLedgerRepo.On("FindLedgerByAccountID", mock.Anything, "acc-1").
		Return([]domain.Ledger{{LedgerID: "led-1", AccountID: "acc-1", Type: domain.Deposit, Amount: mustDec("1000")}}, nil).Once()
	suite.mockAccountRepo.On("UpdateAccountInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Account")).Return(nil)
	suite.mockSecurityRepo.On("UpdateSecurityInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Security")).Return(nil)
	suite.mockTradeRepo.On("DeleteTradeInTx", ctx, mock.Anything, "trade-buy").Return(nil).Once()
	suite.mockAccountRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockAccountRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	err := suite.service.DeleteTrade(ctx, "trade-buy", "user-1")

	suite.Require().NoError(err)
	// Only the deposit survives the replay.
	suite.True(account.BuyingPower.Equal(mustDec("1000")))
	suite.mockTradeRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestDeleteTradeForbiddenForOtherUser() {
	ctx := context.Background()
	trade := &domain.Trade{TradeID: "trade-1", AccountID: "acc-1"}

	suite.mockTradeRepo.On("FindTradeByID", ctx, "trade-1").Return(trade, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").
		Return(&domain.Account{AccountID: "acc-1", UserID: "someone-else"}, nil).Once()

	err := suite.service.DeleteTrade(ctx, "trade-1", "user-1")

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTradeRepo.AssertNotCalled(suite.T(), "DeleteTradeInTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestTradeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TradeServiceTestSuite))
}
