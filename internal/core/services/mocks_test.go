package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/foliotrack/folio_backend/internal/core/domain"
)

// MockAccountRepository is a mock type for the AccountRepositoryWithTx interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUserID(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

// MockSecurityRepository is a mock type for the SecurityRepositoryWithTx interface
type MockSecurityRepository struct {
	mock.Mock
}

func (m *MockSecurityRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockSecurityRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSecurityRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSecurityRepository) SaveSecurity(ctx context.Context, security domain.Security) error {
	args := m.Called(ctx, security)
	return args.Error(0)
}

func (m *MockSecurityRepository) UpdateSecurity(ctx context.Context, security domain.Security) error {
	args := m.Called(ctx, security)
	return args.Error(0)
}

func (m *MockSecurityRepository) UpdateLatestPrice(ctx context.Context, securityID string, price decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, securityID, price, now)
	return args.Error(0)
}

func (m *MockSecurityRepository) FindSecurityByID(ctx context.Context, securityID string) (*domain.Security, error) {
	args := m.Called(ctx, securityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Security), args.Error(1)
}

func (m *MockSecurityRepository) FindSecuritiesByAccountID(ctx context.Context, accountID string) ([]domain.Security, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Security), args.Error(1)
}

func (m *MockSecurityRepository) ListAllSecurities(ctx context.Context) ([]domain.Security, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Security), args.Error(1)
}

func (m *MockSecurityRepository) UpdateSecurityInTx(ctx context.Context, tx pgx.Tx, security domain.Security) error {
	args := m.Called(ctx, tx, security)
	return args.Error(0)
}

func (m *MockSecurityRepository) DeleteSecurityInTx(ctx context.Context, tx pgx.Tx, securityID string) error {
	args := m.Called(ctx, tx, securityID)
	return args.Error(0)
}

// MockTradeRepository is a mock type for the TradeRepositoryWithTx interface
type MockTradeRepository struct {
	mock.Mock
}

func (m *MockTradeRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTradeRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTradeRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTradeRepository) FindTradeByID(ctx context.Context, tradeID string) (*domain.Trade, error) {
	args := m.Called(ctx, tradeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradeRepository) FindTradesByAccountID(ctx context.Context, accountID string) ([]domain.Trade, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Trade), args.Error(1)
}

func (m *MockTradeRepository) FindTradesBySecurityID(ctx context.Context, securityID string) ([]domain.Trade, error) {
	args := m.Called(ctx, securityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Trade), args.Error(1)
}

func (m *MockTradeRepository) SaveTradeInTx(ctx context.Context, tx pgx.Tx, trade domain.Trade) error {
	args := m.Called(ctx, tx, trade)
	return args.Error(0)
}

func (m *MockTradeRepository) DeleteTradeInTx(ctx context.Context, tx pgx.Tx, tradeID string) error {
	args := m.Called(ctx, tx, tradeID)
	return args.Error(0)
}

// MockLedgerRepository is a mock type for the LedgerRepositoryWithTx interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockLedgerRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) FindLedgerByAccountID(ctx context.Context, accountID string) ([]domain.Ledger, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) SaveLedgerInTx(ctx context.Context, tx pgx.Tx, ledger domain.Ledger) error {
	args := m.Called(ctx, tx, ledger)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteLedgerInTx(ctx context.Context, tx pgx.Tx, ledgerID string) error {
	args := m.Called(ctx, tx, ledgerID)
	return args.Error(0)
}

// MockMarketData is a mock type for the MarketDataSvcFacade interface
type MockMarketData struct {
	mock.Mock
}

func (m *MockMarketData) FetchPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, symbols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}
