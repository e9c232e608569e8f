package domain

// OperationType is the common key space for dispatching transaction effects:
// trade types and ledger types share it.
type OperationType string

const (
	OpBuy        = OperationType(Buy)
	OpSell       = OperationType(Sell)
	OpDeposit    = OperationType(Deposit)
	OpWithdrawal = OperationType(Withdrawal)
)

// TransactionContext carries exactly the entities one operation needs, so the
// dispatcher can operate over a single uniform shape regardless of movement
// kind. For trades, Security and Trade are set; for ledger movements, Ledger
// is set. Account is always set.
type TransactionContext struct {
	Account  *Account
	Security *Security
	Trade    *Trade
	Ledger   *Ledger
	Type     OperationType
}

// NewTradeContext builds the context for processing one trade.
func NewTradeContext(account *Account, security *Security, trade *Trade) TransactionContext {
	return TransactionContext{
		Account:  account,
		Security: security,
		Trade:    trade,
		Type:     OperationType(trade.Type),
	}
}

// NewLedgerContext builds the context for processing one cash movement.
func NewLedgerContext(account *Account, ledger *Ledger) TransactionContext {
	return TransactionContext{
		Account: account,
		Ledger:  ledger,
		Type:    OperationType(ledger.Type),
	}
}
