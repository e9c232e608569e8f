package services

import (
	"context"

	"github.com/foliotrack/folio_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionProcessorSvc is the transaction engine: it applies the numeric
// effect of one transaction context and persists the mutated entities, and it
// can re-derive an account's entire state by replaying its history.
//
// Both methods run inside a caller-owned pgx.Tx; the caller commits or rolls
// back, so a failed step never leaves partially applied state behind.
type TransactionProcessorSvc interface {
	// ProcessTransaction applies the account effect (and, for trades, the
	// security effect) of one transaction context and persists the mutated
	// entities within tx. Domain validation failures are re-signaled as
	// apperrors.ErrTransactionProcessing carrying the original message.
	ProcessTransaction(ctx context.Context, tx pgx.Tx, txnCtx domain.TransactionContext) error

	// ReprocessTransactions resets the account's buying power and every
	// security's derived state to zero, then replays all trades and ledger
	// entries (except those whose IDs are in exclude) in ascending
	// last-updated order through ProcessTransaction. Any replay failure
	// fails the whole reprocess.
	//
	// The caller supplies the already-loaded, locked account and its
	// securities so the engine mutates the same instances the caller holds.
	ReprocessTransactions(ctx context.Context, tx pgx.Tx, account *domain.Account, securities []*domain.Security, exclude map[string]struct{}) error
}
