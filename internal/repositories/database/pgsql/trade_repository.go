package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foliotrack/folio_backend/internal/apperrors"
	"github.com/foliotrack/folio_backend/internal/core/domain"
	portsrepo "github.com/foliotrack/folio_backend/internal/core/ports/repositories"
)

type PgxTradeRepository struct {
	BaseRepository
}

// newPgxTradeRepository creates a new repository for trade data.
func newPgxTradeRepository(pool *pgxpool.Pool) portsrepo.TradeRepositoryWithTx {
	return &PgxTradeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TradeRepositoryWithTx = (*PgxTradeRepository)(nil)

const tradeColumns = `trade_id, account_id, security_id, type, quantity, price, created_at, created_by, last_updated_at, last_updated_by`

func scanTrade(row pgx.Row) (*domain.Trade, error) {
	var t domain.Trade
	err := row.Scan(
		&t.TradeID,
		&t.AccountID,
		&t.SecurityID,
		&t.Type,
		&t.Quantity,
		&t.Price,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan trade: %w", err)
	}
	return &t, nil
}

func collectTrades(rows pgx.Rows) ([]domain.Trade, error) {
	var trades []domain.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading trade rows: %w", err)
	}
	return trades, nil
}

// FindTradeByID retrieves a trade by its ID.
func (r *PgxTradeRepository) FindTradeByID(ctx context.Context, tradeID string) (*domain.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE trade_id = $1;`
	return scanTrade(r.Pool.QueryRow(ctx, query, tradeID))
}

// FindTradesByAccountID retrieves an account's trades oldest first.
func (r *PgxTradeRepository) FindTradesByAccountID(ctx context.Context, accountID string) ([]domain.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE account_id = $1 ORDER BY created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades for account %s: %w", accountID, err)
	}
	defer rows.Close()
	return collectTrades(rows)
}

// FindTradesBySecurityID retrieves all trades referencing a security.
func (r *PgxTradeRepository) FindTradesBySecurityID(ctx context.Context, securityID string) ([]domain.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE security_id = $1 ORDER BY created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, securityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades for security %s: %w", securityID, err)
	}
	defer rows.Close()
	return collectTrades(rows)
}

// SaveTradeInTx persists a new trade within a transaction.
func (r *PgxTradeRepository) SaveTradeInTx(ctx context.Context, tx pgx.Tx, trade domain.Trade) error {
	query := `
		INSERT INTO trades (trade_id, account_id, security_id, type, quantity, price, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		trade.TradeID,
		trade.AccountID,
		trade.SecurityID,
		trade.Type,
		trade.Quantity,
		trade.Price,
		trade.CreatedAt,
		trade.CreatedBy,
		trade.LastUpdatedAt,
		trade.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save trade %s: %w", trade.TradeID, err)
	}
	return nil
}

// DeleteTradeInTx removes a trade within a transaction.
func (r *PgxTradeRepository) DeleteTradeInTx(ctx context.Context, tx pgx.Tx, tradeID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM trades WHERE trade_id = $1;`, tradeID)
	if err != nil {
		return fmt.Errorf("failed to delete trade %s: %w", tradeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
