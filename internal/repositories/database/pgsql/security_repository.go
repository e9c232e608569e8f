package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/foliotrack/folio_backend/internal/apperrors"
	"github.com/foliotrack/folio_backend/internal/core/domain"
	portsrepo "github.com/foliotrack/folio_backend/internal/core/ports/repositories"
)

type PgxSecurityRepository struct {
	BaseRepository
}

// newPgxSecurityRepository creates a new repository for security data.
func newPgxSecurityRepository(pool *pgxpool.Pool) portsrepo.SecurityRepositoryWithTx {
	return &PgxSecurityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SecurityRepositoryWithTx = (*PgxSecurityRepository)(nil)

const securityColumns = `security_id, account_id, symbol, name, target_allocation, position, cost_basis, average_price, latest_price, fifo_lots, created_at, created_by, last_updated_at, last_updated_by`

// marshalLots serializes the FIFO lot queue for the JSONB column. An empty
// queue is stored as [] rather than NULL.
func marshalLots(lots []domain.Lot) ([]byte, error) {
	if lots == nil {
		lots = []domain.Lot{}
	}
	data, err := json.Marshal(lots)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal fifo lots: %w", err)
	}
	return data, nil
}

func scanSecurity(row pgx.Row) (*domain.Security, error) {
	var sec domain.Security
	var lotsJSON []byte
	err := row.Scan(
		&sec.SecurityID,
		&sec.AccountID,
		&sec.Symbol,
		&sec.Name,
		&sec.TargetAllocation,
		&sec.Position,
		&sec.CostBasis,
		&sec.AveragePrice,
		&sec.LatestPrice,
		&lotsJSON,
		&sec.CreatedAt,
		&sec.CreatedBy,
		&sec.LastUpdatedAt,
		&sec.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan security: %w", err)
	}
	if len(lotsJSON) > 0 {
		if err := json.Unmarshal(lotsJSON, &sec.FifoLots); err != nil {
			return nil, fmt.Errorf("failed to unmarshal fifo lots for security %s: %w", sec.SecurityID, err)
		}
	}
	return &sec, nil
}

// SaveSecurity inserts a new security.
func (r *PgxSecurityRepository) SaveSecurity(ctx context.Context, security domain.Security) error {
	lots, err := marshalLots(security.FifoLots)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO securities (security_id, account_id, symbol, name, target_allocation, position, cost_basis, average_price, latest_price, fifo_lots, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = r.Pool.Exec(ctx, query,
		security.SecurityID,
		security.AccountID,
		security.Symbol,
		security.Name,
		security.TargetAllocation,
		security.Position,
		security.CostBasis,
		security.AveragePrice,
		security.LatestPrice,
		lots,
		security.CreatedAt,
		security.CreatedBy,
		security.LastUpdatedAt,
		security.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: security %s already exists on this account", apperrors.ErrDuplicate, security.Symbol)
		}
		return fmt.Errorf("failed to save security %s: %w", security.SecurityID, err)
	}
	return nil
}

// FindSecurityByID retrieves a security by its ID.
func (r *PgxSecurityRepository) FindSecurityByID(ctx context.Context, securityID string) (*domain.Security, error) {
	query := `SELECT ` + securityColumns + ` FROM securities WHERE security_id = $1;`
	return scanSecurity(r.Pool.QueryRow(ctx, query, securityID))
}

// FindSecuritiesByAccountID retrieves an account's securities in insertion order.
func (r *PgxSecurityRepository) FindSecuritiesByAccountID(ctx context.Context, accountID string) ([]domain.Security, error) {
	query := `SELECT ` + securityColumns + ` FROM securities WHERE account_id = $1 ORDER BY created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list securities for account %s: %w", accountID, err)
	}
	defer rows.Close()
	return collectSecurities(rows)
}

// ListAllSecurities retrieves every security across all accounts.
func (r *PgxSecurityRepository) ListAllSecurities(ctx context.Context) ([]domain.Security, error) {
	query := `SELECT ` + securityColumns + ` FROM securities ORDER BY created_at ASC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list securities: %w", err)
	}
	defer rows.Close()
	return collectSecurities(rows)
}

func collectSecurities(rows pgx.Rows) ([]domain.Security, error) {
	var securities []domain.Security
	for rows.Next() {
		sec, err := scanSecurity(rows)
		if err != nil {
			return nil, err
		}
		securities = append(securities, *sec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading security rows: %w", err)
	}
	return securities, nil
}

// UpdateSecurity updates a security's details and derived state.
func (r *PgxSecurityRepository) UpdateSecurity(ctx context.Context, security domain.Security) error {
	lots, err := marshalLots(security.FifoLots)
	if err != nil {
		return err
	}

	query := `
		UPDATE securities
		SET symbol = $2, name = $3, target_allocation = $4, position = $5, cost_basis = $6, average_price = $7, latest_price = $8, fifo_lots = $9, last_updated_at = $10, last_updated_by = $11
		WHERE security_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		security.SecurityID,
		security.Symbol,
		security.Name,
		security.TargetAllocation,
		security.Position,
		security.CostBasis,
		security.AveragePrice,
		security.LatestPrice,
		lots,
		security.LastUpdatedAt,
		security.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update security %s: %w", security.SecurityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateLatestPrice stores a freshly fetched market price.
func (r *PgxSecurityRepository) UpdateLatestPrice(ctx context.Context, securityID string, price decimal.Decimal, now time.Time) error {
	query := `UPDATE securities SET latest_price = $2, last_updated_at = $3 WHERE security_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, securityID, price, now)
	if err != nil {
		return fmt.Errorf("failed to update latest price for security %s: %w", securityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateSecurityInTx persists a security's derived state within a transaction.
func (r *PgxSecurityRepository) UpdateSecurityInTx(ctx context.Context, tx pgx.Tx, security domain.Security) error {
	lots, err := marshalLots(security.FifoLots)
	if err != nil {
		return err
	}

	query := `
		UPDATE securities
		SET position = $2, cost_basis = $3, average_price = $4, fifo_lots = $5, last_updated_at = $6, last_updated_by = $7
		WHERE security_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		security.SecurityID,
		security.Position,
		security.CostBasis,
		security.AveragePrice,
		lots,
		security.LastUpdatedAt,
		security.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update security %s in tx: %w", security.SecurityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSecurityInTx removes a security within a transaction; trades cascade.
func (r *PgxSecurityRepository) DeleteSecurityInTx(ctx context.Context, tx pgx.Tx, securityID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM securities WHERE security_id = $1;`, securityID)
	if err != nil {
		return fmt.Errorf("failed to delete security %s: %w", securityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
