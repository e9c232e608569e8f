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

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const ledgerColumns = `ledger_id, account_id, type, amount, created_at, created_by, last_updated_at, last_updated_by`

func scanLedger(row pgx.Row) (*domain.Ledger, error) {
	var l domain.Ledger
	err := row.Scan(
		&l.LedgerID,
		&l.AccountID,
		&l.Type,
		&l.Amount,
		&l.CreatedAt,
		&l.CreatedBy,
		&l.LastUpdatedAt,
		&l.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
	}
	return &l, nil
}

// FindLedgerByID retrieves a ledger entry by its ID.
func (r *PgxLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger WHERE ledger_id = $1;`
	return scanLedger(r.Pool.QueryRow(ctx, query, ledgerID))
}

// FindLedgerByAccountID retrieves an account's ledger entries oldest first.
func (r *PgxLedgerRepository) FindLedgerByAccountID(ctx context.Context, accountID string) ([]domain.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger WHERE account_id = $1 ORDER BY created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var entries []domain.Ledger
	for rows.Next() {
		l, err := scanLedger(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading ledger rows: %w", err)
	}
	return entries, nil
}

// SaveLedgerInTx persists a new ledger entry within a transaction.
func (r *PgxLedgerRepository) SaveLedgerInTx(ctx context.Context, tx pgx.Tx, ledger domain.Ledger) error {
	query := `
		INSERT INTO ledger (ledger_id, account_id, type, amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		ledger.LedgerID,
		ledger.AccountID,
		ledger.Type,
		ledger.Amount,
		ledger.CreatedAt,
		ledger.CreatedBy,
		ledger.LastUpdatedAt,
		ledger.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save ledger entry %s: %w", ledger.LedgerID, err)
	}
	return nil
}

// DeleteLedgerInTx removes a ledger entry within a transaction.
func (r *PgxLedgerRepository) DeleteLedgerInTx(ctx context.Context, tx pgx.Tx, ledgerID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM ledger WHERE ledger_id = $1;`, ledgerID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry %s: %w", ledgerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
