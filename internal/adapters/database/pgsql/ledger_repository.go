package pgsql

import (
	"context"
	"errors"
	"strings"

	"github.com/SscSPs/staff_ledger_app/internal/apperrors"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/staff_ledger_app/internal/models"
	"github.com/SscSPs/staff_ledger_app/internal/utils/mapping"
	"github.com/SscSPs/staff_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const ledgerEntryColumns = `entry_id, ledger_id, seq, entry_date, entry_type, amount, description, category,
		employee_id, employee_name, qid_number, customer_id, created_by, created_at`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for the shared ledger.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func scanLedgerEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.LedgerID,
		&m.Seq,
		&m.EntryDate,
		&m.EntryType,
		&m.Amount,
		&m.Description,
		&m.Category,
		&m.EmployeeID,
		&m.EmployeeName,
		&m.QIDNumber,
		&m.CustomerID,
		&m.CreatedBy,
		&m.CreatedAt,
	)
	return m, err
}

// appendEntryTx inserts the entry and moves the stored balance by its signed amount inside tx.
// Every write path that produces a ledger entry goes through here.
func appendEntryTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	m := mapping.ToModelLedgerEntry(entry)
	insertQuery := `
		INSERT INTO ledger_entries (
			entry_id, ledger_id, entry_date, entry_type, amount, description, category,
			employee_id, employee_name, qid_number, customer_id, created_by, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING seq;
	`
	err := tx.QueryRow(ctx, insertQuery,
		m.EntryID,
		m.LedgerID,
		m.EntryDate,
		m.EntryType,
		m.Amount,
		m.Description,
		m.Category,
		m.EmployeeID,
		m.EmployeeName,
		m.QIDNumber,
		m.CustomerID,
		m.CreatedBy,
		m.CreatedAt,
	).Scan(&m.Seq)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert ledger entry "+m.EntryID, err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE ledgers
		SET balance = balance + $1, entry_count = entry_count + 1, last_updated_at = $2
		WHERE ledger_id = $3;
	`, entry.SignedAmount(), m.CreatedAt, m.LedgerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update balance of ledger "+m.LedgerID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NewNotFoundError("ledger " + m.LedgerID)
	}

	saved := mapping.ToDomainLedgerEntry(m)
	return &saved, nil
}

// AppendEntry inserts a free-standing ledger entry and updates the balance in one transaction.
func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	saved, err := appendEntryTx(ctx, tx, entry)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return saved, nil
}

// GetLedger retrieves the ledger document.
func (r *PgxLedgerRepository) GetLedger(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	query := `
		SELECT ledger_id, balance, entry_count, created_at, last_updated_at
		FROM ledgers
		WHERE ledger_id = $1;
	`
	var m models.Ledger
	err := r.Pool.QueryRow(ctx, query, ledgerID).Scan(
		&m.LedgerID,
		&m.Balance,
		&m.EntryCount,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger "+ledgerID, err)
	}
	ledger := mapping.ToDomainLedger(m)
	return &ledger, nil
}

// ListEntries retrieves a page of entries using token-based pagination.
// Ordering is entry_date DESC with seq ASC as the tie-breaker, so same-day entries keep insertion order.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, ledgerID string, filter portsrepo.LedgerEntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	args := queryArgs{}
	where := []string{"ledger_id = " + args.add(ledgerID)}
	if filter.Category != nil {
		where = append(where, "category = "+args.add(string(*filter.Category)))
	}
	if filter.EmployeeID != nil {
		where = append(where, "employee_id = "+args.add(*filter.EmployeeID))
	}
	if filter.Since != nil {
		where = append(where, "entry_date >= "+args.add(*filter.Since))
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastSeq, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		d := args.add(lastDate)
		s := args.add(lastSeq)
		where = append(where, "(entry_date < "+d+" OR (entry_date = "+d+" AND seq > "+s+"))")
	}

	query := "SELECT " + ledgerEntryColumns + " FROM ledger_entries WHERE " + strings.Join(where, " AND ") +
		" ORDER BY entry_date DESC, seq ASC LIMIT " + args.add(fetchLimit) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries of ledger "+ledgerID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanLedgerEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger entry row", scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.Seq)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	return mapping.ToDomainLedgerEntrySlice(results), nextTokenVal, nil
}

// ListAllEntries returns every entry of the ledger in insertion order.
func (r *PgxLedgerRepository) ListAllEntries(ctx context.Context, ledgerID string) ([]domain.LedgerEntry, error) {
	query := "SELECT " + ledgerEntryColumns + " FROM ledger_entries WHERE ledger_id = $1 ORDER BY seq ASC;"
	rows, err := r.Pool.Query(ctx, query, ledgerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries of ledger "+ledgerID, err)
	}
	defer rows.Close()

	modelEntries := []models.LedgerEntry{}
	for rows.Next() {
		m, scanErr := scanLedgerEntry(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return mapping.ToDomainLedgerEntrySlice(modelEntries), nil
}

// ResetBalance overwrites the stored balance and records the audit event atomically.
// The update only applies while entry_count still matches what the balance was derived from.
func (r *PgxLedgerRepository) ResetBalance(ctx context.Context, ledgerID string, balance decimal.Decimal, expectedEntryCount int64, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE ledgers SET balance = $1, last_updated_at = $2 WHERE ledger_id = $3 AND entry_count = $4;
	`, balance, audit.CreatedAt, ledgerID, expectedEntryCount)
	if err != nil {
		return apperrors.NewAppError(500, "failed to reset balance of ledger "+ledgerID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM ledgers WHERE ledger_id = $1);", ledgerID).Scan(&exists); err != nil {
			return apperrors.NewAppError(500, "failed to check ledger "+ledgerID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.NewConflictError("ledger " + ledgerID + " changed during reconciliation, retry")
	}
	if err := insertAuditTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
