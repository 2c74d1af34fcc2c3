package pgsql

import (
	"context"
	"strings"

	"github.com/SscSPs/staff_ledger_app/internal/apperrors"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/staff_ledger_app/internal/models"
	"github.com/SscSPs/staff_ledger_app/internal/utils/mapping"
	"github.com/SscSPs/staff_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// insertAuditTx writes the audit record inside the transaction of the mutation it describes.
func insertAuditTx(ctx context.Context, tx pgx.Tx, audit domain.AuditRecord) error {
	m, err := mapping.ToModelAuditLog(audit)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode audit record", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO audit_logs (audit_id, event_type, employee_id, payload, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, m.AuditID, m.EventType, m.EmployeeID, m.Payload, m.Metadata, m.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit record "+m.AuditID, err)
	}
	return nil
}

// ListAuditLogs returns audit records newest first, optionally for one employee.
func (r *PgxAuditRepository) ListAuditLogs(ctx context.Context, employeeID *string, limit int, nextToken *string) ([]domain.AuditRecord, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	args := queryArgs{}
	where := []string{"TRUE"}
	if employeeID != nil && *employeeID != "" {
		where = append(where, "employee_id = "+args.add(*employeeID))
	}
	if nextToken != nil && *nextToken != "" {
		lastAt, lastSeq, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		where = append(where, "(created_at, seq) < ("+args.add(lastAt)+", "+args.add(lastSeq)+")")
	}
	query := `SELECT audit_id, seq, event_type, employee_id, payload, metadata, created_at FROM audit_logs WHERE ` +
		strings.Join(where, " AND ") + " ORDER BY created_at DESC, seq DESC LIMIT " + args.add(fetchLimit) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query audit logs", err)
	}
	defer rows.Close()

	logs := make([]models.AuditLog, 0, fetchLimit)
	for rows.Next() {
		var m models.AuditLog
		if err := rows.Scan(&m.AuditID, &m.Seq, &m.EventType, &m.EmployeeID, &m.Payload, &m.Metadata, &m.CreatedAt); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan audit log row", err)
		}
		logs = append(logs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating audit log rows", err)
	}

	var nextTokenVal *string
	if len(logs) > limit {
		last := logs[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.Seq)
		nextTokenVal = &token
		logs = logs[:limit]
	}

	records := make([]domain.AuditRecord, 0, len(logs))
	for _, m := range logs {
		rec, err := mapping.ToDomainAuditRecord(m)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to decode audit record "+m.AuditID, err)
		}
		records = append(records, rec)
	}
	return records, nextTokenVal, nil
}
