package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/SscSPs/staff_ledger_app/internal/apperrors"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/staff_ledger_app/internal/models"
	"github.com/SscSPs/staff_ledger_app/internal/utils/mapping"
	"github.com/SscSPs/staff_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAlertRepository struct {
	BaseRepository
}

func newPgxAlertRepository(pool *pgxpool.Pool) portsrepo.AlertRepositoryFacade {
	return &PgxAlertRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AlertRepositoryFacade = (*PgxAlertRepository)(nil)

// GetExpirationSnapshot returns the current alert snapshot.
func (r *PgxAlertRepository) GetExpirationSnapshot(ctx context.Context) (*domain.ExpirationSnapshot, error) {
	var m models.AlertSnapshot
	err := r.Pool.QueryRow(ctx, `
		SELECT snapshot_id, alerts, count, last_checked FROM alert_snapshots WHERE snapshot_id = $1;
	`, domain.ExpirationSnapshotID).Scan(&m.SnapshotID, &m.Alerts, &m.Count, &m.LastChecked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to load expiration snapshot", err)
	}
	snapshot, err := mapping.ToDomainAlertSnapshot(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode expiration snapshot", err)
	}
	return &snapshot, nil
}

// ReplaceExpirationSnapshot overwrites the snapshot; last write wins.
func (r *PgxAlertRepository) ReplaceExpirationSnapshot(ctx context.Context, snapshot domain.ExpirationSnapshot) error {
	m, err := mapping.ToModelAlertSnapshot(snapshot)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode expiration snapshot", err)
	}
	_, err = r.Pool.Exec(ctx, `
		INSERT INTO alert_snapshots (snapshot_id, alerts, count, last_checked)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (snapshot_id) DO UPDATE
		SET alerts = EXCLUDED.alerts, count = EXCLUDED.count, last_checked = EXCLUDED.last_checked;
	`, m.SnapshotID, m.Alerts, m.Count, m.LastChecked)
	if err != nil {
		return apperrors.NewAppError(500, "failed to store expiration snapshot", err)
	}
	return nil
}

type PgxMonthlyReportRepository struct {
	BaseRepository
}

func newPgxMonthlyReportRepository(pool *pgxpool.Pool) portsrepo.MonthlyReportRepositoryFacade {
	return &PgxMonthlyReportRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MonthlyReportRepositoryFacade = (*PgxMonthlyReportRepository)(nil)

const monthlyReportColumns = `report_id, period_year, period_month, window_start, window_end, total_employees,
		total_salaries_paid, total_advances_given, employees, generated_at, generated_by`

func scanMonthlyReport(row pgx.Row) (models.MonthlyReport, error) {
	var m models.MonthlyReport
	err := row.Scan(&m.ReportID, &m.PeriodYear, &m.PeriodMonth, &m.WindowStart, &m.WindowEnd, &m.TotalEmployees,
		&m.TotalSalariesPaid, &m.TotalAdvancesGiven, &m.Employees, &m.GeneratedAt, &m.GeneratedBy)
	return m, err
}

// UpsertMonthlyReport stores the report keyed by (year, month). Re-running a month replaces the
// figures but keeps the first report ID.
func (r *PgxMonthlyReportRepository) UpsertMonthlyReport(ctx context.Context, report domain.MonthlyReport) (*domain.MonthlyReport, error) {
	m, err := mapping.ToModelMonthlyReport(report)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to encode monthly report", err)
	}
	query := `
		INSERT INTO monthly_reports (` + monthlyReportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (period_year, period_month) DO UPDATE
		SET window_start = EXCLUDED.window_start, window_end = EXCLUDED.window_end,
		    total_employees = EXCLUDED.total_employees, total_salaries_paid = EXCLUDED.total_salaries_paid,
		    total_advances_given = EXCLUDED.total_advances_given, employees = EXCLUDED.employees,
		    generated_at = EXCLUDED.generated_at, generated_by = EXCLUDED.generated_by
		RETURNING ` + monthlyReportColumns + `;
	`
	saved, err := scanMonthlyReport(r.Pool.QueryRow(ctx, query,
		m.ReportID, m.PeriodYear, m.PeriodMonth, m.WindowStart, m.WindowEnd, m.TotalEmployees,
		m.TotalSalariesPaid, m.TotalAdvancesGiven, m.Employees, m.GeneratedAt, m.GeneratedBy,
	))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert monthly report", err)
	}
	out, err := mapping.ToDomainMonthlyReport(saved)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode monthly report", err)
	}
	return &out, nil
}

// FindMonthlyReport retrieves the report of a calendar month.
func (r *PgxMonthlyReportRepository) FindMonthlyReport(ctx context.Context, year, month int) (*domain.MonthlyReport, error) {
	m, err := scanMonthlyReport(r.Pool.QueryRow(ctx,
		"SELECT "+monthlyReportColumns+" FROM monthly_reports WHERE period_year = $1 AND period_month = $2;", year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find monthly report", err)
	}
	out, err := mapping.ToDomainMonthlyReport(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode monthly report", err)
	}
	return &out, nil
}

// ListMonthlyReports returns reports newest period first using a year|month token.
func (r *PgxMonthlyReportRepository) ListMonthlyReports(ctx context.Context, limit int, nextToken *string) ([]domain.MonthlyReport, *string, error) {
	if limit <= 0 {
		limit = 12
	}
	fetchLimit := limit + 1

	args := queryArgs{}
	query := "SELECT " + monthlyReportColumns + " FROM monthly_reports"
	if nextToken != nil && *nextToken != "" {
		year, month, decodeErr := decodePeriodToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += " WHERE (period_year, period_month) < (" + args.add(year) + ", " + args.add(month) + ")"
	}
	query += " ORDER BY period_year DESC, period_month DESC LIMIT " + args.add(fetchLimit) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query monthly reports", err)
	}
	defer rows.Close()

	reports := make([]domain.MonthlyReport, 0, fetchLimit)
	for rows.Next() {
		m, err := scanMonthlyReport(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan monthly report row", err)
		}
		report, err := mapping.ToDomainMonthlyReport(m)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to decode monthly report "+m.ReportID, err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating monthly report rows", err)
	}

	var nextTokenVal *string
	if len(reports) > limit {
		last := reports[limit-1]
		token := pagination.EncodeMultiFieldToken(strconv.Itoa(last.Year), strconv.Itoa(last.Month))
		nextTokenVal = &token
		reports = reports[:limit]
	}
	return reports, nextTokenVal, nil
}

func decodePeriodToken(token string) (int, int, error) {
	fields, err := pagination.DecodeMultiFieldToken(token)
	if err != nil {
		return 0, 0, err
	}
	if len(fields) != 2 {
		return 0, 0, errors.New("invalid pagination token format (field count)")
	}
	year, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}
	month, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}
