package inmemory

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/SscSPs/staff_ledger_app/internal/apperrors"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/staff_ledger_app/internal/utils/pagination"
)

type AlertRepository struct {
	store *Store
}

var _ portsrepo.AlertRepositoryFacade = (*AlertRepository)(nil)

func (r *AlertRepository) GetExpirationSnapshot(ctx context.Context) (*domain.ExpirationSnapshot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if r.store.snapshot == nil {
		return nil, apperrors.ErrNotFound
	}
	out := *r.store.snapshot
	out.Alerts = append([]domain.ExpirationAlert{}, r.store.snapshot.Alerts...)
	return &out, nil
}

func (r *AlertRepository) ReplaceExpirationSnapshot(ctx context.Context, snapshot domain.ExpirationSnapshot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored := snapshot
	stored.Alerts = append([]domain.ExpirationAlert{}, snapshot.Alerts...)
	stored.Count = len(stored.Alerts)
	r.store.snapshot = &stored
	return nil
}

type MonthlyReportRepository struct {
	store *Store
}

var _ portsrepo.MonthlyReportRepositoryFacade = (*MonthlyReportRepository)(nil)

func (r *MonthlyReportRepository) UpsertMonthlyReport(ctx context.Context, report domain.MonthlyReport) (*domain.MonthlyReport, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := [2]int{report.Year, report.Month}
	if existing, ok := r.store.reports[key]; ok {
		report.ReportID = existing.ReportID
	}
	stored := report
	stored.Employees = append([]domain.EmployeeMonthlyTotals{}, report.Employees...)
	r.store.reports[key] = &stored
	out := stored
	return &out, nil
}

func (r *MonthlyReportRepository) FindMonthlyReport(ctx context.Context, year, month int) (*domain.MonthlyReport, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	report, ok := r.store.reports[[2]int{year, month}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := *report
	return &out, nil
}

func (r *MonthlyReportRepository) ListMonthlyReports(ctx context.Context, limit int, nextToken *string) ([]domain.MonthlyReport, *string, error) {
	if limit <= 0 {
		limit = 12
	}
	cursor := -1
	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err == nil && len(fields) != 2 {
			err = errors.New("invalid pagination token format (field count)")
		}
		var year, month int
		if err == nil {
			year, err = strconv.Atoi(fields[0])
		}
		if err == nil {
			month, err = strconv.Atoi(fields[1])
		}
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		cursor = year*12 + month
	}

	r.store.mu.RLock()
	out := []domain.MonthlyReport{}
	for _, rep := range r.store.reports {
		if cursor >= 0 && rep.Year*12+rep.Month >= cursor {
			continue
		}
		out = append(out, *rep)
	}
	r.store.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Year*12+out[i].Month > out[j].Year*12+out[j].Month
	})

	var nextTokenVal *string
	if len(out) > limit {
		last := out[limit-1]
		token := pagination.EncodeMultiFieldToken(strconv.Itoa(last.Year), strconv.Itoa(last.Month))
		nextTokenVal = &token
		out = out[:limit]
	}
	return out, nextTokenVal, nil
}

type AuditRepository struct {
	store *Store
}

var _ portsrepo.AuditRepositoryFacade = (*AuditRepository)(nil)

func (r *AuditRepository) ListAuditLogs(ctx context.Context, employeeID *string, limit int, nextToken *string) ([]domain.AuditRecord, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	hasCursor := nextToken != nil && *nextToken != ""
	lastAt, lastSeq, err := decodeCursor(nextToken)
	if err != nil {
		return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
	}

	r.store.mu.RLock()
	rows := []auditRow{}
	for _, row := range r.store.audits {
		if employeeID != nil && *employeeID != "" {
			if row.record.EmployeeID == nil || *row.record.EmployeeID != *employeeID {
				continue
			}
		}
		at := row.record.CreatedAt
		if hasCursor && !(at.Before(lastAt) || (at.Equal(lastAt) && row.seq < lastSeq)) {
			continue
		}
		rows = append(rows, row)
	}
	r.store.mu.RUnlock()

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].record.CreatedAt, rows[j].record.CreatedAt
		if !a.Equal(b) {
			return a.After(b)
		}
		return rows[i].seq > rows[j].seq
	})

	var nextTokenVal *string
	if len(rows) > limit {
		last := rows[limit-1]
		token := pagination.EncodeToken(last.record.CreatedAt, last.seq)
		nextTokenVal = &token
		rows = rows[:limit]
	}
	out := make([]domain.AuditRecord, len(rows))
	for i, row := range rows {
		out[i] = row.record
	}
	return out, nextTokenVal, nil
}

type NotificationRepository struct {
	store *Store
}

var _ portsrepo.NotificationRepositoryFacade = (*NotificationRepository)(nil)

func (r *NotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.notifications = append(r.store.notifications, n)
	return nil
}

func (r *NotificationRepository) ListNotifications(ctx context.Context, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := []domain.Notification{}
	for i := len(r.store.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.store.notifications[i])
	}
	return out, nil
}
