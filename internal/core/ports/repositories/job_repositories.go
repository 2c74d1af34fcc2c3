package repositories

import (
	"context"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
)

// AlertRepositoryFacade stores the single current-alerts snapshot
type AlertRepositoryFacade interface {
	// GetExpirationSnapshot returns apperrors.ErrNotFound before the first scan.
	GetExpirationSnapshot(ctx context.Context) (*domain.ExpirationSnapshot, error)

	// ReplaceExpirationSnapshot overwrites the snapshot wholesale.
	ReplaceExpirationSnapshot(ctx context.Context, snapshot domain.ExpirationSnapshot) error
}

// MonthlyReportReader defines read operations for monthly reports
type MonthlyReportReader interface {
	FindMonthlyReport(ctx context.Context, year, month int) (*domain.MonthlyReport, error)

	// ListMonthlyReports returns reports newest period first.
	ListMonthlyReports(ctx context.Context, limit int, nextToken *string) ([]domain.MonthlyReport, *string, error)
}

// MonthlyReportWriter defines write operations for monthly reports
type MonthlyReportWriter interface {
	// UpsertMonthlyReport inserts the report or replaces the one already stored for (Year, Month).
	// The returned report keeps the original ReportID on replace.
	UpsertMonthlyReport(ctx context.Context, report domain.MonthlyReport) (*domain.MonthlyReport, error)
}

// MonthlyReportRepositoryFacade combines all monthly-report repository interfaces
type MonthlyReportRepositoryFacade interface {
	MonthlyReportReader
	MonthlyReportWriter
}

// AuditRepositoryFacade reads the append-only audit trail. Writes happen inside the
// transactions of the mutations they describe.
type AuditRepositoryFacade interface {
	ListAuditLogs(ctx context.Context, employeeID *string, limit int, nextToken *string) ([]domain.AuditRecord, *string, error)
}

// NotificationRepositoryFacade stores outbound-notification placeholders
type NotificationRepositoryFacade interface {
	SaveNotification(ctx context.Context, notification domain.Notification) error
	ListNotifications(ctx context.Context, limit int) ([]domain.Notification, error)
}

// NotificationPublisher hands a stored notification to an external delivery queue.
type NotificationPublisher interface {
	Publish(ctx context.Context, notification domain.Notification) error
}
