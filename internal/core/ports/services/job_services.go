package services

import (
	"context"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/SscSPs/staff_ledger_app/internal/dto"
)

// ExpirationService scans identity documents and maintains the current-alerts snapshot
type ExpirationService interface {
	// CheckExpirations recomputes every alert relative to now and replaces the snapshot.
	CheckExpirations(ctx context.Context, now time.Time) (*domain.ExpirationSnapshot, error)

	// GetExpirationAlerts returns the last stored snapshot, empty if no scan has run.
	GetExpirationAlerts(ctx context.Context) (*domain.ExpirationSnapshot, error)
}

// MonthlyReportService builds and serves the monthly payroll reports
type MonthlyReportService interface {
	// GenerateMonthlyReport builds the report for the calendar month before now. Re-running it
	// for the same month replaces the stored report.
	GenerateMonthlyReport(ctx context.Context, now time.Time, triggeredBy string) (*domain.MonthlyReport, error)

	GetMonthlyReport(ctx context.Context, year, month int) (*domain.MonthlyReport, error)
	ListMonthlyReports(ctx context.Context, params dto.ListMonthlyReportsParams) (*dto.ListMonthlyReportsResponse, error)
}

// AuditService reads the audit trail
type AuditService interface {
	ListAuditLogs(ctx context.Context, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error)
}
