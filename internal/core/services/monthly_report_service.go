package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/apperrors"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/staff_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/staff_ledger_app/internal/dto"
	"github.com/SscSPs/staff_ledger_app/internal/utils"
	"github.com/SscSPs/staff_ledger_app/internal/utils/accounting"
	"github.com/google/uuid"
)

const JobMonthlyReport = "monthly-report"

// MonthlyReportService builds and serves monthly payroll reports.
type MonthlyReportService struct {
	BaseService
	employeeRepo portsrepo.EmployeeReader
	reportRepo   portsrepo.MonthlyReportRepositoryFacade
	location     *time.Location
}

// NewMonthlyReportService creates a new MonthlyReportService. Month boundaries are taken in location.
func NewMonthlyReportService(employeeRepo portsrepo.EmployeeReader, reportRepo portsrepo.MonthlyReportRepositoryFacade, location *time.Location, options ...Option) *MonthlyReportService {
	if location == nil {
		location = time.UTC
	}
	return &MonthlyReportService{
		BaseService:  newBaseService(options),
		employeeRepo: employeeRepo,
		reportRepo:   reportRepo,
		location:     location,
	}
}

var _ portssvc.MonthlyReportService = (*MonthlyReportService)(nil)

// GenerateMonthlyReport summarizes the calendar month before now. The report is keyed by
// (year, month) so a second firing for the same month replaces the first.
func (s *MonthlyReportService) GenerateMonthlyReport(ctx context.Context, now time.Time, triggeredBy string) (*domain.MonthlyReport, error) {
	started := time.Now()
	start, end := domain.PreviousMonthWindow(now, s.location)
	s.LogInfo(ctx, "Monthly report started", slog.Time("window_start", start), slog.Time("window_end", end))

	employees, err := s.employeeRepo.ListAllEmployees(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load employees for monthly report")
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	lines, totalPaid, totalAdvances := accounting.MonthlyTotals(employees, start, end)
	report := domain.MonthlyReport{
		ReportID:           uuid.NewString(),
		Year:               start.Year(),
		Month:              int(start.Month()),
		WindowStart:        start,
		WindowEnd:          end,
		TotalEmployees:     len(employees),
		TotalSalariesPaid:  totalPaid,
		TotalAdvancesGiven: totalAdvances,
		Employees:          lines,
		GeneratedAt:        s.Now(),
		GeneratedBy:        triggeredBy,
	}

	saved, err := s.reportRepo.UpsertMonthlyReport(ctx, report)
	if err != nil {
		s.LogError(ctx, err, "Failed to store monthly report", slog.Int("year", report.Year), slog.Int("month", report.Month))
		return nil, fmt.Errorf("failed to store monthly report %04d-%02d: %w", report.Year, report.Month, err)
	}

	s.recordJobRun(JobMonthlyReport, map[string]any{
		"period":    fmt.Sprintf("%04d-%02d", saved.Year, saved.Month),
		"employees": saved.TotalEmployees,
	})
	s.LogInfo(ctx, "Monthly report finished",
		slog.String("report_id", saved.ReportID),
		slog.Int("year", saved.Year),
		slog.Int("month", saved.Month),
		slog.Int("employees", saved.TotalEmployees),
		slog.String("salaries_paid", utils.FormatWithCurrency(saved.TotalSalariesPaid)),
		slog.String("advances_given", utils.FormatWithCurrency(saved.TotalAdvancesGiven)),
		slog.Duration("duration", time.Since(started)))
	return saved, nil
}

func (s *MonthlyReportService) GetMonthlyReport(ctx context.Context, year, month int) (*domain.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.NewValidationError("month must be between 1 and 12")
	}
	if year < 1 {
		return nil, apperrors.NewValidationError("year must be positive")
	}
	report, err := s.reportRepo.FindMonthlyReport(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly report %04d-%02d: %w", year, month, err)
	}
	return report, nil
}

func (s *MonthlyReportService) ListMonthlyReports(ctx context.Context, params dto.ListMonthlyReportsParams) (*dto.ListMonthlyReportsResponse, error) {
	reports, nextToken, err := s.reportRepo.ListMonthlyReports(ctx, normalizeLimit(params.Limit), params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list monthly reports")
		return nil, fmt.Errorf("failed to list monthly reports: %w", err)
	}

	res := &dto.ListMonthlyReportsResponse{
		Reports:   make([]dto.MonthlyReportSummary, len(reports)),
		NextToken: nextToken,
	}
	for i := range reports {
		res.Reports[i] = dto.ToMonthlyReportSummary(&reports[i])
	}
	return res, nil
}
