package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/apperrors"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/staff_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/staff_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const dashboardCashFlowDays = 30

// AggregationSettings carries the business rules the aggregation engine depends on.
type AggregationSettings struct {
	LooseNameMatching      bool
	OutstandingPayrollRate decimal.Decimal
	Location               *time.Location
}

// AggregationService derives reports from the ledger and the entity registry. It never writes.
type AggregationService struct {
	BaseService
	ledgerRepo   portsrepo.LedgerReader
	employeeRepo portsrepo.EmployeeReader
	customerRepo portsrepo.CustomerReader
	alertRepo    portsrepo.AlertRepositoryFacade
	settings     AggregationSettings
}

// NewAggregationService creates a new AggregationService.
func NewAggregationService(
	ledgerRepo portsrepo.LedgerReader,
	employeeRepo portsrepo.EmployeeReader,
	customerRepo portsrepo.CustomerReader,
	alertRepo portsrepo.AlertRepositoryFacade,
	settings AggregationSettings,
	options ...Option,
) *AggregationService {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &AggregationService{
		BaseService:  newBaseService(options),
		ledgerRepo:   ledgerRepo,
		employeeRepo: employeeRepo,
		customerRepo: customerRepo,
		alertRepo:    alertRepo,
		settings:     settings,
	}
}

var _ portssvc.AggregationService = (*AggregationService)(nil)

func (s *AggregationService) loadEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.ListAllEntries(ctx, domain.MainLedgerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger entries for aggregation")
		return nil, fmt.Errorf("failed to load ledger entries: %w", err)
	}
	return entries, nil
}

func (s *AggregationService) loadEmployee(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee %s: %w", employeeID, err)
	}
	return employee, nil
}

func (s *AggregationService) GetCategoryBreakdown(ctx context.Context, since *time.Time) ([]domain.CategoryTotals, error) {
	entries, err := s.loadEntries(ctx)
	if err != nil {
		return nil, err
	}
	return accounting.SortedBreakdown(accounting.CategoryBreakdown(entries, since)), nil
}

func (s *AggregationService) GetCashFlow(ctx context.Context, windowDays int) (*domain.CashFlow, error) {
	if windowDays <= 0 {
		return nil, apperrors.NewValidationError("windowDays must be greater than zero")
	}
	entries, err := s.loadEntries(ctx)
	if err != nil {
		return nil, err
	}
	flow := accounting.CashFlow(entries, s.Now(), windowDays)
	return &flow, nil
}

func (s *AggregationService) GetEmployeeSummary(ctx context.Context, employeeID string) (*domain.EmployeeSummary, error) {
	employee, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	entries, err := s.loadEntries(ctx)
	if err != nil {
		return nil, err
	}
	summary := accounting.EmployeeSummary(*employee, entries, s.settings.LooseNameMatching)
	if summary.LooseMatches > 0 {
		s.LogDebug(ctx, "Employee summary includes name matches",
			slog.String("employee_id", employeeID),
			slog.Int("loose_matches", summary.LooseMatches))
	}
	return &summary, nil
}

// LookupEmployeeByQID returns found=false rather than an error when nobody matches.
func (s *AggregationService) LookupEmployeeByQID(ctx context.Context, qid string) (*domain.Employee, bool, error) {
	if strings.TrimSpace(qid) == "" {
		return nil, false, apperrors.NewValidationError("qid is required")
	}
	employees, err := s.employeeRepo.ListAllEmployees(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load employees for QID lookup")
		return nil, false, fmt.Errorf("failed to load employees: %w", err)
	}
	employee, found := accounting.FindEmployeeByQID(employees, qid)
	return employee, found, nil
}

func (s *AggregationService) ReconcileEmployee(ctx context.Context, employeeID string) (*domain.ReconciliationReport, error) {
	employee, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	entries, err := s.loadEntries(ctx)
	if err != nil {
		return nil, err
	}
	report := accounting.ReconcileEmployee(*employee, entries)
	report.CheckedAt = s.Now()
	if !report.Consistent {
		s.GetLogger(ctx).Warn("Employee records disagree with the ledger",
			slog.String("employee_id", employeeID),
			slog.Int("issues", len(report.Issues)))
	}
	return &report, nil
}

// allCustomers walks every page of customers.
func (s *AggregationService) allCustomers(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	var token *string
	for {
		page, next, err := s.customerRepo.ListCustomers(ctx, maxPageLimit, token)
		if err != nil {
			return nil, err
		}
		customers = append(customers, page...)
		if next == nil {
			return customers, nil
		}
		token = next
	}
}

// GetDashboard assembles the overview figures. Each collection is read separately, so the figures
// are not a single consistent snapshot.
func (s *AggregationService) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	now := s.Now()

	ledger, err := s.ledgerRepo.GetLedger(ctx, domain.MainLedgerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger for dashboard")
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	entries, err := s.loadEntries(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := s.employeeRepo.ListAllEmployees(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load employees for dashboard")
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	customers, err := s.allCustomers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load customers for dashboard")
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	local := now.In(s.settings.Location)
	monthStart := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, s.settings.Location)

	dashboard := &domain.Dashboard{
		Balance:         ledger.Balance,
		Outstanding:     accounting.PayrollOutstanding(entries, s.settings.OutstandingPayrollRate),
		CashFlow:        accounting.CashFlow(entries, now, dashboardCashFlowDays),
		MonthBreakdown:  accounting.SortedBreakdown(accounting.CategoryBreakdown(entries, &monthStart)),
		PendingAdvances: decimal.Zero,
		EmployeeCount:   len(employees),
		CustomerCount:   len(customers),
		ReceivablesDue:  decimal.Zero,
		GeneratedAt:     now,
	}
	for _, emp := range employees {
		dashboard.PendingAdvances = dashboard.PendingAdvances.Add(accounting.PendingAdvances(emp.Advances))
	}
	for _, c := range customers {
		dashboard.ReceivablesDue = dashboard.ReceivablesDue.Add(c.Outstanding())
		for _, inv := range c.Invoices {
			if inv.DisplayStatus(now) == domain.InvoiceOverdue {
				dashboard.OverdueInvoices++
			}
		}
	}

	snapshot, err := s.alertRepo.GetExpirationSnapshot(ctx)
	switch {
	case err == nil:
		dashboard.ExpirationAlerts = snapshot.Count
		checked := snapshot.LastChecked
		dashboard.AlertsLastChecked = &checked
	case errors.Is(err, apperrors.ErrNotFound):
		// no scan has run yet
	default:
		s.LogError(ctx, err, "Failed to load expiration snapshot for dashboard")
		return nil, fmt.Errorf("failed to load expiration alerts: %w", err)
	}

	return dashboard, nil
}
