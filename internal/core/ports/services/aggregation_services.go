package services

import (
	"context"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
)

// AggregationService derives figures from a snapshot of the ledger and entity registry.
// Nothing here writes.
type AggregationService interface {
	// GetCategoryBreakdown partitions entries by category, optionally only those dated on or after since.
	GetCategoryBreakdown(ctx context.Context, since *time.Time) ([]domain.CategoryTotals, error)

	// GetCashFlow totals entries over the trailing windowDays.
	GetCashFlow(ctx context.Context, windowDays int) (*domain.CashFlow, error)

	// GetEmployeeSummary attributes ledger entries to an employee.
	GetEmployeeSummary(ctx context.Context, employeeID string) (*domain.EmployeeSummary, error)

	// LookupEmployeeByQID returns found=false rather than an error when nobody matches.
	LookupEmployeeByQID(ctx context.Context, qid string) (*domain.Employee, bool, error)

	// ReconcileEmployee cross-checks the employee's records against the ledger.
	ReconcileEmployee(ctx context.Context, employeeID string) (*domain.ReconciliationReport, error)

	// GetDashboard assembles the overview figures.
	GetDashboard(ctx context.Context) (*domain.Dashboard, error)
}
