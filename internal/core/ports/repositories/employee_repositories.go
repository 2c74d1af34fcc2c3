package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
)

// EmployeeReader defines read operations for employee aggregates
type EmployeeReader interface {
	// FindEmployeeByID loads an employee with transactions, advances and advance requests.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// ListEmployees returns a page of employees ordered by name, without sub-collections.
	ListEmployees(ctx context.Context, department *string, limit int, nextToken *string) ([]domain.Employee, *string, error)

	// ListAllEmployees loads every employee with transactions and advances. Used by batch jobs.
	ListAllEmployees(ctx context.Context) ([]domain.Employee, error)
}

// EmployeeWriter defines write operations for employee aggregates
type EmployeeWriter interface {
	// CreateEmployee persists a new employee, its creation audit record and the welcome notification.
	CreateEmployee(ctx context.Context, employee domain.Employee, audit domain.AuditRecord, welcome *domain.Notification) error

	// UpdateEmployee saves profile fields if the stored version still equals expectedVersion,
	// returning apperrors.ErrConflict otherwise.
	UpdateEmployee(ctx context.Context, employee domain.Employee, expectedVersion int64, audit domain.AuditRecord) (*domain.Employee, error)

	// PostPayroll applies a payroll posting in one transaction: locks the employee, appends the
	// transaction (and advance), bumps totalPaid and version, appends the mirrored ledger entry and
	// writes the audit record. The returned posting carries the persisted values.
	PostPayroll(ctx context.Context, posting domain.PayrollPosting) (*domain.PayrollPosting, error)

	// MarkAdvanceRepaid flips an unrepaid advance to repaid. Already repaid returns apperrors.ErrConflict.
	MarkAdvanceRepaid(ctx context.Context, employeeID, advanceID string, repaidAt time.Time, audit domain.AuditRecord) (*domain.Advance, error)
}

// AdvanceRequestReader defines read operations for advance requests
type AdvanceRequestReader interface {
	FindAdvanceRequestByID(ctx context.Context, requestID string) (*domain.AdvanceRequest, error)
	ListAdvanceRequests(ctx context.Context, employeeID string, status *domain.AdvanceRequestStatus) ([]domain.AdvanceRequest, error)
}

// AdvanceRequestWriter defines write operations for advance requests
type AdvanceRequestWriter interface {
	CreateAdvanceRequest(ctx context.Context, req domain.AdvanceRequest, audit domain.AuditRecord) error

	// UpdateAdvanceRequestStatus moves a request from expected to req.Status, storing the decision
	// fields. A request no longer in expected returns apperrors.ErrConflict.
	UpdateAdvanceRequestStatus(ctx context.Context, req domain.AdvanceRequest, expected domain.AdvanceRequestStatus, audit domain.AuditRecord) error

	// DisburseAdvanceRequest posts the advance and marks the APPROVED request DISBURSED in one transaction.
	DisburseAdvanceRequest(ctx context.Context, requestID string, posting domain.PayrollPosting, audit domain.AuditRecord) (*domain.PayrollPosting, error)
}

// EmployeeRepositoryFacade combines all employee-related repository interfaces
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeWriter
	AdvanceRequestReader
	AdvanceRequestWriter
}
