package services

import (
	"context"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/SscSPs/staff_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// EmployeeReaderSvc defines read operations for employees
type EmployeeReaderSvc interface {
	GetEmployee(ctx context.Context, employeeID string) (*domain.Employee, error)
	ListEmployees(ctx context.Context, params dto.ListEmployeesParams) (*dto.ListEmployeesResponse, error)

	// PendingAdvances returns the sum of the employee's unrepaid advances.
	PendingAdvances(ctx context.Context, employeeID string) (decimal.Decimal, error)
}

// EmployeeWriterSvc defines profile write operations for employees
type EmployeeWriterSvc interface {
	RegisterEmployee(ctx context.Context, req dto.CreateEmployeeRequest, creatorUserID string) (*domain.Employee, error)
	UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, userID string) (*domain.Employee, error)
}

// PayrollSvc defines payroll postings. Every call writes both the employee record and the ledger.
type PayrollSvc interface {
	RecordTransaction(ctx context.Context, employeeID string, req dto.RecordTransactionRequest, userID string) (*domain.PayrollPosting, error)
	IssueAdvance(ctx context.Context, employeeID string, req dto.IssueAdvanceRequest, userID string) (*domain.PayrollPosting, error)
	MarkAdvanceRepaid(ctx context.Context, employeeID, advanceID string, req dto.RepayAdvanceRequest, userID string) (*domain.Advance, error)
}

// AdvanceRequestSvc drives the advance request state machine
type AdvanceRequestSvc interface {
	SubmitAdvanceRequest(ctx context.Context, employeeID string, req dto.SubmitAdvanceRequestRequest, userID string) (*domain.AdvanceRequest, error)
	DecideAdvanceRequest(ctx context.Context, requestID string, req dto.DecideAdvanceRequestRequest, userID string) (*domain.AdvanceRequest, error)
	DisburseAdvanceRequest(ctx context.Context, requestID string, req dto.DisburseAdvanceRequestRequest, userID string) (*domain.PayrollPosting, error)
	ListAdvanceRequests(ctx context.Context, employeeID string, params dto.ListAdvanceRequestsParams) ([]domain.AdvanceRequest, error)
}

// EmployeeSvcFacade combines all employee-related service interfaces
type EmployeeSvcFacade interface {
	EmployeeReaderSvc
	EmployeeWriterSvc
	PayrollSvc
	AdvanceRequestSvc
}
