package dto

import (
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IdentityDocumentRequest carries a document number and its optional expiry.
type IdentityDocumentRequest struct {
	Number string     `json:"number"`
	Expiry *time.Time `json:"expiry"`
}

// CreateEmployeeRequest defines the data needed to register an employee.
type CreateEmployeeRequest struct {
	Name       string                  `json:"name" binding:"required"`
	Email      string                  `json:"email" binding:"omitempty,email"` // welcome notification recipient
	QID        IdentityDocumentRequest `json:"qid"`
	Passport   IdentityDocumentRequest `json:"passport"`
	Salary     decimal.Decimal         `json:"salary"`
	Department string                  `json:"department"`
}

// UpdateEmployeeRequest defines the profile fields allowed to change.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateEmployeeRequest struct {
	Name       *string                  `json:"name"`
	Email      *string                  `json:"email" binding:"omitempty,email"`
	QID        *IdentityDocumentRequest `json:"qid"`
	Passport   *IdentityDocumentRequest `json:"passport"`
	Salary     *decimal.Decimal         `json:"salary"`
	Department *string                  `json:"department"`
	Version    *int64                   `json:"version"` // Optional optimistic concurrency check
}

// RecordTransactionRequest defines a salary, bonus or deduction posting.
type RecordTransactionRequest struct {
	Type        domain.EmployeeTransactionType `json:"type" binding:"required,oneof=salary bonus deduction"`
	Amount      decimal.Decimal                `json:"amount" binding:"dgt0"` // always positive; deductions are negated on save
	Date        *time.Time                     `json:"date"`
	Description string                         `json:"description"`
}

// IssueAdvanceRequest defines a cash advance to an employee.
type IssueAdvanceRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"dgt0"`
	Date        *time.Time      `json:"date"`
	Description string          `json:"description"`
}

// RepayAdvanceRequest marks an advance as recovered.
type RepayAdvanceRequest struct {
	RepaidDate *time.Time `json:"repaidDate"`
}

// ListEmployeesParams defines query parameters for listing employees.
type ListEmployeesParams struct {
	Limit      int     `form:"limit,default=50"`
	NextToken  *string `form:"nextToken"`
	Department *string `form:"department"`
}

// EmployeeTransactionResponse defines the data returned for a payroll transaction.
type EmployeeTransactionResponse struct {
	TransactionID string                         `json:"transactionID"`
	Date          time.Time                      `json:"date"`
	Amount        decimal.Decimal                `json:"amount"`
	Type          domain.EmployeeTransactionType `json:"type"`
	Description   string                         `json:"description"`
	ProcessedBy   string                         `json:"processedBy"`
	LedgerEntryID *string                        `json:"ledgerEntryID,omitempty"`
}

// AdvanceResponse defines the data returned for an advance.
type AdvanceResponse struct {
	AdvanceID     string          `json:"advanceID"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Repaid        bool            `json:"repaid"`
	RepaidDate    *time.Time      `json:"repaidDate,omitempty"`
	Description   string          `json:"description"`
	LedgerEntryID *string         `json:"ledgerEntryID,omitempty"`
}

// EmployeeResponse defines the data returned for an employee.
type EmployeeResponse struct {
	EmployeeID      string                        `json:"employeeID"`
	Name            string                        `json:"name"`
	Email           string                        `json:"email,omitempty"`
	QID             domain.IdentityDocument       `json:"qid"`
	Passport        domain.IdentityDocument       `json:"passport"`
	Salary          decimal.Decimal               `json:"salary"`
	Department      string                        `json:"department"`
	TotalPaid       decimal.Decimal               `json:"totalPaid"`
	PendingAdvances decimal.Decimal               `json:"pendingAdvances"`
	Version         int64                         `json:"version"`
	Transactions    []EmployeeTransactionResponse `json:"transactions"`
	Advances        []AdvanceResponse             `json:"advances"`
	AdvanceRequests []AdvanceRequestResponse      `json:"advanceRequests"`
	CreatedAt       time.Time                     `json:"createdAt"`
	CreatedBy       string                        `json:"createdBy"`
	LastUpdatedAt   time.Time                     `json:"lastUpdatedAt"`
	LastUpdatedBy   string                        `json:"lastUpdatedBy"`
}

// ListEmployeesResponse wraps a page of employees.
type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// PayrollPostingResponse is returned by every payroll write: both sides of the posting.
type PayrollPostingResponse struct {
	Transaction EmployeeTransactionResponse `json:"transaction"`
	Advance     *AdvanceResponse            `json:"advance,omitempty"`
	LedgerEntry LedgerEntryResponse         `json:"ledgerEntry"`
}

// PendingAdvancesResponse is the sum of unrepaid advances.
type PendingAdvancesResponse struct {
	EmployeeID      string          `json:"employeeID"`
	PendingAdvances decimal.Decimal `json:"pendingAdvances"`
}

// EmployeeLookupResponse reports the result of a QID lookup. Not found is not an error.
type EmployeeLookupResponse struct {
	Found    bool              `json:"found"`
	Employee *EmployeeResponse `json:"employee,omitempty"`
}

// ToEmployeeTransactionResponse converts a domain.EmployeeTransaction.
func ToEmployeeTransactionResponse(t *domain.EmployeeTransaction) EmployeeTransactionResponse {
	return EmployeeTransactionResponse{
		TransactionID: t.TransactionID,
		Date:          t.Date,
		Amount:        t.Amount,
		Type:          t.Type,
		Description:   t.Description,
		ProcessedBy:   t.ProcessedBy,
		LedgerEntryID: t.LedgerEntryID,
	}
}

// ToAdvanceResponse converts a domain.Advance.
func ToAdvanceResponse(a *domain.Advance) AdvanceResponse {
	return AdvanceResponse{
		AdvanceID:     a.AdvanceID,
		Date:          a.Date,
		Amount:        a.Amount,
		Repaid:        a.Repaid,
		RepaidDate:    a.RepaidDate,
		Description:   a.Description,
		LedgerEntryID: a.LedgerEntryID,
	}
}

// ToEmployeeResponse converts a domain.Employee. pending is the caller-computed unrepaid advance sum.
func ToEmployeeResponse(e *domain.Employee, pending decimal.Decimal) EmployeeResponse {
	res := EmployeeResponse{
		EmployeeID:      e.EmployeeID,
		Name:            e.Name,
		Email:           e.Email,
		QID:             e.QID,
		Passport:        e.Passport,
		Salary:          e.Salary,
		Department:      e.Department,
		TotalPaid:       e.TotalPaid,
		PendingAdvances: pending,
		Version:         e.Version,
		Transactions:    make([]EmployeeTransactionResponse, len(e.Transactions)),
		Advances:        make([]AdvanceResponse, len(e.Advances)),
		AdvanceRequests: ToAdvanceRequestResponses(e.AdvanceRequests),
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
		LastUpdatedAt:   e.LastUpdatedAt,
		LastUpdatedBy:   e.LastUpdatedBy,
	}
	for i := range e.Transactions {
		res.Transactions[i] = ToEmployeeTransactionResponse(&e.Transactions[i])
	}
	for i := range e.Advances {
		res.Advances[i] = ToAdvanceResponse(&e.Advances[i])
	}
	return res
}

// ToPayrollPostingResponse converts a committed domain.PayrollPosting.
func ToPayrollPostingResponse(p *domain.PayrollPosting) PayrollPostingResponse {
	res := PayrollPostingResponse{
		Transaction: ToEmployeeTransactionResponse(&p.Transaction),
		LedgerEntry: ToLedgerEntryResponse(&p.LedgerEntry),
	}
	if p.Advance != nil {
		adv := ToAdvanceResponse(p.Advance)
		res.Advance = &adv
	}
	return res
}
