package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// IdentityDocument is a numbered document with an optional expiry date (QID, passport).
type IdentityDocument struct {
	Number string     `json:"number"`
	Expiry *time.Time `json:"expiry,omitempty"`
}

// Employee is the employee aggregate with its embedded payroll history.
type Employee struct {
	EmployeeID      string                `json:"employeeID"`
	Name            string                `json:"name"`
	Email           string                `json:"email,omitempty"`
	QID             IdentityDocument      `json:"qid"`
	Passport        IdentityDocument      `json:"passport"`
	Salary          decimal.Decimal       `json:"salary"`
	Department      string                `json:"department"`
	TotalPaid       decimal.Decimal       `json:"totalPaid"` // denormalized sum of Transactions[].Amount
	Version         int64                 `json:"version"`
	Transactions    []EmployeeTransaction `json:"transactions"`
	Advances        []Advance             `json:"advances"`
	AdvanceRequests []AdvanceRequest      `json:"advanceRequests,omitempty"`
	AuditFields
}

// HasQID reports whether the employee has a QID number on file.
func (e Employee) HasQID() bool {
	return strings.TrimSpace(e.QID.Number) != ""
}

// ComputeTotalPaid sums the signed amounts of all transactions.
func (e Employee) ComputeTotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, t := range e.Transactions {
		total = total.Add(t.Amount)
	}
	return total
}

// EmployeeTransactionType classifies a payroll movement.
type EmployeeTransactionType string

const (
	TxnSalary    EmployeeTransactionType = "salary"
	TxnBonus     EmployeeTransactionType = "bonus"
	TxnDeduction EmployeeTransactionType = "deduction"
	TxnAdvance   EmployeeTransactionType = "advance"
)

var ErrTransactionTypeInvalid = errors.New("transaction type must be salary, bonus, deduction or advance")

// IsValid reports whether t is a known transaction type.
func (t EmployeeTransactionType) IsValid() bool {
	switch t {
	case TxnSalary, TxnBonus, TxnDeduction, TxnAdvance:
		return true
	}
	return false
}

// SignedAmount applies the payroll sign convention: deductions are stored negative.
func (t EmployeeTransactionType) SignedAmount(amount decimal.Decimal) decimal.Decimal {
	if t == TxnDeduction {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// LedgerPosting returns the mirrored ledger entry type and category for a payroll movement.
func (t EmployeeTransactionType) LedgerPosting() (EntryType, Category) {
	switch t {
	case TxnDeduction:
		return Credit, CategoryEmployeeDeduction
	case TxnAdvance:
		return Debit, CategoryEmployeeAdvance
	default:
		return Debit, CategoryPayroll
	}
}

// EmployeeTransaction is one element of an employee's transactions array.
type EmployeeTransaction struct {
	TransactionID string                  `json:"transactionID"`
	EmployeeID    string                  `json:"employeeID"`
	Date          time.Time               `json:"date"`
	Amount        decimal.Decimal         `json:"amount"` // signed
	Type          EmployeeTransactionType `json:"type"`
	Description   string                  `json:"description"`
	ProcessedBy   string                  `json:"processedBy"`
	LedgerEntryID *string                 `json:"ledgerEntryID,omitempty"`
	CreatedAt     time.Time               `json:"createdAt"`
}

// Advance is a cash disbursement recoverable via later deductions.
type Advance struct {
	AdvanceID     string          `json:"advanceID"`
	EmployeeID    string          `json:"employeeID"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Repaid        bool            `json:"repaid"`
	RepaidDate    *time.Time      `json:"repaidDate,omitempty"`
	Description   string          `json:"description"`
	LedgerEntryID *string         `json:"ledgerEntryID,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// PayrollPosting is the unit of work for a payroll movement: the employee-side record, its
// mirrored ledger entry and the audit event are persisted together or not at all.
type PayrollPosting struct {
	EmployeeID  string
	Transaction EmployeeTransaction
	Advance     *Advance
	LedgerEntry LedgerEntry
	Audit       AuditRecord
}
