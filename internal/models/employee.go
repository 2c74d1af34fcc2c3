package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a row of the employees table. Sub-collections live in their own tables.
type Employee struct {
	EmployeeID     string          `db:"employee_id"`
	Name           string          `db:"name"`
	Email          *string         `db:"email"`
	QIDNumber      *string         `db:"qid_number"`
	QIDExpiry      *time.Time      `db:"qid_expiry"`
	PassportNumber *string         `db:"passport_number"`
	PassportExpiry *time.Time      `db:"passport_expiry"`
	Salary         decimal.Decimal `db:"salary"`
	Department     string          `db:"department"`
	TotalPaid      decimal.Decimal `db:"total_paid"`
	Version        int64           `db:"version"`
	AuditFields
}

// EmployeeTransaction is a row of employee_transactions.
type EmployeeTransaction struct {
	TransactionID string          `db:"transaction_id"`
	EmployeeID    string          `db:"employee_id"`
	TxnDate       time.Time       `db:"txn_date"`
	Amount        decimal.Decimal `db:"amount"`
	TxnType       string          `db:"txn_type"`
	Description   string          `db:"description"`
	ProcessedBy   string          `db:"processed_by"`
	LedgerEntryID *string         `db:"ledger_entry_id"`
	CreatedAt     time.Time       `db:"created_at"`
}

// EmployeeAdvance is a row of employee_advances.
type EmployeeAdvance struct {
	AdvanceID     string          `db:"advance_id"`
	EmployeeID    string          `db:"employee_id"`
	AdvanceDate   time.Time       `db:"advance_date"`
	Amount        decimal.Decimal `db:"amount"`
	Repaid        bool            `db:"repaid"`
	RepaidDate    *time.Time      `db:"repaid_date"`
	Description   string          `db:"description"`
	LedgerEntryID *string         `db:"ledger_entry_id"`
	CreatedAt     time.Time       `db:"created_at"`
}

// AdvanceRequest is a row of advance_requests.
type AdvanceRequest struct {
	RequestID    string          `db:"request_id"`
	EmployeeID   string          `db:"employee_id"`
	Amount       decimal.Decimal `db:"amount"`
	Reason       string          `db:"reason"`
	Status       string          `db:"status"`
	RequestedBy  string          `db:"requested_by"`
	RequestedAt  time.Time       `db:"requested_at"`
	DecidedBy    *string         `db:"decided_by"`
	DecidedAt    *time.Time      `db:"decided_at"`
	DecisionNote *string         `db:"decision_note"`
	AdvanceID    *string         `db:"advance_id"`
}
