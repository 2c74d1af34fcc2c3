package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger is a row of the ledgers table.
type Ledger struct {
	LedgerID      string          `db:"ledger_id"`
	Balance       decimal.Decimal `db:"balance"`
	EntryCount    int64           `db:"entry_count"`
	CreatedAt     time.Time       `db:"created_at"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
}

// LedgerEntry is a row of the ledger_entries table. Rows are never updated.
type LedgerEntry struct {
	EntryID      string          `db:"entry_id"`
	LedgerID     string          `db:"ledger_id"`
	Seq          int64           `db:"seq"`
	EntryDate    time.Time       `db:"entry_date"`
	EntryType    string          `db:"entry_type"`
	Amount       decimal.Decimal `db:"amount"`
	Description  string          `db:"description"`
	Category     string          `db:"category"`
	EmployeeID   *string         `db:"employee_id"`
	EmployeeName *string         `db:"employee_name"`
	QIDNumber    *string         `db:"qid_number"`
	CustomerID   *string         `db:"customer_id"`
	CreatedBy    string          `db:"created_by"`
	CreatedAt    time.Time       `db:"created_at"`
}
