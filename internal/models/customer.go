package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a row of the customers table.
type Customer struct {
	CustomerID    string          `db:"customer_id"`
	Name          string          `db:"name"`
	ContactPerson string          `db:"contact_person"`
	TotalInvoiced decimal.Decimal `db:"total_invoiced"`
	TotalPaid     decimal.Decimal `db:"total_paid"`
	AuditFields
}

// Invoice is a row of the invoices table. Status is pending or paid only.
type Invoice struct {
	InvoiceID  string          `db:"invoice_id"`
	CustomerID string          `db:"customer_id"`
	Amount     decimal.Decimal `db:"amount"`
	DueDate    time.Time       `db:"due_date"`
	Status     string          `db:"status"`
	PaidDate   *time.Time      `db:"paid_date"`
	CreatedAt  time.Time       `db:"created_at"`
}
