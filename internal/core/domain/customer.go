package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the persisted or derived state of an invoice.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue" // derived only, never stored
)

// Customer is the customer aggregate with its invoices.
type Customer struct {
	CustomerID    string          `json:"customerID"`
	Name          string          `json:"name"`
	ContactPerson string          `json:"contactPerson"`
	Invoices      []Invoice       `json:"invoices"`
	TotalInvoiced decimal.Decimal `json:"totalInvoiced"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	AuditFields
}

// Invoice is a receivable issued to a customer.
type Invoice struct {
	InvoiceID  string          `json:"invoiceID"`
	CustomerID string          `json:"customerID"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    time.Time       `json:"dueDate"`
	Status     InvoiceStatus   `json:"status"`
	PaidDate   *time.Time      `json:"paidDate,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// DisplayStatus reports overdue for pending invoices past their due date.
func (i Invoice) DisplayStatus(now time.Time) InvoiceStatus {
	if i.Status == InvoicePending && i.DueDate.Before(now) {
		return InvoiceOverdue
	}
	return i.Status
}

// Outstanding is the amount invoiced but not yet collected.
func (c Customer) Outstanding() decimal.Decimal {
	return c.TotalInvoiced.Sub(c.TotalPaid)
}
