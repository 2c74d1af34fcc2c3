package dto

import (
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest defines the data needed to create a customer.
type CreateCustomerRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contactPerson"`
}

// AddInvoiceRequest defines a new receivable for a customer.
type AddInvoiceRequest struct {
	Amount  decimal.Decimal `json:"amount" binding:"dgt0"`
	DueDate time.Time       `json:"dueDate" binding:"required"`
}

// PayInvoiceRequest marks an invoice as collected.
type PayInvoiceRequest struct {
	PaidDate *time.Time `json:"paidDate"`
}

// ListCustomersParams defines query parameters for listing customers.
type ListCustomersParams struct {
	Limit     int     `form:"limit,default=50"`
	NextToken *string `form:"nextToken"`
}

// InvoiceResponse defines the data returned for an invoice. Status is the display status.
type InvoiceResponse struct {
	InvoiceID string               `json:"invoiceID"`
	Amount    decimal.Decimal      `json:"amount"`
	DueDate   time.Time            `json:"dueDate"`
	Status    domain.InvoiceStatus `json:"status"`
	PaidDate  *time.Time           `json:"paidDate,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID    string            `json:"customerID"`
	Name          string            `json:"name"`
	ContactPerson string            `json:"contactPerson"`
	Invoices      []InvoiceResponse `json:"invoices"`
	TotalInvoiced decimal.Decimal   `json:"totalInvoiced"`
	TotalPaid     decimal.Decimal   `json:"totalPaid"`
	Outstanding   decimal.Decimal   `json:"outstanding"`
	CreatedAt     time.Time         `json:"createdAt"`
	CreatedBy     string            `json:"createdBy"`
	LastUpdatedAt time.Time         `json:"lastUpdatedAt"`
}

// ListCustomersResponse wraps a page of customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// InvoicePaymentResponse returns the paid invoice and the revenue entry it produced.
type InvoicePaymentResponse struct {
	Invoice     InvoiceResponse     `json:"invoice"`
	LedgerEntry LedgerEntryResponse `json:"ledgerEntry"`
}

// ToInvoiceResponse converts a domain.Invoice, deriving overdue relative to now.
func ToInvoiceResponse(inv *domain.Invoice, now time.Time) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID: inv.InvoiceID,
		Amount:    inv.Amount,
		DueDate:   inv.DueDate,
		Status:    inv.DisplayStatus(now),
		PaidDate:  inv.PaidDate,
		CreatedAt: inv.CreatedAt,
	}
}

// ToCustomerResponse converts a domain.Customer.
func ToCustomerResponse(c *domain.Customer, now time.Time) CustomerResponse {
	res := CustomerResponse{
		CustomerID:    c.CustomerID,
		Name:          c.Name,
		ContactPerson: c.ContactPerson,
		Invoices:      make([]InvoiceResponse, len(c.Invoices)),
		TotalInvoiced: c.TotalInvoiced,
		TotalPaid:     c.TotalPaid,
		Outstanding:   c.Outstanding(),
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
		LastUpdatedAt: c.LastUpdatedAt,
	}
	for i := range c.Invoices {
		res.Invoices[i] = ToInvoiceResponse(&c.Invoices[i], now)
	}
	return res
}

// ToListCustomerResponse converts a slice of domain.Customer.
func ToListCustomerResponse(customers []domain.Customer, now time.Time) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i := range customers {
		res[i] = ToCustomerResponse(&customers[i], now)
	}
	return res
}
