package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
)

// CustomerReader defines read operations for customer aggregates
type CustomerReader interface {
	// FindCustomerByID loads a customer with its invoices.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers returns a page of customers with invoices, ordered by name.
	ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error)
}

// CustomerWriter defines write operations for customer aggregates
type CustomerWriter interface {
	CreateCustomer(ctx context.Context, customer domain.Customer) error

	// DeleteCustomer removes the customer and its invoices and records the audit event in the
	// same transaction. Ledger entries referencing it are kept.
	DeleteCustomer(ctx context.Context, customerID string, audit domain.AuditRecord) error

	// AddInvoice appends an invoice and increments totalInvoiced atomically.
	AddInvoice(ctx context.Context, invoice domain.Invoice, audit domain.AuditRecord) (*domain.Customer, error)

	// MarkInvoicePaid sets the invoice paid, increments totalPaid and appends the revenue entry
	// atomically. An already paid invoice returns apperrors.ErrConflict.
	MarkInvoicePaid(ctx context.Context, customerID, invoiceID string, paidAt time.Time, entry domain.LedgerEntry, audit domain.AuditRecord) (*domain.Invoice, *domain.LedgerEntry, error)
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
