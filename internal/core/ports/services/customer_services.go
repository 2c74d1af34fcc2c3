package services

import (
	"context"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/SscSPs/staff_ledger_app/internal/dto"
)

// CustomerReaderSvc defines read operations for customers
type CustomerReaderSvc interface {
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, *string, error)
}

// CustomerWriterSvc defines write operations for customers and invoices
type CustomerWriterSvc interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string, userID string) error
	AddInvoice(ctx context.Context, customerID string, req dto.AddInvoiceRequest, userID string) (*domain.Customer, error)
	MarkInvoicePaid(ctx context.Context, customerID, invoiceID string, req dto.PayInvoiceRequest, userID string) (*domain.Invoice, *domain.LedgerEntry, error)
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}
