package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/apperrors"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/staff_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/staff_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerService implements customer and invoice operations.
type CustomerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, options ...Option) *CustomerService {
	return &CustomerService{
		BaseService:  newBaseService(options),
		customerRepo: customerRepo,
	}
}

var _ portssvc.CustomerSvcFacade = (*CustomerService)(nil)

func (s *CustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("customer name is required")
	}

	customer := domain.Customer{
		CustomerID:    uuid.NewString(),
		Name:          name,
		ContactPerson: strings.TrimSpace(req.ContactPerson),
		Invoices:      []domain.Invoice{},
		TotalInvoiced: decimal.Zero,
		TotalPaid:     decimal.Zero,
	}
	customer.Stamp(creatorUserID, s.Now())

	if err := s.customerRepo.CreateCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to create customer", slog.String("customer_id", customer.CustomerID))
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.LogInfo(ctx, "Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load customer", slog.String("customer_id", customerID))
		}
		return nil, fmt.Errorf("failed to get customer %s: %w", customerID, err)
	}
	return customer, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, *string, error) {
	customers, nextToken, err := s.customerRepo.ListCustomers(ctx, normalizeLimit(params.Limit), params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers")
		return nil, nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nextToken, nil
}

// DeleteCustomer removes the customer and its invoices. Revenue entries that reference it stay in
// the ledger.
func (s *CustomerService) DeleteCustomer(ctx context.Context, customerID string, userID string) error {
	audit := s.newAuditRecord(domain.AuditCustomerDeleted, nil, map[string]interface{}{
		"customerID": customerID,
	}, userID, s.Now())
	if err := s.customerRepo.DeleteCustomer(ctx, customerID, audit); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete customer", slog.String("customer_id", customerID))
		}
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}
	s.LogInfo(ctx, "Customer deleted", slog.String("customer_id", customerID), slog.String("user_id", userID))
	return nil
}

func (s *CustomerService) AddInvoice(ctx context.Context, customerID string, req dto.AddInvoiceRequest, userID string) (*domain.Customer, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("invoice amount must be greater than zero")
	}
	if req.DueDate.IsZero() {
		return nil, apperrors.NewValidationError("invoice due date is required")
	}

	now := s.Now()
	invoice := domain.Invoice{
		InvoiceID:  uuid.NewString(),
		CustomerID: customerID,
		Amount:     req.Amount,
		DueDate:    req.DueDate.UTC(),
		Status:     domain.InvoicePending,
		CreatedAt:  now,
	}
	audit := s.newAuditRecord(domain.AuditInvoiceAdded, nil, map[string]interface{}{
		"customerID": customerID,
		"invoiceID":  invoice.InvoiceID,
		"amount":     invoice.Amount.String(),
		"dueDate":    invoice.DueDate.Format(time.RFC3339),
	}, userID, now)

	customer, err := s.customerRepo.AddInvoice(ctx, invoice, audit)
	if err != nil {
		s.LogError(ctx, err, "Failed to add invoice", slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to add invoice to customer %s: %w", customerID, err)
	}

	s.LogInfo(ctx, "Invoice added", slog.String("customer_id", customerID), slog.String("invoice_id", invoice.InvoiceID))
	return customer, nil
}

// MarkInvoicePaid collects an invoice and books the matching revenue credit in the same transaction.
func (s *CustomerService) MarkInvoicePaid(ctx context.Context, customerID, invoiceID string, req dto.PayInvoiceRequest, userID string) (*domain.Invoice, *domain.LedgerEntry, error) {
	now := s.Now()
	paidAt := dateOr(req.PaidDate, now)
	custID := customerID

	// amount comes from the locked invoice row
	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		LedgerID:    domain.MainLedgerID,
		Date:        paidAt,
		Type:        domain.Credit,
		Description: fmt.Sprintf("Payment for invoice %s", invoiceID),
		Category:    domain.CategoryRevenue,
		CustomerID:  &custID,
		CreatedBy:   userID,
		CreatedAt:   now,
	}
	audit := s.newAuditRecord(domain.AuditInvoicePaid, nil, map[string]interface{}{
		"customerID":    customerID,
		"invoiceID":     invoiceID,
		"paidDate":      paidAt.Format(time.RFC3339),
		"ledgerEntryID": entry.EntryID,
	}, userID, now)

	invoice, saved, err := s.customerRepo.MarkInvoicePaid(ctx, customerID, invoiceID, paidAt, entry, audit)
	if err != nil {
		s.LogError(ctx, err, "Failed to mark invoice paid",
			slog.String("customer_id", customerID),
			slog.String("invoice_id", invoiceID))
		return nil, nil, fmt.Errorf("failed to mark invoice %s paid: %w", invoiceID, err)
	}

	s.LogInfo(ctx, "Invoice paid",
		slog.String("customer_id", customerID),
		slog.String("invoice_id", invoiceID),
		slog.String("amount", invoice.Amount.String()))
	return invoice, saved, nil
}
