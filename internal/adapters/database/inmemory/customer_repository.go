package inmemory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/apperrors"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/staff_ledger_app/internal/utils/pagination"
)

type CustomerRepository struct {
	store *Store
}

var _ portsrepo.CustomerRepositoryFacade = (*CustomerRepository)(nil)

func (r *CustomerRepository) CreateCustomer(ctx context.Context, customer domain.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.customers[customer.CustomerID]; exists {
		return apperrors.ErrDuplicate
	}
	stored := cloneCustomer(&customer)
	r.store.customers[customer.CustomerID] = &stored
	return nil
}

func (r *CustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	c, ok := r.store.customers[customerID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := cloneCustomer(c)
	return &out, nil
}

func (r *CustomerRepository) ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	var lastName, lastID string
	hasCursor := nextToken != nil && *nextToken != ""
	if hasCursor {
		var err error
		lastName, lastID, err = pagination.DecodeKeysetToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
	}

	r.store.mu.RLock()
	all := make([]domain.Customer, 0, len(r.store.customers))
	for _, c := range r.store.customers {
		if hasCursor && !afterKeyset(c.Name, c.CustomerID, lastName, lastID) {
			continue
		}
		all = append(all, cloneCustomer(c))
	}
	r.store.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return afterKeyset(all[j].Name, all[j].CustomerID, all[i].Name, all[i].CustomerID)
	})

	var nextTokenVal *string
	if len(all) > limit {
		last := all[limit-1]
		token := pagination.EncodeKeysetToken(last.Name, last.CustomerID)
		nextTokenVal = &token
		all = all[:limit]
	}
	return all, nextTokenVal, nil
}

func (r *CustomerRepository) DeleteCustomer(ctx context.Context, customerID string, audit domain.AuditRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.customers[customerID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.store.customers, customerID)
	r.store.appendAuditLocked(audit)
	return nil
}

func (r *CustomerRepository) AddInvoice(ctx context.Context, invoice domain.Invoice, audit domain.AuditRecord) (*domain.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.customers[invoice.CustomerID]
	if !ok {
		return nil, apperrors.NewNotFoundError("customer " + invoice.CustomerID)
	}
	c.Invoices = append(c.Invoices, invoice)
	c.TotalInvoiced = c.TotalInvoiced.Add(invoice.Amount)
	c.LastUpdatedAt = invoice.CreatedAt
	r.store.appendAuditLocked(audit)
	out := cloneCustomer(c)
	return &out, nil
}

func (r *CustomerRepository) MarkInvoicePaid(ctx context.Context, customerID, invoiceID string, paidAt time.Time, entry domain.LedgerEntry, audit domain.AuditRecord) (*domain.Invoice, *domain.LedgerEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.customers[customerID]
	if !ok {
		return nil, nil, apperrors.NewNotFoundError("invoice " + invoiceID)
	}
	for i := range c.Invoices {
		inv := &c.Invoices[i]
		if inv.InvoiceID != invoiceID {
			continue
		}
		if inv.Status == domain.InvoicePaid {
			return nil, nil, apperrors.NewConflictError("invoice " + invoiceID + " is already paid")
		}
		entry.Amount = inv.Amount
		entry.CustomerID = &customerID
		saved, err := r.store.appendEntryLocked(entry)
		if err != nil {
			return nil, nil, err
		}
		inv.Status = domain.InvoicePaid
		at := paidAt
		inv.PaidDate = &at
		c.TotalPaid = c.TotalPaid.Add(inv.Amount)
		c.Touch(entry.CreatedBy, entry.CreatedAt)
		r.store.appendAuditLocked(audit)
		out := *inv
		return &out, saved, nil
	}
	return nil, nil, apperrors.NewNotFoundError("invoice " + invoiceID)
}
