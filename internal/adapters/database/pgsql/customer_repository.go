package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/apperrors"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/staff_ledger_app/internal/models"
	"github.com/SscSPs/staff_ledger_app/internal/utils/mapping"
	"github.com/SscSPs/staff_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const customerColumns = `customer_id, name, contact_person, total_invoiced, total_paid,
		created_at, created_by, last_updated_at, last_updated_by`

const invoiceColumns = `invoice_id, customer_id, amount, due_date, status, paid_date, created_at`

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customers and invoices.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(&m.CustomerID, &m.Name, &m.ContactPerson, &m.TotalInvoiced, &m.TotalPaid,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(&m.InvoiceID, &m.CustomerID, &m.Amount, &m.DueDate, &m.Status, &m.PaidDate, &m.CreatedAt)
	return m, err
}

// CreateCustomer inserts a new customer row.
func (r *PgxCustomerRepository) CreateCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`, m.CustomerID, m.Name, m.ContactPerson, m.TotalInvoiced, m.TotalPaid, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert customer "+m.CustomerID, err)
	}
	return nil
}

// FindCustomerByID retrieves a customer with its invoices.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	m, err := scanCustomer(r.Pool.QueryRow(ctx, "SELECT "+customerColumns+" FROM customers WHERE customer_id = $1;", customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer by ID "+customerID, err)
	}
	invoices, err := r.loadInvoices(ctx, []string{customerID})
	if err != nil {
		return nil, err
	}
	c := mapping.ToDomainCustomer(m)
	if inv, ok := invoices[customerID]; ok {
		c.Invoices = inv
	}
	return &c, nil
}

func (r *PgxCustomerRepository) loadInvoices(ctx context.Context, customerIDs []string) (map[string][]domain.Invoice, error) {
	out := map[string][]domain.Invoice{}
	if len(customerIDs) == 0 {
		return out, nil
	}
	rows, err := r.Pool.Query(ctx,
		"SELECT "+invoiceColumns+" FROM invoices WHERE customer_id = ANY($1) ORDER BY created_at ASC, invoice_id ASC;",
		customerIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoices", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		out[m.CustomerID] = append(out[m.CustomerID], mapping.ToDomainInvoice(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}
	return out, nil
}

// ListCustomers retrieves a page of customers ordered by name using keyset pagination.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	args := queryArgs{}
	query := "SELECT " + customerColumns + " FROM customers"
	if nextToken != nil && *nextToken != "" {
		lastName, lastID, decodeErr := pagination.DecodeKeysetToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += " WHERE (name, customer_id) > (" + args.add(lastName) + ", " + args.add(lastID) + ")"
	}
	query += " ORDER BY name ASC, customer_id ASC LIMIT " + args.add(fetchLimit) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query customers", err)
	}
	defer rows.Close()

	modelCustomers := make([]models.Customer, 0, fetchLimit)
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan customer row", err)
		}
		modelCustomers = append(modelCustomers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating customer rows", err)
	}
	rows.Close()

	var nextTokenVal *string
	results := modelCustomers
	if len(modelCustomers) > limit {
		last := modelCustomers[limit-1]
		token := pagination.EncodeKeysetToken(last.Name, last.CustomerID)
		nextTokenVal = &token
		results = modelCustomers[:limit]
	}

	ids := make([]string, len(results))
	for i, m := range results {
		ids[i] = m.CustomerID
	}
	invoices, err := r.loadInvoices(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	customers := make([]domain.Customer, len(results))
	for i, m := range results {
		customers[i] = mapping.ToDomainCustomer(m)
		if inv, ok := invoices[m.CustomerID]; ok {
			customers[i].Invoices = inv
		}
	}
	return customers, nextTokenVal, nil
}

// DeleteCustomer removes the customer; invoices cascade, ledger entries are untouched.
func (r *PgxCustomerRepository) DeleteCustomer(ctx context.Context, customerID string, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, "DELETE FROM customers WHERE customer_id = $1;", customerID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete customer "+customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	if err := insertAuditTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// AddInvoice appends an invoice and increments totalInvoiced atomically.
func (r *PgxCustomerRepository) AddInvoice(ctx context.Context, invoice domain.Invoice, audit domain.AuditRecord) (*domain.Customer, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelInvoice(invoice)
	tag, err := tx.Exec(ctx, `
		UPDATE customers SET total_invoiced = total_invoiced + $1, last_updated_at = $2
		WHERE customer_id = $3;
	`, m.Amount, m.CreatedAt, m.CustomerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update totals of customer "+m.CustomerID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NewNotFoundError("customer " + m.CustomerID)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, m.InvoiceID, m.CustomerID, m.Amount, m.DueDate, m.Status, m.PaidDate, m.CreatedAt)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}
	if err := insertAuditTx(ctx, tx, audit); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return r.FindCustomerByID(ctx, m.CustomerID)
}

// MarkInvoicePaid settles a pending invoice and records the revenue entry atomically.
func (r *PgxCustomerRepository) MarkInvoicePaid(ctx context.Context, customerID, invoiceID string, paidAt time.Time, entry domain.LedgerEntry, audit domain.AuditRecord) (*domain.Invoice, *domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	m, err := scanInvoice(tx.QueryRow(ctx,
		"SELECT "+invoiceColumns+" FROM invoices WHERE invoice_id = $1 AND customer_id = $2 FOR UPDATE;",
		invoiceID, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFoundError("invoice " + invoiceID)
		}
		return nil, nil, apperrors.NewAppError(500, "failed to lock invoice "+invoiceID, err)
	}
	if domain.InvoiceStatus(m.Status) == domain.InvoicePaid {
		return nil, nil, apperrors.NewConflictError("invoice " + invoiceID + " is already paid")
	}

	if _, err := tx.Exec(ctx, "UPDATE invoices SET status = $1, paid_date = $2 WHERE invoice_id = $3;",
		string(domain.InvoicePaid), paidAt, invoiceID); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to mark invoice "+invoiceID+" paid", err)
	}
	if _, err := tx.Exec(ctx, `
		UPDATE customers SET total_paid = total_paid + $1, last_updated_at = $2, last_updated_by = $3
		WHERE customer_id = $4;
	`, m.Amount, entry.CreatedAt, entry.CreatedBy, customerID); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to update totals of customer "+customerID, err)
	}

	entry.Amount = m.Amount
	entry.CustomerID = &customerID
	savedEntry, err := appendEntryTx(ctx, tx, entry)
	if err != nil {
		return nil, nil, err
	}
	if err := insertAuditTx(ctx, tx, audit); err != nil {
		return nil, nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	m.Status = string(domain.InvoicePaid)
	m.PaidDate = &paidAt
	inv := mapping.ToDomainInvoice(m)
	return &inv, savedEntry, nil
}
