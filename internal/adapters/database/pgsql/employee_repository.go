package pgsql

import (
	"context"
	"errors"
	"strings"
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

const employeeColumns = `employee_id, name, email, qid_number, qid_expiry, passport_number, passport_expiry,
		salary, department, total_paid, version, created_at, created_by, last_updated_at, last_updated_by`

const employeeTransactionColumns = `transaction_id, employee_id, txn_date, amount, txn_type, description,
		processed_by, ledger_entry_id, created_at`

const employeeAdvanceColumns = `advance_id, employee_id, advance_date, amount, repaid, repaid_date, description,
		ledger_entry_id, created_at`

const advanceRequestColumns = `request_id, employee_id, amount, reason, status, requested_by, requested_at,
		decided_by, decided_at, decision_note, advance_id`

type PgxEmployeeRepository struct {
	BaseRepository
}

// newPgxEmployeeRepository creates a new repository for employees and their payroll history.
func newPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

func scanEmployee(row pgx.Row) (models.Employee, error) {
	var m models.Employee
	err := row.Scan(
		&m.EmployeeID,
		&m.Name,
		&m.Email,
		&m.QIDNumber,
		&m.QIDExpiry,
		&m.PassportNumber,
		&m.PassportExpiry,
		&m.Salary,
		&m.Department,
		&m.TotalPaid,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanEmployeeTransaction(row pgx.Row) (models.EmployeeTransaction, error) {
	var m models.EmployeeTransaction
	err := row.Scan(&m.TransactionID, &m.EmployeeID, &m.TxnDate, &m.Amount, &m.TxnType, &m.Description,
		&m.ProcessedBy, &m.LedgerEntryID, &m.CreatedAt)
	return m, err
}

func scanEmployeeAdvance(row pgx.Row) (models.EmployeeAdvance, error) {
	var m models.EmployeeAdvance
	err := row.Scan(&m.AdvanceID, &m.EmployeeID, &m.AdvanceDate, &m.Amount, &m.Repaid, &m.RepaidDate,
		&m.Description, &m.LedgerEntryID, &m.CreatedAt)
	return m, err
}

func scanAdvanceRequest(row pgx.Row) (models.AdvanceRequest, error) {
	var m models.AdvanceRequest
	err := row.Scan(&m.RequestID, &m.EmployeeID, &m.Amount, &m.Reason, &m.Status, &m.RequestedBy,
		&m.RequestedAt, &m.DecidedBy, &m.DecidedAt, &m.DecisionNote, &m.AdvanceID)
	return m, err
}

// CreateEmployee inserts the employee with its audit record and optional welcome notification.
func (r *PgxEmployeeRepository) CreateEmployee(ctx context.Context, employee domain.Employee, audit domain.AuditRecord, welcome *domain.Notification) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelEmployee(employee)
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, query,
		m.EmployeeID,
		m.Name,
		m.Email,
		m.QIDNumber,
		m.QIDExpiry,
		m.PassportNumber,
		m.PassportExpiry,
		m.Salary,
		m.Department,
		m.TotalPaid,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert employee "+m.EmployeeID, err)
	}
	if err := insertAuditTx(ctx, tx, audit); err != nil {
		return err
	}
	if welcome != nil {
		if err := insertNotificationTx(ctx, tx, *welcome); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

// FindEmployeeByID retrieves an employee with transactions, advances and advance requests.
func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	m, err := scanEmployee(r.Pool.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE employee_id = $1;", employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find employee by ID "+employeeID, err)
	}
	emp := mapping.ToDomainEmployee(m)

	txns, err := r.loadTransactions(ctx, &employeeID)
	if err != nil {
		return nil, err
	}
	advances, err := r.loadAdvances(ctx, []string{employeeID})
	if err != nil {
		return nil, err
	}
	requests, err := r.ListAdvanceRequests(ctx, employeeID, nil)
	if err != nil {
		return nil, err
	}
	if t, ok := txns[employeeID]; ok {
		emp.Transactions = t
	}
	if a, ok := advances[employeeID]; ok {
		emp.Advances = a
	}
	emp.AdvanceRequests = requests
	return &emp, nil
}

// loadTransactions groups transactions by employee. A nil employeeID loads all of them.
func (r *PgxEmployeeRepository) loadTransactions(ctx context.Context, employeeID *string) (map[string][]domain.EmployeeTransaction, error) {
	query := "SELECT " + employeeTransactionColumns + " FROM employee_transactions"
	args := queryArgs{}
	if employeeID != nil {
		query += " WHERE employee_id = " + args.add(*employeeID)
	}
	query += " ORDER BY seq ASC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query employee transactions", err)
	}
	defer rows.Close()

	out := map[string][]domain.EmployeeTransaction{}
	for rows.Next() {
		m, err := scanEmployeeTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan employee transaction row", err)
		}
		out[m.EmployeeID] = append(out[m.EmployeeID], mapping.ToDomainEmployeeTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating employee transaction rows", err)
	}
	return out, nil
}

// loadAdvances groups advances by employee. A nil employeeIDs slice loads all of them.
func (r *PgxEmployeeRepository) loadAdvances(ctx context.Context, employeeIDs []string) (map[string][]domain.Advance, error) {
	query := "SELECT " + employeeAdvanceColumns + " FROM employee_advances"
	args := queryArgs{}
	if employeeIDs != nil {
		query += " WHERE employee_id = ANY(" + args.add(employeeIDs) + ")"
	}
	query += " ORDER BY created_at ASC, advance_id ASC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query employee advances", err)
	}
	defer rows.Close()

	out := map[string][]domain.Advance{}
	for rows.Next() {
		m, err := scanEmployeeAdvance(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan employee advance row", err)
		}
		out[m.EmployeeID] = append(out[m.EmployeeID], mapping.ToDomainAdvance(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating employee advance rows", err)
	}
	return out, nil
}

// ListEmployees retrieves a page of employees ordered by name using keyset pagination.
func (r *PgxEmployeeRepository) ListEmployees(ctx context.Context, department *string, limit int, nextToken *string) ([]domain.Employee, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	args := queryArgs{}
	where := []string{"TRUE"}
	if department != nil && *department != "" {
		where = append(where, "department = "+args.add(*department))
	}
	if nextToken != nil && *nextToken != "" {
		lastName, lastID, decodeErr := pagination.DecodeKeysetToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		where = append(where, "(name, employee_id) > ("+args.add(lastName)+", "+args.add(lastID)+")")
	}
	query := "SELECT " + employeeColumns + " FROM employees WHERE " + strings.Join(where, " AND ") +
		" ORDER BY name ASC, employee_id ASC LIMIT " + args.add(fetchLimit) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query employees", err)
	}
	defer rows.Close()

	modelEmployees := make([]models.Employee, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEmployee(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan employee row", err)
		}
		modelEmployees = append(modelEmployees, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating employee rows", err)
	}

	var nextTokenVal *string
	results := modelEmployees
	if len(modelEmployees) > limit {
		last := modelEmployees[limit-1]
		token := pagination.EncodeKeysetToken(last.Name, last.EmployeeID)
		nextTokenVal = &token
		results = modelEmployees[:limit]
	}

	employees := make([]domain.Employee, len(results))
	ids := make([]string, len(results))
	for i, m := range results {
		employees[i] = mapping.ToDomainEmployee(m)
		ids[i] = m.EmployeeID
	}
	if len(ids) == 0 {
		return employees, nextTokenVal, nil
	}

	// list rows carry advances so pending totals match the per-employee endpoint
	advances, err := r.loadAdvances(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	for i := range employees {
		if a, ok := advances[employees[i].EmployeeID]; ok {
			employees[i].Advances = a
		}
	}
	return employees, nextTokenVal, nil
}

// ListAllEmployees loads every employee with transactions and advances in three queries.
func (r *PgxEmployeeRepository) ListAllEmployees(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.Pool.Query(ctx, "SELECT "+employeeColumns+" FROM employees ORDER BY name ASC, employee_id ASC;")
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query employees", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		m, err := scanEmployee(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan employee row", err)
		}
		employees = append(employees, mapping.ToDomainEmployee(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating employee rows", err)
	}
	rows.Close()

	txns, err := r.loadTransactions(ctx, nil)
	if err != nil {
		return nil, err
	}
	advances, err := r.loadAdvances(ctx, nil)
	if err != nil {
		return nil, err
	}
	for i := range employees {
		id := employees[i].EmployeeID
		if t, ok := txns[id]; ok {
			employees[i].Transactions = t
		}
		if a, ok := advances[id]; ok {
			employees[i].Advances = a
		}
	}
	return employees, nil
}

// UpdateEmployee saves profile fields with an optimistic version check.
func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee, expectedVersion int64, audit domain.AuditRecord) (*domain.Employee, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelEmployee(employee)
	query := `
		UPDATE employees
		SET name = $1, email = $2, qid_number = $3, qid_expiry = $4, passport_number = $5, passport_expiry = $6,
		    salary = $7, department = $8, version = version + 1, last_updated_at = $9, last_updated_by = $10
		WHERE employee_id = $11 AND version = $12;
	`
	tag, err := tx.Exec(ctx, query,
		m.Name,
		m.Email,
		m.QIDNumber,
		m.QIDExpiry,
		m.PassportNumber,
		m.PassportExpiry,
		m.Salary,
		m.Department,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.EmployeeID,
		expectedVersion,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update employee "+m.EmployeeID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM employees WHERE employee_id = $1);", m.EmployeeID).Scan(&exists); err != nil {
			return nil, apperrors.NewAppError(500, "failed to check employee "+m.EmployeeID, err)
		}
		if !exists {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewConflictError("employee " + m.EmployeeID + " was modified concurrently")
	}
	if err := insertAuditTx(ctx, tx, audit); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return r.FindEmployeeByID(ctx, m.EmployeeID)
}

// PostPayroll applies a payroll posting in one transaction.
func (r *PgxEmployeeRepository) PostPayroll(ctx context.Context, posting domain.PayrollPosting) (*domain.PayrollPosting, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	saved, err := postPayrollTx(ctx, tx, posting)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return saved, nil
}

// postPayrollTx locks the employee row, appends the mirrored ledger entry, the transaction and
// optional advance, bumps totalPaid and version and writes the audit record.
func postPayrollTx(ctx context.Context, tx pgx.Tx, posting domain.PayrollPosting) (*domain.PayrollPosting, error) {
	var name string
	var qid *string
	err := tx.QueryRow(ctx, "SELECT name, qid_number FROM employees WHERE employee_id = $1 FOR UPDATE;", posting.EmployeeID).Scan(&name, &qid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("employee " + posting.EmployeeID)
		}
		return nil, apperrors.NewAppError(500, "failed to lock employee "+posting.EmployeeID, err)
	}

	entry := posting.LedgerEntry
	employeeID := posting.EmployeeID
	entry.EmployeeID = &employeeID
	entry.EmployeeName = &name
	entry.QIDNumber = qid
	savedEntry, err := appendEntryTx(ctx, tx, entry)
	if err != nil {
		return nil, err
	}
	posting.LedgerEntry = *savedEntry

	txn := posting.Transaction
	txn.LedgerEntryID = &savedEntry.EntryID
	mt := mapping.ToModelEmployeeTransaction(txn)
	_, err = tx.Exec(ctx, `
		INSERT INTO employee_transactions (`+employeeTransactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`, mt.TransactionID, mt.EmployeeID, mt.TxnDate, mt.Amount, mt.TxnType, mt.Description, mt.ProcessedBy, mt.LedgerEntryID, mt.CreatedAt)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert employee transaction "+mt.TransactionID, err)
	}
	posting.Transaction = txn

	if posting.Advance != nil {
		adv := *posting.Advance
		adv.LedgerEntryID = &savedEntry.EntryID
		ma := mapping.ToModelAdvance(adv)
		_, err = tx.Exec(ctx, `
			INSERT INTO employee_advances (`+employeeAdvanceColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`, ma.AdvanceID, ma.EmployeeID, ma.AdvanceDate, ma.Amount, ma.Repaid, ma.RepaidDate, ma.Description, ma.LedgerEntryID, ma.CreatedAt)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to insert employee advance "+ma.AdvanceID, err)
		}
		posting.Advance = &adv
	}

	_, err = tx.Exec(ctx, `
		UPDATE employees
		SET total_paid = total_paid + $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
		WHERE employee_id = $4;
	`, txn.Amount, txn.CreatedAt, txn.ProcessedBy, posting.EmployeeID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update totals of employee "+posting.EmployeeID, err)
	}

	if err := insertAuditTx(ctx, tx, posting.Audit); err != nil {
		return nil, err
	}
	return &posting, nil
}

// MarkAdvanceRepaid flips an unrepaid advance to repaid.
func (r *PgxEmployeeRepository) MarkAdvanceRepaid(ctx context.Context, employeeID, advanceID string, repaidAt time.Time, audit domain.AuditRecord) (*domain.Advance, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m, err := scanEmployeeAdvance(tx.QueryRow(ctx,
		"SELECT "+employeeAdvanceColumns+" FROM employee_advances WHERE advance_id = $1 AND employee_id = $2 FOR UPDATE;",
		advanceID, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("advance " + advanceID)
		}
		return nil, apperrors.NewAppError(500, "failed to lock advance "+advanceID, err)
	}
	if m.Repaid {
		return nil, apperrors.NewConflictError("advance " + advanceID + " is already repaid")
	}

	if _, err := tx.Exec(ctx, "UPDATE employee_advances SET repaid = TRUE, repaid_date = $1 WHERE advance_id = $2;", repaidAt, advanceID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to mark advance "+advanceID+" repaid", err)
	}
	if err := insertAuditTx(ctx, tx, audit); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	m.Repaid = true
	m.RepaidDate = &repaidAt
	adv := mapping.ToDomainAdvance(m)
	return &adv, nil
}

// CreateAdvanceRequest stores a new PENDING request with its audit record.
func (r *PgxEmployeeRepository) CreateAdvanceRequest(ctx context.Context, req domain.AdvanceRequest, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelAdvanceRequest(req)
	_, err = tx.Exec(ctx, `
		INSERT INTO advance_requests (`+advanceRequestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`, m.RequestID, m.EmployeeID, m.Amount, m.Reason, m.Status, m.RequestedBy, m.RequestedAt, m.DecidedBy, m.DecidedAt, m.DecisionNote, m.AdvanceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert advance request "+m.RequestID, err)
	}
	if err := insertAuditTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindAdvanceRequestByID retrieves a single advance request.
func (r *PgxEmployeeRepository) FindAdvanceRequestByID(ctx context.Context, requestID string) (*domain.AdvanceRequest, error) {
	m, err := scanAdvanceRequest(r.Pool.QueryRow(ctx, "SELECT "+advanceRequestColumns+" FROM advance_requests WHERE request_id = $1;", requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find advance request "+requestID, err)
	}
	req := mapping.ToDomainAdvanceRequest(m)
	return &req, nil
}

// ListAdvanceRequests returns an employee's requests, newest first, optionally by status.
func (r *PgxEmployeeRepository) ListAdvanceRequests(ctx context.Context, employeeID string, status *domain.AdvanceRequestStatus) ([]domain.AdvanceRequest, error) {
	args := queryArgs{}
	query := "SELECT " + advanceRequestColumns + " FROM advance_requests WHERE employee_id = " + args.add(employeeID)
	if status != nil {
		query += " AND status = " + args.add(string(*status))
	}
	query += " ORDER BY requested_at DESC, request_id ASC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query advance requests for employee "+employeeID, err)
	}
	defer rows.Close()

	out := []domain.AdvanceRequest{}
	for rows.Next() {
		m, err := scanAdvanceRequest(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan advance request row", err)
		}
		out = append(out, mapping.ToDomainAdvanceRequest(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating advance request rows", err)
	}
	return out, nil
}

// UpdateAdvanceRequestStatus moves the request from expected to req.Status.
func (r *PgxEmployeeRepository) UpdateAdvanceRequestStatus(ctx context.Context, req domain.AdvanceRequest, expected domain.AdvanceRequestStatus, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE advance_requests
		SET status = $1, decided_by = $2, decided_at = $3, decision_note = $4
		WHERE request_id = $5 AND status = $6;
	`, string(req.Status), req.DecidedBy, req.DecidedAt, req.DecisionNote, req.RequestID, string(expected))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update advance request "+req.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("advance request " + req.RequestID + " is no longer " + string(expected))
	}
	if err := insertAuditTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DisburseAdvanceRequest posts the advance and marks the request DISBURSED atomically.
func (r *PgxEmployeeRepository) DisburseAdvanceRequest(ctx context.Context, requestID string, posting domain.PayrollPosting, audit domain.AuditRecord) (*domain.PayrollPosting, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var status, employeeID string
	err = tx.QueryRow(ctx, "SELECT status, employee_id FROM advance_requests WHERE request_id = $1 FOR UPDATE;", requestID).Scan(&status, &employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("advance request " + requestID)
		}
		return nil, apperrors.NewAppError(500, "failed to lock advance request "+requestID, err)
	}
	if domain.AdvanceRequestStatus(status) != domain.RequestApproved {
		return nil, apperrors.NewConflictError("advance request " + requestID + " is " + status)
	}
	if employeeID != posting.EmployeeID || posting.Advance == nil {
		return nil, apperrors.NewValidationError("posting does not match advance request " + requestID)
	}

	saved, err := postPayrollTx(ctx, tx, posting)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx, "UPDATE advance_requests SET status = $1, advance_id = $2 WHERE request_id = $3;",
		string(domain.RequestDisbursed), saved.Advance.AdvanceID, requestID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to mark advance request "+requestID+" disbursed", err)
	}
	if err := insertAuditTx(ctx, tx, audit); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return saved, nil
}
