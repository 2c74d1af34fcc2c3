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

type EmployeeRepository struct {
	store *Store
}

var _ portsrepo.EmployeeRepositoryFacade = (*EmployeeRepository)(nil)

func (r *EmployeeRepository) CreateEmployee(ctx context.Context, employee domain.Employee, audit domain.AuditRecord, welcome *domain.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.employees[employee.EmployeeID]; exists {
		return apperrors.ErrDuplicate
	}
	stored := cloneEmployee(&employee, nil)
	r.store.employees[employee.EmployeeID] = &stored
	r.store.appendAuditLocked(audit)
	if welcome != nil {
		r.store.notifications = append(r.store.notifications, *welcome)
	}
	return nil
}

// requestsForLocked returns an employee's requests newest first. Caller holds mu.
func (r *EmployeeRepository) requestsForLocked(employeeID string, status *domain.AdvanceRequestStatus) []domain.AdvanceRequest {
	out := []domain.AdvanceRequest{}
	for _, req := range r.store.requests {
		if req.EmployeeID != employeeID {
			continue
		}
		if status != nil && req.Status != *status {
			continue
		}
		out = append(out, *req)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RequestedAt.Equal(out[j].RequestedAt) {
			return out[i].RequestedAt.After(out[j].RequestedAt)
		}
		return out[i].RequestID < out[j].RequestID
	})
	return out
}

func (r *EmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	emp, ok := r.store.employees[employeeID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := cloneEmployee(emp, r.requestsForLocked(employeeID, nil))
	return &out, nil
}

func (r *EmployeeRepository) sortedLocked() []*domain.Employee {
	all := make([]*domain.Employee, 0, len(r.store.employees))
	for _, e := range r.store.employees {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		return afterKeyset(all[j].Name, all[j].EmployeeID, all[i].Name, all[i].EmployeeID)
	})
	return all
}

func (r *EmployeeRepository) ListEmployees(ctx context.Context, department *string, limit int, nextToken *string) ([]domain.Employee, *string, error) {
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
	defer r.store.mu.RUnlock()
	page := []domain.Employee{}
	for _, e := range r.sortedLocked() {
		if department != nil && *department != "" && e.Department != *department {
			continue
		}
		if hasCursor && !afterKeyset(e.Name, e.EmployeeID, lastName, lastID) {
			continue
		}
		out := cloneEmployee(e, nil)
		out.Transactions = []domain.EmployeeTransaction{}
		page = append(page, out)
		if len(page) > limit {
			break
		}
	}

	var nextTokenVal *string
	if len(page) > limit {
		last := page[limit-1]
		token := pagination.EncodeKeysetToken(last.Name, last.EmployeeID)
		nextTokenVal = &token
		page = page[:limit]
	}
	return page, nextTokenVal, nil
}

func (r *EmployeeRepository) ListAllEmployees(ctx context.Context) ([]domain.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := []domain.Employee{}
	for _, e := range r.sortedLocked() {
		out = append(out, cloneEmployee(e, nil))
	}
	return out, nil
}

func (r *EmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee, expectedVersion int64, audit domain.AuditRecord) (*domain.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.employees[employee.EmployeeID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return nil, apperrors.NewConflictError("employee " + employee.EmployeeID + " was modified concurrently")
	}
	stored.Name = employee.Name
	stored.Email = employee.Email
	stored.QID = employee.QID
	stored.Passport = employee.Passport
	stored.Salary = employee.Salary
	stored.Department = employee.Department
	stored.Version++
	stored.Touch(employee.LastUpdatedBy, employee.LastUpdatedAt)
	r.store.appendAuditLocked(audit)

	out := cloneEmployee(stored, r.requestsForLocked(stored.EmployeeID, nil))
	return &out, nil
}

func (r *EmployeeRepository) PostPayroll(ctx context.Context, posting domain.PayrollPosting) (*domain.PayrollPosting, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.postPayrollLocked(posting)
}

func (r *EmployeeRepository) postPayrollLocked(posting domain.PayrollPosting) (*domain.PayrollPosting, error) {
	emp, ok := r.store.employees[posting.EmployeeID]
	if !ok {
		return nil, apperrors.NewNotFoundError("employee " + posting.EmployeeID)
	}

	entry := posting.LedgerEntry
	employeeID, name := emp.EmployeeID, emp.Name
	entry.EmployeeID = &employeeID
	entry.EmployeeName = &name
	if emp.HasQID() {
		qid := emp.QID.Number
		entry.QIDNumber = &qid
	}
	saved, err := r.store.appendEntryLocked(entry)
	if err != nil {
		return nil, err
	}
	posting.LedgerEntry = *saved

	posting.Transaction.LedgerEntryID = &saved.EntryID
	emp.Transactions = append(emp.Transactions, posting.Transaction)
	if posting.Advance != nil {
		adv := *posting.Advance
		adv.LedgerEntryID = &saved.EntryID
		emp.Advances = append(emp.Advances, adv)
		posting.Advance = &adv
	}
	emp.TotalPaid = emp.TotalPaid.Add(posting.Transaction.Amount)
	emp.Version++
	emp.Touch(posting.Transaction.ProcessedBy, posting.Transaction.CreatedAt)
	r.store.appendAuditLocked(posting.Audit)
	return &posting, nil
}

func (r *EmployeeRepository) MarkAdvanceRepaid(ctx context.Context, employeeID, advanceID string, repaidAt time.Time, audit domain.AuditRecord) (*domain.Advance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	emp, ok := r.store.employees[employeeID]
	if !ok {
		return nil, apperrors.NewNotFoundError("employee " + employeeID)
	}
	for i := range emp.Advances {
		adv := &emp.Advances[i]
		if adv.AdvanceID != advanceID {
			continue
		}
		if adv.Repaid {
			return nil, apperrors.NewConflictError("advance " + advanceID + " is already repaid")
		}
		adv.Repaid = true
		at := repaidAt
		adv.RepaidDate = &at
		r.store.appendAuditLocked(audit)
		out := *adv
		return &out, nil
	}
	return nil, apperrors.NewNotFoundError("advance " + advanceID)
}

func (r *EmployeeRepository) CreateAdvanceRequest(ctx context.Context, req domain.AdvanceRequest, audit domain.AuditRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.employees[req.EmployeeID]; !ok {
		return apperrors.NewNotFoundError("employee " + req.EmployeeID)
	}
	stored := req
	r.store.requests[req.RequestID] = &stored
	r.store.appendAuditLocked(audit)
	return nil
}

func (r *EmployeeRepository) FindAdvanceRequestByID(ctx context.Context, requestID string) (*domain.AdvanceRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	req, ok := r.store.requests[requestID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := *req
	return &out, nil
}

func (r *EmployeeRepository) ListAdvanceRequests(ctx context.Context, employeeID string, status *domain.AdvanceRequestStatus) ([]domain.AdvanceRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.requestsForLocked(employeeID, status), nil
}

func (r *EmployeeRepository) UpdateAdvanceRequestStatus(ctx context.Context, req domain.AdvanceRequest, expected domain.AdvanceRequestStatus, audit domain.AuditRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.requests[req.RequestID]
	if !ok || stored.Status != expected {
		return apperrors.NewConflictError("advance request " + req.RequestID + " is no longer " + string(expected))
	}
	stored.Status = req.Status
	stored.DecidedBy = req.DecidedBy
	stored.DecidedAt = req.DecidedAt
	stored.DecisionNote = req.DecisionNote
	r.store.appendAuditLocked(audit)
	return nil
}

func (r *EmployeeRepository) DisburseAdvanceRequest(ctx context.Context, requestID string, posting domain.PayrollPosting, audit domain.AuditRecord) (*domain.PayrollPosting, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.requests[requestID]
	if !ok {
		return nil, apperrors.NewNotFoundError("advance request " + requestID)
	}
	if stored.Status != domain.RequestApproved {
		return nil, apperrors.NewConflictError("advance request " + requestID + " is " + string(stored.Status))
	}
	if stored.EmployeeID != posting.EmployeeID || posting.Advance == nil {
		return nil, apperrors.NewValidationError("posting does not match advance request " + requestID)
	}
	saved, err := r.postPayrollLocked(posting)
	if err != nil {
		return nil, err
	}
	stored.Status = domain.RequestDisbursed
	advanceID := saved.Advance.AdvanceID
	stored.AdvanceID = &advanceID
	r.store.appendAuditLocked(audit)
	return saved, nil
}
