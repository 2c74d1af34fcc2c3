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
	"github.com/SscSPs/staff_ledger_app/internal/utils"
	"github.com/SscSPs/staff_ledger_app/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var defaultPayrollDescriptions = map[domain.EmployeeTransactionType]string{
	domain.TxnSalary:    "Salary payment",
	domain.TxnBonus:     "Bonus payment",
	domain.TxnDeduction: "Salary deduction",
	domain.TxnAdvance:   "Salary advance",
}

// EmployeeService implements the employee registry, payroll postings and the advance request workflow.
type EmployeeService struct {
	BaseService
	employeeRepo portsrepo.EmployeeRepositoryFacade
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(employeeRepo portsrepo.EmployeeRepositoryFacade, options ...Option) *EmployeeService {
	return &EmployeeService{
		BaseService:  newBaseService(options),
		employeeRepo: employeeRepo,
	}
}

var _ portssvc.EmployeeSvcFacade = (*EmployeeService)(nil)

func toIdentityDocument(req dto.IdentityDocumentRequest) domain.IdentityDocument {
	doc := domain.IdentityDocument{Number: strings.TrimSpace(req.Number)}
	if req.Expiry != nil && !req.Expiry.IsZero() {
		expiry := req.Expiry.UTC()
		doc.Expiry = &expiry
	}
	return doc
}

func sameDocument(a, b domain.IdentityDocument) bool {
	if a.Number != b.Number {
		return false
	}
	if a.Expiry == nil || b.Expiry == nil {
		return a.Expiry == nil && b.Expiry == nil
	}
	return a.Expiry.Equal(*b.Expiry)
}

// RegisterEmployee creates an employee and queues the welcome notification when an email is given.
func (s *EmployeeService) RegisterEmployee(ctx context.Context, req dto.CreateEmployeeRequest, creatorUserID string) (*domain.Employee, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("employee name is required")
	}
	if req.Salary.IsNegative() {
		return nil, apperrors.NewValidationError("salary cannot be negative")
	}

	now := s.Now()
	employee := domain.Employee{
		EmployeeID:   uuid.NewString(),
		Name:         name,
		Email:        strings.TrimSpace(req.Email),
		QID:          toIdentityDocument(req.QID),
		Passport:     toIdentityDocument(req.Passport),
		Salary:       req.Salary,
		Department:   strings.TrimSpace(req.Department),
		TotalPaid:    decimal.Zero,
		Version:      1,
		Transactions: []domain.EmployeeTransaction{},
		Advances:     []domain.Advance{},
	}
	employee.Stamp(creatorUserID, now)

	audit := s.newAuditRecord(domain.AuditEmployeeCreated, &employee.EmployeeID, map[string]interface{}{
		"name":       employee.Name,
		"department": employee.Department,
		"qidNumber":  employee.QID.Number,
	}, creatorUserID, now)

	var welcome *domain.Notification
	if employee.Email != "" {
		welcome = &domain.Notification{
			NotificationID: uuid.NewString(),
			Kind:           domain.NotificationWelcome,
			Recipient:      employee.Email,
			Subject:        fmt.Sprintf("Welcome to the team, %s", employee.Name),
			Payload: map[string]interface{}{
				"employeeID": employee.EmployeeID,
				"name":       employee.Name,
				"department": employee.Department,
				"salary":     utils.FormatWithCurrency(employee.Salary),
			},
			Status:    domain.NotificationQueued,
			CreatedAt: now,
		}
	}

	if err := s.employeeRepo.CreateEmployee(ctx, employee, audit, welcome); err != nil {
		s.LogError(ctx, err, "Failed to create employee", slog.String("employee_id", employee.EmployeeID))
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	if welcome != nil {
		s.publish(ctx, *welcome)
	}

	s.LogInfo(ctx, "Employee registered", slog.String("employee_id", employee.EmployeeID))
	return &employee, nil
}

// GetEmployee loads an employee with payroll history and advance requests.
func (s *EmployeeService) GetEmployee(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load employee", slog.String("employee_id", employeeID))
		}
		return nil, fmt.Errorf("failed to get employee %s: %w", employeeID, err)
	}
	return employee, nil
}

// ListEmployees retrieves a page of employees ordered by name.
func (s *EmployeeService) ListEmployees(ctx context.Context, params dto.ListEmployeesParams) (*dto.ListEmployeesResponse, error) {
	var department *string
	if params.Department != nil && strings.TrimSpace(*params.Department) != "" {
		d := strings.TrimSpace(*params.Department)
		department = &d
	}

	employees, nextToken, err := s.employeeRepo.ListEmployees(ctx, department, normalizeLimit(params.Limit), params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list employees")
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	res := &dto.ListEmployeesResponse{
		Employees: make([]dto.EmployeeResponse, len(employees)),
		NextToken: nextToken,
	}
	for i := range employees {
		res.Employees[i] = dto.ToEmployeeResponse(&employees[i], accounting.PendingAdvances(employees[i].Advances))
	}
	return res, nil
}

// PendingAdvances returns the sum of the employee's unrepaid advances.
func (s *EmployeeService) PendingAdvances(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	employee, err := s.GetEmployee(ctx, employeeID)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.PendingAdvances(employee.Advances), nil
}

// UpdateEmployee changes profile fields. Payroll totals and history are never touched here.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, userID string) (*domain.Employee, error) {
	current, err := s.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	expectedVersion := current.Version
	if req.Version != nil {
		if *req.Version != current.Version {
			return nil, apperrors.NewConflictError(fmt.Sprintf("employee %s was modified (version %d, expected %d)", employeeID, current.Version, *req.Version))
		}
		expectedVersion = *req.Version
	}

	updated := *current
	changes := map[string]interface{}{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("employee name cannot be empty")
		}
		if name != updated.Name {
			updated.Name = name
			changes["name"] = name
		}
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != updated.Email {
			updated.Email = email
			changes["email"] = email
		}
	}
	if req.QID != nil {
		qid := toIdentityDocument(*req.QID)
		if !sameDocument(qid, updated.QID) {
			updated.QID = qid
			changes["qid"] = qid
		}
	}
	if req.Passport != nil {
		passport := toIdentityDocument(*req.Passport)
		if !sameDocument(passport, updated.Passport) {
			updated.Passport = passport
			changes["passport"] = passport
		}
	}
	if req.Salary != nil {
		if req.Salary.IsNegative() {
			return nil, apperrors.NewValidationError("salary cannot be negative")
		}
		if !req.Salary.Equal(updated.Salary) {
			updated.Salary = *req.Salary
			changes["salary"] = req.Salary.String()
		}
	}
	if req.Department != nil {
		department := strings.TrimSpace(*req.Department)
		if department != updated.Department {
			updated.Department = department
			changes["department"] = department
		}
	}

	if len(changes) == 0 {
		s.LogDebug(ctx, "Employee update had no changes", slog.String("employee_id", employeeID))
		return current, nil
	}

	now := s.Now()
	updated.Touch(userID, now)
	audit := s.newAuditRecord(domain.AuditEmployeeUpdated, &updated.EmployeeID, map[string]interface{}{
		"changes": changes,
	}, userID, now)

	saved, err := s.employeeRepo.UpdateEmployee(ctx, updated, expectedVersion, audit)
	if err != nil {
		s.LogError(ctx, err, "Failed to update employee", slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to update employee %s: %w", employeeID, err)
	}

	s.LogInfo(ctx, "Employee updated", slog.String("employee_id", employeeID), slog.Int("changed_fields", len(changes)))
	return saved, nil
}

// buildPosting assembles both sides of a payroll movement plus its audit record.
// The repository fills the employee name and QID on the ledger entry from the locked row.
func (s *EmployeeService) buildPosting(employeeID string, txnType domain.EmployeeTransactionType, amount decimal.Decimal, date time.Time, description, userID string, now time.Time) domain.PayrollPosting {
	description = strings.TrimSpace(description)
	if description == "" {
		description = defaultPayrollDescriptions[txnType]
	}
	entryType, category := txnType.LedgerPosting()
	entryID := uuid.NewString()
	empID := employeeID

	txn := domain.EmployeeTransaction{
		TransactionID: uuid.NewString(),
		EmployeeID:    employeeID,
		Date:          date,
		Amount:        txnType.SignedAmount(amount),
		Type:          txnType,
		Description:   description,
		ProcessedBy:   userID,
		LedgerEntryID: &entryID,
		CreatedAt:     now,
	}
	entry := domain.LedgerEntry{
		EntryID:     entryID,
		LedgerID:    domain.MainLedgerID,
		Date:        date,
		Type:        entryType,
		Amount:      amount.Abs(),
		Description: description,
		Category:    category,
		EmployeeID:  &empID,
		CreatedBy:   userID,
		CreatedAt:   now,
	}

	event := domain.AuditTransactionAdded
	if txnType == domain.TxnAdvance {
		event = domain.AuditAdvanceAdded
	}
	audit := s.newAuditRecord(event, &empID, map[string]interface{}{
		"transactionID": txn.TransactionID,
		"type":          string(txnType),
		"amount":        txn.Amount.String(),
		"date":          date.Format(time.RFC3339),
		"ledgerEntryID": entryID,
	}, userID, now)

	return domain.PayrollPosting{
		EmployeeID:  employeeID,
		Transaction: txn,
		LedgerEntry: entry,
		Audit:       audit,
	}
}

// buildAdvancePosting extends a payroll posting with the advance record.
func (s *EmployeeService) buildAdvancePosting(employeeID string, amount decimal.Decimal, date time.Time, description, userID string, now time.Time) domain.PayrollPosting {
	posting := s.buildPosting(employeeID, domain.TxnAdvance, amount, date, description, userID, now)
	advance := domain.Advance{
		AdvanceID:     uuid.NewString(),
		EmployeeID:    employeeID,
		Date:          date,
		Amount:        amount.Abs(),
		Repaid:        false,
		Description:   posting.Transaction.Description,
		LedgerEntryID: posting.Transaction.LedgerEntryID,
		CreatedAt:     now,
	}
	posting.Advance = &advance
	posting.Audit.Payload["advanceID"] = advance.AdvanceID
	return posting
}

func (s *EmployeeService) postPayroll(ctx context.Context, posting domain.PayrollPosting) (*domain.PayrollPosting, error) {
	if err := posting.LedgerEntry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	saved, err := s.employeeRepo.PostPayroll(ctx, posting)
	if err != nil {
		s.LogError(ctx, err, "Failed to post payroll",
			slog.String("employee_id", posting.EmployeeID),
			slog.String("type", string(posting.Transaction.Type)))
		return nil, fmt.Errorf("failed to post %s for employee %s: %w", posting.Transaction.Type, posting.EmployeeID, err)
	}
	s.LogInfo(ctx, "Payroll posted",
		slog.String("employee_id", saved.EmployeeID),
		slog.String("type", string(saved.Transaction.Type)),
		slog.String("amount", saved.Transaction.Amount.String()),
		slog.String("ledger_entry_id", saved.LedgerEntry.EntryID))
	return saved, nil
}

// RecordTransaction posts a salary, bonus or deduction.
func (s *EmployeeService) RecordTransaction(ctx context.Context, employeeID string, req dto.RecordTransactionRequest, userID string) (*domain.PayrollPosting, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, domain.ErrTransactionTypeInvalid)
	}
	if req.Type == domain.TxnAdvance {
		return nil, apperrors.NewValidationError("advances are issued through the advances endpoint")
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount must be greater than zero")
	}

	now := s.Now()
	posting := s.buildPosting(employeeID, req.Type, req.Amount, dateOr(req.Date, now), req.Description, userID, now)
	return s.postPayroll(ctx, posting)
}

// IssueAdvance pays out a cash advance directly.
func (s *EmployeeService) IssueAdvance(ctx context.Context, employeeID string, req dto.IssueAdvanceRequest, userID string) (*domain.PayrollPosting, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount must be greater than zero")
	}

	now := s.Now()
	posting := s.buildAdvancePosting(employeeID, req.Amount, dateOr(req.Date, now), req.Description, userID, now)
	return s.postPayroll(ctx, posting)
}

// MarkAdvanceRepaid records that an advance has been recovered.
func (s *EmployeeService) MarkAdvanceRepaid(ctx context.Context, employeeID, advanceID string, req dto.RepayAdvanceRequest, userID string) (*domain.Advance, error) {
	now := s.Now()
	repaidAt := dateOr(req.RepaidDate, now)
	audit := s.newAuditRecord(domain.AuditAdvanceUpdated, &employeeID, map[string]interface{}{
		"advanceID":  advanceID,
		"repaid":     true,
		"repaidDate": repaidAt.Format(time.RFC3339),
	}, userID, now)

	advance, err := s.employeeRepo.MarkAdvanceRepaid(ctx, employeeID, advanceID, repaidAt, audit)
	if err != nil {
		s.LogError(ctx, err, "Failed to mark advance repaid",
			slog.String("employee_id", employeeID),
			slog.String("advance_id", advanceID))
		return nil, fmt.Errorf("failed to mark advance %s repaid: %w", advanceID, err)
	}

	s.LogInfo(ctx, "Advance marked repaid", slog.String("employee_id", employeeID), slog.String("advance_id", advanceID))
	return advance, nil
}

// SubmitAdvanceRequest opens a PENDING request.
func (s *EmployeeService) SubmitAdvanceRequest(ctx context.Context, employeeID string, req dto.SubmitAdvanceRequestRequest, userID string) (*domain.AdvanceRequest, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount must be greater than zero")
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("reason is required")
	}
	if _, err := s.GetEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	now := s.Now()
	request := domain.AdvanceRequest{
		RequestID:   uuid.NewString(),
		EmployeeID:  employeeID,
		Amount:      req.Amount,
		Reason:      reason,
		Status:      domain.RequestPending,
		RequestedBy: userID,
		RequestedAt: now,
	}
	audit := s.newAuditRecord(domain.AuditAdvanceRequestSubmitted, &employeeID, map[string]interface{}{
		"requestID": request.RequestID,
		"amount":    request.Amount.String(),
		"reason":    reason,
	}, userID, now)

	if err := s.employeeRepo.CreateAdvanceRequest(ctx, request, audit); err != nil {
		s.LogError(ctx, err, "Failed to create advance request", slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to create advance request: %w", err)
	}

	s.LogInfo(ctx, "Advance request submitted", slog.String("request_id", request.RequestID), slog.String("employee_id", employeeID))
	return &request, nil
}

func (s *EmployeeService) findAdvanceRequest(ctx context.Context, requestID string) (*domain.AdvanceRequest, error) {
	request, err := s.employeeRepo.FindAdvanceRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get advance request %s: %w", requestID, err)
	}
	return request, nil
}

// DecideAdvanceRequest approves or rejects a PENDING request.
func (s *EmployeeService) DecideAdvanceRequest(ctx context.Context, requestID string, req dto.DecideAdvanceRequestRequest, userID string) (*domain.AdvanceRequest, error) {
	var next domain.AdvanceRequestStatus
	var event domain.AuditEventType
	switch strings.ToLower(strings.TrimSpace(req.Decision)) {
	case "approve":
		next, event = domain.RequestApproved, domain.AuditAdvanceRequestApproved
	case "reject":
		next, event = domain.RequestRejected, domain.AuditAdvanceRequestRejected
	default:
		return nil, apperrors.NewValidationError("decision must be approve or reject")
	}

	current, err := s.findAdvanceRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("advance request %s is %s and cannot become %s", requestID, current.Status, next))
	}

	now := s.Now()
	updated := *current
	updated.Status = next
	updated.DecidedBy = &userID
	updated.DecidedAt = &now
	updated.DecisionNote = req.Note

	payload := map[string]interface{}{"requestID": requestID, "amount": current.Amount.String()}
	if req.Note != nil {
		payload["note"] = *req.Note
	}
	audit := s.newAuditRecord(event, &updated.EmployeeID, payload, userID, now)

	if err := s.employeeRepo.UpdateAdvanceRequestStatus(ctx, updated, current.Status, audit); err != nil {
		s.LogError(ctx, err, "Failed to record advance request decision", slog.String("request_id", requestID))
		return nil, fmt.Errorf("failed to decide advance request %s: %w", requestID, err)
	}

	s.LogInfo(ctx, "Advance request decided", slog.String("request_id", requestID), slog.String("status", string(next)))
	return &updated, nil
}

// DisburseAdvanceRequest pays out an APPROVED request as an advance in the same transaction that
// marks it DISBURSED.
func (s *EmployeeService) DisburseAdvanceRequest(ctx context.Context, requestID string, req dto.DisburseAdvanceRequestRequest, userID string) (*domain.PayrollPosting, error) {
	current, err := s.findAdvanceRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(domain.RequestDisbursed) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("advance request %s is %s and cannot be disbursed", requestID, current.Status))
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = "Advance: " + current.Reason
	}

	now := s.Now()
	posting := s.buildAdvancePosting(current.EmployeeID, current.Amount, dateOr(req.Date, now), description, userID, now)
	posting.Audit.Payload["requestID"] = requestID
	audit := s.newAuditRecord(domain.AuditAdvanceRequestDisbursed, &current.EmployeeID, map[string]interface{}{
		"requestID": requestID,
		"advanceID": posting.Advance.AdvanceID,
		"amount":    current.Amount.String(),
	}, userID, now)

	if err := posting.LedgerEntry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	saved, err := s.employeeRepo.DisburseAdvanceRequest(ctx, requestID, posting, audit)
	if err != nil {
		s.LogError(ctx, err, "Failed to disburse advance request", slog.String("request_id", requestID))
		return nil, fmt.Errorf("failed to disburse advance request %s: %w", requestID, err)
	}

	s.LogInfo(ctx, "Advance request disbursed",
		slog.String("request_id", requestID),
		slog.String("advance_id", posting.Advance.AdvanceID))
	return saved, nil
}

// ListAdvanceRequests returns an employee's requests, newest first, optionally filtered by status.
func (s *EmployeeService) ListAdvanceRequests(ctx context.Context, employeeID string, params dto.ListAdvanceRequestsParams) ([]domain.AdvanceRequest, error) {
	var status *domain.AdvanceRequestStatus
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		st := domain.AdvanceRequestStatus(strings.ToUpper(strings.TrimSpace(*params.Status)))
		switch st {
		case domain.RequestPending, domain.RequestApproved, domain.RequestRejected, domain.RequestDisbursed:
			status = &st
		default:
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown advance request status %q", *params.Status))
		}
	}
	if _, err := s.GetEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	requests, err := s.employeeRepo.ListAdvanceRequests(ctx, employeeID, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list advance requests", slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to list advance requests: %w", err)
	}
	return requests, nil
}
