package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Ledger ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) GetLedger(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, ledgerID string, filter portsrepo.LedgerEntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, ledgerID, filter, limit, nextToken)
	var token *string
	if t := args.Get(1); t != nil {
		token = t.(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.LedgerEntry), token, args.Error(2)
}

func (m *MockLedgerRepository) ListAllEntries(ctx context.Context, ledgerID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ResetBalance(ctx context.Context, ledgerID string, balance decimal.Decimal, expectedEntryCount int64, audit domain.AuditRecord) error {
	args := m.Called(ctx, ledgerID, balance, expectedEntryCount, audit)
	return args.Error(0)
}

// --- Employees ---

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListEmployees(ctx context.Context, department *string, limit int, nextToken *string) ([]domain.Employee, *string, error) {
	args := m.Called(ctx, department, limit, nextToken)
	var token *string
	if t := args.Get(1); t != nil {
		token = t.(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.Employee), token, args.Error(2)
}

func (m *MockEmployeeRepository) ListAllEmployees(ctx context.Context) ([]domain.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) CreateEmployee(ctx context.Context, employee domain.Employee, audit domain.AuditRecord, welcome *domain.Notification) error {
	args := m.Called(ctx, employee, audit, welcome)
	return args.Error(0)
}

func (m *MockEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee, expectedVersion int64, audit domain.AuditRecord) (*domain.Employee, error) {
	args := m.Called(ctx, employee, expectedVersion, audit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) PostPayroll(ctx context.Context, posting domain.PayrollPosting) (*domain.PayrollPosting, error) {
	args := m.Called(ctx, posting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollPosting), args.Error(1)
}

func (m *MockEmployeeRepository) MarkAdvanceRepaid(ctx context.Context, employeeID, advanceID string, repaidAt time.Time, audit domain.AuditRecord) (*domain.Advance, error) {
	args := m.Called(ctx, employeeID, advanceID, repaidAt, audit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Advance), args.Error(1)
}

func (m *MockEmployeeRepository) FindAdvanceRequestByID(ctx context.Context, requestID string) (*domain.AdvanceRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdvanceRequest), args.Error(1)
}

func (m *MockEmployeeRepository) ListAdvanceRequests(ctx context.Context, employeeID string, status *domain.AdvanceRequestStatus) ([]domain.AdvanceRequest, error) {
	args := m.Called(ctx, employeeID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdvanceRequest), args.Error(1)
}

func (m *MockEmployeeRepository) CreateAdvanceRequest(ctx context.Context, req domain.AdvanceRequest, audit domain.AuditRecord) error {
	args := m.Called(ctx, req, audit)
	return args.Error(0)
}

func (m *MockEmployeeRepository) UpdateAdvanceRequestStatus(ctx context.Context, req domain.AdvanceRequest, expected domain.AdvanceRequestStatus, audit domain.AuditRecord) error {
	args := m.Called(ctx, req, expected, audit)
	return args.Error(0)
}

func (m *MockEmployeeRepository) DisburseAdvanceRequest(ctx context.Context, requestID string, posting domain.PayrollPosting, audit domain.AuditRecord) (*domain.PayrollPosting, error) {
	args := m.Called(ctx, requestID, posting, audit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollPosting), args.Error(1)
}

// --- Customers ---

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var token *string
	if t := args.Get(1); t != nil {
		token = t.(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.Customer), token, args.Error(2)
}

func (m *MockCustomerRepository) CreateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteCustomer(ctx context.Context, customerID string, audit domain.AuditRecord) error {
	args := m.Called(ctx, customerID, audit)
	return args.Error(0)
}

func (m *MockCustomerRepository) AddInvoice(ctx context.Context, invoice domain.Invoice, audit domain.AuditRecord) (*domain.Customer, error) {
	args := m.Called(ctx, invoice, audit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) MarkInvoicePaid(ctx context.Context, customerID, invoiceID string, paidAt time.Time, entry domain.LedgerEntry, audit domain.AuditRecord) (*domain.Invoice, *domain.LedgerEntry, error) {
	args := m.Called(ctx, customerID, invoiceID, paidAt, entry, audit)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Invoice), args.Get(1).(*domain.LedgerEntry), args.Error(2)
}

// --- Jobs ---

type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) GetExpirationSnapshot(ctx context.Context) (*domain.ExpirationSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpirationSnapshot), args.Error(1)
}

func (m *MockAlertRepository) ReplaceExpirationSnapshot(ctx context.Context, snapshot domain.ExpirationSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

type MockMonthlyReportRepository struct {
	mock.Mock
}

func (m *MockMonthlyReportRepository) FindMonthlyReport(ctx context.Context, year, month int) (*domain.MonthlyReport, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyReport), args.Error(1)
}

func (m *MockMonthlyReportRepository) ListMonthlyReports(ctx context.Context, limit int, nextToken *string) ([]domain.MonthlyReport, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var token *string
	if t := args.Get(1); t != nil {
		token = t.(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.MonthlyReport), token, args.Error(2)
}

func (m *MockMonthlyReportRepository) UpsertMonthlyReport(ctx context.Context, report domain.MonthlyReport) (*domain.MonthlyReport, error) {
	args := m.Called(ctx, report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyReport), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListNotifications(ctx context.Context, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

type MockJobEventRecorder struct {
	mock.Mock
}

func (m *MockJobEventRecorder) CaptureJobRun(job string, properties map[string]any) {
	m.Called(job, properties)
}

var (
	_ portsrepo.LedgerRepositoryFacade        = (*MockLedgerRepository)(nil)
	_ portsrepo.EmployeeRepositoryFacade      = (*MockEmployeeRepository)(nil)
	_ portsrepo.CustomerRepositoryFacade      = (*MockCustomerRepository)(nil)
	_ portsrepo.AlertRepositoryFacade         = (*MockAlertRepository)(nil)
	_ portsrepo.MonthlyReportRepositoryFacade = (*MockMonthlyReportRepository)(nil)
	_ portsrepo.NotificationRepositoryFacade  = (*MockNotificationRepository)(nil)
	_ portsrepo.NotificationPublisher         = (*MockPublisher)(nil)
)

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }
