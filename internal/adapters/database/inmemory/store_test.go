package inmemory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/apperrors"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/staff_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEmployee(t *testing.T, repos portsrepo.RepositoryProvider, id, qid string) {
	t.Helper()
	emp := domain.Employee{EmployeeID: id, Name: "Employee " + id, QID: domain.IdentityDocument{Number: qid}, Version: 1}
	emp.Stamp("admin", time.Now())
	require.NoError(t, repos.EmployeeRepo.CreateEmployee(context.Background(), emp, domain.AuditRecord{AuditID: "a-" + id}, nil))
}

func salaryPosting(employeeID string, n int, amount decimal.Decimal, at time.Time) domain.PayrollPosting {
	entryType, category := domain.TxnSalary.LedgerPosting()
	return domain.PayrollPosting{
		EmployeeID: employeeID,
		Transaction: domain.EmployeeTransaction{
			TransactionID: fmt.Sprintf("t-%d", n), EmployeeID: employeeID, Date: at,
			Amount: domain.TxnSalary.SignedAmount(amount), Type: domain.TxnSalary, ProcessedBy: "admin", CreatedAt: at,
		},
		LedgerEntry: domain.LedgerEntry{
			EntryID: fmt.Sprintf("e-%d", n), LedgerID: domain.MainLedgerID, Date: at, Type: entryType,
			Amount: amount, Description: "salary", Category: category, CreatedBy: "admin", CreatedAt: at,
		},
		Audit: domain.AuditRecord{AuditID: fmt.Sprintf("au-%d", n), EventType: domain.AuditTransactionAdded, CreatedAt: at},
	}
}

func TestPostPayroll_ConcurrentWritersKeepTotalsConsistent(t *testing.T) {
	repos := NewRepositoryProvider(NewStore())
	ctx := context.Background()
	seedEmployee(t, repos, "emp-1", "Q-1")

	const writers = 50
	amount := decimal.RequireFromString("125.50")
	now := time.Now().UTC()

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := repos.EmployeeRepo.PostPayroll(ctx, salaryPosting("emp-1", n, amount, now))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	emp, err := repos.EmployeeRepo.FindEmployeeByID(ctx, "emp-1")
	require.NoError(t, err)
	expected := amount.Mul(decimal.NewFromInt(writers))
	assert.True(t, emp.TotalPaid.Equal(expected), "totalPaid %s", emp.TotalPaid)
	assert.True(t, emp.TotalPaid.Equal(emp.ComputeTotalPaid()))
	assert.Len(t, emp.Transactions, writers)
	assert.Equal(t, int64(1+writers), emp.Version)

	ledger, err := repos.LedgerRepo.GetLedger(ctx, domain.MainLedgerID)
	require.NoError(t, err)
	entries, err := repos.LedgerRepo.ListAllEntries(ctx, domain.MainLedgerID)
	require.NoError(t, err)
	assert.Len(t, entries, writers)
	assert.True(t, ledger.Balance.Equal(accounting.Balance(entries)))
	assert.True(t, ledger.Balance.Equal(expected.Neg()))
	assert.Equal(t, int64(writers), ledger.EntryCount)

	for _, e := range entries {
		require.NotNil(t, e.QIDNumber)
		assert.Equal(t, "Q-1", *e.QIDNumber)
	}
}

func TestPostPayroll_UnknownEmployeeWritesNothing(t *testing.T) {
	repos := NewRepositoryProvider(NewStore())
	ctx := context.Background()

	_, err := repos.EmployeeRepo.PostPayroll(ctx, salaryPosting("ghost", 1, decimal.NewFromInt(10), time.Now()))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	entries, err := repos.LedgerRepo.ListAllEntries(ctx, domain.MainLedgerID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListEntries_OrdersByDateThenInsertionAndPaginates(t *testing.T) {
	repos := NewRepositoryProvider(NewStore())
	ctx := context.Background()
	day1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	for i, d := range []time.Time{day1, day2, day1, day2, day1} {
		_, err := repos.LedgerRepo.AppendEntry(ctx, domain.LedgerEntry{
			EntryID: fmt.Sprintf("e-%d", i), LedgerID: domain.MainLedgerID, Date: d, Type: domain.Credit,
			Amount: decimal.NewFromInt(int64(i + 1)), Description: "x", Category: domain.CategorySales, CreatedAt: d,
		})
		require.NoError(t, err)
	}

	page1, token, err := repos.LedgerRepo.ListEntries(ctx, domain.MainLedgerID, portsrepo.LedgerEntryFilter{}, 3, nil)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, []string{"e-1", "e-3", "e-0"}, entryIDs(page1))

	page2, token, err := repos.LedgerRepo.ListEntries(ctx, domain.MainLedgerID, portsrepo.LedgerEntryFilter{}, 3, token)
	require.NoError(t, err)
	assert.Nil(t, token)
	assert.Equal(t, []string{"e-2", "e-4"}, entryIDs(page2))

	bad := "%%%"
	_, _, err = repos.LedgerRepo.ListEntries(ctx, domain.MainLedgerID, portsrepo.LedgerEntryFilter{}, 3, &bad)
	assert.Equal(t, 400, apperrors.StatusCode(err))
}

func entryIDs(entries []domain.LedgerEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.EntryID
	}
	return ids
}

func TestDisburseAdvanceRequest_RequiresApproval(t *testing.T) {
	repos := NewRepositoryProvider(NewStore())
	ctx := context.Background()
	seedEmployee(t, repos, "emp-1", "")
	now := time.Now()

	req := domain.AdvanceRequest{RequestID: "r1", EmployeeID: "emp-1", Amount: decimal.NewFromInt(500), Status: domain.RequestPending, RequestedAt: now}
	require.NoError(t, repos.EmployeeRepo.CreateAdvanceRequest(ctx, req, domain.AuditRecord{AuditID: "x"}))

	posting := salaryPosting("emp-1", 1, decimal.NewFromInt(500), now)
	posting.Advance = &domain.Advance{AdvanceID: "adv-1", EmployeeID: "emp-1", Amount: decimal.NewFromInt(500)}

	_, err := repos.EmployeeRepo.DisburseAdvanceRequest(ctx, "r1", posting, domain.AuditRecord{})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	req.Status = domain.RequestApproved
	require.NoError(t, repos.EmployeeRepo.UpdateAdvanceRequestStatus(ctx, req, domain.RequestPending, domain.AuditRecord{}))

	saved, err := repos.EmployeeRepo.DisburseAdvanceRequest(ctx, "r1", posting, domain.AuditRecord{})
	require.NoError(t, err)
	require.NotNil(t, saved.Advance.LedgerEntryID)

	stored, err := repos.EmployeeRepo.FindAdvanceRequestByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestDisbursed, stored.Status)
	require.NotNil(t, stored.AdvanceID)
	assert.Equal(t, "adv-1", *stored.AdvanceID)

	_, err = repos.EmployeeRepo.DisburseAdvanceRequest(ctx, "r1", posting, domain.AuditRecord{})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUpsertMonthlyReport_KeepsFirstID(t *testing.T) {
	repos := NewRepositoryProvider(NewStore())
	ctx := context.Background()

	first, err := repos.MonthlyReportRepo.UpsertMonthlyReport(ctx, domain.MonthlyReport{ReportID: "r1", Year: 2026, Month: 2, TotalEmployees: 1})
	require.NoError(t, err)
	second, err := repos.MonthlyReportRepo.UpsertMonthlyReport(ctx, domain.MonthlyReport{ReportID: "r2", Year: 2026, Month: 2, TotalEmployees: 3})
	require.NoError(t, err)

	assert.Equal(t, first.ReportID, second.ReportID)
	all, next, err := repos.MonthlyReportRepo.ListMonthlyReports(ctx, 10, nil)
	require.NoError(t, err)
	assert.Nil(t, next)
	require.Len(t, all, 1)
	assert.Equal(t, 3, all[0].TotalEmployees)
}

func TestMarkInvoicePaid_SecondPaymentConflicts(t *testing.T) {
	repos := NewRepositoryProvider(NewStore())
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, repos.CustomerRepo.CreateCustomer(ctx, domain.Customer{CustomerID: "c1", Name: "Acme"}))
	_, err := repos.CustomerRepo.AddInvoice(ctx, domain.Invoice{InvoiceID: "i1", CustomerID: "c1", Amount: decimal.NewFromInt(900), Status: domain.InvoicePending}, domain.AuditRecord{})
	require.NoError(t, err)

	entry := domain.LedgerEntry{EntryID: "e1", LedgerID: domain.MainLedgerID, Date: now, Type: domain.Credit, Description: "invoice", Category: domain.CategoryRevenue, CreatedAt: now}
	inv, saved, err := repos.CustomerRepo.MarkInvoicePaid(ctx, "c1", "i1", now, entry, domain.AuditRecord{})
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, inv.Status)
	assert.True(t, saved.Amount.Equal(decimal.NewFromInt(900)))

	_, _, err = repos.CustomerRepo.MarkInvoicePaid(ctx, "c1", "i1", now, entry, domain.AuditRecord{})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	c, err := repos.CustomerRepo.FindCustomerByID(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, c.Outstanding().IsZero())
}
