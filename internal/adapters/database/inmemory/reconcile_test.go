package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/apperrors"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/staff_ledger_app/internal/core/services"
	"github.com/SscSPs/staff_ledger_app/internal/dto"
	"github.com/SscSPs/staff_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// appendBeforeReset commits an extra entry right before the balance reset reaches the store.
type appendBeforeReset struct {
	portsrepo.LedgerRepositoryFacade
	extra domain.LedgerEntry
}

func (r *appendBeforeReset) ResetBalance(ctx context.Context, ledgerID string, balance decimal.Decimal, expectedEntryCount int64, audit domain.AuditRecord) error {
	if _, err := r.LedgerRepositoryFacade.AppendEntry(ctx, r.extra); err != nil {
		return err
	}
	return r.LedgerRepositoryFacade.ResetBalance(ctx, ledgerID, balance, expectedEntryCount, audit)
}

func credit(id string, amount int64, at time.Time) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID: id, LedgerID: domain.MainLedgerID, Date: at, Type: domain.Credit,
		Amount: decimal.NewFromInt(amount), Description: "sale", Category: domain.CategorySales, CreatedAt: at,
	}
}

func TestReconcileBalance_AppendDuringRepairIsNotLost(t *testing.T) {
	store := NewStore()
	repos := NewRepositoryProvider(store)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := repos.LedgerRepo.AppendEntry(ctx, credit("e-1", 1000, now))
	require.NoError(t, err)
	store.mu.Lock()
	store.ledgers[domain.MainLedgerID].Balance = decimal.NewFromInt(7)
	store.mu.Unlock()

	racing := &appendBeforeReset{LedgerRepositoryFacade: repos.LedgerRepo, extra: credit("e-2", 500, now)}
	svc := services.NewLedgerService(racing, decimal.RequireFromString("0.10"))

	_, err = svc.ReconcileBalance(ctx, "jobs")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	ledger, err := repos.LedgerRepo.GetLedger(ctx, domain.MainLedgerID)
	require.NoError(t, err)
	assert.True(t, ledger.Balance.Equal(decimal.NewFromInt(507)), "stored %s", ledger.Balance)

	// a retry without interference repairs against the full log
	result, err := services.NewLedgerService(repos.LedgerRepo, decimal.RequireFromString("0.10")).ReconcileBalance(ctx, "jobs")
	require.NoError(t, err)
	assert.True(t, result.Repaired)

	ledger, err = repos.LedgerRepo.GetLedger(ctx, domain.MainLedgerID)
	require.NoError(t, err)
	entries, err := repos.LedgerRepo.ListAllEntries(ctx, domain.MainLedgerID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.True(t, ledger.Balance.Equal(accounting.Balance(entries)), "stored %s", ledger.Balance)
	assert.True(t, ledger.Balance.Equal(decimal.NewFromInt(1500)))
}

func TestResetBalance_StaleEntryCountConflicts(t *testing.T) {
	repos := NewRepositoryProvider(NewStore())
	ctx := context.Background()
	now := time.Now().UTC()
	_, err := repos.LedgerRepo.AppendEntry(ctx, credit("e-1", 40, now))
	require.NoError(t, err)

	err = repos.LedgerRepo.ResetBalance(ctx, domain.MainLedgerID, decimal.NewFromInt(1), 0, domain.AuditRecord{AuditID: "au-1"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	err = repos.LedgerRepo.ResetBalance(ctx, "missing", decimal.NewFromInt(1), 1, domain.AuditRecord{AuditID: "au-2"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	ledger, err := repos.LedgerRepo.GetLedger(ctx, domain.MainLedgerID)
	require.NoError(t, err)
	assert.True(t, ledger.Balance.Equal(decimal.NewFromInt(40)))
}

func TestListEmployees_IncludesPendingAdvances(t *testing.T) {
	repos := NewRepositoryProvider(NewStore())
	ctx := context.Background()
	svc := services.NewEmployeeService(repos.EmployeeRepo)

	emp, err := svc.RegisterEmployee(ctx, dto.CreateEmployeeRequest{Name: "Ali", Salary: decimal.NewFromInt(3000)}, "admin")
	require.NoError(t, err)
	_, err = svc.IssueAdvance(ctx, emp.EmployeeID, dto.IssueAdvanceRequest{Amount: decimal.NewFromInt(1500), Description: "rent help"}, "admin")
	require.NoError(t, err)

	pending, err := svc.PendingAdvances(ctx, emp.EmployeeID)
	require.NoError(t, err)

	list, err := svc.ListEmployees(ctx, dto.ListEmployeesParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list.Employees, 1)
	assert.True(t, pending.Equal(decimal.NewFromInt(1500)))
	assert.True(t, list.Employees[0].PendingAdvances.Equal(pending), "listed %s", list.Employees[0].PendingAdvances)
}
