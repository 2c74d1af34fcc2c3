package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeMapping_BlankDocumentsBecomeNull(t *testing.T) {
	emp := domain.Employee{EmployeeID: "e1", Name: "One", Salary: decimal.NewFromInt(3000)}
	m := ToModelEmployee(emp)
	assert.Nil(t, m.QIDNumber)
	assert.Nil(t, m.PassportNumber)
	assert.Nil(t, m.Email)

	back := ToDomainEmployee(m)
	assert.False(t, back.HasQID())
	assert.NotNil(t, back.Transactions)
	assert.NotNil(t, back.Advances)
}

func TestAlertSnapshotMapping_EmptyListIsStoredAsArray(t *testing.T) {
	m, err := ToModelAlertSnapshot(domain.ExpirationSnapshot{LastChecked: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(m.Alerts))
	assert.Equal(t, domain.ExpirationSnapshotID, m.SnapshotID)

	back, err := ToDomainAlertSnapshot(m)
	require.NoError(t, err)
	assert.NotNil(t, back.Alerts)
	assert.Equal(t, 0, back.Count)
}

func TestMonthlyReportMapping_KeepsLines(t *testing.T) {
	report := domain.MonthlyReport{
		ReportID: "r1", Year: 2026, Month: 2,
		Employees: []domain.EmployeeMonthlyTotals{{EmployeeID: "e1", TotalPaid: decimal.NewFromInt(2800)}},
	}
	m, err := ToModelMonthlyReport(report)
	require.NoError(t, err)

	back, err := ToDomainMonthlyReport(m)
	require.NoError(t, err)
	require.Len(t, back.Employees, 1)
	assert.True(t, back.Employees[0].TotalPaid.Equal(decimal.NewFromInt(2800)))
	assert.Equal(t, 2, back.Month)
}
