package accounting

import (
	"testing"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyTotals_HalfOpenWindow(t *testing.T) {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	employees := []domain.Employee{
		{
			EmployeeID: "e1",
			Name:       "One",
			Transactions: []domain.EmployeeTransaction{
				{Date: start, Amount: d(3000), Type: domain.TxnSalary},
				{Date: end, Amount: d(3000), Type: domain.TxnSalary},
				{Date: end.Add(-time.Second), Amount: d(-200), Type: domain.TxnDeduction},
				{Date: start.Add(-time.Second), Amount: d(999), Type: domain.TxnBonus},
			},
			Advances: []domain.Advance{
				{Date: start.AddDate(0, 0, 3), Amount: d(1000)},
				{Date: end, Amount: d(500)},
			},
		},
		{EmployeeID: "e2", Name: "Idle"},
	}

	lines, paid, advances := MonthlyTotals(employees, start, end)
	require.Len(t, lines, 2)
	assert.True(t, d(2800).Equal(lines[0].TotalPaid), lines[0].TotalPaid.String())
	assert.Equal(t, 2, lines[0].TransactionCount)
	assert.True(t, d(1000).Equal(lines[0].TotalAdvances))
	assert.Equal(t, 1, lines[0].AdvanceCount)
	assert.True(t, d(0).Equal(lines[1].TotalPaid))
	assert.True(t, d(2800).Equal(paid))
	assert.True(t, d(1000).Equal(advances))
}
