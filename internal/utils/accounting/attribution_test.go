package accounting

import (
	"testing"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeSummary(t *testing.T) {
	emp := domain.Employee{
		EmployeeID: "emp-1",
		Name:       "Ahmed Khan",
		QID:        domain.IdentityDocument{Number: "12345678901"},
	}

	linked := entry("adv", domain.Debit, 2000, domain.CategoryEmployeeAdvance, base)
	linked.EmployeeID = strPtr("emp-1")

	byQID := entry("salary", domain.Debit, 3000, domain.CategoryPayroll, base)
	byQID.QIDNumber = strPtr(" 12345678901 ")

	deduction := entry("ded", domain.Credit, 500, domain.CategoryEmployeeDeduction, base)
	deduction.EmployeeID = strPtr("emp-1")

	byName := entry("cash advance", domain.Debit, 700, domain.CategoryEmployeeAdvance, base)
	byName.Description = "Cash advance for AHMED KHAN"

	other := entry("other", domain.Debit, 900, domain.CategoryEmployeeAdvance, base)
	other.EmployeeID = strPtr("emp-2")

	tests := []struct {
		name            string
		entries         []domain.LedgerEntry
		loose           bool
		wantAdvances    int64
		wantDeductions  int64
		wantSalaries    int64
		wantOutstanding int64
		wantMatched     int
	}{
		{
			name:            "advance linked by id, no deductions",
			entries:         []domain.LedgerEntry{linked},
			wantAdvances:    2000,
			wantOutstanding: 2000,
			wantMatched:     1,
		},
		{
			name:            "qid and id attribution",
			entries:         []domain.LedgerEntry{linked, byQID, deduction, other},
			wantAdvances:    2000,
			wantDeductions:  500,
			wantSalaries:    3000,
			wantOutstanding: 1500,
			wantMatched:     3,
		},
		{
			name:            "name match ignored when loose matching is off",
			entries:         []domain.LedgerEntry{byName},
			wantOutstanding: 0,
		},
		{
			name:            "name match counted when loose matching is on",
			entries:         []domain.LedgerEntry{linked, byName},
			loose:           true,
			wantAdvances:    2700,
			wantOutstanding: 2700,
			wantMatched:     2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EmployeeSummary(emp, tt.entries, tt.loose)
			assert.True(t, d(tt.wantAdvances).Equal(got.TotalAdvances), got.TotalAdvances.String())
			assert.True(t, d(tt.wantDeductions).Equal(got.TotalDeductions))
			assert.True(t, d(tt.wantSalaries).Equal(got.TotalSalariesPaid))
			assert.True(t, d(tt.wantOutstanding).Equal(got.OutstandingBalance))
			assert.Equal(t, tt.wantMatched, got.MatchedEntries)

			again := EmployeeSummary(emp, tt.entries, tt.loose)
			assert.Equal(t, got, again)
		})
	}
}

func TestEmployeeSummary_NoQIDNeverMatchesByQID(t *testing.T) {
	emp := domain.Employee{EmployeeID: "emp-1", Name: "Sara"}
	e := entry("salary", domain.Debit, 3000, domain.CategoryPayroll, base)
	e.QIDNumber = strPtr("")

	got := EmployeeSummary(emp, []domain.LedgerEntry{e}, false)
	assert.Equal(t, 0, got.MatchedEntries)
}

func TestFindEmployeeByQID(t *testing.T) {
	employees := []domain.Employee{
		{EmployeeID: "no-qid", Name: "Nobody"},
		{EmployeeID: "emp-1", QID: domain.IdentityDocument{Number: "AB123"}},
	}

	found, ok := FindEmployeeByQID(employees, "ab123")
	require.True(t, ok)
	assert.Equal(t, "emp-1", found.EmployeeID)

	_, ok = FindEmployeeByQID(employees, "AB12")
	assert.False(t, ok)

	_, ok = FindEmployeeByQID(employees, "")
	assert.False(t, ok)
}
