package accounting

import (
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthlyTotals sums each employee's transactions and advances dated in [start, end).
// Every employee gets a line, including those with no activity in the window.
func MonthlyTotals(employees []domain.Employee, start, end time.Time) ([]domain.EmployeeMonthlyTotals, decimal.Decimal, decimal.Decimal) {
	lines := make([]domain.EmployeeMonthlyTotals, 0, len(employees))
	totalPaid, totalAdvances := decimal.Zero, decimal.Zero

	for _, emp := range employees {
		line := domain.EmployeeMonthlyTotals{
			EmployeeID:    emp.EmployeeID,
			Name:          emp.Name,
			Department:    emp.Department,
			TotalPaid:     decimal.Zero,
			TotalAdvances: decimal.Zero,
		}
		for _, t := range emp.Transactions {
			if domain.InWindow(t.Date, start, end) {
				line.TotalPaid = line.TotalPaid.Add(t.Amount)
				line.TransactionCount++
			}
		}
		for _, a := range emp.Advances {
			if domain.InWindow(a.Date, start, end) {
				line.TotalAdvances = line.TotalAdvances.Add(a.Amount)
				line.AdvanceCount++
			}
		}
		totalPaid = totalPaid.Add(line.TotalPaid)
		totalAdvances = totalAdvances.Add(line.TotalAdvances)
		lines = append(lines, line)
	}
	return lines, totalPaid, totalAdvances
}
