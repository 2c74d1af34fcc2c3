package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeMonthlyTotals is one employee's line in a monthly report.
type EmployeeMonthlyTotals struct {
	EmployeeID       string          `json:"employeeID"`
	Name             string          `json:"name"`
	Department       string          `json:"department"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	TotalAdvances    decimal.Decimal `json:"totalAdvances"`
	TransactionCount int             `json:"transactionCount"`
	AdvanceCount     int             `json:"advanceCount"`
}

// MonthlyReport summarizes payroll activity for one calendar month. There is at most one per (Year, Month).
type MonthlyReport struct {
	ReportID           string                  `json:"reportID"`
	Year               int                     `json:"year"`
	Month              int                     `json:"month"`
	WindowStart        time.Time               `json:"windowStart"`
	WindowEnd          time.Time               `json:"windowEnd"` // exclusive
	TotalEmployees     int                     `json:"totalEmployees"`
	TotalSalariesPaid  decimal.Decimal         `json:"totalSalariesPaid"`
	TotalAdvancesGiven decimal.Decimal         `json:"totalAdvancesGiven"`
	Employees          []EmployeeMonthlyTotals `json:"employees"`
	GeneratedAt        time.Time               `json:"generatedAt"`
	GeneratedBy        string                  `json:"generatedBy"`
}

// PreviousMonthWindow returns [firstOfLastMonth, firstOfThisMonth) for now, evaluated in loc.
func PreviousMonthWindow(now time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	end := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return end.AddDate(0, -1, 0), end
}

// InWindow reports whether t falls in the half-open interval [start, end).
func InWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
