package accounting

import (
	"strings"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// attribution explains why an entry was counted for an employee.
type attribution int

const (
	notAttributed attribution = iota
	byEmployeeID
	byQID
	byName
)

func attribute(e domain.LedgerEntry, emp domain.Employee, looseMatching bool) attribution {
	if e.IsLinkedTo(emp.EmployeeID) {
		return byEmployeeID
	}
	if emp.HasQID() && e.QIDNumber != nil && sameQID(*e.QIDNumber, emp.QID.Number) {
		return byQID
	}
	if looseMatching {
		name := strings.ToLower(strings.TrimSpace(emp.Name))
		if name != "" && strings.Contains(strings.ToLower(e.Description), name) {
			return byName
		}
	}
	return notAttributed
}

func sameQID(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// EmployeeSummary attributes entries to emp by employee ID, then by QID (case-insensitive), then,
// only when looseMatching is on, by a case-insensitive substring match of the name in the
// description. outstanding = advances − deductions.
func EmployeeSummary(emp domain.Employee, entries []domain.LedgerEntry, looseMatching bool) domain.EmployeeSummary {
	summary := domain.EmployeeSummary{
		EmployeeID:        emp.EmployeeID,
		TotalAdvances:     decimal.Zero,
		TotalDeductions:   decimal.Zero,
		TotalSalariesPaid: decimal.Zero,
	}
	for _, e := range entries {
		how := attribute(e, emp, looseMatching)
		if how == notAttributed {
			continue
		}
		summary.MatchedEntries++
		if how == byName {
			summary.LooseMatches++
		}
		switch e.Category {
		case domain.CategoryEmployeeAdvance:
			summary.TotalAdvances = summary.TotalAdvances.Add(e.Amount)
		case domain.CategoryEmployeeDeduction:
			summary.TotalDeductions = summary.TotalDeductions.Add(e.Amount)
		case domain.CategoryPayroll:
			summary.TotalSalariesPaid = summary.TotalSalariesPaid.Add(e.Amount)
		}
	}
	summary.OutstandingBalance = summary.TotalAdvances.Sub(summary.TotalDeductions)
	return summary
}

// FindEmployeeByQID returns the first employee whose QID equals qid, ignoring case and
// surrounding space. Employees without a QID never match.
func FindEmployeeByQID(employees []domain.Employee, qid string) (*domain.Employee, bool) {
	if strings.TrimSpace(qid) == "" {
		return nil, false
	}
	for i := range employees {
		if employees[i].HasQID() && sameQID(employees[i].QID.Number, qid) {
			return &employees[i], true
		}
	}
	return nil, false
}
