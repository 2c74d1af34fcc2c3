package accounting

import (
	"fmt"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
)

// ReconcileEmployee checks that every employee-linked ledger entry for emp is mirrored by a
// transaction or advance (by ledger entry ID) and vice versa, that mirrored amounts agree, and
// that the stored totalPaid equals the sum of transactions.
func ReconcileEmployee(emp domain.Employee, entries []domain.LedgerEntry) domain.ReconciliationReport {
	report := domain.ReconciliationReport{
		EmployeeID:       emp.EmployeeID,
		StoredTotalPaid:  emp.TotalPaid,
		DerivedTotalPaid: emp.ComputeTotalPaid(),
		Issues:           make([]domain.ReconciliationIssue, 0),
	}

	byID := make(map[string]domain.LedgerEntry)
	for _, e := range entries {
		if e.Category.IsEmployeeLinked() && e.IsLinkedTo(emp.EmployeeID) {
			byID[e.EntryID] = e
		}
	}

	mirrored := make(map[string]bool, len(byID))
	for _, t := range emp.Transactions {
		if t.LedgerEntryID == nil {
			report.Issues = append(report.Issues, domain.ReconciliationIssue{
				Kind:      domain.IssueRecordUnposted,
				Reference: t.TransactionID,
				Detail:    fmt.Sprintf("%s transaction has no ledger entry", t.Type),
			})
			continue
		}
		entry, ok := byID[*t.LedgerEntryID]
		if !ok {
			report.Issues = append(report.Issues, domain.ReconciliationIssue{
				Kind:      domain.IssueRecordUnposted,
				Reference: t.TransactionID,
				Detail:    fmt.Sprintf("ledger entry %s not found", *t.LedgerEntryID),
			})
			continue
		}
		mirrored[entry.EntryID] = true
		if !entry.Amount.Equal(t.Amount.Abs()) {
			report.Issues = append(report.Issues, domain.ReconciliationIssue{
				Kind:      domain.IssueAmountMismatch,
				Reference: t.TransactionID,
				Detail:    fmt.Sprintf("transaction %s, ledger entry %s", t.Amount.Abs(), entry.Amount),
			})
		}
	}
	for _, a := range emp.Advances {
		if a.LedgerEntryID == nil {
			report.Issues = append(report.Issues, domain.ReconciliationIssue{
				Kind:      domain.IssueRecordUnposted,
				Reference: a.AdvanceID,
				Detail:    "advance has no ledger entry",
			})
			continue
		}
		if _, ok := byID[*a.LedgerEntryID]; !ok {
			report.Issues = append(report.Issues, domain.ReconciliationIssue{
				Kind:      domain.IssueRecordUnposted,
				Reference: a.AdvanceID,
				Detail:    fmt.Sprintf("ledger entry %s not found", *a.LedgerEntryID),
			})
			continue
		}
		mirrored[*a.LedgerEntryID] = true
	}

	// iterate entries rather than the map so issues come out in log order
	for _, e := range entries {
		if _, linked := byID[e.EntryID]; linked && !mirrored[e.EntryID] {
			report.Issues = append(report.Issues, domain.ReconciliationIssue{
				Kind:      domain.IssueLedgerEntryUnmirrored,
				Reference: e.EntryID,
				Detail:    fmt.Sprintf("%s entry of %s has no employee record", e.Category, e.Amount),
			})
		}
	}

	if !report.StoredTotalPaid.Equal(report.DerivedTotalPaid) {
		report.Issues = append(report.Issues, domain.ReconciliationIssue{
			Kind:      domain.IssueTotalPaidDrift,
			Reference: emp.EmployeeID,
			Detail:    fmt.Sprintf("stored %s, derived %s", report.StoredTotalPaid, report.DerivedTotalPaid),
		})
	}

	report.Consistent = len(report.Issues) == 0
	return report
}
