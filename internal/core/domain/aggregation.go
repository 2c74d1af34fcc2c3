package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotals is one bucket of a category breakdown.
type CategoryTotals struct {
	Category Category        `json:"category"`
	Label    string          `json:"label"`
	Credits  decimal.Decimal `json:"credits"`
	Debits   decimal.Decimal `json:"debits"`
	Net      decimal.Decimal `json:"net"`
	Count    int             `json:"count"`
}

// CashFlow totals entries over a trailing window.
type CashFlow struct {
	WindowDays   int             `json:"windowDays"`
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	NetFlow      decimal.Decimal `json:"netFlow"`
}

// EmployeeSummary is the ledger-side view of one employee's payroll activity.
type EmployeeSummary struct {
	EmployeeID         string          `json:"employeeID"`
	TotalAdvances      decimal.Decimal `json:"totalAdvances"`
	TotalDeductions    decimal.Decimal `json:"totalDeductions"`
	TotalSalariesPaid  decimal.Decimal `json:"totalSalariesPaid"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	MatchedEntries     int             `json:"matchedEntries"`
	LooseMatches       int             `json:"looseMatches"` // entries attributed only by name substring
}

// ReconciliationIssueKind classifies a cross-entity discrepancy.
type ReconciliationIssueKind string

const (
	IssueLedgerEntryUnmirrored ReconciliationIssueKind = "LEDGER_ENTRY_WITHOUT_EMPLOYEE_RECORD"
	IssueRecordUnposted        ReconciliationIssueKind = "EMPLOYEE_RECORD_WITHOUT_LEDGER_ENTRY"
	IssueTotalPaidDrift        ReconciliationIssueKind = "TOTAL_PAID_DRIFT"
	IssueAmountMismatch        ReconciliationIssueKind = "AMOUNT_MISMATCH"
)

// ReconciliationIssue describes one discrepancy found by ReconcileEmployee.
type ReconciliationIssue struct {
	Kind      ReconciliationIssueKind `json:"kind"`
	Reference string                  `json:"reference"`
	Detail    string                  `json:"detail"`
}

// ReconciliationReport compares an employee's records with the ledger.
type ReconciliationReport struct {
	EmployeeID       string                `json:"employeeID"`
	Consistent       bool                  `json:"consistent"`
	StoredTotalPaid  decimal.Decimal       `json:"storedTotalPaid"`
	DerivedTotalPaid decimal.Decimal       `json:"derivedTotalPaid"`
	Issues           []ReconciliationIssue `json:"issues"`
	CheckedAt        time.Time             `json:"checkedAt"`
}

// Dashboard is the overview shown on the landing page.
type Dashboard struct {
	Balance           decimal.Decimal  `json:"balance"`
	Outstanding       decimal.Decimal  `json:"outstanding"`
	CashFlow          CashFlow         `json:"cashFlow"`
	MonthBreakdown    []CategoryTotals `json:"monthBreakdown"`
	PendingAdvances   decimal.Decimal  `json:"pendingAdvances"`
	EmployeeCount     int              `json:"employeeCount"`
	CustomerCount     int              `json:"customerCount"`
	ReceivablesDue    decimal.Decimal  `json:"receivablesDue"`
	OverdueInvoices   int              `json:"overdueInvoices"`
	ExpirationAlerts  int              `json:"expirationAlerts"`
	AlertsLastChecked *time.Time       `json:"alertsLastChecked,omitempty"`
	GeneratedAt       time.Time        `json:"generatedAt"`
}
