package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MainLedgerID identifies the single shared ledger aggregate.
const MainLedgerID = "main"

// EntryType indicates whether a ledger entry adds to or draws from the balance.
type EntryType string

const (
	Credit EntryType = "CREDIT"
	Debit  EntryType = "DEBIT"
)

// IsValid reports whether t is one of the two supported entry types.
func (t EntryType) IsValid() bool {
	return t == Credit || t == Debit
}

// Category tags the business purpose of a ledger entry.
type Category string

const (
	CategoryRevenue           Category = "revenue"
	CategorySales             Category = "sales"
	CategoryPayroll           Category = "payroll"
	CategoryEmployeeAdvance   Category = "employee-advance"
	CategoryEmployeeDeduction Category = "employee-deduction"
	CategoryRent              Category = "rent"
	CategoryUtilities         Category = "utilities"
	CategoryOffice            Category = "office"
	CategorySupplies          Category = "supplies"
	CategoryTransport         Category = "transport"
	CategoryMaintenance       Category = "maintenance"
	CategoryGovernmentFees    Category = "government-fees"
	CategoryVisa              Category = "visa"
	CategoryInsurance         Category = "insurance"
	CategoryBankCharges       Category = "bank-charges"
	CategoryOther             Category = "other"
)

// UncategorizedLabel is shown for categories the system does not recognise.
const UncategorizedLabel = "Uncategorized"

var categoryLabels = map[Category]string{
	CategoryRevenue:           "Revenue",
	CategorySales:             "Sales",
	CategoryPayroll:           "Payroll",
	CategoryEmployeeAdvance:   "Employee Advance",
	CategoryEmployeeDeduction: "Employee Deduction",
	CategoryRent:              "Rent",
	CategoryUtilities:         "Utilities",
	CategoryOffice:            "Office",
	CategorySupplies:          "Supplies",
	CategoryTransport:         "Transport",
	CategoryMaintenance:       "Maintenance",
	CategoryGovernmentFees:    "Government Fees",
	CategoryVisa:              "Visa",
	CategoryInsurance:         "Insurance",
	CategoryBankCharges:       "Bank Charges",
	CategoryOther:             "Other",
}

var knownCategories = []Category{
	CategoryRevenue, CategorySales, CategoryPayroll, CategoryEmployeeAdvance, CategoryEmployeeDeduction,
	CategoryRent, CategoryUtilities, CategoryOffice, CategorySupplies, CategoryTransport,
	CategoryMaintenance, CategoryGovernmentFees, CategoryVisa, CategoryInsurance, CategoryBankCharges,
	CategoryOther,
}

// KnownCategories returns every recognised category tag in display order.
func KnownCategories() []Category {
	out := make([]Category, len(knownCategories))
	copy(out, knownCategories)
	return out
}

// IsKnown reports whether c is a recognised tag. Unknown tags are still accepted on append.
func (c Category) IsKnown() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label, falling back to UncategorizedLabel.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return UncategorizedLabel
}

// IsEmployeeLinked reports whether entries of this category must reference an employee.
func (c Category) IsEmployeeLinked() bool {
	switch c {
	case CategoryPayroll, CategoryEmployeeAdvance, CategoryEmployeeDeduction:
		return true
	}
	return false
}

var (
	ErrEntryAmountNotPositive = errors.New("entry amount must be greater than zero")
	ErrEntryDescriptionEmpty  = errors.New("entry description is required")
	ErrEntryTypeInvalid       = errors.New("entry type must be CREDIT or DEBIT")
	ErrEntryEmployeeMissing   = errors.New("employee-linked entries require an employee ID")
)

// LedgerEntry is an immutable financial record in the shared ledger.
type LedgerEntry struct {
	EntryID      string          `json:"entryID"`
	LedgerID     string          `json:"ledgerID"`
	Seq          int64           `json:"seq"` // insertion order, assigned by storage
	Date         time.Time       `json:"date"`
	Type         EntryType       `json:"type"`
	Amount       decimal.Decimal `json:"amount" validate:"dgt0"`
	Description  string          `json:"description" validate:"required"`
	Category     Category        `json:"category"`
	EmployeeID   *string         `json:"employeeID,omitempty"`
	EmployeeName *string         `json:"employeeName,omitempty"`
	QIDNumber    *string         `json:"qidNumber,omitempty"`
	CustomerID   *string         `json:"customerID,omitempty"`
	CreatedBy    string          `json:"createdBy"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Validate checks the append-time rules for an entry.
func (e LedgerEntry) Validate() error {
	if !e.Amount.IsPositive() {
		return ErrEntryAmountNotPositive
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEntryDescriptionEmpty
	}
	if !e.Type.IsValid() {
		return ErrEntryTypeInvalid
	}
	if e.Category.IsEmployeeLinked() && (e.EmployeeID == nil || *e.EmployeeID == "") {
		return ErrEntryEmployeeMissing
	}
	return Validate(e)
}

// SignedAmount returns +amount for credits and -amount for debits.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Type == Debit {
		return e.Amount.Neg()
	}
	return e.Amount
}

// IsLinkedTo reports whether the entry carries an explicit reference to employeeID.
func (e LedgerEntry) IsLinkedTo(employeeID string) bool {
	return e.EmployeeID != nil && *e.EmployeeID == employeeID
}

// Ledger is the aggregate view of the shared ledger document.
type Ledger struct {
	LedgerID      string          `json:"ledgerID"`
	Balance       decimal.Decimal `json:"balance"` // maintained on append, re-derivable from the log
	Outstanding   decimal.Decimal `json:"outstanding"`
	EntryCount    int64           `json:"entryCount"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// BalanceReconciliation compares the stored balance with the fold over the full log.
type BalanceReconciliation struct {
	Stored     decimal.Decimal `json:"stored"`
	Derived    decimal.Decimal `json:"derived"`
	Drift      decimal.Decimal `json:"drift"`
	EntryCount int             `json:"entryCount"`
	Repaired   bool            `json:"repaired"`
}
