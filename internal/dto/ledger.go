package dto

import (
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerEntryRequest defines the data needed to append a general ledger entry.
// Payroll categories are rejected here; use the employee endpoints for those.
type CreateLedgerEntryRequest struct {
	Date        *time.Time       `json:"date"` // Optional, defaults to now
	Type        domain.EntryType `json:"type" binding:"required,oneof=CREDIT DEBIT"`
	Amount      decimal.Decimal  `json:"amount" binding:"dgt0"`
	Description string           `json:"description" binding:"required"`
	Category    domain.Category  `json:"category" binding:"required"`
	CustomerID  *string          `json:"customerID"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID       string           `json:"entryID"`
	Date          time.Time        `json:"date"`
	Type          domain.EntryType `json:"type"`
	Amount        decimal.Decimal  `json:"amount"`
	Description   string           `json:"description"`
	Category      domain.Category  `json:"category"`
	CategoryLabel string           `json:"categoryLabel"`
	EmployeeID    *string          `json:"employeeID,omitempty"`
	EmployeeName  *string          `json:"employeeName,omitempty"`
	QIDNumber     *string          `json:"qidNumber,omitempty"`
	CustomerID    *string          `json:"customerID,omitempty"`
	CreatedBy     string           `json:"createdBy"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// ListLedgerEntriesParams defines query parameters for listing ledger entries.
type ListLedgerEntriesParams struct {
	Limit      int     `form:"limit,default=50"`
	NextToken  *string `form:"nextToken"`
	Category   *string `form:"category"`
	EmployeeID *string `form:"employeeId"`
	Since      *string `form:"since"` // YYYY-MM-DD
}

// ListLedgerEntriesResponse wraps a page of ledger entries, newest first.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// LedgerSummaryResponse is the view of the shared ledger document.
type LedgerSummaryResponse struct {
	LedgerID      string          `json:"ledgerID"`
	Balance       decimal.Decimal `json:"balance"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	EntryCount    int64           `json:"entryCount"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// BalanceResponse defines the data returned for a balance query.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// OutstandingResponse carries the outstanding estimate and how it was derived.
type OutstandingResponse struct {
	Outstanding decimal.Decimal `json:"outstanding"`
	Basis       string          `json:"basis"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:       e.EntryID,
		Date:          e.Date,
		Type:          e.Type,
		Amount:        e.Amount,
		Description:   e.Description,
		Category:      e.Category,
		CategoryLabel: e.Category.Label(),
		EmployeeID:    e.EmployeeID,
		EmployeeName:  e.EmployeeName,
		QIDNumber:     e.QIDNumber,
		CustomerID:    e.CustomerID,
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt,
	}
}

// ToLedgerEntryResponses converts a slice of domain.LedgerEntry.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToLedgerEntryResponse(&entries[i])
	}
	return res
}

// ToLedgerSummaryResponse converts a domain.Ledger.
func ToLedgerSummaryResponse(l *domain.Ledger) LedgerSummaryResponse {
	return LedgerSummaryResponse{
		LedgerID:      l.LedgerID,
		Balance:       l.Balance,
		Outstanding:   l.Outstanding,
		EntryCount:    l.EntryCount,
		CreatedAt:     l.CreatedAt,
		LastUpdatedAt: l.LastUpdatedAt,
	}
}
