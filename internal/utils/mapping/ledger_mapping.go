package mapping

import (
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/SscSPs/staff_ledger_app/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:      d.EntryID,
		LedgerID:     d.LedgerID,
		Seq:          d.Seq,
		EntryDate:    d.Date,
		EntryType:    string(d.Type),
		Amount:       d.Amount,
		Description:  d.Description,
		Category:     string(d.Category),
		EmployeeID:   d.EmployeeID,
		EmployeeName: d.EmployeeName,
		QIDNumber:    d.QIDNumber,
		CustomerID:   d.CustomerID,
		CreatedBy:    d.CreatedBy,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:      m.EntryID,
		LedgerID:     m.LedgerID,
		Seq:          m.Seq,
		Date:         m.EntryDate,
		Type:         domain.EntryType(m.EntryType),
		Amount:       m.Amount,
		Description:  m.Description,
		Category:     domain.Category(m.Category),
		EmployeeID:   m.EmployeeID,
		EmployeeName: m.EmployeeName,
		QIDNumber:    m.QIDNumber,
		CustomerID:   m.CustomerID,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntry
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	out := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainLedgerEntry(m)
	}
	return out
}

// ToDomainLedger converts a model Ledger to a domain Ledger
func ToDomainLedger(m models.Ledger) domain.Ledger {
	return domain.Ledger{
		LedgerID:      m.LedgerID,
		Balance:       m.Balance,
		EntryCount:    m.EntryCount,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}
