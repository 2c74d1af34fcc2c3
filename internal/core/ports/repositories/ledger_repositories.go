package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEntryFilter narrows a ledger listing. Nil fields are ignored.
type LedgerEntryFilter struct {
	Category   *domain.Category
	EmployeeID *string
	Since      *time.Time
}

// LedgerReader defines read operations for the shared ledger
type LedgerReader interface {
	// GetLedger returns the ledger document (stored balance, entry count).
	GetLedger(ctx context.Context, ledgerID string) (*domain.Ledger, error)

	// ListEntries returns a page ordered by date descending, ties by insertion order.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, ledgerID string, filter LedgerEntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// ListAllEntries returns the complete log in insertion order.
	ListAllEntries(ctx context.Context, ledgerID string) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines write operations for the shared ledger
type LedgerWriter interface {
	// AppendEntry inserts an entry and applies its signed amount to the stored balance atomically.
	// The returned entry carries the storage-assigned sequence number.
	AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error)

	// ResetBalance overwrites the stored balance with a value re-derived from the log,
	// recording the audit event in the same transaction. It fails with ErrConflict when the
	// ledger no longer holds expectedEntryCount entries.
	ResetBalance(ctx context.Context, ledgerID string, balance decimal.Decimal, expectedEntryCount int64, audit domain.AuditRecord) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
