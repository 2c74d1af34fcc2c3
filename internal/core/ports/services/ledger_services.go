package services

import (
	"context"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/SscSPs/staff_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerReaderSvc defines read operations for the shared ledger
type LedgerReaderSvc interface {
	// ListEntries retrieves a page of entries, newest first.
	ListEntries(ctx context.Context, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error)

	// ListAll retrieves the complete log in insertion order.
	ListAll(ctx context.Context) ([]domain.LedgerEntry, error)

	// GetSummary retrieves the ledger document with the current outstanding estimate.
	GetSummary(ctx context.Context) (*domain.Ledger, error)
}

// LedgerWriterSvc defines write operations for the shared ledger
type LedgerWriterSvc interface {
	// AppendEntry validates and appends a non-payroll entry.
	AppendEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, creatorUserID string) (*domain.LedgerEntry, error)
}

// LedgerCalculatorSvc defines the derived ledger figures
type LedgerCalculatorSvc interface {
	// GetBalance returns Σcredits − Σdebits over the whole log.
	GetBalance(ctx context.Context) (decimal.Decimal, error)

	// GetOutstanding returns the placeholder outstanding estimate (a fixed share of payroll debits).
	GetOutstanding(ctx context.Context) (decimal.Decimal, error)

	// ReconcileBalance re-derives the balance from the log and repairs the stored value on drift.
	ReconcileBalance(ctx context.Context, userID string) (*domain.BalanceReconciliation, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	LedgerCalculatorSvc
}
