package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/apperrors"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/staff_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/staff_ledger_app/internal/dto"
	"github.com/SscSPs/staff_ledger_app/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService implements the shared ledger operations.
type LedgerService struct {
	BaseService
	ledgerRepo      portsrepo.LedgerRepositoryFacade
	outstandingRate decimal.Decimal
}

// NewLedgerService creates a new LedgerService. outstandingRate is the share of payroll debits
// reported as outstanding.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, outstandingRate decimal.Decimal, options ...Option) *LedgerService {
	return &LedgerService{
		BaseService:     newBaseService(options),
		ledgerRepo:      ledgerRepo,
		outstandingRate: outstandingRate,
	}
}

var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

// AppendEntry validates and appends a general ledger entry. Payroll categories are refused so that
// employee-linked entries are only ever written together with their employee record.
func (s *LedgerService) AppendEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	category := domain.Category(strings.TrimSpace(string(req.Category)))
	if category.IsEmployeeLinked() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("category %q must be recorded through the employee payroll endpoints", category))
	}

	now := s.Now()
	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		LedgerID:    domain.MainLedgerID,
		Date:        dateOr(req.Date, now),
		Type:        req.Type,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		CustomerID:  req.CustomerID,
		CreatedBy:   creatorUserID,
		CreatedAt:   now,
	}
	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if !category.IsKnown() {
		s.LogDebug(ctx, "Appending entry with unrecognised category", slog.String("category", string(category)))
	}

	saved, err := s.ledgerRepo.AppendEntry(ctx, entry)
	if err != nil {
		s.LogError(ctx, err, "Failed to append ledger entry", slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to append ledger entry: %w", err)
	}

	s.LogInfo(ctx, "Ledger entry appended",
		slog.String("entry_id", saved.EntryID),
		slog.String("type", string(saved.Type)),
		slog.String("category", string(saved.Category)),
		slog.String("amount", saved.Amount.String()))
	return saved, nil
}

// ListEntries retrieves a page of entries, newest first.
func (s *LedgerService) ListEntries(ctx context.Context, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error) {
	filter := portsrepo.LedgerEntryFilter{}
	if params.Category != nil && strings.TrimSpace(*params.Category) != "" {
		category := domain.Category(strings.TrimSpace(*params.Category))
		filter.Category = &category
	}
	if params.EmployeeID != nil && strings.TrimSpace(*params.EmployeeID) != "" {
		employeeID := strings.TrimSpace(*params.EmployeeID)
		filter.EmployeeID = &employeeID
	}
	if params.Since != nil && *params.Since != "" {
		since, err := time.Parse("2006-01-02", *params.Since)
		if err != nil {
			return nil, apperrors.NewValidationError("since must be a date in YYYY-MM-DD format")
		}
		filter.Since = &since
	}

	entries, nextToken, err := s.ledgerRepo.ListEntries(ctx, domain.MainLedgerID, filter, normalizeLimit(params.Limit), params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries")
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	return &dto.ListLedgerEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// ListAll retrieves the complete log in insertion order.
func (s *LedgerService) ListAll(ctx context.Context) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.ListAllEntries(ctx, domain.MainLedgerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger entries")
		return nil, fmt.Errorf("failed to load ledger entries: %w", err)
	}
	return entries, nil
}

// GetSummary retrieves the ledger document with the current outstanding estimate.
func (s *LedgerService) GetSummary(ctx context.Context) (*domain.Ledger, error) {
	ledger, err := s.ledgerRepo.GetLedger(ctx, domain.MainLedgerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger")
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	outstanding, err := s.GetOutstanding(ctx)
	if err != nil {
		return nil, err
	}
	ledger.Outstanding = outstanding
	return ledger, nil
}

// GetBalance returns the stored balance, which is maintained inside every append transaction.
func (s *LedgerService) GetBalance(ctx context.Context) (decimal.Decimal, error) {
	ledger, err := s.ledgerRepo.GetLedger(ctx, domain.MainLedgerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger")
		return decimal.Zero, fmt.Errorf("failed to load ledger: %w", err)
	}
	return ledger.Balance, nil
}

// GetOutstanding returns the configured share of all payroll debits.
func (s *LedgerService) GetOutstanding(ctx context.Context) (decimal.Decimal, error) {
	entries, err := s.ListAll(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.PayrollOutstanding(entries, s.outstandingRate), nil
}

// ReconcileBalance re-derives the balance from the log and repairs the stored value on drift.
func (s *LedgerService) ReconcileBalance(ctx context.Context, userID string) (*domain.BalanceReconciliation, error) {
	ledger, err := s.ledgerRepo.GetLedger(ctx, domain.MainLedgerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger for reconciliation")
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	entries, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if int64(len(entries)) != ledger.EntryCount {
		// an append landed between the two reads
		return nil, apperrors.NewConflictError("ledger changed during reconciliation, retry")
	}

	derived := accounting.Balance(entries)
	result := &domain.BalanceReconciliation{
		Stored:     ledger.Balance,
		Derived:    derived,
		Drift:      derived.Sub(ledger.Balance),
		EntryCount: len(entries),
	}
	if result.Drift.IsZero() {
		s.LogInfo(ctx, "Ledger balance consistent", slog.String("balance", derived.String()), slog.Int("entries", len(entries)))
		return result, nil
	}

	audit := s.newAuditRecord(domain.AuditLedgerBalanceReconciled, nil, map[string]interface{}{
		"ledgerID": domain.MainLedgerID,
		"stored":   ledger.Balance.String(),
		"derived":  derived.String(),
		"drift":    result.Drift.String(),
	}, userID, s.Now())
	if err := s.ledgerRepo.ResetBalance(ctx, domain.MainLedgerID, derived, ledger.EntryCount, audit); err != nil {
		s.LogError(ctx, err, "Failed to repair ledger balance")
		return nil, fmt.Errorf("failed to repair ledger balance: %w", err)
	}
	result.Repaired = true

	s.GetLogger(ctx).Warn("Ledger balance drift repaired",
		slog.String("stored", ledger.Balance.String()),
		slog.String("derived", derived.String()),
		slog.String("drift", result.Drift.String()))
	return result, nil
}
