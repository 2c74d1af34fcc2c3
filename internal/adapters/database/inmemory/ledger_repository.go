package inmemory

import (
	"context"
	"sort"

	"github.com/SscSPs/staff_ledger_app/internal/apperrors"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/staff_ledger_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type LedgerRepository struct {
	store *Store
}

var _ portsrepo.LedgerRepositoryFacade = (*LedgerRepository)(nil)

func (r *LedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.appendEntryLocked(entry)
}

func (r *LedgerRepository) GetLedger(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	ledger, ok := r.store.ledgers[ledgerID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := *ledger
	return &out, nil
}

func (r *LedgerRepository) ListEntries(ctx context.Context, ledgerID string, filter portsrepo.LedgerEntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	hasCursor := nextToken != nil && *nextToken != ""
	lastDate, lastSeq, err := decodeCursor(nextToken)
	if err != nil {
		return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
	}

	r.store.mu.RLock()
	matched := make([]domain.LedgerEntry, 0)
	for _, e := range r.store.entries {
		if e.LedgerID != ledgerID {
			continue
		}
		if filter.Category != nil && e.Category != *filter.Category {
			continue
		}
		if filter.EmployeeID != nil && !e.IsLinkedTo(*filter.EmployeeID) {
			continue
		}
		if filter.Since != nil && e.Date.Before(*filter.Since) {
			continue
		}
		if hasCursor && !(e.Date.Before(lastDate) || (e.Date.Equal(lastDate) && e.Seq > lastSeq)) {
			continue
		}
		matched = append(matched, e)
	}
	r.store.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].Seq < matched[j].Seq
	})

	var nextTokenVal *string
	if len(matched) > limit {
		last := matched[limit-1]
		token := pagination.EncodeToken(last.Date, last.Seq)
		nextTokenVal = &token
		matched = matched[:limit]
	}
	return matched, nextTokenVal, nil
}

func (r *LedgerRepository) ListAllEntries(ctx context.Context, ledgerID string) ([]domain.LedgerEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]domain.LedgerEntry, 0, len(r.store.entries))
	for _, e := range r.store.entries {
		if e.LedgerID == ledgerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *LedgerRepository) ResetBalance(ctx context.Context, ledgerID string, balance decimal.Decimal, expectedEntryCount int64, audit domain.AuditRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ledger, ok := r.store.ledgers[ledgerID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if ledger.EntryCount != expectedEntryCount {
		return apperrors.NewConflictError("ledger " + ledgerID + " changed during reconciliation, retry")
	}
	ledger.Balance = balance
	ledger.LastUpdatedAt = audit.CreatedAt
	r.store.appendAuditLocked(audit)
	return nil
}
