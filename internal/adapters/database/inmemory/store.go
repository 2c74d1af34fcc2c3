// Package inmemory keeps every collection in process memory behind a single mutex. It backs the
// "memory" storage driver and the concurrency tests; composite writes are atomic because they
// run entirely under the write lock.
package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/apperrors"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
)

type auditRow struct {
	seq    int64
	record domain.AuditRecord
}

// Store holds all state shared by the in-memory repositories.
type Store struct {
	mu sync.RWMutex

	ledgers       map[string]*domain.Ledger
	entries       []domain.LedgerEntry
	entrySeq      int64
	employees     map[string]*domain.Employee
	requests      map[string]*domain.AdvanceRequest
	customers     map[string]*domain.Customer
	snapshot      *domain.ExpirationSnapshot
	reports       map[[2]int]*domain.MonthlyReport
	audits        []auditRow
	auditSeq      int64
	notifications []domain.Notification
}

// NewStore returns an empty store with the main ledger initialised.
func NewStore() *Store {
	now := time.Now().UTC()
	return &Store{
		ledgers: map[string]*domain.Ledger{
			domain.MainLedgerID: {LedgerID: domain.MainLedgerID, CreatedAt: now, LastUpdatedAt: now},
		},
		employees: map[string]*domain.Employee{},
		requests:  map[string]*domain.AdvanceRequest{},
		customers: map[string]*domain.Customer{},
		reports:   map[[2]int]*domain.MonthlyReport{},
	}
}

// NewRepositoryProvider wires every repository port to one shared store.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:        &LedgerRepository{store: store},
		EmployeeRepo:      &EmployeeRepository{store: store},
		CustomerRepo:      &CustomerRepository{store: store},
		AlertRepo:         &AlertRepository{store: store},
		MonthlyReportRepo: &MonthlyReportRepository{store: store},
		AuditRepo:         &AuditRepository{store: store},
		NotificationRepo:  &NotificationRepository{store: store},
		Health:            store,
	}
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// appendEntryLocked mirrors the SQL append: assign seq, move the balance. Caller holds mu.
func (s *Store) appendEntryLocked(entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	ledger, ok := s.ledgers[entry.LedgerID]
	if !ok {
		return nil, apperrors.NewNotFoundError("ledger " + entry.LedgerID)
	}
	s.entrySeq++
	entry.Seq = s.entrySeq
	s.entries = append(s.entries, entry)
	ledger.Balance = ledger.Balance.Add(entry.SignedAmount())
	ledger.EntryCount++
	ledger.LastUpdatedAt = entry.CreatedAt
	saved := entry
	return &saved, nil
}

func (s *Store) appendAuditLocked(rec domain.AuditRecord) {
	s.auditSeq++
	s.audits = append(s.audits, auditRow{seq: s.auditSeq, record: rec})
}

func cloneEmployee(e *domain.Employee, withRequests []domain.AdvanceRequest) domain.Employee {
	out := *e
	out.Transactions = append([]domain.EmployeeTransaction{}, e.Transactions...)
	out.Advances = append([]domain.Advance{}, e.Advances...)
	out.AdvanceRequests = withRequests
	return out
}

func cloneCustomer(c *domain.Customer) domain.Customer {
	out := *c
	out.Invoices = append([]domain.Invoice{}, c.Invoices...)
	return out
}
