package pgsql

import (
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:        newPgxLedgerRepository(dbPool),
		EmployeeRepo:      newPgxEmployeeRepository(dbPool),
		CustomerRepo:      newPgxCustomerRepository(dbPool),
		AlertRepo:         newPgxAlertRepository(dbPool),
		MonthlyReportRepo: newPgxMonthlyReportRepository(dbPool),
		AuditRepo:         newPgxAuditRepository(dbPool),
		NotificationRepo:  newPgxNotificationRepository(dbPool),
		Health:            &BaseRepository{Pool: dbPool},
	}
}
