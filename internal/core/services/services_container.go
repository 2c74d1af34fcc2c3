package services

import (
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/staff_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/staff_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The options (clock, notification publisher, job analytics) are shared by every service.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...Option) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Ledger = NewLedgerService(repos.LedgerRepo, cfg.OutstandingPayrollRate, options...)
	container.Employee = NewEmployeeService(repos.EmployeeRepo, options...)
	container.Customer = NewCustomerService(repos.CustomerRepo, options...)
	container.Aggregation = NewAggregationService(
		repos.LedgerRepo,
		repos.EmployeeRepo,
		repos.CustomerRepo,
		repos.AlertRepo,
		AggregationSettings{
			LooseNameMatching:      cfg.LooseNameMatching,
			OutstandingPayrollRate: cfg.OutstandingPayrollRate,
			Location:               cfg.BusinessLocation,
		},
		options...,
	)
	container.Expiration = NewExpirationService(repos.EmployeeRepo, repos.AlertRepo, repos.NotificationRepo, cfg.ExpiryAlertWindowDays, options...)
	container.MonthlyReport = NewMonthlyReportService(repos.EmployeeRepo, repos.MonthlyReportRepo, cfg.BusinessLocation, options...)
	container.Audit = NewAuditService(repos.AuditRepo, options...)
	container.Health = NewHealthService(repos.Health)

	return container
}
