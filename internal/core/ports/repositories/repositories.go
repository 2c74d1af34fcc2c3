package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	LedgerRepo        LedgerRepositoryFacade
	EmployeeRepo      EmployeeRepositoryFacade
	CustomerRepo      CustomerRepositoryFacade
	AlertRepo         AlertRepositoryFacade
	MonthlyReportRepo MonthlyReportRepositoryFacade
	AuditRepo         AuditRepositoryFacade
	NotificationRepo  NotificationRepositoryFacade
	Health            HealthChecker
}
