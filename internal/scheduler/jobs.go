package scheduler

import (
	"context"
	"time"

	portssvc "github.com/SscSPs/staff_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/staff_ledger_app/internal/core/services"
	"github.com/SscSPs/staff_ledger_app/internal/platform/config"
)

// TriggeredBy is recorded as the actor of scheduled runs.
const TriggeredBy = "scheduler"

// StandardJobs returns the expiration scan (daily at the configured hour) and the monthly
// payroll report (00:00 on the 1st), both in the business timezone.
func StandardJobs(cfg *config.Config, container *portssvc.ServiceContainer) []*Job {
	loc := cfg.BusinessLocation
	if loc == nil {
		loc = time.UTC
	}
	return []*Job{
		{
			Name: services.JobCheckExpirations,
			Next: Daily(cfg.ExpiryCheckHour, loc),
			Run: func(ctx context.Context, now time.Time) error {
				_, err := container.Expiration.CheckExpirations(ctx, now)
				return err
			},
		},
		{
			Name: services.JobMonthlyReport,
			Next: Monthly(loc),
			Run: func(ctx context.Context, now time.Time) error {
				_, err := container.MonthlyReport.GenerateMonthlyReport(ctx, now, TriggeredBy)
				return err
			},
		},
	}
}
