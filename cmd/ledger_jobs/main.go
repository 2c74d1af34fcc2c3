// Command ledger_jobs runs one scheduled job and exits. An external scheduler (cron, Cloud
// Scheduler) invokes it when the in-process scheduler is disabled; a non-zero exit marks the run failed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	portssvc "github.com/SscSPs/staff_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/staff_ledger_app/internal/core/services"
	"github.com/SscSPs/staff_ledger_app/internal/platform/bootstrap"
	"github.com/SscSPs/staff_ledger_app/internal/platform/config"
)

const jobReconcileBalance = "reconcile-balance"

const triggeredBy = "ledger_jobs"

func main() {
	jobName := flag.String("job", "", "job to run: check-expirations, monthly-report or reconcile-balance")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("job", *jobName))
	slog.SetDefault(logger)

	if err := run(*jobName, logger); err != nil {
		logger.Error("Job failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(jobName string, logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	started := time.Now()
	if err := runJob(ctx, app.Services, jobName, started, logger); err != nil {
		return err
	}
	logger.Info("Job finished", slog.Duration("duration", time.Since(started)))
	return nil
}

func runJob(ctx context.Context, container *portssvc.ServiceContainer, jobName string, now time.Time, logger *slog.Logger) error {
	switch jobName {
	case services.JobCheckExpirations:
		snapshot, err := container.Expiration.CheckExpirations(ctx, now)
		if err != nil {
			return err
		}
		logger.Info("Expiration alerts refreshed", slog.Int("alerts", snapshot.Count))
	case services.JobMonthlyReport:
		report, err := container.MonthlyReport.GenerateMonthlyReport(ctx, now, triggeredBy)
		if err != nil {
			return err
		}
		logger.Info("Monthly report generated",
			slog.Int("year", report.Year),
			slog.Int("month", report.Month),
			slog.Int("employees", report.TotalEmployees))
	case jobReconcileBalance:
		result, err := container.Ledger.ReconcileBalance(ctx, triggeredBy)
		if err != nil {
			return err
		}
		logger.Info("Ledger balance reconciled",
			slog.String("drift", result.Drift.String()),
			slog.Bool("repaired", result.Repaired))
	default:
		return fmt.Errorf("unknown job %q", jobName)
	}
	return nil
}
