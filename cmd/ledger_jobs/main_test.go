package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/adapters/database/inmemory"
	"github.com/SscSPs/staff_ledger_app/internal/core/services"
	"github.com/SscSPs/staff_ledger_app/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunJob(t *testing.T) {
	cfg := &config.Config{
		BusinessLocation:       time.UTC,
		ExpiryAlertWindowDays:  90,
		OutstandingPayrollRate: decimal.RequireFromString("0.10"),
	}
	container := services.NewServiceContainer(cfg, inmemory.NewRepositoryProvider(inmemory.NewStore()))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for _, job := range []string{services.JobCheckExpirations, services.JobMonthlyReport, jobReconcileBalance} {
		assert.NoError(t, runJob(context.Background(), container, job, now, logger), job)
	}

	report, err := container.MonthlyReport.GetMonthlyReport(context.Background(), 2024, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalEmployees)

	assert.Error(t, runJob(context.Background(), container, "vacuum", now, logger))
}
