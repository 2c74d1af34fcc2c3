package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/apperrors"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/staff_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/staff_ledger_app/internal/utils/accounting"
	"github.com/google/uuid"
)

const (
	JobCheckExpirations = "check-expirations"

	expirationDigestRecipient = "payroll-admin"
)

// ExpirationService scans identity documents and keeps the current-alerts snapshot.
type ExpirationService struct {
	BaseService
	employeeRepo     portsrepo.EmployeeReader
	alertRepo        portsrepo.AlertRepositoryFacade
	notificationRepo portsrepo.NotificationRepositoryFacade
	windowDays       int
}

// NewExpirationService creates a new ExpirationService. Documents expiring in fewer than
// windowDays days are reported.
func NewExpirationService(
	employeeRepo portsrepo.EmployeeReader,
	alertRepo portsrepo.AlertRepositoryFacade,
	notificationRepo portsrepo.NotificationRepositoryFacade,
	windowDays int,
	options ...Option,
) *ExpirationService {
	return &ExpirationService{
		BaseService:      newBaseService(options),
		employeeRepo:     employeeRepo,
		alertRepo:        alertRepo,
		notificationRepo: notificationRepo,
		windowDays:       windowDays,
	}
}

var _ portssvc.ExpirationService = (*ExpirationService)(nil)

// CheckExpirations recomputes every alert relative to now and replaces the snapshot wholesale,
// so alerts for renewed documents disappear. Repeating a run with the same now leaves the same
// snapshot but queues another digest whenever alerts exist.
func (s *ExpirationService) CheckExpirations(ctx context.Context, now time.Time) (*domain.ExpirationSnapshot, error) {
	started := time.Now()
	s.LogInfo(ctx, "Expiration check started", slog.Time("now", now), slog.Int("window_days", s.windowDays))

	employees, err := s.employeeRepo.ListAllEmployees(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load employees for expiration check")
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	alerts := accounting.ExpirationAlerts(employees, now, s.windowDays)
	snapshot := domain.ExpirationSnapshot{
		Alerts:      alerts,
		Count:       len(alerts),
		LastChecked: now,
	}
	if err := s.alertRepo.ReplaceExpirationSnapshot(ctx, snapshot); err != nil {
		s.LogError(ctx, err, "Failed to store expiration snapshot")
		return nil, fmt.Errorf("failed to store expiration snapshot: %w", err)
	}

	if snapshot.Count > 0 {
		s.queueDigest(ctx, snapshot)
	}

	s.recordJobRun(JobCheckExpirations, map[string]any{
		"employees": len(employees),
		"alerts":    snapshot.Count,
	})
	s.LogInfo(ctx, "Expiration check finished",
		slog.Int("employees", len(employees)),
		slog.Int("alerts", snapshot.Count),
		slog.Duration("duration", time.Since(started)))
	return &snapshot, nil
}

// queueDigest stores one digest notification. The snapshot is already committed, so a failure
// here is logged rather than failing the run.
func (s *ExpirationService) queueDigest(ctx context.Context, snapshot domain.ExpirationSnapshot) {
	expired := 0
	for _, a := range snapshot.Alerts {
		if a.Kind == domain.AlertExpired {
			expired++
		}
	}
	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		Kind:           domain.NotificationExpirationDigest,
		Recipient:      expirationDigestRecipient,
		Subject:        fmt.Sprintf("%d identity documents need attention", snapshot.Count),
		Payload: map[string]interface{}{
			"count":       snapshot.Count,
			"expired":     expired,
			"expiring":    snapshot.Count - expired,
			"lastChecked": snapshot.LastChecked.Format(time.RFC3339),
		},
		Status:    domain.NotificationQueued,
		CreatedAt: s.Now(),
	}
	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		s.LogError(ctx, err, "Failed to queue expiration digest")
		return
	}
	s.publish(ctx, notification)
}

// GetExpirationAlerts returns the last stored snapshot, empty if no scan has run.
func (s *ExpirationService) GetExpirationAlerts(ctx context.Context) (*domain.ExpirationSnapshot, error) {
	snapshot, err := s.alertRepo.GetExpirationSnapshot(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.ExpirationSnapshot{Alerts: []domain.ExpirationAlert{}}, nil
		}
		s.LogError(ctx, err, "Failed to load expiration snapshot")
		return nil, fmt.Errorf("failed to load expiration snapshot: %w", err)
	}
	if snapshot.Alerts == nil {
		snapshot.Alerts = []domain.ExpirationAlert{}
	}
	return snapshot, nil
}
