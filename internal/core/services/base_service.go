package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/staff_ledger_app/internal/middleware"
	"github.com/google/uuid"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// JobEventRecorder receives one event per batch job run. utils.PosthogClientWrapper satisfies it.
type JobEventRecorder interface {
	CaptureJobRun(job string, properties map[string]any)
}

// BaseService provides common functionality for all services
type BaseService struct {
	clock     func() time.Time
	publisher portsrepo.NotificationPublisher
	jobEvents JobEventRecorder
}

// Option configures the shared dependencies of a service.
type Option func(*BaseService)

// WithClock replaces time.Now. Tests use it to pin the current time.
func WithClock(clock func() time.Time) Option {
	return func(s *BaseService) {
		s.clock = clock
	}
}

// WithNotificationPublisher hands queued notifications to an external delivery queue after commit.
func WithNotificationPublisher(publisher portsrepo.NotificationPublisher) Option {
	return func(s *BaseService) {
		s.publisher = publisher
	}
}

// WithJobEventRecorder reports batch job runs to product analytics.
func WithJobEventRecorder(recorder JobEventRecorder) Option {
	return func(s *BaseService) {
		s.jobEvents = recorder
	}
}

func newBaseService(options []Option) BaseService {
	base := BaseService{}
	for _, option := range options {
		option(&base)
	}
	return base
}

// Now returns the current time in UTC.
func (s *BaseService) Now() time.Time {
	if s.clock != nil {
		return s.clock().UTC()
	}
	return time.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// newAuditRecord builds an audit record attributed to userID.
func (s *BaseService) newAuditRecord(event domain.AuditEventType, employeeID *string, payload map[string]interface{}, userID string, at time.Time) domain.AuditRecord {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return domain.AuditRecord{
		AuditID:    uuid.NewString(),
		EventType:  event,
		EmployeeID: employeeID,
		Payload:    payload,
		Metadata:   map[string]interface{}{"userID": userID},
		CreatedAt:  at,
	}
}

// publish forwards a committed notification. The stored row is the record of truth, so a queue
// failure is logged and not returned.
func (s *BaseService) publish(ctx context.Context, notification domain.Notification) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, notification); err != nil {
		s.LogError(ctx, err, "Failed to publish notification",
			slog.String("notification_id", notification.NotificationID),
			slog.String("kind", string(notification.Kind)))
	}
}

func (s *BaseService) recordJobRun(job string, properties map[string]any) {
	if s.jobEvents == nil {
		return
	}
	s.jobEvents.CaptureJobRun(job, properties)
}

// normalizeLimit applies the default page size and caps oversized requests.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}

// dateOr returns *date, or fallback when the caller omitted it.
func dateOr(date *time.Time, fallback time.Time) time.Time {
	if date == nil || date.IsZero() {
		return fallback
	}
	return date.UTC()
}
