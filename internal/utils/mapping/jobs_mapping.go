package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/SscSPs/staff_ledger_app/internal/models"
)

// ToModelAlertSnapshot converts a domain ExpirationSnapshot, encoding alerts as JSON
func ToModelAlertSnapshot(d domain.ExpirationSnapshot) (models.AlertSnapshot, error) {
	alerts := d.Alerts
	if alerts == nil {
		alerts = []domain.ExpirationAlert{}
	}
	raw, err := json.Marshal(alerts)
	if err != nil {
		return models.AlertSnapshot{}, fmt.Errorf("encode alerts: %w", err)
	}
	return models.AlertSnapshot{
		SnapshotID:  domain.ExpirationSnapshotID,
		Alerts:      raw,
		Count:       len(alerts),
		LastChecked: d.LastChecked,
	}, nil
}

// ToDomainAlertSnapshot converts a model AlertSnapshot
func ToDomainAlertSnapshot(m models.AlertSnapshot) (domain.ExpirationSnapshot, error) {
	alerts := []domain.ExpirationAlert{}
	if len(m.Alerts) > 0 {
		if err := json.Unmarshal(m.Alerts, &alerts); err != nil {
			return domain.ExpirationSnapshot{}, fmt.Errorf("decode alerts: %w", err)
		}
	}
	return domain.ExpirationSnapshot{Alerts: alerts, Count: m.Count, LastChecked: m.LastChecked}, nil
}

// ToModelMonthlyReport converts a domain MonthlyReport, encoding employee lines as JSON
func ToModelMonthlyReport(d domain.MonthlyReport) (models.MonthlyReport, error) {
	lines := d.Employees
	if lines == nil {
		lines = []domain.EmployeeMonthlyTotals{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return models.MonthlyReport{}, fmt.Errorf("encode report lines: %w", err)
	}
	return models.MonthlyReport{
		ReportID:           d.ReportID,
		PeriodYear:         d.Year,
		PeriodMonth:        d.Month,
		WindowStart:        d.WindowStart,
		WindowEnd:          d.WindowEnd,
		TotalEmployees:     d.TotalEmployees,
		TotalSalariesPaid:  d.TotalSalariesPaid,
		TotalAdvancesGiven: d.TotalAdvancesGiven,
		Employees:          raw,
		GeneratedAt:        d.GeneratedAt,
		GeneratedBy:        d.GeneratedBy,
	}, nil
}

// ToDomainMonthlyReport converts a model MonthlyReport
func ToDomainMonthlyReport(m models.MonthlyReport) (domain.MonthlyReport, error) {
	lines := []domain.EmployeeMonthlyTotals{}
	if len(m.Employees) > 0 {
		if err := json.Unmarshal(m.Employees, &lines); err != nil {
			return domain.MonthlyReport{}, fmt.Errorf("decode report lines: %w", err)
		}
	}
	return domain.MonthlyReport{
		ReportID:           m.ReportID,
		Year:               m.PeriodYear,
		Month:              m.PeriodMonth,
		WindowStart:        m.WindowStart,
		WindowEnd:          m.WindowEnd,
		TotalEmployees:     m.TotalEmployees,
		TotalSalariesPaid:  m.TotalSalariesPaid,
		TotalAdvancesGiven: m.TotalAdvancesGiven,
		Employees:          lines,
		GeneratedAt:        m.GeneratedAt,
		GeneratedBy:        m.GeneratedBy,
	}, nil
}

// ToModelAuditLog converts a domain AuditRecord, encoding payload and metadata as JSON
func ToModelAuditLog(d domain.AuditRecord) (models.AuditLog, error) {
	payload, err := json.Marshal(nonNilMap(d.Payload))
	if err != nil {
		return models.AuditLog{}, fmt.Errorf("encode audit payload: %w", err)
	}
	metadata, err := json.Marshal(nonNilMap(d.Metadata))
	if err != nil {
		return models.AuditLog{}, fmt.Errorf("encode audit metadata: %w", err)
	}
	return models.AuditLog{
		AuditID:    d.AuditID,
		EventType:  string(d.EventType),
		EmployeeID: d.EmployeeID,
		Payload:    payload,
		Metadata:   metadata,
		CreatedAt:  d.CreatedAt,
	}, nil
}

// ToDomainAuditRecord converts a model AuditLog
func ToDomainAuditRecord(m models.AuditLog) (domain.AuditRecord, error) {
	rec := domain.AuditRecord{
		AuditID:    m.AuditID,
		EventType:  domain.AuditEventType(m.EventType),
		EmployeeID: m.EmployeeID,
		Payload:    map[string]interface{}{},
		Metadata:   map[string]interface{}{},
		CreatedAt:  m.CreatedAt,
	}
	if len(m.Payload) > 0 {
		if err := json.Unmarshal(m.Payload, &rec.Payload); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("decode audit payload: %w", err)
		}
	}
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &rec.Metadata); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("decode audit metadata: %w", err)
		}
	}
	return rec, nil
}

// ToModelNotification converts a domain Notification
func ToModelNotification(d domain.Notification) (models.Notification, error) {
	payload, err := json.Marshal(nonNilMap(d.Payload))
	if err != nil {
		return models.Notification{}, fmt.Errorf("encode notification payload: %w", err)
	}
	return models.Notification{
		NotificationID: d.NotificationID,
		Kind:           string(d.Kind),
		Recipient:      d.Recipient,
		Subject:        d.Subject,
		Payload:        payload,
		Status:         string(d.Status),
		CreatedAt:      d.CreatedAt,
	}, nil
}

// ToDomainNotification converts a model Notification
func ToDomainNotification(m models.Notification) (domain.Notification, error) {
	n := domain.Notification{
		NotificationID: m.NotificationID,
		Kind:           domain.NotificationKind(m.Kind),
		Recipient:      m.Recipient,
		Subject:        m.Subject,
		Payload:        map[string]interface{}{},
		Status:         domain.NotificationStatus(m.Status),
		CreatedAt:      m.CreatedAt,
	}
	if len(m.Payload) > 0 {
		if err := json.Unmarshal(m.Payload, &n.Payload); err != nil {
			return domain.Notification{}, fmt.Errorf("decode notification payload: %w", err)
		}
	}
	return n, nil
}

func nonNilMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}
