package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertSnapshot is the single row of alert_snapshots. Alerts are stored as JSONB.
type AlertSnapshot struct {
	SnapshotID  string    `db:"snapshot_id"`
	Alerts      []byte    `db:"alerts"`
	Count       int       `db:"count"`
	LastChecked time.Time `db:"last_checked"`
}

// MonthlyReport is a row of monthly_reports. Employee lines are stored as JSONB.
type MonthlyReport struct {
	ReportID           string          `db:"report_id"`
	PeriodYear         int             `db:"period_year"`
	PeriodMonth        int             `db:"period_month"`
	WindowStart        time.Time       `db:"window_start"`
	WindowEnd          time.Time       `db:"window_end"`
	TotalEmployees     int             `db:"total_employees"`
	TotalSalariesPaid  decimal.Decimal `db:"total_salaries_paid"`
	TotalAdvancesGiven decimal.Decimal `db:"total_advances_given"`
	Employees          []byte          `db:"employees"`
	GeneratedAt        time.Time       `db:"generated_at"`
	GeneratedBy        string          `db:"generated_by"`
}

// AuditLog is a row of audit_logs.
type AuditLog struct {
	AuditID    string    `db:"audit_id"`
	Seq        int64     `db:"seq"`
	EventType  string    `db:"event_type"`
	EmployeeID *string   `db:"employee_id"`
	Payload    []byte    `db:"payload"`
	Metadata   []byte    `db:"metadata"`
	CreatedAt  time.Time `db:"created_at"`
}

// Notification is a row of notifications.
type Notification struct {
	NotificationID string    `db:"notification_id"`
	Kind           string    `db:"kind"`
	Recipient      string    `db:"recipient"`
	Subject        string    `db:"subject"`
	Payload        []byte    `db:"payload"`
	Status         string    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
}
