package accounting

import (
	"math"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
)

// DaysLeft returns ceil((expiry − now) / 24h).
func DaysLeft(expiry, now time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}

// ClassifyExpiry returns the alert kind for daysLeft, or false when no alert is due.
// windowDays itself is outside the window.
func ClassifyExpiry(daysLeft, windowDays int) (domain.AlertKind, bool) {
	switch {
	case daysLeft <= 0:
		return domain.AlertExpired, true
	case daysLeft < windowDays:
		return domain.AlertExpiring, true
	default:
		return "", false
	}
}

// ExpirationAlerts checks QID and passport of every employee independently.
// Documents without an expiry date are skipped.
func ExpirationAlerts(employees []domain.Employee, now time.Time, windowDays int) []domain.ExpirationAlert {
	alerts := make([]domain.ExpirationAlert, 0)
	for _, emp := range employees {
		docs := []struct {
			kind domain.DocumentKind
			doc  domain.IdentityDocument
		}{
			{domain.DocumentQID, emp.QID},
			{domain.DocumentPassport, emp.Passport},
		}
		for _, d := range docs {
			if d.doc.Expiry == nil {
				continue
			}
			daysLeft := DaysLeft(*d.doc.Expiry, now)
			kind, ok := ClassifyExpiry(daysLeft, windowDays)
			if !ok {
				continue
			}
			days := daysLeft
			if days < 0 {
				days = -days
			}
			alerts = append(alerts, domain.ExpirationAlert{
				EmployeeID:     emp.EmployeeID,
				EmployeeName:   emp.Name,
				Document:       d.kind,
				DocumentNumber: d.doc.Number,
				ExpiryDate:     *d.doc.Expiry,
				Kind:           kind,
				DaysLeft:       daysLeft,
				Days:           days,
			})
		}
	}
	return alerts
}
