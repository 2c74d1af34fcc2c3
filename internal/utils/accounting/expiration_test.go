package accounting

import (
	"testing"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyExpiry(t *testing.T) {
	tests := []struct {
		daysLeft int
		wantKind domain.AlertKind
		wantOK   bool
	}{
		{91, "", false},
		{90, "", false},
		{89, domain.AlertExpiring, true},
		{1, domain.AlertExpiring, true},
		{0, domain.AlertExpired, true},
		{-5, domain.AlertExpired, true},
	}
	for _, tt := range tests {
		kind, ok := ClassifyExpiry(tt.daysLeft, 90)
		assert.Equal(t, tt.wantOK, ok, "daysLeft=%d", tt.daysLeft)
		assert.Equal(t, tt.wantKind, kind, "daysLeft=%d", tt.daysLeft)
	}
}

func TestDaysLeft_RoundsUp(t *testing.T) {
	now := time.Date(2026, 5, 1, 6, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysLeft(now.Add(time.Hour), now))
	assert.Equal(t, 90, DaysLeft(now.AddDate(0, 0, 90), now))
	assert.Equal(t, 0, DaysLeft(now, now))
	assert.Equal(t, 0, DaysLeft(now.Add(-time.Hour), now))
	assert.Equal(t, -5, DaysLeft(now.AddDate(0, 0, -5), now))
}

func TestExpirationAlerts(t *testing.T) {
	now := time.Date(2026, 5, 1, 6, 0, 0, 0, time.UTC)
	at := func(days int) *time.Time {
		v := now.AddDate(0, 0, days)
		return &v
	}
	employees := []domain.Employee{
		{
			EmployeeID: "e1", Name: "One",
			QID:      domain.IdentityDocument{Number: "Q1", Expiry: at(90)},
			Passport: domain.IdentityDocument{Number: "P1", Expiry: at(89)},
		},
		{
			EmployeeID: "e2", Name: "Two",
			QID:      domain.IdentityDocument{Number: "Q2", Expiry: at(0)},
			Passport: domain.IdentityDocument{Number: "P2", Expiry: at(-5)},
		},
		{
			EmployeeID: "e3", Name: "Three",
			QID: domain.IdentityDocument{Number: "Q3"},
		},
	}

	alerts := ExpirationAlerts(employees, now, 90)
	require.Len(t, alerts, 3)

	assert.Equal(t, domain.DocumentPassport, alerts[0].Document)
	assert.Equal(t, domain.AlertExpiring, alerts[0].Kind)
	assert.Equal(t, 89, alerts[0].Days)

	assert.Equal(t, domain.DocumentQID, alerts[1].Document)
	assert.Equal(t, domain.AlertExpired, alerts[1].Kind)
	assert.Equal(t, 0, alerts[1].Days)

	assert.Equal(t, domain.AlertExpired, alerts[2].Kind)
	assert.Equal(t, -5, alerts[2].DaysLeft)
	assert.Equal(t, 5, alerts[2].Days)

	assert.Empty(t, ExpirationAlerts(nil, now, 90))
	assert.NotNil(t, ExpirationAlerts(nil, now, 90))
}
