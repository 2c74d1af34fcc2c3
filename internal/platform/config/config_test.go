package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, "Asia/Qatar", cfg.BusinessLocation.String())
	assert.Equal(t, 90, cfg.ExpiryAlertWindowDays)
	assert.Equal(t, 6, cfg.ExpiryCheckHour)
	assert.False(t, cfg.LooseNameMatching)
	assert.True(t, cfg.OutstandingPayrollRate.Equal(decimal.RequireFromString("0.10")))
	assert.Equal(t, "jobs:notifications", cfg.NotificationQueue)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("PGSQL_URL", "postgres://localhost/ledger")
	t.Setenv("BUSINESS_TIMEZONE", "UTC")
	t.Setenv("EXPIRY_ALERT_WINDOW_DAYS", "30")
	t.Setenv("EXPIRY_CHECK_HOUR", "25")
	t.Setenv("LOOSE_NAME_MATCHING", "true")
	t.Setenv("OUTSTANDING_PAYROLL_RATE", "0.25")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/ledger", cfg.DatabaseURL)
	assert.Equal(t, "UTC", cfg.BusinessLocation.String())
	assert.Equal(t, 30, cfg.ExpiryAlertWindowDays)
	assert.Equal(t, 6, cfg.ExpiryCheckHour, "out of range hour falls back to the default")
	assert.True(t, cfg.LooseNameMatching)
	assert.True(t, cfg.OutstandingPayrollRate.Equal(decimal.RequireFromString("0.25")))
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown storage driver", "STORAGE_DRIVER", "mongo"},
		{"unknown timezone", "BUSINESS_TIMEZONE", "Mars/Olympus"},
		{"negative rate", "OUTSTANDING_PAYROLL_RATE", "-1"},
		{"non numeric rate", "OUTSTANDING_PAYROLL_RATE", "ten percent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STORAGE_DRIVER", "memory")
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
