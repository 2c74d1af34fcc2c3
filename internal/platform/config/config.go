package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageDriver  string
	MigrationsPath string

	// Bearer token verification. Tokens are issued by an external identity provider.
	JWTSecret      string
	JWTIssuer      string
	GoogleClientID string `mapstructure:"GOOGLE_CLIENT_ID"`

	RedisURL          string
	NotificationQueue string
	PosthogAPIKey     string
	RateLimit         string // ulule format, e.g. "100-M"

	// Business rules
	BusinessTimezone       string
	BusinessLocation       *time.Location
	ExpiryAlertWindowDays  int
	ExpiryCheckHour        int
	EnableScheduler        bool
	LooseNameMatching      bool
	OutstandingPayrollRate decimal.Decimal
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "staff-ledger-app")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("NOTIFICATION_QUEUE", "jobs:notifications")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("BUSINESS_TIMEZONE", "Asia/Qatar")
	viper.SetDefault("EXPIRY_ALERT_WINDOW_DAYS", 90)
	viper.SetDefault("EXPIRY_CHECK_HOUR", 6)
	viper.SetDefault("ENABLE_SCHEDULER", true)
	viper.SetDefault("LOOSE_NAME_MATCHING", false)
	viper.SetDefault("OUTSTANDING_PAYROLL_RATE", "0.10")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(viper.GetString("STORAGE_DRIVER")))
	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageDriverMemory:
		log.Println("Warning: STORAGE_DRIVER is memory. Data is lost on restart.")
	default:
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q: must be %s or %s", cfg.StorageDriver, StorageDriverPostgres, StorageDriverMemory)
	}
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set. HS256 bearer tokens will be rejected.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google ID tokens will not be accepted.")
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.NotificationQueue = viper.GetString("NOTIFICATION_QUEUE")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.BusinessTimezone = viper.GetString("BUSINESS_TIMEZONE")
	loc, err := time.LoadLocation(cfg.BusinessTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_TIMEZONE %q: %w", cfg.BusinessTimezone, err)
	}
	cfg.BusinessLocation = loc

	cfg.ExpiryAlertWindowDays = viper.GetInt("EXPIRY_ALERT_WINDOW_DAYS")
	if cfg.ExpiryAlertWindowDays <= 0 {
		cfg.ExpiryAlertWindowDays = 90
		log.Printf("Warning: Invalid EXPIRY_ALERT_WINDOW_DAYS. Defaulting to %d.\n", cfg.ExpiryAlertWindowDays)
	}
	cfg.ExpiryCheckHour = viper.GetInt("EXPIRY_CHECK_HOUR")
	if cfg.ExpiryCheckHour < 0 || cfg.ExpiryCheckHour > 23 {
		log.Printf("Warning: Invalid value for EXPIRY_CHECK_HOUR (%d). Defaulting to 6.\n", cfg.ExpiryCheckHour)
		cfg.ExpiryCheckHour = 6
	}
	cfg.EnableScheduler = viper.GetBool("ENABLE_SCHEDULER")
	cfg.LooseNameMatching = viper.GetBool("LOOSE_NAME_MATCHING")

	rateStr := viper.GetString("OUTSTANDING_PAYROLL_RATE")
	rate, err := decimal.NewFromString(rateStr)
	if err != nil || rate.IsNegative() {
		return nil, fmt.Errorf("invalid OUTSTANDING_PAYROLL_RATE %q", rateStr)
	}
	cfg.OutstandingPayrollRate = rate

	return cfg, nil
}
