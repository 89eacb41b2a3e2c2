package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	DatabaseURL      string
	VapidPublicKey   string
	VapidPrivateKey  string
	VapidSubject     string // mailto: or https: contact for the push service
	CronSpecReminder string // daily reminder pass
	Timezone         string // IANA name the cron schedule is evaluated in
	LogLevel         string
	Environment      string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.VapidPublicKey = os.Getenv("VAPID_PUBLIC_KEY")
	if cfg.VapidPublicKey == "" {
		return nil, fmt.Errorf("VAPID_PUBLIC_KEY is not set")
	}

	cfg.VapidPrivateKey = os.Getenv("VAPID_PRIVATE_KEY")
	if cfg.VapidPrivateKey == "" {
		return nil, fmt.Errorf("VAPID_PRIVATE_KEY is not set")
	}

	cfg.VapidSubject = os.Getenv("VAPID_SUBJECT")
	if cfg.VapidSubject == "" {
		return nil, fmt.Errorf("VAPID_SUBJECT is not set")
	}

	cfg.CronSpecReminder = os.Getenv("CRON_SPEC_REMINDER")
	if cfg.CronSpecReminder == "" {
		cfg.CronSpecReminder = "0 9 * * *" // Default: 09:00 daily
	}

	cfg.Timezone = os.Getenv("TIMEZONE")
	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Jakarta" // Reference deployment timezone
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}
