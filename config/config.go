// Package config loads application configuration from the environment.
// File: config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"go-cfp/logger"
)

// endDateLayout is the expected format of CFP_END_DATE, e.g. "2026-10-31".
const endDateLayout = "2006-01-02"

// Config holds all runtime settings for the application.
type Config struct {
	ApplicationURL string
	Environment    string

	// CFPEndDate is the last day of the call for papers. Signups are
	// accepted up to and including 23:59 on this date, local time.
	CFPEndDate time.Time

	UploadDir     string
	DatabasePath  string
	SessionSecret string

	// PhotoTimeout bounds image decoding so one oversized or malformed
	// upload cannot stall a worker indefinitely.
	PhotoTimeout time.Duration

	MetricsEnabled bool
}

// Load reads `.env` (if present) and then the process environment, applying
// defaults suitable for local development.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug.Printf("Load: no .env file loaded: %v", err)
	}

	cfg := &Config{
		ApplicationURL: getEnv("APP_URL", "http://localhost:8080"),
		Environment:    getEnv("APP_ENV", "development"),
		UploadDir:      getEnv("UPLOAD_DIR", "./web/uploads"),
		DatabasePath:   getEnv("DATABASE_PATH", "./cfp.db"),
		SessionSecret:  getEnv("SESSION_SECRET", "insecure-dev-secret"),
		MetricsEnabled: getEnv("METRICS_ENABLED", "false") == "true",
	}

	endDate := getEnv("CFP_END_DATE", "")
	if endDate == "" {
		return nil, fmt.Errorf("CFP_END_DATE is required (format %s)", endDateLayout)
	}
	parsed, err := time.ParseInLocation(endDateLayout, endDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid CFP_END_DATE %q: %w", endDate, err)
	}
	cfg.CFPEndDate = parsed

	timeout := getEnv("PHOTO_TIMEOUT", "10s")
	cfg.PhotoTimeout, err = time.ParseDuration(timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid PHOTO_TIMEOUT %q: %w", timeout, err)
	}

	return cfg, nil
}

// SignupCutoff returns the last instant at which a signup is still accepted:
// 23:59:00 local time on the configured end date.
func (c *Config) SignupCutoff() time.Time {
	d := c.CFPEndDate
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 0, 0, d.Location())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
