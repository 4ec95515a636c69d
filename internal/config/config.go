package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the router.
type Config struct {
	App          AppConfig
	Syncro       SyncroConfig
	Roster       RosterConfig
	Store        StoreConfig
	Notification NotificationConfig
	Status       StatusConfig
	Logger       LoggerConfig
}

// AppConfig controls process level behavior.
type AppConfig struct {
	Name                string
	Env                 string
	Version             string
	PollIntervalSeconds int
}

// SyncroConfig holds ticket-source API values.
type SyncroConfig struct {
	BaseURL        string
	APIKey         string
	TimeoutSeconds int
}

// RosterConfig points at the technician schedule document.
type RosterConfig struct {
	Path string
}

// StoreConfig holds flat-file store paths.
type StoreConfig struct {
	ResultsPath string
	LedgerPath  string
}

// NotificationConfig holds the outbound webhook endpoint.
type NotificationConfig struct {
	WebhookURL     string
	DryRun         bool
	TimeoutSeconds int
}

// StatusConfig controls the operational status server.
type StatusConfig struct {
	Enabled bool
	Host    string
	Port    string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	baseURL := getEnv("SYNCRO_API_URL", "https://cloudavize.syncromsp.com/api/v1")
	if baseURL == "" {
		return nil, fmt.Errorf("SYNCRO_API_URL must not be empty")
	}

	cfg := &Config{
		App: AppConfig{
			Name:                getEnv("APP_NAME", "ticket-router"),
			Env:                 getEnv("APP_ENV", "development"),
			Version:             getEnv("APP_VERSION", "dev"),
			PollIntervalSeconds: getEnvAsInt("POLL_INTERVAL_SECONDS", 300),
		},
		Syncro: SyncroConfig{
			BaseURL:        baseURL,
			APIKey:         os.Getenv("SYNCRO_API_KEY"),
			TimeoutSeconds: getEnvAsInt("SYNCRO_TIMEOUT_SECONDS", 30),
		},
		Roster: RosterConfig{
			Path: getEnv("ROSTER_PATH", "technician_roster.json"),
		},
		Store: StoreConfig{
			ResultsPath: getEnv("ASSIGNMENT_RESULTS_PATH", "assignment_results.json"),
			LedgerPath:  getEnv("PROCESSED_TICKETS_PATH", "processed_tickets.json"),
		},
		Notification: NotificationConfig{
			WebhookURL:     getEnv("TEAMS_WEBHOOK_URL", ""),
			DryRun:         getEnvAsBool("NOTIFY_DRY_RUN", false),
			TimeoutSeconds: getEnvAsInt("NOTIFY_TIMEOUT_SECONDS", 10),
		},
		Status: StatusConfig{
			Enabled: getEnvAsBool("STATUS_ENABLED", true),
			Host:    getEnv("STATUS_HOST", "0.0.0.0"),
			Port:    getEnv("STATUS_PORT", "8080"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.App.PollIntervalSeconds <= 0 {
		return nil, fmt.Errorf("POLL_INTERVAL_SECONDS must be positive, got %d", cfg.App.PollIntervalSeconds)
	}

	return cfg, nil
}

// PollInterval returns the configured interval between cycles.
func (a AppConfig) PollInterval() time.Duration {
	return time.Duration(a.PollIntervalSeconds) * time.Second
}

// Timeout returns the ticket-source request timeout.
func (s SyncroConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Timeout returns the webhook request timeout.
func (n NotificationConfig) Timeout() time.Duration {
	if n.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(n.TimeoutSeconds) * time.Second
}

// Addr returns the status server bind address.
func (s StatusConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
