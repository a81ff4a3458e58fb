package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Device   DeviceConfig
	Sync     SyncConfig
	SMTP     SMTPConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// DeviceConfig holds the biometric terminal configuration.
// Address may be empty; sync then fails with a config error instead
// of refusing to start the server.
type DeviceConfig struct {
	Address string
	Timeout time.Duration
}

// SyncConfig controls the device sync orchestrator and its background schedule.
type SyncConfig struct {
	BatchSize    int
	PollInterval time.Duration
	AutoTrigger  bool
}

// SMTPConfig holds the mail settings for admin failure alerts.
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	FromName    string
	AdminEmails []string
}

func Load() (*Config, error) {
	// .env is optional; environment variables take precedence either way
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Device configuration
	deviceTimeout, err := time.ParseDuration(getEnv("DEVICE_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEVICE_TIMEOUT: %w", err)
	}

	config.Device = DeviceConfig{
		Address: getEnv("DEVICE_ADDRESS", ""),
		Timeout: deviceTimeout,
	}

	// Sync configuration
	batchSize, err := strconv.Atoi(getEnv("SYNC_BATCH_SIZE", "500"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_BATCH_SIZE: %w", err)
	}

	pollInterval, err := time.ParseDuration(getEnv("SYNC_POLL_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_POLL_INTERVAL: %w", err)
	}

	config.Sync = SyncConfig{
		BatchSize:    batchSize,
		PollInterval: pollInterval,
		AutoTrigger:  getEnv("SYNC_AUTO_TRIGGER", "true") == "true",
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:        getEnv("SMTP_HOST", ""),
		Port:        smtpPort,
		Username:    getEnv("SMTP_USERNAME", ""),
		Password:    getEnv("SMTP_PASSWORD", ""),
		From:        getEnv("SMTP_FROM", "noreply@localhost"),
		FromName:    getEnv("SMTP_FROM_NAME", "Attendance System"),
		AdminEmails: getEnvSlice("ADMIN_EMAILS"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Sync.BatchSize <= 0 {
		return fmt.Errorf("SYNC_BATCH_SIZE must be positive")
	}
	if c.Device.Timeout <= 0 {
		return fmt.Errorf("DEVICE_TIMEOUT must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
