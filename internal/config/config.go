package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port           string
	AllowedOrigins string
	ServiceName    string

	// Database configuration
	DBType               string // postgres, mysql, sqlite, sqlserver
	DBHost               string
	DBPort               string
	DBDatabase           string
	DBAppUser            string
	DBAppPassword        string
	DBAppConnectionLimit int
	DBUser               string // owner of the schema, used for migrations
	DBPassword           string
	DBConnectionLimit    int

	// Auth configuration
	JWTSecret string
	JWTExpiry time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Notification queue
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	NotifyQueueKey    string
	NotifyQueueSize   int
	NotifyWorkers     int
	NotifySendTimeout time.Duration

	// Email (SMTP)
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	// SMS (Twilio)
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	TwilioBaseURL    string

	// Reject samples and alerts for bracelets the caller does not own
	EnforceBraceletOwnership bool
}

// Load loads configuration from a .env file, if present, and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		Port:                     getEnv("PORT", "3000"),
		AllowedOrigins:           getEnv("ALLOWED_ORIGINS", "*"),
		ServiceName:              getEnv("SERVICE_NAME", "securepulse"),
		DBType:                   getEnv("DB_TYPE", "sqlite"),
		DBHost:                   getEnv("DB_HOST", "localhost"),
		DBPort:                   getEnv("DB_PORT", "5432"),
		DBDatabase:               getEnv("DB_DATABASE", ""),
		DBAppUser:                getEnv("DB_APP_USER", ""),
		DBAppPassword:            getEnv("DB_APP_PASSWORD", ""),
		DBAppConnectionLimit:     getEnvAsInt("DB_APP_CONNECTION_LIMIT", 10),
		DBUser:                   getEnv("DB_USER", ""),
		DBPassword:               getEnv("DB_PASSWORD", ""),
		DBConnectionLimit:        getEnvAsInt("DB_CONNECTION_LIMIT", 2),
		JWTSecret:                getEnv("JWT_SECRET", ""),
		JWTExpiry:                getEnvAsDuration("JWT_EXPIRY", 7*24*time.Hour),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		LogFormat:                getEnv("LOG_FORMAT", "json"),
		RedisAddr:                getEnv("REDIS_ADDR", ""),
		RedisPassword:            getEnv("REDIS_PASSWORD", ""),
		RedisDB:                  getEnvAsInt("REDIS_DB", 0),
		NotifyQueueKey:           getEnv("NOTIFY_QUEUE_KEY", "securepulse:notifications"),
		NotifyQueueSize:          getEnvAsInt("NOTIFY_QUEUE_SIZE", 256),
		NotifyWorkers:            getEnvAsInt("NOTIFY_WORKERS", 2),
		NotifySendTimeout:        getEnvAsDuration("NOTIFY_SEND_TIMEOUT", 15*time.Second),
		SMTPHost:                 getEnv("SMTP_HOST", ""),
		SMTPPort:                 getEnvAsInt("SMTP_PORT", 587),
		SMTPUser:                 getEnv("SMTP_USER", ""),
		SMTPPassword:             getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:                 getEnv("SMTP_FROM", ""),
		TwilioAccountSID:         getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:          getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber:         getEnv("TWILIO_FROM_NUMBER", ""),
		TwilioBaseURL:            getEnv("TWILIO_BASE_URL", "https://api.twilio.com"),
		EnforceBraceletOwnership: getEnvAsBool("ENFORCE_BRACELET_OWNERSHIP", true),
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DBType != "sqlite" {
		if cfg.DBAppUser == "" {
			return nil, fmt.Errorf("DB_APP_USER is required")
		}
		if cfg.DBUser == "" {
			return nil, fmt.Errorf("DB_USER is required")
		}
	}
	if cfg.NotifyWorkers < 1 {
		return nil, fmt.Errorf("NOTIFY_WORKERS must be at least 1")
	}

	return cfg, nil
}

// SMTPEnabled reports whether enough SMTP settings are present to send email.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

// SMSEnabled reports whether Twilio credentials are present.
func (c *Config) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
