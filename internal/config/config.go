package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration. The env tag names the
// variable each field is read from.
type Config struct {
	Port        int    `env:"PORT" validate:"min=1,max=65535"`
	APIKey      string `env:"API_KEY"`
	LogLevel    string `env:"LOG_LEVEL" validate:"oneof=debug info warn warning error"`
	LogFormat   string `env:"LOG_FORMAT" validate:"oneof=text json"`
	Environment string `env:"ENVIRONMENT" validate:"required"`
	ServiceName string `env:"SERVICE_NAME" validate:"required"`
	Version     string `env:"VERSION"`

	StorageBackend string `env:"STORAGE_BACKEND" validate:"oneof=memory postgres firestore"`

	DBUser            string        `env:"DB_USER" validate:"required_if=StorageBackend postgres"`
	DBPassword        string        `env:"DB_PASSWORD"`
	DBHost            string        `env:"DB_HOST" validate:"required_if=StorageBackend postgres"`
	DBPort            string        `env:"DB_PORT" validate:"omitempty,numeric"`
	DBName            string        `env:"DB_NAME" validate:"required_if=StorageBackend postgres"`
	DBMaxConns        int           `env:"DB_MAX_CONNS" validate:"min=1"`
	DBMaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" validate:"gte=0"`
	DBMaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" validate:"gte=0"`

	FirestoreProjectID string `env:"FIRESTORE_PROJECT_ID" validate:"required_if=StorageBackend firestore"`
	FirestoreDatabase  string `env:"FIRESTORE_DATABASE"`

	RedisURL        string `env:"REDIS_URL" validate:"omitempty,url"`
	PostHogAPIKey   string `env:"POSTHOG_API_KEY"`
	PostHogEndpoint string `env:"POSTHOG_ENDPOINT" validate:"omitempty,url"`

	QuestCatalogPath      string        `env:"QUEST_CATALOG_PATH" validate:"required"`
	DailyCapTimezone      string        `env:"DAILY_CAP_TIMEZONE" validate:"required,timezone"`
	DeadLetterPath        string        `env:"DEAD_LETTER_PATH" validate:"required"`
	EventLogRetentionDays int           `env:"EVENT_LOG_RETENTION_DAYS" validate:"min=1"`
	EventLogCleanupEvery  time.Duration `env:"EVENT_LOG_CLEANUP_INTERVAL" validate:"gte=1m"`
	ProgressCacheSize     int           `env:"PROGRESS_CACHE_SIZE" validate:"gte=0"`
	ProgressCacheTTL      time.Duration `env:"PROGRESS_CACHE_TTL" validate:"gte=0"`

	TrustedProxies []string `env:"TRUSTED_PROXIES" validate:"dive,ip|cidr"`
	MaxBodyBytes   int64    `env:"MAX_BODY_BYTES" validate:"min=1"`
}

// Load reads the configuration from the environment, after loading a .env
// file when one exists, and validates it
func Load() (*Config, error) {
	// A missing .env is fine, real environment variables may be set instead
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}

	cfg := &Config{
		Port:        port,
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", DefaultStorageBackend)),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "financequest"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		FirestoreProjectID: getEnv("FIRESTORE_PROJECT_ID", ""),
		FirestoreDatabase:  getEnv("FIRESTORE_DATABASE", ""),

		RedisURL:        getEnv("REDIS_URL", ""),
		PostHogAPIKey:   getEnv("POSTHOG_API_KEY", ""),
		PostHogEndpoint: getEnv("POSTHOG_ENDPOINT", ""),

		QuestCatalogPath:      getEnv("QUEST_CATALOG_PATH", DefaultQuestCatalogPath),
		DailyCapTimezone:      getEnv("DAILY_CAP_TIMEZONE", DefaultDailyCapTimezone),
		DeadLetterPath:        getEnv("DEAD_LETTER_PATH", DefaultDeadLetterPath),
		EventLogRetentionDays: getEnvAsInt("EVENT_LOG_RETENTION_DAYS", DefaultEventLogRetentionDays),
		EventLogCleanupEvery:  getEnvAsDuration("EVENT_LOG_CLEANUP_INTERVAL", DefaultEventLogCleanupEvery),
		ProgressCacheSize:     getEnvAsInt("PROGRESS_CACHE_SIZE", DefaultProgressCacheSize),
		ProgressCacheTTL:      getEnvAsDuration("PROGRESS_CACHE_TTL", DefaultProgressCacheTTL),

		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),
		MaxBodyBytes:   int64(getEnvAsInt("MAX_BODY_BYTES", DefaultMaxBodyBytes)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location returns the time zone daily caps are bucketed in
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DailyCapTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AuthEnabled reports whether API key authentication is active
func (c *Config) AuthEnabled() bool {
	return c.APIKey != ""
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when
// it is unset or unparsable
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses a time.ParseDuration variable, falling back to the
// default when it is unset or unparsable
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
