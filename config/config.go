package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/task-tracker/store"
)

// Config holds the application configuration.
type Config struct {
	// HTTPAddr is the listen address of the REST API (default: ":3000")
	HTTPAddr string

	// StoreDriver selects the record store backend: file, sqlite or bucket (default: file)
	StoreDriver string

	// DataFile is the JSON document used by the file driver (default: "data/tasks.json")
	DataFile string

	// SQLitePath is the database file used by the sqlite driver (default: "data/tasks.db")
	SQLitePath string

	// JetStreamDir is the embedded JetStream storage directory used by the bucket driver
	JetStreamDir string

	// BucketName is the fs-jetstream bucket used by the bucket driver (default: "tasks")
	BucketName string

	// ActivityLimit is the number of activity entries kept in memory (default: 100)
	ActivityLimit int

	// CORSAllowedOrigins is passed to the CORS middleware (default: "*")
	CORSAllowedOrigins string

	// LogLevel is "info" or "error" (default: "info")
	LogLevel string

	// ShutdownTimeout bounds graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration

	// DBDebug enables GORM statement logging for the sqlite driver
	DBDebug bool
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:           ":3000",
		StoreDriver:        store.DriverFile,
		DataFile:           "data/tasks.json",
		SQLitePath:         "data/tasks.db",
		JetStreamDir:       "data/jetstream",
		BucketName:         "tasks",
		ActivityLimit:      100,
		CORSAllowedOrigins: "*",
		LogLevel:           "info",
		ShutdownTimeout:    30 * time.Second,
		DBDebug:            false,
	}
}

// Option is a function that modifies Config.
type Option func(*Config)

// WithHTTPAddr sets the API listen address.
func WithHTTPAddr(addr string) Option {
	return func(c *Config) {
		c.HTTPAddr = addr
	}
}

// WithStoreDriver selects the record store backend.
func WithStoreDriver(driver string) Option {
	return func(c *Config) {
		c.StoreDriver = driver
	}
}

// WithDataFile sets the JSON document path for the file driver.
func WithDataFile(path string) Option {
	return func(c *Config) {
		c.DataFile = path
	}
}

// WithSQLitePath sets the database path for the sqlite driver.
func WithSQLitePath(path string) Option {
	return func(c *Config) {
		c.SQLitePath = path
	}
}

// WithActivityLimit sets how many activity entries are retained.
func WithActivityLimit(limit int) Option {
	return func(c *Config) {
		c.ActivityLimit = limit
	}
}

// FromEnv builds a Config from defaults, then environment variables, then opts.
// Malformed numeric or duration values are logged and the default is kept.
func FromEnv(opts ...Option) Config {
	cfg := DefaultConfig()

	cfg.HTTPAddr = getEnv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.StoreDriver = strings.ToLower(getEnv("STORE_DRIVER", cfg.StoreDriver))
	cfg.DataFile = getEnv("DATA_FILE", cfg.DataFile)
	cfg.SQLitePath = getEnv("SQLITE_PATH", cfg.SQLitePath)
	cfg.JetStreamDir = getEnv("JETSTREAM_DIR", cfg.JetStreamDir)
	cfg.BucketName = getEnv("BUCKET_NAME", cfg.BucketName)
	cfg.ActivityLimit = getEnvInt("ACTIVITY_LIMIT", cfg.ActivityLimit)
	cfg.CORSAllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", cfg.CORSAllowedOrigins)
	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", cfg.LogLevel))
	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.DBDebug = getEnv("DB_DEBUG", "") == "true"

	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Validate reports configuration values the application cannot run with.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case store.DriverFile, store.DriverSQLite, store.DriverBucket:
	default:
		return fmt.Errorf("unknown store driver %q (want file, sqlite or bucket)", c.StoreDriver)
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("http address must not be empty")
	}
	if c.ActivityLimit <= 0 {
		return fmt.Errorf("activity limit must be positive, got %d", c.ActivityLimit)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// ErrorLogsOnly reports whether the application log should be limited to errors.
func (c Config) ErrorLogsOnly() bool {
	return c.LogLevel == "error"
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as time.Duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
