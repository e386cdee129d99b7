// Package config provides configuration management for the online store.
// It loads and validates configuration values from environment variables,
// supporting required variables, default values, and collective error reporting:
// every problem found is reported at once instead of failing on the first one.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// PoolConfig represents configuration for the database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// DSN returns the postgres:// URL used both by pgx and by golang-migrate.
func (c *PoolConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.DBName,
	)
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret            string        // Secret key for signing JWTs
	AccessTokenDuration  time.Duration // Lifetime of access tokens
	RefreshTokenDuration time.Duration // Lifetime of refresh tokens
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port     string // Port for the HTTP server
	LogLevel slog.Level
}

// RateLimitConfig configures login throttling. Throttling is disabled when
// RedisAddr is empty.
type RateLimitConfig struct {
	RedisAddr   string
	LoginLimit  int
	LoginWindow time.Duration
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DB             *PoolConfig
	Auth           *AuthConfig
	Server         *ServerConfig
	RateLimit      *RateLimitConfig
	MigrationsPath string
}

// loader accumulates every configuration problem it meets.
type loader struct {
	errs *multierror.Error
}

func (l *loader) fail(format string, args ...any) {
	l.errs = multierror.Append(l.errs, fmt.Errorf(format, args...))
}

// required reads an environment variable that must be set.
func (l *loader) required(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		l.fail("missing required environment variable: %s", key)
		return ""
	}
	return value
}

// optional reads an environment variable with a default string value.
func (l *loader) optional(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func (l *loader) optionalInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		l.fail("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err)
		return defaultValue
	}
	return valueInt
}

// optionalDuration parses values like "15m" or "1h30m" with time.ParseDuration.
func (l *loader) optionalDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		l.fail("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err)
		return defaultValue
	}
	if valueDuration <= 0 {
		l.fail("invalid value for %s: duration must be positive, got '%s'", key, valueStr)
		return defaultValue
	}
	return valueDuration
}

func (l *loader) logLevel(key string) slog.Level {
	var level slog.Level
	valueStr := l.optional(key, "info")
	if err := level.UnmarshalText([]byte(valueStr)); err != nil {
		l.fail("invalid value for %s: %v", key, err)
		return slog.LevelInfo
	}
	return level
}

// poolSize clamps the configured pool size between 5 and 100.
func (l *loader) poolSize(key string) int {
	size := l.optionalInt(key, 10)
	if size < 5 {
		l.fail("pool size for %s (%d) is less than minimum 5", key, size)
		return 5
	}
	if size > 100 {
		l.fail("pool size for %s (%d) is greater than maximum 100", key, size)
		return 100
	}
	return size
}

// LoadConfig creates and returns an AppConfig by reading and validating environment variables.
// It collects all errors encountered during loading and returns them as a single error.
func LoadConfig() (*AppConfig, error) {
	l := &loader{}

	db := &PoolConfig{
		User:     l.required("DB_USER"),
		Password: l.required("DB_PASSWORD"),
		DBName:   l.required("DB_NAME"),
		Host:     l.optional("DB_HOST", "localhost"),
		Port:     l.optionalInt("DB_PORT", 5432),
		MaxSize:  l.poolSize("DB_POOL_SIZE"),
	}

	auth := &AuthConfig{
		JWTSecret:            l.required("JWT_SECRET"),
		AccessTokenDuration:  l.optionalDuration("JWT_ACCESS_TOKEN_DURATION", 15*time.Minute),
		RefreshTokenDuration: l.optionalDuration("JWT_REFRESH_TOKEN_DURATION", 168*time.Hour), // 7 days
	}
	if auth.JWTSecret != "" && len(auth.JWTSecret) < 32 {
		l.fail("JWT_SECRET must be at least 32 characters long")
	}

	server := &ServerConfig{
		// The port stays a string; it is used directly in the listen address.
		Port:     l.optional("PORT", "8080"),
		LogLevel: l.logLevel("LOG_LEVEL"),
	}

	rateLimit := &RateLimitConfig{
		RedisAddr:   l.optional("REDIS_ADDR", ""),
		LoginLimit:  l.optionalInt("LOGIN_RATE_LIMIT", 5),
		LoginWindow: l.optionalDuration("LOGIN_RATE_WINDOW", time.Minute),
	}
	if rateLimit.LoginLimit < 1 {
		l.fail("LOGIN_RATE_LIMIT must be positive, got %d", rateLimit.LoginLimit)
	}

	cfg := &AppConfig{
		DB:             db,
		Auth:           auth,
		Server:         server,
		RateLimit:      rateLimit,
		MigrationsPath: l.optional("MIGRATIONS_PATH", "./migrations"),
	}

	if err := l.errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("configuration errors: %s", strings.TrimSpace(err.Error()))
	}
	return cfg, nil
}
