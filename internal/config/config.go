// internal/config/config.go
// Centralized configuration management
// Loads from environment variables with sensible defaults

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultJWTSecret = "your-super-secret-key-change-this-in-production"

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string
	Debug       bool

	// Database
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	RedisURL          string

	// Security
	JWTSecret string

	// Caching
	EnableScoreCache bool
	ScoreCacheTTL    time.Duration
	TasteCacheTTL    time.Duration

	// Matching
	ViewWindowSize     int
	CandidatePoolLimit int
	ScoringWorkers     int

	// Hotpicks & scheduled jobs
	HotpicksPerUser  int
	HotpicksHour     int
	TasteRefreshHour int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Debug:       getEnvBool("DEBUG", false),

		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DBMaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", "5m"),
		RedisURL:          getEnv("REDIS_URL", ""),

		JWTSecret: getEnv("JWT_SECRET", defaultJWTSecret),

		EnableScoreCache: getEnvBool("ENABLE_SCORE_CACHE", true),
		ScoreCacheTTL:    getEnvDuration("SCORE_CACHE_TTL", "1h"),
		TasteCacheTTL:    getEnvDuration("TASTE_CACHE_TTL", "24h"),

		ViewWindowSize:     getEnvInt("VIEW_WINDOW_SIZE", 500),
		CandidatePoolLimit: getEnvInt("CANDIDATE_POOL_LIMIT", 200),
		ScoringWorkers:     getEnvInt("SCORING_WORKERS", 8),

		HotpicksPerUser:  getEnvInt("HOTPICKS_PER_USER", 10),
		HotpicksHour:     getEnvInt("HOTPICKS_HOUR", 9),
		TasteRefreshHour: getEnvInt("TASTE_REFRESH_HOUR", 3),
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.JWTSecret == defaultJWTSecret && c.IsProduction() {
		return errors.New("JWT secret must be changed for production")
	}

	if c.DatabaseURL == "" {
		return errors.New("database URL is required")
	}

	if c.DBMaxOpenConns < 1 || c.DBMaxIdleConns < 0 || c.DBMaxIdleConns > c.DBMaxOpenConns {
		return fmt.Errorf("database pool needs 0 <= idle (%d) <= open (%d) and open >= 1", c.DBMaxIdleConns, c.DBMaxOpenConns)
	}

	if c.ViewWindowSize < 10 || c.ViewWindowSize > 10000 {
		return fmt.Errorf("view window size must be between 10 and 10000, got %d", c.ViewWindowSize)
	}

	if c.CandidatePoolLimit < 1 || c.CandidatePoolLimit > 5000 {
		return fmt.Errorf("candidate pool limit must be between 1 and 5000, got %d", c.CandidatePoolLimit)
	}

	if c.ScoringWorkers < 1 || c.ScoringWorkers > 64 {
		return fmt.Errorf("scoring workers must be between 1 and 64, got %d", c.ScoringWorkers)
	}

	if c.HotpicksPerUser < 1 || c.HotpicksPerUser > 50 {
		return fmt.Errorf("hotpicks per user must be between 1 and 50, got %d", c.HotpicksPerUser)
	}

	if c.HotpicksPerUser*2 > c.CandidatePoolLimit {
		return errors.New("candidate pool limit must hold at least twice the hotpicks per user")
	}

	for name, hour := range map[string]int{"HOTPICKS_HOUR": c.HotpicksHour, "TASTE_REFRESH_HOUR": c.TasteRefreshHour} {
		if hour < 0 || hour > 23 {
			return fmt.Errorf("%s must be between 0 and 23, got %d", name, hour)
		}
	}

	if c.ScoreCacheTTL <= 0 || c.TasteCacheTTL <= 0 {
		return errors.New("cache TTLs must be positive")
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Helper functions

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment with a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration value from environment with a default
func getEnvDuration(key string, defaultValue string) time.Duration {
	value := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(value)
	if err != nil {
		// If parsing fails, try to parse the default
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

// getEnvBool gets a boolean value from environment with a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
