package util

import (
	"log/slog"
	"strings"
	"time"
)

// Config collects every setting the client reads from the environment
type Config struct {
	Port                string
	APIBaseURL          string
	SessionStore        string // "memory" or "postgres"
	HTTPTimeout         time.Duration
	ExpiryCheckInterval time.Duration
	LogLevel            slog.Level
	DB                  DBConfig
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

// LoadConfig reads the environment. Call godotenv.Load before it so .env values are visible.
func LoadConfig() *Config {
	return &Config{
		Port:                getEnv("PORT", "4000"),
		APIBaseURL:          strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080"), "/"),
		SessionStore:        strings.ToLower(getEnv("SESSION_STORE", "memory")),
		HTTPTimeout:         getEnvDuration("HTTP_TIMEOUT", 15*time.Second),
		ExpiryCheckInterval: getEnvDuration("EXPIRY_CHECK_INTERVAL", 30*time.Second),
		LogLevel:            parseLevel(getEnv("LOG_LEVEL", "info")),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "book_wishlist"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration in environment, using default",
			slog.String("key", key), slog.String("value", raw), slog.Duration("default", fallback))
		return fallback
	}
	return d
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
