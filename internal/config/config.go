package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath   string
	SettingsPath   string
	CatalogPath    string
	Port           string
	AllowedOrigins string
	Environment    string
	LogLevel       string
	TickInterval   time.Duration
	SweepInterval  time.Duration
}

func Load() *Config {
	// Optional .env file for local development; real env wins.
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:   getEnv("DATABASE_PATH", "cardquest.db"),
		SettingsPath:   getEnv("SETTINGS_PATH", "cardquest_settings.json"),
		CatalogPath:    getEnv("CATALOG_PATH", ""),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:8080"),
		Environment:    getEnv("ENV", "production"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		TickInterval:   time.Duration(getEnvInt("TICK_INTERVAL_MS", 1000)) * time.Millisecond,
		SweepInterval:  time.Duration(getEnvInt("SWEEP_INTERVAL_MINUTES", 30)) * time.Minute,
	}
	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
