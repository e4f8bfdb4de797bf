package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"tradejournal/internal/adapters/logger"
)

// Storage backends for the trade ledger.
const (
	StorageSQLite = "sqlite"
	StorageCSV    = "csv"
)

// Config holds all application configuration.
type Config struct {
	// Ledger storage
	Storage string // "sqlite" or "csv"
	DBPath  string // SQLite database path
	CSVPath string // CSV ledger path

	// Ordering policy: compute metrics over the ledger sorted by trade date
	// instead of insertion order. Off by default; the ledger contract is
	// insertion order.
	SortByDate bool

	// Logging
	LogLevel logger.LogLevel
}

// Load reads configuration from environment variables (.env file supported).
func Load() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars).
	_ = godotenv.Load()

	cfg := &Config{}
	var errs []string

	cfg.Storage = strings.ToLower(getEnv("STORAGE", StorageSQLite))
	if cfg.Storage != StorageSQLite && cfg.Storage != StorageCSV {
		errs = append(errs, fmt.Sprintf("STORAGE must be %q or %q, got %q", StorageSQLite, StorageCSV, cfg.Storage))
	}

	cfg.DBPath = getEnv("DB_PATH", "./data/tradejournal.db")
	cfg.CSVPath = getEnv("CSV_PATH", "./data/tradejournal.csv")
	cfg.SortByDate = getEnvAsBool("SORT_BY_DATE", false)
	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// getEnv reads an environment variable or returns the default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool reads an environment variable as a boolean or returns the default.
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
