package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	applog "ledger/internal/log"
)

const (
	BackendCSV    = "csv"
	BackendMemory = "memory"
)

type Config struct {
	// Storage
	Backend      string
	LedgerFile   string
	StrictHeader bool

	// Presentation
	Currency    string
	ChartWidth  int
	ChartHeight int

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		Backend:      getEnv("LEDGER_BACKEND", BackendCSV),
		LedgerFile:   getEnv("LEDGER_FILE", "financial_records.csv"),
		StrictHeader: getEnvBool("LEDGER_STRICT_HEADER", true),

		Currency:    getEnv("LEDGER_CURRENCY", "Rs"),
		ChartWidth:  getEnvInt("LEDGER_CHART_WIDTH", 60),
		ChartHeight: getEnvInt("LEDGER_CHART_HEIGHT", 12),

		LogLevel: getEnv("LOG_LEVEL", "warn"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	switch c.Backend {
	case BackendCSV:
		if strings.TrimSpace(c.LedgerFile) == "" {
			errors = append(errors, "ledger file path cannot be empty when using csv backend")
		} else if info, err := os.Stat(c.LedgerFile); err == nil && info.IsDir() {
			errors = append(errors, fmt.Sprintf("ledger file '%s' is a directory", c.LedgerFile))
		} else if dir := filepath.Dir(c.LedgerFile); dir != "." && dir != "" {
			if info, err := os.Stat(dir); err == nil && !info.IsDir() {
				errors = append(errors, fmt.Sprintf("ledger directory '%s' is not a directory", dir))
			}
		}
	case BackendMemory:
	default:
		errors = append(errors, fmt.Sprintf("invalid ledger backend '%s': must be one of [%s %s]", c.Backend, BackendCSV, BackendMemory))
	}

	if c.ChartWidth < 10 || c.ChartWidth > 400 {
		errors = append(errors, fmt.Sprintf("invalid chart width %d: must be between 10 and 400", c.ChartWidth))
	}
	if c.ChartHeight < 3 || c.ChartHeight > 100 {
		errors = append(errors, fmt.Sprintf("invalid chart height %d: must be between 3 and 100", c.ChartHeight))
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
