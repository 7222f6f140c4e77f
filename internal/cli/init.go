// Package cli provides common CLI initialization utilities used by
// cmd/ledger: environment loading, configuration, logging and store setup.
package cli

import (
	"fmt"
	"io"

	"github.com/joho/godotenv"

	"ledger/internal/config"
	"ledger/internal/ledger"
	"ledger/internal/ledger/csvfile"
	"ledger/internal/ledger/memory"
	applog "ledger/internal/log"
)

// LoadEnvFile loads the .env file for local use.
// Errors are ignored silently as the file is optional.
func LoadEnvFile(filenames ...string) {
	_ = godotenv.Load(filenames...)
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger builds the application logger from cfg, writing to out, and
// installs it as the slog default.
func SetupLogger(cfg *config.Config, out io.Writer) (*applog.Logger, error) {
	level, err := applog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := applog.New(applog.Config{
		Level:     level,
		Component: applog.ComponentApp,
		Output:    out,
	})
	applog.SetDefault(logger)
	return logger, nil
}

// OpenStore returns the ledger store selected by cfg.Backend.
func OpenStore(cfg *config.Config) (ledger.Store, error) {
	switch cfg.Backend {
	case config.BackendCSV:
		return csvfile.New(csvfile.Config{
			Path:         cfg.LedgerFile,
			StrictHeader: cfg.StrictHeader,
		}), nil
	case config.BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported ledger backend %q", cfg.Backend)
	}
}
