package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ledger/internal/cli"
	"ledger/internal/config"
	applog "ledger/internal/log"
	"ledger/internal/services"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := cli.SetupLogger(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	store, err := cli.OpenStore(cfg)
	if err != nil {
		logger.Error("Failed to open ledger store", "error", err, "backend", cfg.Backend)
		os.Exit(1)
	}
	logger = logger.With("backend", cfg.Backend)
	if cfg.Backend == config.BackendMemory {
		logger.Warn("Memory backend selected, nothing will be persisted")
	}
	logger.Info("Ledger store ready",
		applog.FieldOperation, applog.OpStartup,
		applog.FieldPath, cfg.LedgerFile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{
		service: services.NewLedgerService(store, logger),
		cfg:     cfg,
		logger:  logger,
		in:      os.Stdin,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
	code := a.run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
