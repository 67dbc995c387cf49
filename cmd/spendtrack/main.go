package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"spendtrack/internal/cli"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(slog.LevelInfo)
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.SlogLevel())

	store := cli.InitStore(logger, cfg.DBPath)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close ledger store", "error", err)
		}
	}()

	// Ctrl-C cancels the menu loop; the prompt observes the context, so
	// Run returns and the deferred close runs with no query in flight.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	app := cli.NewApp(cfg, store, os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Application error", "error", err)
		if cerr := store.Close(); cerr != nil {
			logger.Error("Failed to close ledger store", "error", cerr)
		}
		os.Exit(1)
	}

	logger.Info("Expense tracker stopped")
}
