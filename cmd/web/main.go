package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"salespulse/internal/app"
)

func main() {
	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := application.Start(ctx, cancel); err != nil {
		slog.Error("Failed to start application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.WaitForShutdown(ctx); err != nil {
		slog.Error("Shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
