package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"matrixsign/internal/app"
	"matrixsign/internal/config"
	"matrixsign/internal/display"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The matrix driver binding is platform glue supplied at deploy
	// time; headless runs keep the daemon, feeds, and HTTP API live.
	panel := display.NewNullPanel(cfg.Width, cfg.Height, logger)
	defer panel.Close()

	runtime := app.Wire(cfg, panel, logger)

	logger.Info("matrixsign starting",
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height),
		slog.String("feed", cfg.FeedName),
	)
	runtime.Start(ctx)
	logger.Info("matrixsign stopped")
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
