// Command matrixsign-sim runs the sign in a desktop window so scene and
// layout work can be checked without matrix hardware.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"matrixsign/internal/app"
	"matrixsign/internal/config"
	"matrixsign/internal/display"
)

const windowScale = 10

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	panel := display.NewWindowPanel(cfg.Width, cfg.Height, windowScale)
	runtime := app.Wire(cfg, panel, logger)

	// ebiten must own the main goroutine; the daemon runs beside it.
	done := make(chan struct{})
	go func() {
		defer close(done)
		runtime.Start(ctx)
	}()

	err = panel.Run("matrixsign")
	stop() // window closed; wind down the daemon
	<-done

	if err != nil && !errors.Is(err, display.ErrWindowClosed) {
		logger.Error("window", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
