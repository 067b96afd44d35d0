package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reshetovitsme/offer-listener/internal/di"
	ingestService "github.com/reshetovitsme/offer-listener/internal/modules/ingest/service"
	"github.com/reshetovitsme/offer-listener/internal/shared/config"
	"github.com/reshetovitsme/offer-listener/internal/shared/logging"
	httpServer "github.com/reshetovitsme/offer-listener/internal/transport/http"
	"github.com/samber/do/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	slog.SetDefault(logging.New(os.Stdout, os.Stderr, false))
	slog.Info("Starting offer listener")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Setup dependency injection
	injector, err := di.Setup(ctx)
	if err != nil {
		slog.Error("Failed to setup dependency injection", "error", err)
		os.Exit(1)
	}

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Verbose() {
		slog.SetDefault(logging.New(os.Stdout, os.Stderr, true))
	}

	// Liveness comes up before Telegram so the platform sees the process as started
	server := do.MustInvoke[*httpServer.Server](injector)
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("Failed to start HTTP server", "error", err)
			os.Exit(1)
		}
	}()

	events, err := do.Invoke[*ingestService.EventIngestor](injector)
	if err != nil {
		slog.Error("Failed to initialize event ingestor", "error", err)
		os.Exit(1)
	}
	poller := do.MustInvoke[*ingestService.Poller](injector)

	var runErr error
	if ctx.Err() == nil {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return events.Run(gctx) })
		g.Go(func() error { return poller.Run(gctx) })

		slog.Info("Offer listener started", "port", cfg.Port, "channels", len(cfg.TargetChannels))
		runErr = g.Wait()
	} else {
		slog.Info("Interrupted during startup")
	}

	slog.Info("Shutting down...")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := di.Shutdown(shutdownCtx, injector); err != nil {
		slog.Error("Error during shutdown", "error", err)
	}

	if runErr != nil {
		slog.Error("Lost connection to Telegram", "error", runErr)
		os.Exit(1)
	}
}
