package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moogleworks/market-moogle/internal/catalog"
	"github.com/moogleworks/market-moogle/internal/config"
	"github.com/moogleworks/market-moogle/internal/ingest"
	"github.com/moogleworks/market-moogle/internal/market"
	"github.com/moogleworks/market-moogle/internal/server"
	"github.com/moogleworks/market-moogle/internal/worker"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	initLogger(cfg)

	if warnings, err := config.ValidateEnvWithWarnings(); err != nil {
		log.Fatalf("Environment validation failed: %v", err)
	} else {
		for _, warning := range warnings {
			slog.Warn(warning)
		}
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	// Load the game data export and build the catalog before serving anything
	slog.Info("Loading game data export", "ref", cfg.XIVDataRef)
	fetcher := ingest.NewFetcher(httpClient, cfg.XIVDataURL, cfg.XIVDataRef)
	source, err := fetcher.LoadSource(context.Background())
	if err != nil {
		log.Fatalf("Failed to load game data: %v", err)
	}
	cat := catalog.Build(source)
	slog.Info("Catalog built", "items", cat.ItemCount(), "recipes", cat.RecipeCount())

	// One throttle shared by both boards keeps the request budget global
	throttle := market.NewRateThrottle(cfg.MarketRPS, cfg.MarketBurst, cfg.MarketConcurrency)
	client := market.NewUniversalis(httpClient, cfg.UniversalisURL, cfg.HTTPRetries)
	buyBoard := market.NewBoard(cfg.BuyWorld, cat, client, throttle)
	sellBoard := market.NewBoard(cfg.SellWorld, cat, client, throttle)

	refreshWorker := worker.NewRefreshWorker([]worker.Refresher{buyBoard, sellBoard}, cfg.RefreshInterval)
	refreshWorker.Start()

	srv := server.NewServer(cfg.Port, cfg.APIKey, cat, buyBoard, sellBoard)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server forced shutdown", "error", err)
	}
	if err := refreshWorker.Shutdown(ctx); err != nil {
		slog.Error("Refresh worker shutdown failed", "error", err)
	}

	slog.Info("Server stopped")
}
