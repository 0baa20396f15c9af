package main

import (
	"github.com/moogleworks/market-moogle/internal/config"
	"github.com/moogleworks/market-moogle/internal/handler"
	"github.com/moogleworks/market-moogle/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Only add source info in development
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "market-moogle",
		Version:     handler.Version,
		Environment: cfg.Environment,
		AddSource:   addSource,
	})
}
