package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	APIKey      string // API key for authentication

	SellWorld string // world finished goods are sold on
	BuyWorld  string // world materials are bought on

	UniversalisURL string
	XIVDataURL     string
	XIVDataRef     string // pinned git ref of the datamining CSV export

	RefreshInterval   time.Duration
	MarketRPS         float64
	MarketBurst       int
	MarketConcurrency int64
	HTTPRetries       uint64
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		APIKey:         getEnv("API_KEY", ""),
		SellWorld:      getEnv("SELL_WORLD", ""),
		BuyWorld:       getEnv("BUY_WORLD", ""),
		UniversalisURL: getEnv("UNIVERSALIS_URL", "https://universalis.app"),
		XIVDataURL:     getEnv("XIV_DATA_URL", "https://raw.githubusercontent.com/xivapi/ffxiv-datamining"),
		XIVDataRef:     getEnv("XIV_DATA_REF", "master"),
	}

	port, err := intEnv("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	refreshMinutes, err := intEnv("REFRESH_INTERVAL_MINUTES", 30)
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = time.Duration(refreshMinutes) * time.Minute

	rps, err := floatEnv("MARKET_RPS", 8)
	if err != nil {
		return nil, err
	}
	cfg.MarketRPS = rps

	burst, err := intEnv("MARKET_BURST", 8)
	if err != nil {
		return nil, err
	}
	cfg.MarketBurst = burst

	concurrency, err := intEnv("MARKET_CONCURRENCY", 4)
	if err != nil {
		return nil, err
	}
	cfg.MarketConcurrency = int64(concurrency)

	retries, err := intEnv("HTTP_RETRIES", 3)
	if err != nil {
		return nil, err
	}
	cfg.HTTPRetries = uint64(retries)

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if cfg.SellWorld == "" || cfg.BuyWorld == "" {
		return nil, fmt.Errorf("SELL_WORLD and BUY_WORLD environment variables must be set")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func intEnv(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func floatEnv(key string, defaultValue float64) (float64, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}
