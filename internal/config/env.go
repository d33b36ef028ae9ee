package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/loonengine/payroll-engine/internal/domain"
)

// Environment variable names.
const (
	EnvAddr         = "LOONENGINE_ADDR"
	EnvDB           = "LOONENGINE_DB"
	EnvRatesDir     = "LOONENGINE_RATES_DIR"
	EnvLogLevel     = "LOONENGINE_LOG_LEVEL"
	EnvLogFormat    = "LOONENGINE_LOG_FORMAT"
	EnvTaxProration = "LOONENGINE_TAX_PRORATION"
)

// Config is the process configuration of the CLI and the HTTP service.
type Config struct {
	Addr         string
	DBPath       string // ":memory:" keeps the ledger in memory
	RatesDir     string
	LogLevel     string
	LogFormat    string
	TaxProration domain.TaxProrationMode
}

// Load reads the environment, first applying any of the given .env files
// that exist. Variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Addr:         getEnvString(EnvAddr, ":8080"),
		DBPath:       getEnvString(EnvDB, "loonengine.db"),
		RatesDir:     getEnvString(EnvRatesDir, ""),
		LogLevel:     strings.ToLower(getEnvString(EnvLogLevel, "info")),
		LogFormat:    strings.ToLower(getEnvString(EnvLogFormat, "json")),
		TaxProration: domain.TaxProrationMode(strings.ToLower(getEnvString(EnvTaxProration, string(domain.TaxProrationNominal)))),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%s must not be empty", EnvAddr)
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%s must be one of trace, debug, info, warn, error; got %q", EnvLogLevel, c.LogLevel)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("%s must be 'json' or 'console', got %q", EnvLogFormat, c.LogFormat)
	}
	if !c.TaxProration.Valid() {
		return fmt.Errorf("%s must be 'nominal' or 'effective', got %q", EnvTaxProration, c.TaxProration)
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
