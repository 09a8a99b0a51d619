// Package config holds runtime settings. Fields carry kong tags so the CLI
// reads them from flags or environment variables.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/mmynk/mrsplit/internal/money"
	"github.com/mmynk/mrsplit/pkg/logging"
)

// Config holds all application configuration.
type Config struct {
	Driver      string `help:"Database driver (sqlite or postgres)." env:"MRSPLIT_DB_DRIVER" default:"sqlite"`
	DSN         string `help:"Database path (sqlite) or connection URL (postgres)." env:"MRSPLIT_DB_DSN" default:"./data/mrsplit.db"`
	Currency    string `help:"ISO 4217 currency code for amounts." env:"MRSPLIT_CURRENCY" default:"USD"`
	LogLevel    string `help:"Log level (debug, info, warn, error)." env:"LOG_LEVEL" default:"info"`
	MetricsFile string `help:"Write Prometheus metrics to this file after each command." env:"MRSPLIT_METRICS_FILE"`
}

// LoadEnv loads environment variables from the given .env files. Missing
// files are skipped and variables already set in the environment win.
func LoadEnv(files ...string) error {
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read %s: %w", f, err)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env files: %w", err)
	}
	return nil
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	switch c.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Driver)
	}
	if c.DSN == "" {
		return errors.New("database DSN must not be empty")
	}
	if _, err := money.Lookup(c.Currency); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Money returns the configured currency.
func (c *Config) Money() money.Currency {
	cur, err := money.Lookup(c.Currency)
	if err != nil {
		return money.Currencies["USD"]
	}
	return cur
}
