package config

import (
	"fmt"
	"net/url"

	"go.uber.org/zap/zapcore"
)

// ValidateConfig performs validation on the complete configuration
func ValidateConfig(config *Config) error {
	if _, err := config.ProgramKey(); err != nil {
		return fmt.Errorf("program validation failed: %w", err)
	}

	if _, err := config.FeedKey(); err != nil {
		return fmt.Errorf("feed validation failed: %w", err)
	}

	if err := config.RPC.Validate(); err != nil {
		return fmt.Errorf("rpc validation failed: %w", err)
	}

	if err := config.Ledger.Validate(); err != nil {
		return fmt.Errorf("ledger validation failed: %w", err)
	}

	if err := config.RentParams().Validate(); err != nil {
		return fmt.Errorf("rent validation failed: %w", err)
	}

	if err := config.Log.Validate(); err != nil {
		return fmt.Errorf("log validation failed: %w", err)
	}

	return nil
}

// Validate performs validation on the RPC configuration
func (r *RPCConfig) Validate() error {
	if r.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	u, err := url.Parse(r.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", r.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint scheme: %s (valid options: http, https)", u.Scheme)
	}

	switch r.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("invalid commitment: %s (valid options: processed, confirmed, finalized)", r.Commitment)
	}

	if r.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", r.Timeout)
	}
	return nil
}

// Validate performs validation on the ledger configuration
func (l *LedgerConfig) Validate() error {
	if !l.Ephemeral && l.Path == "" {
		return fmt.Errorf("path is required unless ephemeral is set")
	}
	if l.CacheSize < 0 {
		return fmt.Errorf("cache_size must be non-negative, got %d", l.CacheSize)
	}
	return nil
}

// Validate performs validation on the log configuration
func (l *LogConfig) Validate() error {
	if _, err := zapcore.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("invalid level: %w", err)
	}

	switch l.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid format: %s (valid options: console, json)", l.Format)
	}

	if l.File != "" {
		if l.MaxSizeMB <= 0 {
			return fmt.Errorf("max_size_mb must be positive when file is set, got %d", l.MaxSizeMB)
		}
		if l.MaxBackups < 0 || l.MaxAgeDays < 0 {
			return fmt.Errorf("max_backups and max_age_days must be non-negative")
		}
	}
	return nil
}
