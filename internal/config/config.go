package config

import (
	"fmt"
	"time"

	"github.com/LeJamon/goPriceRelay/internal/core/rent"
	"github.com/gagliardetto/solana-go"
)

// Config represents the complete relayd configuration
type Config struct {
	// ProgramID is the relay program. It owns the snapshot record and
	// seeds its address.
	ProgramID string `toml:"program_id" mapstructure:"program_id"`

	Feed   FeedConfig   `toml:"feed" mapstructure:"feed"`
	RPC    RPCConfig    `toml:"rpc" mapstructure:"rpc"`
	Ledger LedgerConfig `toml:"ledger" mapstructure:"ledger"`
	Rent   RentConfig   `toml:"rent" mapstructure:"rent"`
	Log    LogConfig    `toml:"log" mapstructure:"log"`

	// Internal fields for configuration management
	configPath string `toml:"-" mapstructure:"-"`
}

// FeedConfig represents the [feed] section
type FeedConfig struct {
	// Address of the oracle feed account to read
	Address string `toml:"address" mapstructure:"address"`
}

// RPCConfig represents the [rpc] section
// The cluster endpoint the feed is fetched from
type RPCConfig struct {
	Endpoint   string        `toml:"endpoint" mapstructure:"endpoint"`
	Commitment string        `toml:"commitment" mapstructure:"commitment"`
	Timeout    time.Duration `toml:"timeout" mapstructure:"timeout"`
}

// LedgerConfig represents the [ledger] section
// The local account store the write operation commits to
type LedgerConfig struct {
	Path      string `toml:"path" mapstructure:"path"`
	CacheSize int    `toml:"cache_size" mapstructure:"cache_size"`

	// Ephemeral keeps the ledger in memory only
	Ephemeral bool `toml:"ephemeral" mapstructure:"ephemeral"`
}

// RentConfig represents the [rent] section
type RentConfig struct {
	LamportsPerByteYear uint64  `toml:"lamports_per_byte_year" mapstructure:"lamports_per_byte_year"`
	ExemptionThreshold  float64 `toml:"exemption_threshold" mapstructure:"exemption_threshold"`
}

// LogConfig represents the [log] section
type LogConfig struct {
	Level  string `toml:"level" mapstructure:"level"`
	Format string `toml:"format" mapstructure:"format"`

	// File enables rotating file output in addition to stderr
	File       string `toml:"file" mapstructure:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" mapstructure:"max_age_days"`
}

// GetConfigPath returns the path to the configuration file, if one was loaded
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// ProgramKey parses the configured program id.
func (c *Config) ProgramKey() (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(c.ProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("program_id %q: %w", c.ProgramID, err)
	}
	return key, nil
}

// FeedKey parses the configured feed address.
func (c *Config) FeedKey() (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(c.Feed.Address)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("feed.address %q: %w", c.Feed.Address, err)
	}
	return key, nil
}

// RentParams returns the configured rent parameters.
func (c *Config) RentParams() rent.Rent {
	return rent.Rent{
		LamportsPerByteYear: c.Rent.LamportsPerByteYear,
		ExemptionThreshold:  c.Rent.ExemptionThreshold,
	}
}
