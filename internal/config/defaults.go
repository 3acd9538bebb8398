package config

import (
	"github.com/LeJamon/goPriceRelay/internal/core/rent"
	"github.com/spf13/viper"
)

const (
	// DefaultProgramID is the deployed relay program
	DefaultProgramID = "4VHsa4FYFjf7t2CEcBkhGdUEdcUMgf2DfsFHJ5w1Yr5v"

	// DefaultFeedAddress is the devnet BTC/USD pull feed
	DefaultFeedAddress = "ALtJ2EE5AaLorWh8bxbzq1M5c32GifyVZHh3gakGhGYh"

	DefaultEndpoint = "https://api.devnet.solana.com"
)

// setDefaults sets the value of every known key, so environment overrides
// apply even without a config file
func setDefaults(v *viper.Viper) {
	v.SetDefault("program_id", DefaultProgramID)

	v.SetDefault("feed.address", DefaultFeedAddress)

	v.SetDefault("rpc.endpoint", DefaultEndpoint)
	v.SetDefault("rpc.commitment", "confirmed")
	v.SetDefault("rpc.timeout", "15s")

	v.SetDefault("ledger.path", "./data/ledger")
	v.SetDefault("ledger.cache_size", 1024)
	v.SetDefault("ledger.ephemeral", false)

	v.SetDefault("rent.lamports_per_byte_year", rent.DefaultLamportsPerByteYear)
	v.SetDefault("rent.exemption_threshold", rent.DefaultExemptionThreshold)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
}
