package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is the relayd release, overridden at link time
var Version = "0.1.0-dev"

// rootOptions holds the global flags
type rootOptions struct {
	configFile string
	debug      bool
	ledgerPath string
	ephemeral  bool
}

// NewRootCmd builds the relayd command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "relayd",
		Short: "goPriceRelay - oracle price snapshot relay",
		Long: `relayd reads a Switchboard pull feed, reports its current value and saves
a snapshot of it (price and timestamp) to a single program-derived account
in the local ledger.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.ledgerPath, "ledger", "", "local ledger directory (overrides ledger.path)")
	rootCmd.PersistentFlags().BoolVar(&opts.ephemeral, "ephemeral", false, "keep the local ledger in memory only")

	rootCmd.AddCommand(
		newReadCmd(opts),
		newWriteCmd(opts),
		newStatusCmd(opts),
		newDeriveCmd(opts),
		newSnapshotCmd(opts),
		newFundCmd(opts),
		newAccountsCmd(opts),
		newConfigCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
