package cli

import (
	"fmt"
	"time"

	"github.com/LeJamon/goPriceRelay/internal/core/ledger/keylet"
	"github.com/LeJamon/goPriceRelay/internal/core/tx"
	"github.com/LeJamon/goPriceRelay/internal/core/tx/relay"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

func newWriteCmd(opts *rootOptions) *cobra.Command {
	var (
		feedFile  string
		payerFile string
		snapshot  string
		timestamp int64
	)

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Save the feed's current value to the snapshot record",
		Long: `Decode the configured oracle feed and overwrite the snapshot record with
its value and the current time. The first write allocates the record,
paid for by --payer.`,
		Args: cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			account, err := a.LoadFeed(cmd.Context(), feedFile)
			if err != nil {
				return err
			}
			engine, err := a.Engine()
			if err != nil {
				return err
			}

			var payer tx.Payer
			if payerFile != "" {
				key, err := solana.PrivateKeyFromSolanaKeygenFile(payerFile)
				if err != nil {
					return fmt.Errorf("load payer keypair %q: %w", payerFile, err)
				}
				payer = tx.Payer{Key: key.PublicKey(), Signed: true}
			}

			target, err := snapshotTarget(engine, snapshot)
			if err != nil {
				return err
			}

			var clock tx.Clock = tx.SystemClock{}
			if timestamp != 0 {
				clock = tx.FixedClock(timestamp)
			}

			report, err := relay.SavePrice(cmd.Context(), engine, &relay.Write{
				Feed:     account,
				Snapshot: target,
				Payer:    payer,
				Clock:    clock,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Snapshot:    %s (bump %d)\n", report.Address, report.Bump)
			fmt.Fprintf(out, "Price:       %v\n", report.Price)
			fmt.Fprintf(out, "Last update: %d (%s)\n", report.LastUpdate, time.Unix(report.LastUpdate, 0).UTC().Format(time.RFC3339))
			fmt.Fprintf(out, "Record:      %s\n", report.Prior)
			if report.RentPaid > 0 {
				fmt.Fprintf(out, "Rent paid:   %d lamports (%s SOL)\n", report.RentPaid, report.RentPaid.SOL())
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&feedFile, "feed-file", "", "read raw feed account bytes from a file instead of RPC")
	cmd.Flags().StringVar(&payerFile, "payer", "", "solana-keygen keypair file funding first-time allocation")
	cmd.Flags().StringVar(&snapshot, "snapshot", "", "snapshot account address (default: derived)")
	cmd.Flags().Int64Var(&timestamp, "timestamp", 0, "unix time to record (default: now)")
	return cmd
}

// snapshotTarget is the address the caller names as the snapshot record.
// It is checked against the derivation by the write itself.
func snapshotTarget(engine *tx.Engine, address string) (solana.PublicKey, error) {
	if address != "" {
		key, err := solana.PublicKeyFromBase58(address)
		if err != nil {
			return solana.PublicKey{}, fmt.Errorf("snapshot address %q: %w", address, err)
		}
		return key, nil
	}
	k, err := keylet.Snapshot(engine.Config().ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return k.Key, nil
}
