package cli

import (
	"fmt"

	"github.com/LeJamon/goPriceRelay/internal/core/ledger/entry/entries"
	"github.com/LeJamon/goPriceRelay/internal/core/ledger/keylet"
	"github.com/spf13/cobra"
)

func newDeriveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "derive",
		Short: "Print the snapshot record's address",
		Long:  `Derive the snapshot record's program address and canonical bump from the configured program id.`,
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			programID, err := a.cfg.ProgramKey()
			if err != nil {
				return err
			}
			k, err := keylet.Snapshot(programID)
			if err != nil {
				return err
			}
			minimum := a.cfg.RentParams().MinimumBalance(entries.SnapshotSize)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Program:  %s\n", programID)
			fmt.Fprintf(out, "Seed:     %q\n", keylet.SnapshotSeed)
			fmt.Fprintf(out, "Address:  %s\n", k.Key)
			fmt.Fprintf(out, "Bump:     %d\n", k.Bump)
			fmt.Fprintf(out, "Size:     %d bytes\n", entries.SnapshotSize)
			fmt.Fprintf(out, "Rent:     %d lamports (%s SOL)\n", minimum, minimum.SOL())
			return nil
		}),
	}
}
