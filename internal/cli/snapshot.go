package cli

import (
	"fmt"
	"time"

	"github.com/LeJamon/goPriceRelay/internal/core/tx/relay"
	"github.com/spf13/cobra"
)

func newSnapshotCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Print the stored snapshot record",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			engine, err := a.Engine()
			if err != nil {
				return err
			}
			s, k, err := relay.LoadSnapshot(cmd.Context(), engine)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Snapshot:    %s\n", k.Key)
			if s == nil {
				fmt.Fprintf(out, "Record:      absent\n")
				return nil
			}
			fmt.Fprintf(out, "Price:       %v\n", s.Price)
			fmt.Fprintf(out, "Last update: %d (%s)\n", s.LastUpdate, time.Unix(s.LastUpdate, 0).UTC().Format(time.RFC3339))
			return nil
		}),
	}
}
