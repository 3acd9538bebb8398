package cli

import (
	"fmt"

	"github.com/LeJamon/goPriceRelay/internal/core/tx/relay"
	"github.com/spf13/cobra"
)

func newReadCmd(opts *rootOptions) *cobra.Command {
	var feedFile string

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Report the feed's current value",
		Long: `Decode the configured oracle feed and report its value, the slot of the
last update, and the feed's aggregation settings. The local ledger is not
opened.`,
		Args: cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			account, err := a.LoadFeed(cmd.Context(), feedFile)
			if err != nil {
				return err
			}
			engine, err := a.ScratchEngine()
			if err != nil {
				return err
			}

			read := &relay.Read{Feed: account}
			if err := engine.Apply(cmd.Context(), read); err != nil {
				return err
			}

			r := read.Report
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Feed:             %s\n", r.Feed)
			fmt.Fprintf(out, "Value:            %s\n", r.Value)
			fmt.Fprintf(out, "Last update slot: %d\n", r.ResultSlot)
			fmt.Fprintf(out, "Min responses:    %d\n", r.MinResponses)
			fmt.Fprintf(out, "Max variance:     %d\n", r.MaxVariance)
			return nil
		}),
	}

	cmd.Flags().StringVar(&feedFile, "feed-file", "", "read raw feed account bytes from a file instead of RPC")
	return cmd
}
