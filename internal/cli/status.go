package cli

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/LeJamon/goPriceRelay/internal/core/feed"
	"github.com/LeJamon/goPriceRelay/internal/rpcclient"
	"github.com/spf13/cobra"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	var (
		feedFile    string
		currentSlot uint64
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the feed's configuration, value and freshness",
		Long: `Fetch the configured oracle feed and the cluster's current slot and show
how the feed is configured, its current value and whether it is stale.
With --feed-file the current slot comes from --current-slot instead.`,
		Args: cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			var status *rpcclient.Status

			if feedFile != "" {
				account, err := a.LoadFeed(cmd.Context(), feedFile)
				if err != nil {
					return err
				}
				f, err := feed.Decode(account.Data)
				if err != nil {
					return err
				}
				status = &rpcclient.Status{
					Account:     account,
					Feed:        f,
					CurrentSlot: currentSlot,
					AgeSlots:    f.Age(currentSlot),
					Age:         f.ApproxAge(currentSlot),
					Stale:       f.Stale(currentSlot),
				}
			} else {
				client, err := a.RPC()
				if err != nil {
					return err
				}
				key, err := a.cfg.FeedKey()
				if err != nil {
					return err
				}
				if status, err = client.FeedStatus(cmd.Context(), key); err != nil {
					return err
				}
			}

			printStatus(cmd.OutOrStdout(), status)
			return nil
		}),
	}

	cmd.Flags().StringVar(&feedFile, "feed-file", "", "read raw feed account bytes from a file instead of RPC")
	cmd.Flags().Uint64Var(&currentSlot, "current-slot", 0, "current slot to age the feed against (with --feed-file)")
	return cmd
}

func printStatus(out io.Writer, s *rpcclient.Status) {
	f := s.Feed
	fmt.Fprintf(out, "Feed:            %s\n", s.Account.Key)
	fmt.Fprintf(out, "Name:            %s\n", f.Name)
	fmt.Fprintf(out, "Queue:           %s\n", f.Queue)
	fmt.Fprintf(out, "Authority:       %s\n", f.Authority)
	fmt.Fprintf(out, "Feed hash:       %s\n", hex.EncodeToString(f.FeedHash[:]))
	fmt.Fprintf(out, "Max variance:    %d\n", f.MaxVariance)
	fmt.Fprintf(out, "Min responses:   %d\n", f.MinResponses)
	fmt.Fprintf(out, "Min sample size: %d\n", f.MinSampleSize)
	fmt.Fprintf(out, "Max staleness:   %d slots\n", f.MaxStaleness)
	fmt.Fprintf(out, "Value:           %s\n", f.Value)
	fmt.Fprintf(out, "Std dev:         %s\n", f.StdDev)
	fmt.Fprintf(out, "Samples:         %d\n", f.NumSamples)
	fmt.Fprintf(out, "Result slot:     %d\n", f.ResultSlot)
	fmt.Fprintf(out, "Current slot:    %d\n", s.CurrentSlot)
	fmt.Fprintf(out, "Age:             %d slots (~%s)\n", s.AgeSlots, s.Age)
	if s.Stale {
		fmt.Fprintf(out, "Stale:           yes (older than %d slots)\n", f.MaxStaleness)
	} else {
		fmt.Fprintf(out, "Stale:           no\n")
	}
}
