package cli

import (
	"fmt"

	"github.com/LeJamon/goPriceRelay/internal/core/ledger/keylet"
	"github.com/LeJamon/goPriceRelay/internal/core/ledger/state"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

func newAccountsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List the local ledger's accounts",
		Long:  `List every account in the local ledger with its balance, owner and data size.`,
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			engine, err := a.Engine()
			if err != nil {
				return err
			}
			k, err := keylet.Snapshot(engine.Config().ProgramID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-44s  %20s  %-44s  %s\n", "ADDRESS", "LAMPORTS", "OWNER", "DATA")
			count := 0
			err = engine.Store().Accounts(cmd.Context(), func(key solana.PublicKey, acct *state.Account) error {
				count++
				note := ""
				if key == k.Key {
					note = "  (snapshot)"
				}
				_, err := fmt.Fprintf(out, "%-44s  %20d  %-44s  %d%s\n",
					key, acct.Lamports, acct.Owner, len(acct.Data), note)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d accounts\n", count)
			return nil
		}),
	}
}
