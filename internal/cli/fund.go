package cli

import (
	"fmt"

	"github.com/LeJamon/goPriceRelay/internal/core/rent"
	"github.com/LeJamon/goPriceRelay/internal/core/tx"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newFundCmd(opts *rootOptions) *cobra.Command {
	var (
		lamports uint64
		sol      string
	)

	cmd := &cobra.Command{
		Use:   "fund <address>",
		Short: "Credit lamports to a local ledger account",
		Long: `Credit lamports to an account in the local ledger, creating a
system-owned account if there is none. Use it to fund a payer.`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			key, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return fmt.Errorf("address %q: %w", args[0], err)
			}

			amount, err := fundAmount(lamports, sol)
			if err != nil {
				return err
			}

			engine, err := a.Engine()
			if err != nil {
				return err
			}
			fund := &tx.Fund{Key: key, Lamports: amount}
			if err := engine.Apply(cmd.Context(), fund); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Funded %s with %d lamports, balance %d (%s SOL)\n",
				key, amount, fund.Balance, fund.Balance.SOL())
			return nil
		}),
	}

	cmd.Flags().Uint64Var(&lamports, "lamports", 0, "amount in lamports")
	cmd.Flags().StringVar(&sol, "sol", "", "amount in SOL, e.g. 1.5")
	cmd.MarkFlagsMutuallyExclusive("lamports", "sol")
	return cmd
}

func fundAmount(lamports uint64, sol string) (rent.Lamports, error) {
	if sol == "" {
		if lamports == 0 {
			return 0, fmt.Errorf("one of --lamports or --sol is required")
		}
		return rent.Lamports(lamports), nil
	}

	d, err := decimal.NewFromString(sol)
	if err != nil {
		return 0, fmt.Errorf("--sol %q: %w", sol, err)
	}
	scaled := d.Shift(9)
	if !scaled.IsInteger() || !scaled.IsPositive() {
		return 0, fmt.Errorf("--sol %q is not a positive whole number of lamports", sol)
	}
	return rent.Lamports(scaled.BigInt().Uint64()), nil
}
