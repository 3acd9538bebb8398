package tx

import (
	"fmt"
	"math"

	"github.com/LeJamon/goPriceRelay/internal/core/ledger/state"
	"github.com/LeJamon/goPriceRelay/internal/core/rent"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// Fund is the local ledger's faucet. It credits Lamports to Key,
// creating a system-owned account when there is none.
type Fund struct {
	Key      solana.PublicKey
	Lamports rent.Lamports

	// Balance is set when Apply succeeds
	Balance rent.Lamports
}

var _ Instruction = (*Fund)(nil)

func (f *Fund) Name() string  { return "fund" }
func (f *Fund) Mutates() bool { return true }

func (f *Fund) Apply(ctx *ApplyContext) error {
	if f.Lamports == 0 {
		return ErrInvalidAmount
	}

	acct, err := ctx.View.Read(f.Key)
	if err != nil {
		return err
	}
	if acct == nil {
		acct = &state.Account{Lamports: f.Lamports, Owner: solana.SystemProgramID}
		err = ctx.View.Insert(f.Key, acct)
	} else {
		if acct.Lamports > math.MaxUint64-f.Lamports {
			return fmt.Errorf("%w: %s holds %d", ErrBalanceOverflow, f.Key, acct.Lamports)
		}
		acct.Lamports += f.Lamports
		err = ctx.View.Update(f.Key, acct)
	}
	if err != nil {
		return err
	}

	f.Balance = acct.Lamports
	if ctx.Logger != nil {
		ctx.Logger.Info("funded account",
			zap.Stringer("account", f.Key),
			zap.Uint64("lamports", uint64(f.Lamports)),
			zap.Uint64("balance", uint64(f.Balance)),
		)
	}
	return nil
}
