package relay

import (
	"fmt"

	"github.com/LeJamon/goPriceRelay/internal/core/ledger/entry/entries"
	"github.com/LeJamon/goPriceRelay/internal/core/ledger/keylet"
	"github.com/LeJamon/goPriceRelay/internal/core/ledger/state"
	"github.com/LeJamon/goPriceRelay/internal/core/rent"
	"github.com/LeJamon/goPriceRelay/internal/core/tx"
)

// Prior is the state of the snapshot record before an upsert.
type Prior int

const (
	// Absent means the upsert allocated the record
	Absent Prior = iota
	// Present means the record already existed and was reused in place
	Present
)

func (p Prior) String() string {
	switch p {
	case Absent:
		return "absent"
	case Present:
		return "present"
	default:
		return fmt.Sprintf("Prior(%d)", int(p))
	}
}

// UpsertSnapshot makes sure the snapshot record exists at k and returns
// it along with its prior state and the lamports the payer was charged.
//
// A missing account is allocated with exactly the rent-exempt balance for
// SnapshotSize, paid by payer. An address that already holds a bare
// system balance is topped up to that amount and assigned. An existing
// record is returned untouched.
func UpsertSnapshot(ctx *tx.ApplyContext, k keylet.Keylet, payer tx.Payer) (Prior, *state.Account, rent.Lamports, error) {
	acct, err := ctx.View.Read(k.Key)
	if err != nil {
		return 0, nil, 0, err
	}

	if acct != nil && !acct.IsUnallocated() {
		if !acct.Owner.Equals(ctx.Config.ProgramID) {
			return 0, nil, 0, fmt.Errorf("%w: %s owned by %s", tx.ErrSnapshotOwner, k.Key, acct.Owner)
		}
		if _, err := entries.DecodeSnapshot(acct.Data); err != nil {
			return 0, nil, 0, fmt.Errorf("%w: %v", tx.ErrSnapshotCorrupt, err)
		}
		return Present, acct, 0, nil
	}

	if !payer.Signed {
		return 0, nil, 0, fmt.Errorf("%w: %s", tx.ErrPayerNotSigner, payer.Key)
	}

	var held rent.Lamports
	if acct != nil {
		held = acct.Lamports
	}
	required := ctx.RentFor(entries.SnapshotSize)

	var charged rent.Lamports
	if required > held {
		charged = required - held
		if err := debit(ctx.View, payer, charged); err != nil {
			return 0, nil, 0, err
		}
	}

	created := &state.Account{
		Lamports: held + charged,
		Owner:    ctx.Config.ProgramID,
		Data:     entries.EmptySnapshot(),
	}
	if acct == nil {
		err = ctx.View.Insert(k.Key, created)
	} else {
		err = ctx.View.Update(k.Key, created)
	}
	if err != nil {
		return 0, nil, 0, err
	}
	return Absent, created, charged, nil
}

func debit(view state.LedgerView, payer tx.Payer, amount rent.Lamports) error {
	acct, err := view.Read(payer.Key)
	if err != nil {
		return err
	}
	if acct == nil || acct.Lamports < amount {
		var balance rent.Lamports
		if acct != nil {
			balance = acct.Lamports
		}
		return fmt.Errorf("%w: payer %s has %d lamports, allocation needs %d",
			tx.ErrInsufficientFunds, payer.Key, balance, amount)
	}
	acct.Lamports -= amount
	return view.Update(payer.Key, acct)
}
