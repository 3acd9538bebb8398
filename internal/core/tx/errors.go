package tx

import (
	"errors"

	"github.com/LeJamon/goPriceRelay/internal/core/ledger/keylet"
)

var (
	// ErrAddressMismatch is returned when the snapshot account supplied by
	// the caller is not the program-derived address. It is never corrected.
	ErrAddressMismatch = keylet.ErrAddressMismatch

	// ErrInsufficientFunds is returned when the payer cannot cover the
	// storage cost of a first-time allocation
	ErrInsufficientFunds = errors.New("insufficient funds for allocation")

	// ErrPayerNotSigner is returned when allocation is needed but the payer
	// did not sign
	ErrPayerNotSigner = errors.New("payer did not sign")

	// ErrSnapshotOwner is returned when the account at the snapshot address
	// belongs to another program
	ErrSnapshotOwner = errors.New("snapshot account owned by another program")

	// ErrSnapshotCorrupt is returned when the account at the snapshot
	// address does not hold a snapshot record
	ErrSnapshotCorrupt = errors.New("snapshot account data is not a snapshot record")

	// ErrMissingClock is returned by instructions that stamp a time when
	// none was supplied
	ErrMissingClock = errors.New("no clock supplied")

	// ErrInvalidAmount is returned when funding zero lamports
	ErrInvalidAmount = errors.New("fund amount must be positive")

	// ErrBalanceOverflow is returned when a credit would overflow the
	// account balance
	ErrBalanceOverflow = errors.New("balance overflow")
)
