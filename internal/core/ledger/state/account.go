//go:generate mockgen -source=account.go -destination=mocks/mock_ledger_view.go -package=mocks

package state

import (
	"bytes"

	"github.com/LeJamon/goPriceRelay/internal/core/rent"
	"github.com/gagliardetto/solana-go"
)

// Account is a ledger account: a balance, the program allowed to write
// its data, and the data itself.
type Account struct {
	Lamports rent.Lamports
	Owner    solana.PublicKey
	Data     []byte
}

// Clone returns a deep copy so callers can mutate freely.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	return &Account{
		Lamports: a.Lamports,
		Owner:    a.Owner,
		Data:     bytes.Clone(a.Data),
	}
}

// IsUnallocated reports whether the account is a bare system-owned
// balance with no data, i.e. it can still be assigned to a program.
func (a *Account) IsUnallocated() bool {
	return a.Owner.Equals(solana.SystemProgramID) && len(a.Data) == 0
}

// LedgerView provides read/write access to ledger accounts
type LedgerView interface {
	// Read returns the account at key, or nil if there is none
	Read(key solana.PublicKey) (*Account, error)

	// Exists checks if an account exists
	Exists(key solana.PublicKey) (bool, error)

	// Insert adds a new account
	Insert(key solana.PublicKey, acct *Account) error

	// Update replaces an existing account
	Update(key solana.PublicKey, acct *Account) error
}
