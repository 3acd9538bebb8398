package keylet

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goPriceRelay/internal/core/ledger/entry"
	"github.com/gagliardetto/solana-go"
)

// SnapshotSeed is the domain-separation label of the snapshot record.
// There is exactly one snapshot per program, so no caller data enters the
// derivation.
const SnapshotSeed = "price_data"

// ErrAddressMismatch is returned when a supplied address is not the
// canonical derivation of the keylet it claims to be.
var ErrAddressMismatch = errors.New("address does not match derivation")

// Keylet represents an addressable location in the ledger state.
// It combines a record type with a program-derived address and the bump
// that made the address valid.
type Keylet struct {
	Type entry.Type
	Key  solana.PublicKey
	Bump uint8
}

// Derive computes the program address for label and bump. It fails when
// the candidate lands on the ed25519 curve, i.e. it could have a private key.
func Derive(label []byte, bump uint8, programID solana.PublicKey) (solana.PublicKey, error) {
	key, err := solana.CreateProgramAddress([][]byte{label, {bump}}, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive %q bump %d: %w", label, bump, err)
	}
	return key, nil
}

// Snapshot returns the keylet for the singleton snapshot record, using the
// canonical (highest valid) bump.
func Snapshot(programID solana.PublicKey) (Keylet, error) {
	key, bump, err := solana.FindProgramAddress([][]byte{[]byte(SnapshotSeed)}, programID)
	if err != nil {
		return Keylet{}, fmt.Errorf("find snapshot address: %w", err)
	}
	return Keylet{
		Type: entry.TypeSnapshot,
		Key:  key,
		Bump: bump,
	}, nil
}

// Verify checks that key is this keylet's address.
func (k Keylet) Verify(key solana.PublicKey) error {
	if !key.Equals(k.Key) {
		return fmt.Errorf("%w: got %s, want %s (bump %d)", ErrAddressMismatch, key, k.Key, k.Bump)
	}
	return nil
}
