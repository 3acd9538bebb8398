package tx

import (
	"github.com/LeJamon/goPriceRelay/internal/core/ledger/state"
	"github.com/LeJamon/goPriceRelay/internal/core/rent"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// Payer is the identity that funds first-time allocation. Signed is true
// only when the caller proved control of the key.
type Payer struct {
	Key    solana.PublicKey
	Signed bool
}

// EngineConfig holds the deployment constants every instruction sees.
type EngineConfig struct {
	// ProgramID owns the snapshot record and seeds its address
	ProgramID solana.PublicKey

	// Rent prices account storage
	Rent rent.Rent
}

// ApplyContext provides all the state and helpers needed to apply an
// instruction. It is passed to Instruction.Apply instead of individual
// parameters.
type ApplyContext struct {
	// View provides read/write access to ledger state (the ApplyStateTable)
	View state.LedgerView

	// Config holds engine configuration
	Config EngineConfig

	// Logger receives the instruction's report. It may be nil.
	Logger *zap.Logger
}

// RentFor is the balance an account of dataLen bytes must hold.
func (ctx *ApplyContext) RentFor(dataLen int) rent.Lamports {
	return ctx.Config.Rent.MinimumBalance(dataLen)
}

// Instruction is a single relay entry point.
type Instruction interface {
	// Name identifies the instruction in logs
	Name() string

	// Mutates reports whether Apply may write state
	Mutates() bool

	// Apply runs the instruction against ctx.View
	Apply(ctx *ApplyContext) error
}
