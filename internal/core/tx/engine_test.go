package tx

import (
	"context"
	"errors"
	"testing"

	"github.com/LeJamon/goPriceRelay/internal/core/ledger/state"
	"github.com/LeJamon/goPriceRelay/internal/core/rent"
	"github.com/LeJamon/goPriceRelay/internal/storage/database/memory"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// stubInstruction runs fn as its Apply
type stubInstruction struct {
	name    string
	mutates bool
	fn      func(ctx *ApplyContext) error
}

func (s *stubInstruction) Name() string                  { return s.name }
func (s *stubInstruction) Mutates() bool                 { return s.mutates }
func (s *stubInstruction) Apply(ctx *ApplyContext) error { return s.fn(ctx) }

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	store, err := state.NewStore(memory.NewDB(), 16)
	require.NoError(t, err)
	return NewEngine(store, EngineConfig{
		ProgramID: solana.SystemProgramID,
		Rent:      rent.Default(),
	}, zaptest.NewLogger(t))
}

func TestEngine_Apply(t *testing.T) {
	ctx := context.Background()
	a := solana.NewWallet().PublicKey()
	b := solana.NewWallet().PublicKey()

	t.Run("Commits all changes on success", func(t *testing.T) {
		e := newTestEngine(t)
		err := e.Apply(ctx, &stubInstruction{name: "two", mutates: true, fn: func(ctx *ApplyContext) error {
			if err := ctx.View.Insert(a, &state.Account{Lamports: 1}); err != nil {
				return err
			}
			return ctx.View.Insert(b, &state.Account{Lamports: 2})
		}})
		require.NoError(t, err)

		got, err := e.Store().Get(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, rent.Lamports(2), got.Lamports)
	})

	t.Run("Failure discards partial writes", func(t *testing.T) {
		e := newTestEngine(t)
		boom := errors.New("boom")
		err := e.Apply(ctx, &stubInstruction{name: "half", mutates: true, fn: func(ctx *ApplyContext) error {
			if err := ctx.View.Insert(a, &state.Account{Lamports: 1}); err != nil {
				return err
			}
			return boom
		}})
		require.ErrorIs(t, err, boom)

		got, err := e.Store().Get(ctx, a)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Read-only instruction may not write", func(t *testing.T) {
		e := newTestEngine(t)
		err := e.Apply(ctx, &stubInstruction{name: "sneaky", fn: func(ctx *ApplyContext) error {
			return ctx.View.Insert(a, &state.Account{Lamports: 1})
		}})
		assert.Error(t, err)

		got, err := e.Store().Get(ctx, a)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Instruction sees config and rent", func(t *testing.T) {
		e := newTestEngine(t)
		var seen rent.Lamports
		err := e.Apply(ctx, &stubInstruction{name: "rent", fn: func(ctx *ApplyContext) error {
			seen = ctx.RentFor(24)
			assert.Equal(t, solana.SystemProgramID, ctx.Config.ProgramID)
			return nil
		}})
		require.NoError(t, err)
		assert.Equal(t, rent.Lamports(1_057_920), seen)
	})
}

func TestClock(t *testing.T) {
	assert.Equal(t, int64(1700000000), FixedClock(1700000000).UnixTimestamp())
	assert.Positive(t, SystemClock{}.UnixTimestamp())
}
