package relay

import (
	"fmt"
	"testing"

	"github.com/LeJamon/goPriceRelay/internal/core/feed"
	"github.com/LeJamon/goPriceRelay/internal/core/feed/feedtest"
	"github.com/LeJamon/goPriceRelay/internal/core/ledger/entry/entries"
	"github.com/LeJamon/goPriceRelay/internal/core/ledger/state"
	"github.com/LeJamon/goPriceRelay/internal/core/ledger/state/mocks"
	"github.com/LeJamon/goPriceRelay/internal/core/rent"
	"github.com/LeJamon/goPriceRelay/internal/core/tx"
	"github.com/gagliardetto/solana-go"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func mockContext(t *testing.T) (*tx.ApplyContext, *mocks.MockLedgerView) {
	ctrl := gomock.NewController(t)
	view := mocks.NewMockLedgerView(ctrl)
	return &tx.ApplyContext{
		View:   view,
		Config: tx.EngineConfig{ProgramID: testProgramID, Rent: rent.Default()},
		Logger: zap.NewNop(),
	}, view
}

// A mock with no expectations fails the test on any state access.
func TestWrite_FailuresTouchNoState(t *testing.T) {
	k := mustSnapshotKeylet(t)

	tt := []struct {
		description string
		feed        feed.Account
		snapshot    solana.PublicKey
		expected    error
	}{
		{
			description: "malformed feed",
			feed:        feed.Account{Key: feedtest.FeedAddress, Data: []byte{1, 2, 3}},
			snapshot:    k.Key,
			expected:    feed.ErrMalformedRecord,
		},
		{
			description: "unavailable feed",
			feed:        feed.Account{Key: feedtest.FeedAddress},
			snapshot:    k.Key,
			expected:    feed.ErrUnavailable,
		},
		{
			description: "forged snapshot address",
			feed:        feedtest.NewBuilder("65000", 1000).Account(feedtest.FeedAddress),
			snapshot:    solana.NewWallet().PublicKey(),
			expected:    tx.ErrAddressMismatch,
		},
	}

	for _, tc := range tt {
		t.Run(tc.description, func(t *testing.T) {
			actx, _ := mockContext(t)
			w := &Write{
				Feed:     tc.feed,
				Snapshot: tc.snapshot,
				Payer:    tx.Payer{Key: solana.NewWallet().PublicKey(), Signed: true},
				Clock:    tx.FixedClock(1700000000),
			}
			err := w.Apply(actx)
			assert.ErrorIs(t, err, tc.expected)
			assert.Nil(t, w.Report)
		})
	}
}

func TestWrite_ExistingRecordUpdatedInPlace(t *testing.T) {
	actx, view := mockContext(t)
	k := mustSnapshotKeylet(t)

	existing, err := (&entries.Snapshot{Price: 1, LastUpdate: 1}).Encode()
	require.NoError(t, err)

	gomock.InOrder(
		view.EXPECT().Read(k.Key).Return(&state.Account{
			Lamports: snapshotRent,
			Owner:    testProgramID,
			Data:     existing,
		}, nil),
		view.EXPECT().Update(k.Key, gomock.Any()).DoAndReturn(func(_ solana.PublicKey, acct *state.Account) error {
			s, err := entries.DecodeSnapshot(acct.Data)
			require.NoError(t, err)
			assert.Equal(t, &entries.Snapshot{Price: 65500, LastUpdate: 1700000100}, s)
			assert.Equal(t, snapshotRent, acct.Lamports)
			return nil
		}),
	)

	w := &Write{
		Feed:     feedtest.NewBuilder("65500", 1001).Account(feedtest.FeedAddress),
		Snapshot: k.Key,
		// Updates never read the payer
		Payer: tx.Payer{Key: solana.NewWallet().PublicKey()},
		Clock: tx.FixedClock(1700000100),
	}
	require.NoError(t, w.Apply(actx))
	assert.Equal(t, Present, w.Report.Prior)
}

func TestRead_TouchesNoState(t *testing.T) {
	actx, _ := mockContext(t)
	r := &Read{Feed: feedtest.NewBuilder("65000", 1000).Account(feedtest.FeedAddress)}
	require.NoError(t, r.Apply(actx))
	assert.Equal(t, "65000", r.Report.Value.String())
	assert.False(t, r.Mutates())
}

func TestReadPrice_Errors(t *testing.T) {
	report, err := ReadPrice(feed.Account{Key: feedtest.FeedAddress}, nil)
	assert.ErrorIs(t, err, feed.ErrUnavailable)
	assert.Nil(t, report)

	report, err = ReadPrice(feed.Account{Key: feedtest.FeedAddress, Data: make([]byte, 40)}, nil)
	assert.ErrorIs(t, err, feed.ErrMalformedRecord)
	assert.Nil(t, report)
}

func TestRead_LogsReport(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.engine.Apply(env.ctx, &Read{
		Feed: feedtest.NewBuilder("65000.00", 1000).Account(feedtest.FeedAddress),
	}))

	logged := env.logs.FilterMessage("current price").All()
	require.Len(t, logged, 1)
	fields := logged[0].ContextMap()
	assert.Equal(t, "65000", fields["value"])
	assert.Equal(t, feedtest.FeedAddress.String(), fields["feed"])
	assert.Equal(t, uint64(1000), fields["last_update_slot"])
	assert.Equal(t, "read_price", fields["instruction"])
}

func TestWrite_ConcurrentWritersLastWins(t *testing.T) {
	env := newTestEnv(t)

	const writers = 8
	var g errgroup.Group
	for i := 0; i < writers; i++ {
		g.Go(func() error {
			_, err := env.write(fmt.Sprintf("%d", 65000+i), uint64(1000+i), int64(1700000000+i))
			return err
		})
	}
	require.NoError(t, g.Wait())

	// Exactly one allocation, and the record holds one writer's pair intact
	assert.Equal(t, rent.LamportsPerSOL-snapshotRent, env.balance(env.payer.Key))
	s := env.snapshot()
	require.NotNil(t, s)
	assert.Equal(t, float64(65000)+float64(s.LastUpdate-1700000000), s.Price)
	assert.Equal(t, 1, env.logs.FilterMessage("saved price").FilterField(zap.Stringer("prior", Absent)).Len())
	assert.Equal(t, writers, env.logs.FilterMessage("saved price").Len())
}

func TestWrite_MissingClock(t *testing.T) {
	actx, _ := mockContext(t)
	w := &Write{
		Feed:     feedtest.NewBuilder("65000", 1000).Account(feedtest.FeedAddress),
		Snapshot: mustSnapshotKeylet(t).Key,
	}
	assert.ErrorIs(t, w.Apply(actx), tx.ErrMissingClock)
	assert.Nil(t, w.Report)

	assert.ErrorIs(t, (&Write{}).Apply(actx), tx.ErrMissingClock)
}

func TestWrite_WithoutLogger(t *testing.T) {
	env := newTestEnv(t)
	table := state.NewApplyStateTable(env.store.View(env.ctx))

	w := &Write{
		Feed:     feedtest.NewBuilder("65000", 1000).Account(feedtest.FeedAddress),
		Snapshot: env.key.Key,
		Payer:    env.payer,
		Clock:    tx.FixedClock(1700000000),
	}
	require.NoError(t, w.Apply(&tx.ApplyContext{View: table, Config: env.engine.Config()}))
	assert.Equal(t, Absent, w.Report.Prior)
	assert.Equal(t, snapshotRent, w.Report.RentPaid)
}

func TestWrite_ConcurrentFunding(t *testing.T) {
	env := newTestEnv(t)

	const rounds = 20
	var g errgroup.Group
	for i := 0; i < rounds; i++ {
		g.Go(func() error {
			_, err := env.write(fmt.Sprintf("%d", 65000+i), uint64(1000+i), int64(1700000000+i))
			return err
		})
		g.Go(func() error {
			return env.engine.Apply(env.ctx, &tx.Fund{Key: env.payer.Key, Lamports: 1_000})
		})
	}
	require.NoError(t, g.Wait())

	// No credit is lost to the one debit
	assert.Equal(t, rent.LamportsPerSOL+rounds*1_000-snapshotRent, env.balance(env.payer.Key))
}
