package relay

import (
	"context"
	"fmt"

	"github.com/LeJamon/goPriceRelay/internal/core/feed"
	"github.com/LeJamon/goPriceRelay/internal/core/ledger/entry/entries"
	"github.com/LeJamon/goPriceRelay/internal/core/ledger/keylet"
	"github.com/LeJamon/goPriceRelay/internal/core/rent"
	"github.com/LeJamon/goPriceRelay/internal/core/tx"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// WriteReport describes the snapshot after a successful write.
type WriteReport struct {
	Address    solana.PublicKey
	Bump       uint8
	Price      float64
	LastUpdate int64
	Prior      Prior
	RentPaid   rent.Lamports
}

// Write is the save instruction: decode the feed, then create or update
// the snapshot record. Price and timestamp are overwritten on every call.
type Write struct {
	Feed     feed.Account
	Snapshot solana.PublicKey
	Payer    tx.Payer
	Clock    tx.Clock

	// Report is set when Apply succeeds
	Report *WriteReport
}

var _ tx.Instruction = (*Write)(nil)

func (w *Write) Name() string  { return "save_price" }
func (w *Write) Mutates() bool { return true }

func (w *Write) Apply(ctx *tx.ApplyContext) error {
	if w.Clock == nil {
		return tx.ErrMissingClock
	}

	f, err := feed.Decode(w.Feed.Data)
	if err != nil {
		return err
	}

	k, err := keylet.Snapshot(ctx.Config.ProgramID)
	if err != nil {
		return err
	}
	if err := k.Verify(w.Snapshot); err != nil {
		return err
	}

	prior, acct, charged, err := UpsertSnapshot(ctx, k, w.Payer)
	if err != nil {
		return err
	}

	snapshot := &entries.Snapshot{
		Price:      f.Value.InexactFloat64(),
		LastUpdate: w.Clock.UnixTimestamp(),
	}
	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("%w: %v", feed.ErrMalformedRecord, err)
	}
	data, err := snapshot.Encode()
	if err != nil {
		return err
	}
	// Keep any bytes past the record as they were
	copy(acct.Data, data)
	if err := ctx.View.Update(k.Key, acct); err != nil {
		return err
	}

	w.Report = &WriteReport{
		Address:    k.Key,
		Bump:       k.Bump,
		Price:      snapshot.Price,
		LastUpdate: snapshot.LastUpdate,
		Prior:      prior,
		RentPaid:   charged,
	}

	if ctx.Logger != nil {
		ctx.Logger.Info("saved price",
			zap.Float64("price", snapshot.Price),
			zap.Int64("timestamp", snapshot.LastUpdate),
			zap.Stringer("snapshot", k.Key),
			zap.Stringer("prior", prior),
			zap.Uint64("rent_paid", uint64(charged)),
		)
	}
	return nil
}

// SavePrice runs a Write through engine and returns its report.
func SavePrice(ctx context.Context, engine *tx.Engine, w *Write) (*WriteReport, error) {
	if err := engine.Apply(ctx, w); err != nil {
		return nil, err
	}
	return w.Report, nil
}

// LoadSnapshot reads the stored snapshot record, or nil if it has not
// been created yet.
func LoadSnapshot(ctx context.Context, engine *tx.Engine) (*entries.Snapshot, keylet.Keylet, error) {
	k, err := keylet.Snapshot(engine.Config().ProgramID)
	if err != nil {
		return nil, keylet.Keylet{}, err
	}
	acct, err := engine.Store().Get(ctx, k.Key)
	if err != nil || acct == nil {
		return nil, k, err
	}
	s, err := entries.DecodeSnapshot(acct.Data)
	if err != nil {
		return nil, k, fmt.Errorf("%w: %v", tx.ErrSnapshotCorrupt, err)
	}
	return s, k, nil
}
