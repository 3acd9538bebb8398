// Package relay implements the two relay instructions: reading the oracle
// feed and saving a snapshot of it.
package relay

import (
	"github.com/LeJamon/goPriceRelay/internal/core/feed"
	"github.com/LeJamon/goPriceRelay/internal/core/tx"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReadReport is what a read surfaces about the feed.
type ReadReport struct {
	Feed         solana.PublicKey
	Value        decimal.Decimal
	ResultSlot   uint64
	MinResponses uint32
	MaxVariance  uint64

	// Decoded is the full decoded view, for callers that want more
	Decoded *feed.PullFeed
}

// ReadPrice decodes the feed account and reports its current value. It
// never touches ledger state. A decode error is returned as is and nothing
// is reported.
func ReadPrice(account feed.Account, logger *zap.Logger) (*ReadReport, error) {
	f, err := feed.Decode(account.Data)
	if err != nil {
		return nil, err
	}

	report := &ReadReport{
		Feed:         account.Key,
		Value:        f.Value,
		ResultSlot:   f.ResultSlot,
		MinResponses: f.MinResponses,
		MaxVariance:  f.MaxVariance,
		Decoded:      f,
	}

	if logger != nil {
		logger.Info("current price",
			zap.String("value", f.Value.String()),
			zap.Stringer("feed", account.Key),
			zap.Uint64("last_update_slot", f.ResultSlot),
			zap.Uint32("min_responses", f.MinResponses),
			zap.Uint64("max_variance", f.MaxVariance),
		)
	}
	return report, nil
}

// Read is the read instruction. It declares no writes, so the engine runs
// it without taking the write lock.
type Read struct {
	Feed feed.Account

	// Report is set when Apply succeeds
	Report *ReadReport
}

var _ tx.Instruction = (*Read)(nil)

func (r *Read) Name() string  { return "read_price" }
func (r *Read) Mutates() bool { return false }

func (r *Read) Apply(ctx *tx.ApplyContext) error {
	report, err := ReadPrice(r.Feed, ctx.Logger)
	if err != nil {
		return err
	}
	r.Report = report
	return nil
}
