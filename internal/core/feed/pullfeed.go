// Package feed decodes Switchboard on-demand pull feed accounts. The
// account is owned and written by the oracle program; this package only
// ever reads it.
package feed

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"time"

	"github.com/LeJamon/goPriceRelay/internal/core/ledger/entry"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// Layout of the account body that follows the record tag
const (
	BodySize    = 3200
	AccountSize = entry.TagSize + BodySize

	submissionCount = 32
	submissionSize  = 64 // oracle pubkey, slot, landed_at, i128 value

	// ValueScale is the number of decimal places in feed values
	ValueScale = 18

	// SlotDuration is the approximate time between slots
	SlotDuration = 400 * time.Millisecond
)

// Account is a reference to an account as the caller fetched it.
type Account struct {
	Key   solana.PublicKey
	Owner solana.PublicKey
	Data  []byte
}

// PullFeed is a read-only view of a decoded feed account.
type PullFeed struct {
	Authority solana.PublicKey
	Queue     solana.PublicKey
	FeedHash  [32]byte
	Name      string

	InitializedAt       int64
	LastUpdateTimestamp int64

	MaxVariance   uint64 // scaled by 1e9
	MinResponses  uint32
	MinSampleSize uint8
	MaxStaleness  uint32 // slots

	// Current aggregated result
	Value      decimal.Decimal
	StdDev     decimal.Decimal
	NumSamples uint8
	ResultSlot uint64
	MinSlot    uint64
	MaxSlot    uint64
}

// Decode parses a pull feed account. Nothing is read from the body until
// the length and record tag have been checked.
func Decode(data []byte) (*PullFeed, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: feed account has no data", ErrUnavailable)
	}
	if len(data) < AccountSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformedRecord, len(data), AccountSize)
	}
	if !entry.TypePullFeed.Matches(data) {
		return nil, fmt.Errorf("%w: record tag %s", ErrMalformedRecord, entry.Type(data[:entry.TagSize]))
	}

	r := &layoutReader{dec: bin.NewBinDecoder(data[entry.TagSize:AccountSize])}
	f := &PullFeed{}

	r.skip(submissionCount * submissionSize)
	f.Authority = r.pubkey()
	f.Queue = r.pubkey()
	copy(f.FeedHash[:], r.bytes(32))
	f.InitializedAt = r.i64()
	r.skip(8) // permissions
	f.MaxVariance = r.u64()
	f.MinResponses = r.u32()
	f.Name = cString(r.bytes(32))
	r.skip(2)
	r.skip(1) // historical_result_idx
	f.MinSampleSize = r.u8()
	f.LastUpdateTimestamp = r.i64()
	r.skip(8)  // lut_slot
	r.skip(32) // reserved

	f.Value = decimal.NewFromBigInt(r.i128(), -ValueScale)
	f.StdDev = decimal.NewFromBigInt(r.i128(), -ValueScale)
	r.skip(16 * 4) // mean, range, min_value, max_value
	f.NumSamples = r.u8()
	r.skip(1) // submission_idx
	r.skip(6)
	f.ResultSlot = r.u64()
	f.MinSlot = r.u64()
	f.MaxSlot = r.u64()
	f.MaxStaleness = r.u32()

	if r.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, r.err)
	}
	if f.ResultSlot == 0 {
		return nil, fmt.Errorf("%w: feed has not been updated by oracles", ErrUnavailable)
	}
	return f, nil
}

// Age is the number of slots since the current result landed.
func (f *PullFeed) Age(currentSlot uint64) uint64 {
	if currentSlot <= f.ResultSlot {
		return 0
	}
	return currentSlot - f.ResultSlot
}

// ApproxAge converts Age to wall time using SlotDuration.
func (f *PullFeed) ApproxAge(currentSlot uint64) time.Duration {
	return time.Duration(f.Age(currentSlot)) * SlotDuration
}

// Stale reports whether the result is older than the feed's own
// max_staleness.
func (f *PullFeed) Stale(currentSlot uint64) bool {
	return f.Age(currentSlot) > uint64(f.MaxStaleness)
}

// layoutReader walks the fixed little-endian layout and keeps the first
// error, so Decode can check once at the end.
type layoutReader struct {
	dec *bin.Decoder
	err error
}

func (r *layoutReader) bytes(n int) []byte {
	if r.err != nil {
		return make([]byte, n)
	}
	b, err := r.dec.ReadNBytes(n)
	if err != nil {
		r.err = err
		return make([]byte, n)
	}
	return b
}

func (r *layoutReader) skip(n int) {
	r.bytes(n)
}

func (r *layoutReader) u8() uint8 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint8()
	r.err = err
	return v
}

func (r *layoutReader) u32() uint32 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint32(binary.LittleEndian)
	r.err = err
	return v
}

func (r *layoutReader) u64() uint64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint64(binary.LittleEndian)
	r.err = err
	return v
}

func (r *layoutReader) i64() int64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadInt64(binary.LittleEndian)
	r.err = err
	return v
}

// i128 reads a two's complement little-endian 128-bit integer.
func (r *layoutReader) i128() *big.Int {
	lo := r.u64()
	hi := int64(r.u64())
	v := new(big.Int).Lsh(big.NewInt(hi), 64)
	return v.Add(v, new(big.Int).SetUint64(lo))
}

func (r *layoutReader) pubkey() solana.PublicKey {
	return solana.PublicKeyFromBytes(r.bytes(solana.PublicKeyLength))
}

// cString trims a fixed-size, NUL-padded name.
func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
