// Package feedtest builds pull feed account bytes for tests. Fields are
// written at absolute offsets, independently of the decoder's walk.
package feedtest

import (
	"encoding/binary"
	"math/big"

	"github.com/LeJamon/goPriceRelay/internal/core/feed"
	"github.com/LeJamon/goPriceRelay/internal/core/ledger/entry"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// Body offsets (after the 8-byte tag)
const (
	offAuthority     = 2048
	offQueue         = 2080
	offFeedHash      = 2112
	offInitializedAt = 2144
	offMaxVariance   = 2160
	offMinResponses  = 2168
	offName          = 2172
	offMinSampleSize = 2207
	offLastUpdate    = 2208
	offResultValue   = 2256
	offResultStdDev  = 2272
	offNumSamples    = 2352
	offResultSlot    = 2360
	offMinSlot       = 2368
	offMaxSlot       = 2376
	offMaxStaleness  = 2384
)

// Builder describes a feed account to encode.
type Builder struct {
	Authority           solana.PublicKey
	Queue               solana.PublicKey
	FeedHash            [32]byte
	Name                string
	InitializedAt       int64
	LastUpdateTimestamp int64
	MaxVariance         uint64
	MinResponses        uint32
	MinSampleSize       uint8
	MaxStaleness        uint32
	Value               decimal.Decimal
	StdDev              decimal.Decimal
	NumSamples          uint8
	ResultSlot          uint64
	MinSlot             uint64
	MaxSlot             uint64
}

// NewBuilder returns a builder for a BTC/USD style feed with value and
// result slot set.
func NewBuilder(value string, resultSlot uint64) *Builder {
	return &Builder{
		Authority:     solana.MustPublicKeyFromBase58("9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"),
		Queue:         solana.MustPublicKeyFromBase58("EYiAmGSdsQTuCw413V5BzaruWuCCSDgTPtBGvLkXHbe7"),
		Name:          "BTC Price Feed",
		MaxVariance:   1_000_000_000,
		MinResponses:  1,
		MinSampleSize: 1,
		MaxStaleness:  100,
		Value:         decimal.RequireFromString(value),
		StdDev:        decimal.Zero,
		NumSamples:    1,
		ResultSlot:    resultSlot,
		MinSlot:       resultSlot,
		MaxSlot:       resultSlot,
	}
}

// Bytes encodes the full account including the record tag.
func (b *Builder) Bytes() []byte {
	data := make([]byte, feed.AccountSize)
	copy(data, entry.TypePullFeed[:])
	body := data[entry.TagSize:]
	le := binary.LittleEndian

	copy(body[offAuthority:], b.Authority[:])
	copy(body[offQueue:], b.Queue[:])
	copy(body[offFeedHash:], b.FeedHash[:])
	le.PutUint64(body[offInitializedAt:], uint64(b.InitializedAt))
	le.PutUint64(body[offMaxVariance:], b.MaxVariance)
	le.PutUint32(body[offMinResponses:], b.MinResponses)
	copy(body[offName:offName+32], b.Name)
	body[offMinSampleSize] = b.MinSampleSize
	le.PutUint64(body[offLastUpdate:], uint64(b.LastUpdateTimestamp))
	putI128(body[offResultValue:], b.Value)
	putI128(body[offResultStdDev:], b.StdDev)
	body[offNumSamples] = b.NumSamples
	le.PutUint64(body[offResultSlot:], b.ResultSlot)
	le.PutUint64(body[offMinSlot:], b.MinSlot)
	le.PutUint64(body[offMaxSlot:], b.MaxSlot)
	le.PutUint32(body[offMaxStaleness:], b.MaxStaleness)
	return data
}

// Account wraps the encoded bytes in an account reference.
func (b *Builder) Account(key solana.PublicKey) feed.Account {
	return feed.Account{
		Key:   key,
		Owner: OnDemandProgramID,
		Data:  b.Bytes(),
	}
}

// OnDemandProgramID is the Switchboard on-demand program on devnet.
var OnDemandProgramID = solana.MustPublicKeyFromBase58("Aio4gaXjXzJNVLtzwtNVmSqGKpANtXhybbkhtAC94ji2")

// FeedAddress is the BTC feed the relay was first pointed at.
var FeedAddress = solana.MustPublicKeyFromBase58("ALtJ2EE5AaLorWh8bxbzq1M5c32GifyVZHh3gakGhGYh")

// putI128 writes v scaled by 1e18 as a two's complement little-endian i128.
func putI128(dst []byte, v decimal.Decimal) {
	mantissa := v.Shift(feed.ValueScale).BigInt()
	mask := new(big.Int).SetUint64(^uint64(0))
	lo := new(big.Int).And(mantissa, mask).Uint64()
	hi := new(big.Int).Rsh(mantissa, 64).Int64()
	binary.LittleEndian.PutUint64(dst[0:8], lo)
	binary.LittleEndian.PutUint64(dst[8:16], uint64(hi))
}
