package rent

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Lamports is an amount of the native token in its smallest unit.
type Lamports uint64

const LamportsPerSOL Lamports = 1_000_000_000

// AccountStorageOverhead is the per-account metadata charged on top of
// the data length.
const AccountStorageOverhead = 128

// Defaults match the network's rent sysvar
const (
	DefaultLamportsPerByteYear = 3480
	DefaultExemptionThreshold  = 2.0
)

// Rent prices account storage. An account holding MinimumBalance of its
// size is exempt and never collected.
type Rent struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  float64
}

// Default returns the network's standard rent parameters.
func Default() Rent {
	return Rent{
		LamportsPerByteYear: DefaultLamportsPerByteYear,
		ExemptionThreshold:  DefaultExemptionThreshold,
	}
}

// MinimumBalance is the balance an account of dataLen bytes must hold to
// be rent exempt.
func (r Rent) MinimumBalance(dataLen int) Lamports {
	bytes := uint64(AccountStorageOverhead + dataLen)
	return Lamports(math.Floor(float64(bytes*r.LamportsPerByteYear) * r.ExemptionThreshold))
}

// Validate rejects parameters that would make storage free or negative.
func (r Rent) Validate() error {
	if r.LamportsPerByteYear == 0 {
		return fmt.Errorf("lamports_per_byte_year must be positive")
	}
	if r.ExemptionThreshold <= 0 || math.IsNaN(r.ExemptionThreshold) || math.IsInf(r.ExemptionThreshold, 0) {
		return fmt.Errorf("exemption_threshold must be a positive finite number, got %v", r.ExemptionThreshold)
	}
	return nil
}

func (l Lamports) SOL() decimal.Decimal {
	return decimal.NewFromInt(int64(l)).Shift(-9)
}

func (l Lamports) String() string {
	return fmt.Sprintf("%d", uint64(l))
}
