package rent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinimumBalance(t *testing.T) {
	tt := []struct {
		description string
		rent        Rent
		dataLen     int
		expected    Lamports
	}{
		{
			description: "snapshot record with network defaults",
			rent:        Default(),
			dataLen:     24,
			expected:    1_057_920,
		},
		{
			description: "empty account still pays the overhead",
			rent:        Default(),
			dataLen:     0,
			expected:    890_880,
		},
		{
			description: "custom threshold",
			rent:        Rent{LamportsPerByteYear: 10, ExemptionThreshold: 1.5},
			dataLen:     2,
			expected:    1950,
		},
	}

	for _, tc := range tt {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.rent.MinimumBalance(tc.dataLen))
		})
	}
}

func TestRent_Validate(t *testing.T) {
	assert.NoError(t, Default().Validate())
	assert.Error(t, Rent{LamportsPerByteYear: 0, ExemptionThreshold: 2}.Validate())
	assert.Error(t, Rent{LamportsPerByteYear: 1, ExemptionThreshold: 0}.Validate())
}

func TestLamports_SOL(t *testing.T) {
	assert.Equal(t, "0.00105792", Lamports(1_057_920).SOL().String())
	assert.Equal(t, "1", LamportsPerSOL.SOL().String())
}
