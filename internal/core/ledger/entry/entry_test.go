package entry

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewType(t *testing.T) {
	sum := sha256.Sum256([]byte("account:PriceData"))
	assert.Equal(t, sum[:8], TypeSnapshot[:])
	assert.NotEqual(t, TypeSnapshot, TypePullFeed)
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "PriceData", TypeSnapshot.String())
	assert.Equal(t, "PullFeedAccountData", TypePullFeed.String())
	assert.Equal(t, "Unknown(0102030405060708)", Type{1, 2, 3, 4, 5, 6, 7, 8}.String())
}

func TestType_Matches(t *testing.T) {
	data := append(TypeSnapshot[:], 0xAA, 0xBB)

	assert.True(t, TypeSnapshot.Matches(data))
	assert.False(t, TypePullFeed.Matches(data))
	assert.False(t, TypeSnapshot.Matches(data[:7]), "truncated tag must not match")
	assert.False(t, TypeSnapshot.Matches(nil))
}
