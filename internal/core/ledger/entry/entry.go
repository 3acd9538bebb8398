package entry

import (
	"crypto/sha256"
	"encoding/hex"
)

// Type is the 8-byte record-type tag that prefixes every account record.
// Tags are the first eight bytes of sha256("account:<Name>").
type Type [8]byte

// Known record types
var (
	// TypeSnapshot tags the relay's own price snapshot record
	TypeSnapshot = NewType("PriceData")

	// TypePullFeed tags a Switchboard on-demand pull feed account
	TypePullFeed = NewType("PullFeedAccountData")
)

// TagSize is the length of a record-type tag
const TagSize = len(Type{})

// NewType derives the tag for the named record type.
func NewType(name string) Type {
	sum := sha256.Sum256([]byte("account:" + name))
	var t Type
	copy(t[:], sum[:TagSize])
	return t
}

// Matches reports whether data starts with this tag.
func (t Type) Matches(data []byte) bool {
	if len(data) < TagSize {
		return false
	}
	return Type(data[:TagSize]) == t
}

// String returns the string representation of the Type
func (t Type) String() string {
	switch t {
	case TypeSnapshot:
		return "PriceData"
	case TypePullFeed:
		return "PullFeedAccountData"
	default:
		return "Unknown(" + hex.EncodeToString(t[:]) + ")"
	}
}

// Entry defines the interface for all account records
type Entry interface {
	Type() Type
	Validate() error
}
