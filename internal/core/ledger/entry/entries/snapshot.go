package entries

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/LeJamon/goPriceRelay/internal/core/ledger/entry"
	bin "github.com/gagliardetto/binary"
)

// SnapshotSize is the persisted size of a snapshot record:
// [8-byte tag][8-byte price][8-byte timestamp]
const SnapshotSize = entry.TagSize + 8 + 8

var (
	// ErrSnapshotLength is returned when the data cannot hold a snapshot
	ErrSnapshotLength = errors.New("snapshot record too short")

	// ErrSnapshotTag is returned when the data is tagged as another record type
	ErrSnapshotTag = errors.New("snapshot record tag mismatch")
)

// Snapshot is the last price the relay copied out of the feed, plus the
// clock reading taken when it did so.
type Snapshot struct {
	Price      float64 // Feed value converted to a 64-bit float
	LastUpdate int64   // Unix timestamp of the write that stored Price
}

func (s *Snapshot) Type() entry.Type {
	return entry.TypeSnapshot
}

func (s *Snapshot) Validate() error {
	if math.IsNaN(s.Price) || math.IsInf(s.Price, 0) {
		return fmt.Errorf("price must be finite, got %v", s.Price)
	}
	return nil
}

// Encode serialises the record including its type tag.
func (s *Snapshot) Encode() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, SnapshotSize))
	buf.Write(entry.TypeSnapshot[:])
	if err := bin.NewBorshEncoder(buf).Encode(s); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// EmptySnapshot returns the bytes of a freshly allocated record: the tag
// followed by zeroed fields.
func EmptySnapshot() []byte {
	data := make([]byte, SnapshotSize)
	copy(data, entry.TypeSnapshot[:])
	return data
}

// DecodeSnapshot parses a tagged snapshot record. Bytes past SnapshotSize
// are ignored.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	if len(data) < SnapshotSize {
		return nil, fmt.Errorf("%w: %d bytes, need %d", ErrSnapshotLength, len(data), SnapshotSize)
	}
	if !entry.TypeSnapshot.Matches(data) {
		return nil, fmt.Errorf("%w: got %s", ErrSnapshotTag, entry.Type(data[:entry.TagSize]))
	}

	var s Snapshot
	if err := bin.NewBorshDecoder(data[entry.TagSize:SnapshotSize]).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}
