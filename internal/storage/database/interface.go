package database

import (
	"context"
)

// DB is the key/value surface the ledger store needs from a backend
type DB interface {
	Read(ctx context.Context, key []byte) ([]byte, error)
	Write(ctx context.Context, key []byte, value []byte) error

	// Batch writes every entry or none of them
	Batch(ctx context.Context, entries []Entry) error

	// Scan calls fn for each key beginning with prefix, in key order.
	// The slices passed to fn are owned by the caller. A non-nil error
	// from fn stops the scan and is returned as is.
	Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) error) error

	Close() error
}

// Manager handles the lifecycle of named databases
type Manager interface {
	// OpenDB opens or creates a database with the given name
	OpenDB(name string) (DB, error)

	// Close closes all databases
	Close() error
}

// Entry is a single key/value pair in a batch
type Entry struct {
	Key   []byte
	Value []byte
}

// PrefixEnd returns the smallest key greater than every key with the
// given prefix, or nil when no such key exists.
func PrefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
