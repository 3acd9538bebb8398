// Package pebble is the on-disk database backend.
package pebble

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/LeJamon/goPriceRelay/internal/storage/database"
	"github.com/cockroachdb/pebble"
)

// DB is one named pebble store. Writes are synced before they return.
type DB struct {
	// mu is held for reading by every operation and for writing by
	// Close, so no operation sees a handle mid-close.
	mu sync.RWMutex
	db *pebble.DB
}

var _ database.DB = (*DB)(nil)

func (p *DB) acquire(ctx context.Context) (*pebble.DB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	if p.db == nil {
		p.mu.RUnlock()
		return nil, database.ErrDBClosed
	}
	return p.db, nil
}

func (p *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	db, err := p.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer p.mu.RUnlock()

	val, closer, err := db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return bytes.Clone(val), nil
}

func (p *DB) Write(ctx context.Context, key, value []byte) error {
	return p.Batch(ctx, []database.Entry{{Key: key, Value: value}})
}

// Batch lands all entries in one synced pebble batch.
func (p *DB) Batch(ctx context.Context, entries []database.Entry) error {
	db, err := p.acquire(ctx)
	if err != nil {
		return err
	}
	defer p.mu.RUnlock()

	batch := db.NewBatch()
	defer batch.Close()
	for _, e := range entries {
		if err := batch.Set(e.Key, e.Value, nil); err != nil {
			return err
		}
	}
	return batch.Commit(pebble.Sync)
}

func (p *DB) Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) error) error {
	db, err := p.acquire(ctx)
	if err != nil {
		return err
	}
	defer p.mu.RUnlock()

	iter, err := db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: database.PrefixEnd(prefix),
	})
	if err != nil {
		return err
	}

	for valid := iter.First(); valid; valid = iter.Next() {
		if err = ctx.Err(); err != nil {
			break
		}
		// Iterator slices are reused on Next
		if err = fn(bytes.Clone(iter.Key()), bytes.Clone(iter.Value())); err != nil {
			break
		}
	}
	if err == nil {
		err = iter.Error()
	}
	if cerr := iter.Close(); err == nil {
		err = cerr
	}
	return err
}

// Close closes the pebble handle. Closing twice reports ErrDBClosed.
func (p *DB) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return database.ErrDBClosed
	}
	err := p.db.Close()
	p.db = nil
	return err
}
