package state

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/LeJamon/goPriceRelay/internal/core/rent"
	"github.com/LeJamon/goPriceRelay/internal/storage/database"
	"github.com/gagliardetto/solana-go"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ugorji/go/codec"
)

const (
	accountPrefix = "acct/"

	// DefaultCacheSize is used when the configured cache size is not positive
	DefaultCacheSize = 1024
)

var msgpack = &codec.MsgpackHandle{}

// storedAccount is the on-disk form of an Account
type storedAccount struct {
	Lamports uint64 `codec:"l"`
	Owner    []byte `codec:"o"`
	Data     []byte `codec:"d"`
}

// Change is a single account write produced by an operation.
type Change struct {
	Key     solana.PublicKey
	Account *Account
	Action  Action
}

// Store persists ledger accounts in a database, with an LRU cache of
// recently read accounts in front of it.
type Store struct {
	db    database.DB
	cache *lru.Cache[solana.PublicKey, *Account]

	// fillMu orders cache fills on a miss against Commit, so a fill
	// never replaces a newer committed account with the one it read.
	fillMu sync.Mutex
}

// NewStore creates a store over db.
func NewStore(db database.DB, cacheSize int) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[solana.PublicKey, *Account](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, cache: cache}, nil
}

func accountKey(key solana.PublicKey) []byte {
	return append([]byte(accountPrefix), key[:]...)
}

// Get returns the account at key, or nil if there is none.
func (s *Store) Get(ctx context.Context, key solana.PublicKey) (*Account, error) {
	if acct, ok := s.cache.Get(key); ok {
		return acct.Clone(), nil
	}

	s.fillMu.Lock()
	defer s.fillMu.Unlock()
	if acct, ok := s.cache.Get(key); ok {
		return acct.Clone(), nil
	}

	raw, err := s.db.Read(ctx, accountKey(key))
	if err != nil {
		if errors.Is(err, database.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read account %s: %w", key, err)
	}

	acct, err := decodeAccount(raw)
	if err != nil {
		return nil, fmt.Errorf("decode account %s: %w", key, err)
	}
	s.cache.Add(key, acct)
	return acct.Clone(), nil
}

// Commit writes all changes in one atomic batch. The cache is only
// updated once the batch has landed.
func (s *Store) Commit(ctx context.Context, changes []Change) error {
	if len(changes) == 0 {
		return nil
	}

	entries := make([]database.Entry, 0, len(changes))
	for _, c := range changes {
		raw, err := encodeAccount(c.Account)
		if err != nil {
			return fmt.Errorf("encode account %s: %w", c.Key, err)
		}
		entries = append(entries, database.Entry{Key: accountKey(c.Key), Value: raw})
	}

	s.fillMu.Lock()
	defer s.fillMu.Unlock()
	if err := s.db.Batch(ctx, entries); err != nil {
		return fmt.Errorf("commit %d account changes: %w", len(changes), err)
	}

	for _, c := range changes {
		s.cache.Add(c.Key, c.Account.Clone())
	}
	return nil
}

// Accounts calls fn for every stored account in key order. It reads
// the database directly, leaving the cache as it was.
func (s *Store) Accounts(ctx context.Context, fn func(key solana.PublicKey, acct *Account) error) error {
	prefix := []byte(accountPrefix)
	return s.db.Scan(ctx, prefix, func(k, raw []byte) error {
		suffix := bytes.TrimPrefix(k, prefix)
		if len(suffix) != solana.PublicKeyLength {
			return fmt.Errorf("account key %x: want %d byte address", k, solana.PublicKeyLength)
		}
		key := solana.PublicKeyFromBytes(suffix)
		acct, err := decodeAccount(raw)
		if err != nil {
			return fmt.Errorf("decode account %s: %w", key, err)
		}
		return fn(key, acct)
	})
}

// View returns a LedgerView that reads through to the store and writes
// each change immediately.
func (s *Store) View(ctx context.Context) LedgerView {
	return &storeView{ctx: ctx, store: s}
}

type storeView struct {
	ctx   context.Context
	store *Store
}

func (v *storeView) Read(key solana.PublicKey) (*Account, error) {
	return v.store.Get(v.ctx, key)
}

func (v *storeView) Exists(key solana.PublicKey) (bool, error) {
	acct, err := v.store.Get(v.ctx, key)
	return acct != nil, err
}

func (v *storeView) Insert(key solana.PublicKey, acct *Account) error {
	exists, err := v.Exists(key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrAccountExists, key)
	}
	return v.store.Commit(v.ctx, []Change{{Key: key, Account: acct.Clone(), Action: ActionInsert}})
}

func (v *storeView) Update(key solana.PublicKey, acct *Account) error {
	exists, err := v.Exists(key)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, key)
	}
	return v.store.Commit(v.ctx, []Change{{Key: key, Account: acct.Clone(), Action: ActionModify}})
}

func encodeAccount(acct *Account) ([]byte, error) {
	stored := storedAccount{
		Lamports: uint64(acct.Lamports),
		Owner:    acct.Owner[:],
		Data:     acct.Data,
	}
	var out []byte
	if err := codec.NewEncoderBytes(&out, msgpack).Encode(&stored); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeAccount(raw []byte) (*Account, error) {
	var stored storedAccount
	if err := codec.NewDecoderBytes(raw, msgpack).Decode(&stored); err != nil {
		return nil, err
	}
	if len(stored.Owner) != solana.PublicKeyLength {
		return nil, fmt.Errorf("owner is %d bytes", len(stored.Owner))
	}
	return &Account{
		Lamports: rent.Lamports(stored.Lamports),
		Owner:    solana.PublicKeyFromBytes(stored.Owner),
		Data:     stored.Data,
	}, nil
}
