package state

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/gagliardetto/solana-go"
)

// Action represents the type of modification to an account
type Action int

const (
	// ActionCache means the account was read but not modified
	ActionCache Action = iota
	// ActionInsert means a new account was created
	ActionInsert
	// ActionModify means an existing account was modified
	ActionModify
)

func (a Action) String() string {
	switch a {
	case ActionCache:
		return "cache"
	case ActionInsert:
		return "insert"
	case ActionModify:
		return "modify"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// TrackedEntry represents an account being tracked for changes
type TrackedEntry struct {
	Action   Action
	Original *Account // nil for inserts
	Current  *Account
}

// ApplyStateTable wraps a LedgerView and buffers every write. Nothing
// reaches the base view until Changes is committed, so an operation that
// fails part way leaves the ledger untouched.
type ApplyStateTable struct {
	base  LedgerView
	items map[solana.PublicKey]*TrackedEntry
}

// NewApplyStateTable creates a new ApplyStateTable wrapping the given base view
func NewApplyStateTable(base LedgerView) *ApplyStateTable {
	return &ApplyStateTable{
		base:  base,
		items: make(map[solana.PublicKey]*TrackedEntry),
	}
}

// Read reads an account, tracking it as cached
func (t *ApplyStateTable) Read(key solana.PublicKey) (*Account, error) {
	if entry, exists := t.items[key]; exists {
		return entry.Current.Clone(), nil
	}

	acct, err := t.base.Read(key)
	if err != nil {
		return nil, err
	}

	// Only track accounts that exist in the base
	if acct != nil {
		t.items[key] = &TrackedEntry{
			Action:   ActionCache,
			Original: acct,
			Current:  acct.Clone(),
		}
	}

	return acct.Clone(), nil
}

// Exists checks if an account exists
func (t *ApplyStateTable) Exists(key solana.PublicKey) (bool, error) {
	if _, exists := t.items[key]; exists {
		return true, nil
	}
	return t.base.Exists(key)
}

// Insert adds a new account
func (t *ApplyStateTable) Insert(key solana.PublicKey, acct *Account) error {
	exists, err := t.Exists(key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrAccountExists, key)
	}

	t.items[key] = &TrackedEntry{
		Action:  ActionInsert,
		Current: acct.Clone(),
	}
	return nil
}

// Update modifies an existing account
func (t *ApplyStateTable) Update(key solana.PublicKey, acct *Account) error {
	entry, exists := t.items[key]
	if !exists {
		// Pull it into the table so the original is recorded
		current, err := t.Read(key)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, key)
		}
		entry = t.items[key]
	}

	if entry.Action == ActionCache {
		entry.Action = ActionModify
	}
	// An insert stays an insert with new data
	entry.Current = acct.Clone()
	return nil
}

// Changes returns every insert and every modification that actually
// changed the account, ordered by key.
func (t *ApplyStateTable) Changes() []Change {
	changes := make([]Change, 0, len(t.items))
	for key, entry := range t.items {
		switch entry.Action {
		case ActionInsert:
		case ActionModify:
			if sameAccount(entry.Original, entry.Current) {
				continue
			}
		default:
			continue
		}
		changes = append(changes, Change{Key: key, Account: entry.Current.Clone(), Action: entry.Action})
	}

	sort.Slice(changes, func(i, j int) bool {
		return bytes.Compare(changes[i].Key[:], changes[j].Key[:]) < 0
	})
	return changes
}

func sameAccount(a, b *Account) bool {
	return a.Lamports == b.Lamports && a.Owner.Equals(b.Owner) && bytes.Equal(a.Data, b.Data)
}
