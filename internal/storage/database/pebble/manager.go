package pebble

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/LeJamon/goPriceRelay/internal/storage/database"
	"github.com/cockroachdb/pebble"
)

// Manager opens named databases as <path>/<name>.db directories.
type Manager struct {
	dbs  map[string]*DB
	path string
	mu   sync.Mutex
}

var _ database.Manager = (*Manager)(nil)

func NewManager(path string) *Manager {
	return &Manager{
		dbs:  make(map[string]*DB),
		path: path,
	}
}

func (m *Manager) OpenDB(name string) (database.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if db, exists := m.dbs[name]; exists {
		return db, nil
	}

	if err := os.MkdirAll(m.path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory %s: %w", m.path, err)
	}

	handle, err := pebble.Open(filepath.Join(m.path, name+".db"), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", name, err)
	}

	db := &DB{db: handle}
	m.dbs[name] = db
	return db, nil
}

// Close closes every database, reporting the last failure.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error
	for name, db := range m.dbs {
		if err := db.Close(); err != nil {
			lastErr = fmt.Errorf("failed to close database %s: %w", name, err)
		}
		delete(m.dbs, name)
	}
	return lastErr
}
