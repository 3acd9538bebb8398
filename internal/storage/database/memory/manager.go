package memory

import (
	"fmt"
	"sync"

	"github.com/LeJamon/goPriceRelay/internal/storage/database"
)

// Manager hands out named in-memory databases.
type Manager struct {
	mu  sync.Mutex
	dbs map[string]*DB
}

var _ database.Manager = (*Manager)(nil)

func NewManager() *Manager {
	return &Manager{dbs: make(map[string]*DB)}
}

func (m *Manager) OpenDB(name string) (database.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if db, exists := m.dbs[name]; exists {
		return db, nil
	}
	db := NewDB()
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
