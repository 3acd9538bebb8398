package pebble

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/LeJamon/goPriceRelay/internal/storage/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *Manager {
	t.Helper()
	manager := NewManager(t.TempDir())
	t.Cleanup(func() {
		if err := manager.Close(); err != nil {
			t.Logf("close manager: %v", err)
		}
	})
	return manager
}

func TestPebbleDB(t *testing.T) {
	manager := setupTestDB(t)
	ctx := context.Background()

	t.Run("Survives reopen", func(t *testing.T) {
		db, err := manager.OpenDB("test")
		require.NoError(t, err)

		key := []byte("lifecycle-test")
		value := []byte("test-value")
		require.NoError(t, db.Write(ctx, key, value))
		require.NoError(t, manager.Close())

		_, err = os.Stat(filepath.Join(manager.path, "test.db"))
		require.NoError(t, err, "database directory was not created")

		reopened := NewManager(manager.path)
		defer reopened.Close()
		db, err = reopened.OpenDB("test")
		require.NoError(t, err)
		got, err := db.Read(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, value, got)
	})

	t.Run("Missing key", func(t *testing.T) {
		db, err := manager.OpenDB("missing")
		require.NoError(t, err)
		_, err = db.Read(ctx, []byte("nope"))
		assert.ErrorIs(t, err, database.ErrKeyNotFound)
	})

	t.Run("Batch and Scan", func(t *testing.T) {
		db, err := manager.OpenDB("batch-test")
		require.NoError(t, err)

		entries := make([]database.Entry, 0, 10)
		for i := 0; i < 10; i++ {
			entries = append(entries, database.Entry{
				Key:   []byte(fmt.Sprintf("batch/%d", i)),
				Value: []byte(fmt.Sprintf("batch-value-%d", i)),
			})
		}
		require.NoError(t, db.Batch(ctx, entries))
		require.NoError(t, db.Write(ctx, []byte("batch0"), []byte("outside")))

		var keys []string
		err = db.Scan(ctx, []byte("batch/"), func(key, value []byte) error {
			keys = append(keys, string(key))
			assert.Equal(t, "batch-value-"+string(key[len("batch/"):]), string(value))
			return nil
		})
		require.NoError(t, err)
		assert.Len(t, keys, 10)
		assert.Equal(t, "batch/0", keys[0])
		assert.Equal(t, "batch/9", keys[9])
	})

	t.Run("Scan stops on callback error", func(t *testing.T) {
		db, err := manager.OpenDB("batch-test")
		require.NoError(t, err)

		stop := errors.New("stop")
		visited := 0
		err = db.Scan(ctx, []byte("batch/"), func(key, value []byte) error {
			visited++
			return stop
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 1, visited)
	})
}

func TestPebbleDB_Closed(t *testing.T) {
	manager := setupTestDB(t)
	ctx := context.Background()

	db, err := manager.OpenDB("closed")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = db.Read(ctx, []byte("k"))
	assert.ErrorIs(t, err, database.ErrDBClosed)
	assert.ErrorIs(t, db.Write(ctx, []byte("k"), []byte("v")), database.ErrDBClosed)
	assert.ErrorIs(t, db.Scan(ctx, nil, func(k, v []byte) error { return nil }), database.ErrDBClosed)

	err = manager.Close()
	assert.ErrorIs(t, err, database.ErrDBClosed)
	assert.Contains(t, err.Error(), "closed")
}
