package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/rankr/internal/engine"
	"github.com/roach88/rankr/internal/ir"
)

// createTestStore creates a new store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecord creates a session record with minimal required fields.
func createTestRecord(id, name string, items ...ir.Item) SessionRecord {
	return SessionRecord{
		ID:         id,
		Name:       name,
		Seed:       42,
		Items:      items,
		MaxHistory: 50,
	}
}

// initialSnapshot returns the snapshot of a freshly initialized session.
func initialSnapshot(items ...ir.Item) ir.Snapshot {
	return ir.Snapshot{State: engine.InitSort(items)}
}
