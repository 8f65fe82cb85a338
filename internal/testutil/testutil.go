// Package testutil provides shared test helpers for setting up stores.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/starford/wunjo/internal/storage"
)

// TestJSONStore creates a JSON store backed by a file in a temp directory
// and returns it with its path so tests can reopen the same file.
func TestJSONStore(t *testing.T) (*storage.JSONStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracker.json")
	s, err := storage.OpenJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	return s, path
}

// TestSQLiteStore creates a temporary SQLite-backed topic store.
func TestSQLiteStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracker.db")
	s, err := storage.OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}
