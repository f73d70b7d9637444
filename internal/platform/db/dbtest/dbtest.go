// Package dbtest opens throwaway migrated SQLite stores for repository tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/officedesk/officedesk/internal/config"
	"github.com/officedesk/officedesk/internal/platform/db"
)

// Open creates a fresh SQLite file under t.TempDir, applies every migration
// and closes the store when the test ends.
func Open(t *testing.T) *db.Store {
	t.Helper()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")
	sqlDB, err := db.OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	store := &db.Store{DB: sqlDB, Dialect: config.DriverSQLite, Path: path}
	t.Cleanup(func() { store.Close() })

	if _, err := db.NewStoreMigrator(store).Up(ctx); err != nil {
		t.Fatalf("migrate store: %v", err)
	}
	return store
}
