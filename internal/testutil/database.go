// Package testutil provides shared helpers for tests across the soko packages.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/soko/internal/storage"
)

// SetupTestDB creates a migrated in-memory local store that is closed when
// the test finishes.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SetupTestDBWithValues creates a test store seeded with values.
func SetupTestDBWithValues(t *testing.T, values map[string]string) *storage.SQLiteStorage {
	t.Helper()

	store := SetupTestDB(t)
	ctx := context.Background()
	for key, value := range values {
		if err := store.Set(ctx, key, value); err != nil {
			t.Fatalf("failed to seed %q: %v", key, err)
		}
	}
	return store
}
