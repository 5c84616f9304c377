package repository

import (
	"context"
	"path/filepath"
	"testing"
)

func openSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := ConnectSQLite(filepath.Join(t.TempDir(), "metroplanner.db"))
	if err != nil {
		t.Fatalf("ConnectSQLite: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	return store
}

func TestSQLiteStore(t *testing.T) {
	exerciseStore(t, openSQLite(t), "City")
}

func TestSQLiteEnsureSchemaTwice(t *testing.T) {
	store := openSQLite(t)
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Errorf("second EnsureSchema: %v", err)
	}
}

func TestSQLiteEmptyStore(t *testing.T) {
	store := openSQLite(t)
	ctx := context.Background()

	names, err := store.ListNetworks(ctx)
	if err != nil || len(names) != 0 {
		t.Errorf("ListNetworks = %v, %v; want empty", names, err)
	}
	plans, err := store.RecentPlans(ctx, 10)
	if err != nil || len(plans) != 0 {
		t.Errorf("RecentPlans = %v, %v; want empty", plans, err)
	}
}
