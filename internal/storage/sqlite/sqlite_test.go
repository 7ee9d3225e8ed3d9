package sqlite

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/avasquez/tally/internal/storage"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestLoad_UninitializedCollection(t *testing.T) {
	store := setupTestStore(t)

	records, err := store.Load(context.Background(), storage.CollectionGroups)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty collection, got %d records", len(records))
	}
}

func TestSaveAndLoad_PreservesOrder(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	records := []json.RawMessage{
		json.RawMessage(`{"id":"first"}`),
		json.RawMessage(`{"id":"second"}`),
		json.RawMessage(`{"id":"third"}`),
	}

	if err := store.Save(ctx, storage.CollectionExpenses, records); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx, storage.CollectionExpenses)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(loaded))
	}
	for i := range records {
		if string(loaded[i]) != string(records[i]) {
			t.Errorf("record %d: expected %s, got %s", i, records[i], loaded[i])
		}
	}
}

func TestSave_ReplacesCollection(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	first := []json.RawMessage{
		json.RawMessage(`{"id":"a"}`),
		json.RawMessage(`{"id":"b"}`),
	}
	if err := store.Save(ctx, storage.CollectionGroups, first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := []json.RawMessage{json.RawMessage(`{"id":"c"}`)}
	if err := store.Save(ctx, storage.CollectionGroups, second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx, storage.CollectionGroups)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 1 || string(loaded[0]) != `{"id":"c"}` {
		t.Errorf("expected full replace with one record, got %v", loaded)
	}
}

func TestCollections_AreIndependent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, storage.CollectionGroups, []json.RawMessage{
		json.RawMessage(`{"id":"g"}`),
	}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, storage.CollectionExpenses, []json.RawMessage{
		json.RawMessage(`{"id":"e1"}`),
		json.RawMessage(`{"id":"e2"}`),
	}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	groups, err := store.Load(ctx, storage.CollectionGroups)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	expenses, err := store.Load(ctx, storage.CollectionExpenses)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(groups) != 1 || len(expenses) != 2 {
		t.Errorf("expected 1 group and 2 expenses, got %d and %d", len(groups), len(expenses))
	}
}

func TestNew_CreatesParentDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file was not created: %v", err)
	}
}
