package cache

import (
	"path/filepath"
	"testing"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	if _, ok := store.Get("missing"); ok {
		t.Error("expected miss for absent key")
	}

	if err := store.Set("k", []byte("v1")); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	v, ok := store.Get("k")
	if !ok || string(v) != "v1" {
		t.Errorf("expected v1, got %q (ok=%v)", v, ok)
	}

	// Overwrite replaces the prior value.
	if err := store.Set("k", []byte("v2")); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	v, _ = store.Get("k")
	if string(v) != "v2" {
		t.Errorf("expected v2 after overwrite, got %q", v)
	}

	if err := store.Delete("k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := store.Get("k"); ok {
		t.Error("expected miss after delete")
	}

	// Deleting an absent key is fine.
	if err := store.Delete("k"); err != nil {
		t.Errorf("delete of absent key errored: %v", err)
	}
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := store.Set("snapshot", []byte("persisted")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	v, ok := reopened.Get("snapshot")
	if !ok || string(v) != "persisted" {
		t.Errorf("expected value to survive reopen, got %q (ok=%v)", v, ok)
	}
}
