package level

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_SaveLoadExists(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if store.Exists(9) {
		t.Error("Exists(9) = true for vacant slot")
	}
	if _, err := store.Load(9); !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("Load(9) error = %v, want ErrLevelNotFound", err)
	}

	if err := store.Save(9, testLevel("stored")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !store.Exists(9) {
		t.Error("Exists(9) = false after save")
	}
	if _, err := os.Stat(filepath.Join(dir, "slot9.json")); err != nil {
		t.Errorf("slot file was not written: %v", err)
	}

	lv, err := store.Load(9)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if lv.Name != "stored" {
		t.Errorf("loaded name = %q, want %q", lv.Name, "stored")
	}
}

func TestFileStore_LoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "slot9.json"), []byte("{nope"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := store.Load(9); err == nil {
		t.Error("expected decode error for corrupt slot file")
	}
}

func TestMemoryStore_SaveLoadExists(t *testing.T) {
	store := NewMemoryStore()

	if store.Exists(3) {
		t.Error("Exists(3) = true for vacant slot")
	}
	if _, err := store.Load(3); !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("Load(3) error = %v, want ErrLevelNotFound", err)
	}

	if err := store.Save(3, testLevel("in memory")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !store.Exists(3) {
		t.Error("Exists(3) = false after save")
	}

	lv, err := store.Load(3)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if lv.Name != "in memory" {
		t.Errorf("loaded name = %q, want %q", lv.Name, "in memory")
	}
}

func TestMemoryStore_RejectsInvalidLevel(t *testing.T) {
	store := NewMemoryStore()

	bad := testLevel("bad")
	bad.Triangles[0].Position.Orient = "flat"

	if err := store.Save(3, bad); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("Save error = %v, want ErrInvalidLevel", err)
	}
	if store.Exists(3) {
		t.Error("invalid level was stored")
	}
}

func TestManagerWithMemoryStore(t *testing.T) {
	manager := NewManagerWithStore(NewMemoryStore())

	if err := manager.Save(9, testLevel("volatile")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	lv, err := manager.Load(9)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if lv.Name != "volatile" {
		t.Errorf("loaded name = %q, want %q", lv.Name, "volatile")
	}

	// Built-ins still shadow memory-backed saves.
	if err := manager.Save(DefaultPlaySlot, testLevel("usurper")); err != nil {
		t.Fatalf("Save to shadowed slot failed: %v", err)
	}
	shadowed, err := manager.Load(DefaultPlaySlot)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if shadowed.Name == "usurper" {
		t.Error("memory save shadowed the built-in")
	}
}
