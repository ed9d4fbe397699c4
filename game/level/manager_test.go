package level

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Indeximal/magnate/game/engine"
)

func testLevel(name string) *engine.Level {
	return &engine.Level{
		Name: name,
		Triangles: []engine.TrianglePlacement{
			{Position: engine.TileCoord{Vertex: engine.VertexCoord{X: 0, Y: 0}, Orient: engine.PointingUp}, Clump: 0},
		},
		Runes: []engine.RunePlacement{
			{Position: engine.TileCoord{Vertex: engine.VertexCoord{X: 2, Y: 0}, Orient: engine.PointingUp}},
		},
	}
}

func TestNewManagerCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "levels")

	if _, err := NewManager(dir); err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("level directory was not created: %v", err)
	}
}

func TestManager_LoadBuiltIn(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	lv, err := manager.Load(DefaultPlaySlot)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if lv != BuiltIn(DefaultPlaySlot) {
		t.Error("expected the built-in level for the default play slot")
	}
}

func TestManager_LoadEmptySlot(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if _, err := manager.Load(9); !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("Load(9) error = %v, want ErrLevelNotFound", err)
	}
}

func TestManager_LoadInvalidSlot(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	for _, slot := range []int{-1, NumSlots, 42} {
		if _, err := manager.Load(slot); !errors.Is(err, ErrInvalidSlot) {
			t.Errorf("Load(%d) error = %v, want ErrInvalidSlot", slot, err)
		}
	}
}

func TestManager_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if err := manager.Save(9, testLevel("saved")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "slot9.json")); err != nil {
		t.Errorf("slot file was not written: %v", err)
	}

	lv, err := manager.Load(9)
	if err != nil {
		t.Fatalf("Load after Save failed: %v", err)
	}
	if lv.Name != "saved" {
		t.Errorf("loaded name = %q, want %q", lv.Name, "saved")
	}

	// A second manager over the same directory sees the file.
	fresh, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	lv2, err := fresh.Load(9)
	if err != nil {
		t.Fatalf("Load from disk failed: %v", err)
	}
	if lv2.Name != "saved" {
		t.Errorf("reloaded name = %q, want %q", lv2.Name, "saved")
	}
}

func TestManager_SaveInvalidLevel(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	bad := &engine.Level{
		Triangles: []engine.TrianglePlacement{{Position: engine.TileCoord{Orient: "flat"}}},
	}
	if err := manager.Save(9, bad); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("Save error = %v, want ErrInvalidLevel", err)
	}
}

func TestManager_BuiltInShadowsSave(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if err := manager.Save(DefaultPlaySlot, testLevel("usurper")); err != nil {
		t.Fatalf("Save to shadowed slot failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "slot1.json")); err != nil {
		t.Errorf("shadowed save did not write a file: %v", err)
	}

	// The built-in keeps winning on load.
	lv, err := manager.Load(DefaultPlaySlot)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if lv.Name == "usurper" {
		t.Error("saved level shadowed the built-in")
	}
}

func TestManager_List(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if err := manager.Save(9, testLevel("mine")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	infos, err := manager.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	bySlot := make(map[int]Info)
	for i, info := range infos {
		if i > 0 && infos[i-1].Slot >= info.Slot {
			t.Error("listing is not in slot order")
		}
		bySlot[info.Slot] = info
	}

	zero, ok := bySlot[0]
	if !ok || !zero.BuiltIn || zero.Triangles != 0 {
		t.Errorf("slot 0 listing = %+v, want empty built-in", zero)
	}
	one, ok := bySlot[DefaultPlaySlot]
	if !ok || !one.BuiltIn || one.Triangles == 0 {
		t.Errorf("slot 1 listing = %+v, want built-in with pieces", one)
	}
	nine, ok := bySlot[9]
	if !ok || nine.BuiltIn || !nine.Saved || nine.Name != "mine" {
		t.Errorf("slot 9 listing = %+v, want saved level", nine)
	}
	if _, ok := bySlot[8]; ok {
		t.Error("vacant slot 8 appeared in the listing")
	}
}

func TestManager_Caching(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if err := manager.Save(9, testLevel("cached")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	first, err := manager.Load(9)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	second, err := manager.Load(9)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if first != second {
		t.Error("expected the cached level on the second load")
	}
}

func TestManager_RefreshCache(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if err := manager.Save(9, testLevel("before")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := manager.Load(9); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Overwrite the file behind the manager's back.
	data, err := EncodeLevel(testLevel("after"))
	if err != nil {
		t.Fatalf("EncodeLevel failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "slot9.json"), data, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	manager.RefreshCache()

	lv, err := manager.Load(9)
	if err != nil {
		t.Fatalf("Load after refresh failed: %v", err)
	}
	if lv.Name != "after" {
		t.Errorf("loaded name = %q, want %q", lv.Name, "after")
	}
}
