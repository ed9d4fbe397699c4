package level

import (
	"errors"
	"testing"

	"github.com/Indeximal/magnate/game/engine"
)

func TestDecodeLevel(t *testing.T) {
	data := []byte(`{
		"name": "test",
		"triangles": [
			{"position": {"vertex": {"x": 0, "y": 0}, "orient": "up"}, "clump": 0},
			{"position": {"vertex": {"x": 0, "y": 0}, "orient": "down"}, "clump": 0}
		],
		"immovables": [{"vertex": {"x": 2, "y": 1}, "orient": "down"}],
		"runes": [{"position": {"vertex": {"x": 1, "y": 0}, "orient": "up"}}]
	}`)

	lv, err := DecodeLevel(data)
	if err != nil {
		t.Fatalf("DecodeLevel failed: %v", err)
	}
	if lv.Name != "test" {
		t.Errorf("name = %q, want %q", lv.Name, "test")
	}
	if len(lv.Triangles) != 2 || len(lv.Immovables) != 1 || len(lv.Runes) != 1 {
		t.Errorf("decoded counts = %d/%d/%d", len(lv.Triangles), len(lv.Immovables), len(lv.Runes))
	}
	if lv.Triangles[1].Position.Orient != engine.PointingDown {
		t.Errorf("orientation = %q", lv.Triangles[1].Position.Orient)
	}
}

func TestDecodeLevelMalformed(t *testing.T) {
	if _, err := DecodeLevel([]byte(`{"name": "broken", triangles}`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestDecodeLevelUnknownField(t *testing.T) {
	data := []byte(`{"name": "typo", "triangels": [], "triangles": []}`)
	if _, err := DecodeLevel(data); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestDecodeLevelInvalidOrientation(t *testing.T) {
	data := []byte(`{
		"triangles": [{"position": {"vertex": {"x": 0, "y": 0}, "orient": "left"}, "clump": 0}]
	}`)
	if _, err := DecodeLevel(data); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("error = %v, want ErrInvalidLevel", err)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	lv := &engine.Level{
		Name:   "roundtrip",
		Bounds: &engine.Bounds{MinX: -2, MinY: -2, MaxX: 2, MaxY: 2},
		Triangles: []engine.TrianglePlacement{
			{Position: engine.TileCoord{Vertex: engine.VertexCoord{X: 1, Y: -1}, Orient: engine.PointingUp}, Clump: 3},
		},
		Runes: []engine.RunePlacement{
			{Position: engine.TileCoord{Vertex: engine.VertexCoord{X: 0, Y: 1}, Orient: engine.PointingDown}},
		},
	}

	data, err := EncodeLevel(lv)
	if err != nil {
		t.Fatalf("EncodeLevel failed: %v", err)
	}

	back, err := DecodeLevel(data)
	if err != nil {
		t.Fatalf("DecodeLevel failed: %v", err)
	}
	if back.Name != lv.Name || back.Bounds == nil || *back.Bounds != *lv.Bounds {
		t.Errorf("header lost in round trip: %+v", back)
	}
	if len(back.Triangles) != 1 || back.Triangles[0] != lv.Triangles[0] {
		t.Errorf("triangles lost in round trip: %+v", back.Triangles)
	}
}

func TestEncodeLevelRejectsInvalid(t *testing.T) {
	lv := &engine.Level{
		Triangles: []engine.TrianglePlacement{{Position: engine.TileCoord{Orient: "diagonal"}}},
	}
	if _, err := EncodeLevel(lv); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("error = %v, want ErrInvalidLevel", err)
	}
}

func TestBuiltIn(t *testing.T) {
	empty := BuiltIn(0)
	if empty == nil {
		t.Fatal("slot 0 has no built-in")
	}
	if len(empty.Triangles) != 0 || len(empty.Runes) != 0 {
		t.Errorf("slot 0 is not the empty board: %+v", empty)
	}

	first := BuiltIn(DefaultPlaySlot)
	if first == nil {
		t.Fatal("default play slot has no built-in")
	}
	if len(first.Triangles) == 0 || len(first.Runes) == 0 {
		t.Errorf("default play slot is degenerate: %+v", first)
	}

	if BuiltIn(-1) != nil || BuiltIn(NumSlots) != nil {
		t.Error("out-of-range slots returned a built-in")
	}
}

func TestBuiltInLevelsBuildBoards(t *testing.T) {
	for slot := 0; slot < NumSlots; slot++ {
		lv := BuiltIn(slot)
		if lv == nil {
			continue
		}
		if _, err := engine.NewEngine(lv); err != nil {
			t.Errorf("built-in slot %d does not build: %v", slot, err)
		}
	}
}
