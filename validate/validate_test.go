package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLevel(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "level_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write level: %v", err)
	}
	tmpfile.Close()
	return tmpfile.Name()
}

func hasError(result ValidationResult, substr string) bool {
	for _, err := range result.Errors {
		if strings.Contains(err, substr) {
			return true
		}
	}
	return false
}

func TestValidateLevel_ValidLevel(t *testing.T) {
	validLevel := `{
		"name": "test level",
		"bounds": {"min_x": 0, "min_y": 0, "max_x": 4, "max_y": 4},
		"triangles": [
			{"position": {"vertex": {"x": 0, "y": 0}, "orient": "up"}, "clump": 0},
			{"position": {"vertex": {"x": 2, "y": 2}, "orient": "down"}, "clump": 1}
		],
		"immovables": [
			{"vertex": {"x": 3, "y": 0}, "orient": "up"}
		],
		"runes": [
			{"position": {"vertex": {"x": 1, "y": 0}, "orient": "up"}}
		]
	}`

	path := writeLevel(t, validLevel)

	result := validateLevel(path)
	if !result.Valid {
		t.Errorf("Expected valid level, but got errors: %v", result.Errors)
	}

	if result.File != filepath.Base(path) {
		t.Errorf("Expected file name %s, got %s", filepath.Base(path), result.File)
	}

	if !hasError(result, "Triangles: 2 in 2 piece(s)") {
		t.Errorf("Expected piece summary, got: %v", result.Errors)
	}
}

func TestValidateLevel_InvalidJSON(t *testing.T) {
	path := writeLevel(t, `{"name": "test", invalid json}`)

	result := validateLevel(path)
	if result.Valid {
		t.Error("Expected invalid level due to bad JSON")
	}
	if !hasError(result, "Invalid level") {
		t.Errorf("Expected 'Invalid level' error, got: %v", result.Errors)
	}
}

func TestValidateLevel_MissingFile(t *testing.T) {
	result := validateLevel("/non/existent/level.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
	if !hasError(result, "Failed to read file") {
		t.Errorf("Expected 'Failed to read file' error, got: %v", result.Errors)
	}
}

func TestValidateLevel_BadOrientation(t *testing.T) {
	path := writeLevel(t, `{
		"triangles": [
			{"position": {"vertex": {"x": 0, "y": 0}, "orient": "sideways"}, "clump": 0}
		],
		"immovables": [],
		"runes": []
	}`)

	result := validateLevel(path)
	if result.Valid {
		t.Error("Expected invalid level due to bad orientation")
	}
	if !hasError(result, "Invalid level") {
		t.Errorf("Expected 'Invalid level' error, got: %v", result.Errors)
	}
}

func TestValidateLevel_OutOfBounds(t *testing.T) {
	// down(0,0) has a corner at (1,-1), below the bounds.
	path := writeLevel(t, `{
		"bounds": {"min_x": 0, "min_y": 0, "max_x": 4, "max_y": 4},
		"triangles": [
			{"position": {"vertex": {"x": 0, "y": 0}, "orient": "down"}, "clump": 0}
		],
		"immovables": [],
		"runes": []
	}`)

	result := validateLevel(path)
	if result.Valid {
		t.Error("Expected invalid level due to out-of-bounds triangle")
	}
	if !hasError(result, "leaves the bounds") {
		t.Errorf("Expected 'leaves the bounds' error, got: %v", result.Errors)
	}
}

func TestValidateLevel_DegenerateBounds(t *testing.T) {
	path := writeLevel(t, `{
		"bounds": {"min_x": 5, "min_y": 0, "max_x": 0, "max_y": 4},
		"triangles": [],
		"immovables": [],
		"runes": []
	}`)

	result := validateLevel(path)
	if result.Valid {
		t.Error("Expected invalid level due to degenerate bounds")
	}
	if !hasError(result, "Degenerate bounds") {
		t.Errorf("Expected 'Degenerate bounds' error, got: %v", result.Errors)
	}
}

func TestValidateLevel_RuneOnImmovable(t *testing.T) {
	path := writeLevel(t, `{
		"triangles": [
			{"position": {"vertex": {"x": 0, "y": 0}, "orient": "up"}, "clump": 0}
		],
		"immovables": [
			{"vertex": {"x": 2, "y": 2}, "orient": "up"}
		],
		"runes": [
			{"position": {"vertex": {"x": 2, "y": 2}, "orient": "up"}}
		]
	}`)

	result := validateLevel(path)
	if result.Valid {
		t.Error("Expected invalid level due to rune on immovable cell")
	}
	if !hasError(result, "can never be covered") {
		t.Errorf("Expected covered-rune error, got: %v", result.Errors)
	}
}

func TestValidateLevel_NotEnoughMaterial(t *testing.T) {
	path := writeLevel(t, `{
		"triangles": [
			{"position": {"vertex": {"x": 0, "y": 0}, "orient": "up"}, "clump": 0}
		],
		"immovables": [],
		"runes": [
			{"position": {"vertex": {"x": 1, "y": 0}, "orient": "up"}},
			{"position": {"vertex": {"x": 2, "y": 0}, "orient": "up"}}
		]
	}`)

	result := validateLevel(path)
	if result.Valid {
		t.Error("Expected invalid level due to insufficient ruby material")
	}
	if !hasError(result, "Not enough ruby material") {
		t.Errorf("Expected material error, got: %v", result.Errors)
	}
}

func TestValidateLevel_RunesWithoutPieces(t *testing.T) {
	path := writeLevel(t, `{
		"triangles": [],
		"immovables": [],
		"runes": [
			{"position": {"vertex": {"x": 1, "y": 0}, "orient": "up"}}
		]
	}`)

	result := validateLevel(path)
	if result.Valid {
		t.Error("Expected invalid level: runes but no pieces")
	}
	if !hasError(result, "no movable pieces") {
		t.Errorf("Expected 'no movable pieces' error, got: %v", result.Errors)
	}
}
