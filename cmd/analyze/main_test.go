package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Indeximal/magnate/game/engine"
)

func writeLevel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "level.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write level: %v", err)
	}
	return path
}

func TestHexDistance(t *testing.T) {
	tests := []struct {
		a, b     engine.VertexCoord
		expected int
	}{
		{engine.VertexCoord{X: 0, Y: 0}, engine.VertexCoord{X: 0, Y: 0}, 0},
		{engine.VertexCoord{X: 0, Y: 0}, engine.VertexCoord{X: 1, Y: 0}, 1},
		{engine.VertexCoord{X: 0, Y: 0}, engine.VertexCoord{X: 0, Y: 1}, 1},
		{engine.VertexCoord{X: 1, Y: -1}, engine.VertexCoord{X: 0, Y: 0}, 1},
		{engine.VertexCoord{X: 0, Y: 0}, engine.VertexCoord{X: 2, Y: 2}, 4},
		{engine.VertexCoord{X: -3, Y: 0}, engine.VertexCoord{X: 0, Y: 0}, 3},
	}

	for _, test := range tests {
		result := hexDistance(test.a, test.b)
		if result != test.expected {
			t.Errorf("hexDistance(%v, %v) = %d, expected %d", test.a, test.b, result, test.expected)
		}
		// Distance is symmetric
		if hexDistance(test.b, test.a) != result {
			t.Errorf("hexDistance(%v, %v) is not symmetric", test.a, test.b)
		}
	}
}

func TestAbs(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{5, 5},
		{-5, 5},
		{0, 0},
		{-10, 10},
	}

	for _, test := range tests {
		result := abs(test.input)
		if result != test.expected {
			t.Errorf("abs(%d) = %d, expected %d", test.input, result, test.expected)
		}
	}
}

func TestAnalyzeLevel_ValidFile(t *testing.T) {
	path := writeLevel(t, `{
		"name": "analysis test",
		"bounds": {"min_x": -4, "min_y": -4, "max_x": 4, "max_y": 4},
		"triangles": [
			{"position": {"vertex": {"x": 0, "y": 0}, "orient": "up"}, "clump": 0},
			{"position": {"vertex": {"x": 0, "y": 0}, "orient": "down"}, "clump": 0},
			{"position": {"vertex": {"x": 3, "y": 0}, "orient": "up"}, "clump": 1}
		],
		"immovables": [
			{"vertex": {"x": -2, "y": 2}, "orient": "up"}
		],
		"runes": [
			{"position": {"vertex": {"x": 1, "y": 0}, "orient": "up"}}
		]
	}`)

	analysis, err := analyzeLevel(path)
	if err != nil {
		t.Fatalf("analyzeLevel failed: %v", err)
	}

	if analysis.Name != "analysis test" {
		t.Errorf("Expected name 'analysis test', got '%s'", analysis.Name)
	}
	if analysis.Pieces != 2 {
		t.Errorf("Expected 2 pieces, got %d", analysis.Pieces)
	}
	if analysis.Triangles != 3 {
		t.Errorf("Expected 3 triangles, got %d", analysis.Triangles)
	}
	if analysis.LargestPiece != 2 {
		t.Errorf("Expected largest piece of 2 tiles, got %d", analysis.LargestPiece)
	}
	if analysis.Runes != 1 {
		t.Errorf("Expected 1 rune, got %d", analysis.Runes)
	}
	if analysis.Immovables != 1 {
		t.Errorf("Expected 1 immovable, got %d", analysis.Immovables)
	}
	// Nearest triangle to the rune at (1,0) is the clump at (0,0)
	if analysis.MaxRuneDistance != 1 {
		t.Errorf("Expected max rune distance 1, got %d", analysis.MaxRuneDistance)
	}
	if analysis.Bounds.MinX != -4 || analysis.Bounds.MaxX != 4 {
		t.Errorf("Expected bounds from file, got %+v", analysis.Bounds)
	}
}

func TestAnalyzeLevel_DefaultBounds(t *testing.T) {
	path := writeLevel(t, `{
		"triangles": [],
		"immovables": [],
		"runes": []
	}`)

	analysis, err := analyzeLevel(path)
	if err != nil {
		t.Fatalf("analyzeLevel failed: %v", err)
	}

	if analysis.Bounds != engine.DefaultBounds() {
		t.Errorf("Expected default bounds, got %+v", analysis.Bounds)
	}
	if analysis.Name != "(unnamed)" {
		t.Errorf("Expected '(unnamed)', got '%s'", analysis.Name)
	}
	if analysis.Difficulty != "sandbox" {
		t.Errorf("Expected 'sandbox' rating without runes, got '%s'", analysis.Difficulty)
	}
}

func TestAnalyzeLevel_MissingFile(t *testing.T) {
	_, err := analyzeLevel("/non/existent/level.json")
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestAnalyzeLevel_InvalidJSON(t *testing.T) {
	path := writeLevel(t, `{"name": "test", invalid json}`)

	_, err := analyzeLevel(path)
	if err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestRateDifficulty(t *testing.T) {
	tests := []struct {
		name     string
		analysis Analysis
		expected string
	}{
		{"no runes", Analysis{Runes: 0}, "sandbox"},
		{"single close rune", Analysis{Runes: 1, MaxRuneDistance: 1, Pieces: 1}, "easy"},
		{"several runes", Analysis{Runes: 3, MaxRuneDistance: 2, Pieces: 2, Immovables: 2}, "medium"},
		{"far runes and clutter", Analysis{Runes: 4, MaxRuneDistance: 5, Pieces: 3, Immovables: 6}, "hard"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := rateDifficulty(&test.analysis)
			if result != test.expected {
				t.Errorf("Expected difficulty '%s', got '%s'", test.expected, result)
			}
		})
	}
}

func TestPrintAnalysis_NoPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("printAnalysis panicked: %v", r)
		}
	}()

	printAnalysis(&Analysis{
		Name:            "test",
		Bounds:          engine.DefaultBounds(),
		Pieces:          1,
		Triangles:       1,
		LargestPiece:    1,
		Runes:           2,
		Immovables:      0,
		MaxRuneDistance: 8,
		Difficulty:      "hard",
	})
}
