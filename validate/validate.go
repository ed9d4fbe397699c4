// Command validate provides a small CLI that validates level JSON files in a
// directory (default ./levels). It checks:
//   - JSON structure and allowed orientations (up, down)
//   - Bounds sanity and that every placement lies inside the bounds
//   - That runes do not sit on immovable cells
//   - That there is enough ruby material to cover every rune
//   - That levels with runes have at least one movable piece
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Indeximal/magnate/game/engine"
	"github.com/Indeximal/magnate/game/level"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateLevel loads and validates a single level JSON file. It performs
// structural checks, bounds validation and coverage feasibility analysis.
func validateLevel(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	lv, err := level.DecodeLevel(data)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid level: %v", err))
		return result
	}

	bounds := engine.DefaultBounds()
	if lv.Bounds != nil {
		bounds = *lv.Bounds
		if bounds.MinX > bounds.MaxX || bounds.MinY > bounds.MaxY {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Degenerate bounds: x %d..%d, y %d..%d",
				bounds.MinX, bounds.MaxX, bounds.MinY, bounds.MaxY))
		}
	}

	checkInBounds := func(what string, i int, t engine.TileCoord) {
		for _, corner := range t.Corners() {
			if !bounds.ContainsVertex(corner) {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("%s %d at %s(%d,%d) leaves the bounds",
					what, i, t.Orient, t.Vertex.X, t.Vertex.Y))
				return
			}
		}
	}

	immovable := make(map[engine.TileCoord]bool)
	for i, t := range lv.Immovables {
		checkInBounds("Immovable", i, t)
		immovable[t] = true
	}
	for i, tp := range lv.Triangles {
		checkInBounds("Triangle", i, tp.Position)
	}
	for i, rp := range lv.Runes {
		checkInBounds("Rune", i, rp.Position)
		if immovable[rp.Position] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Rune %d at %s(%d,%d) sits on an immovable cell and can never be covered",
				i, rp.Position.Orient, rp.Position.Vertex.X, rp.Position.Vertex.Y))
		}
	}

	// Coverage feasibility: every rune needs a ruby tile of its own.
	if len(lv.Triangles) < len(lv.Runes) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Not enough ruby material: %d triangles for %d runes",
			len(lv.Triangles), len(lv.Runes)))
	}
	if len(lv.Runes) > 0 && len(lv.Triangles) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Level has runes but no movable pieces")
	}

	clumps := make(map[int]bool)
	for _, tp := range lv.Triangles {
		clumps[tp.Clump] = true
	}

	// Add informational data
	if result.Valid {
		name := lv.Name
		if name == "" {
			name = "(unnamed)"
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Bounds: x %d..%d, y %d..%d",
			bounds.MinX, bounds.MaxX, bounds.MinY, bounds.MaxY))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Triangles: %d in %d piece(s)", len(lv.Triangles), len(clumps)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Runes: %d", len(lv.Runes)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Immovables: %d", len(lv.Immovables)))
	}

	return result
}

// main scans a directory for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	levelDir := "./levels"
	if len(os.Args) > 1 {
		levelDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(levelDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding level files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No level files found in %s\n", levelDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateLevel(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All levels are valid!")
	} else {
		fmt.Println("❌ Some levels have errors")
		os.Exit(1)
	}
}
