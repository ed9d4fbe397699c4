package engine

import "fmt"

// TrianglePlacement is one ruby triangle in a level document. Triangles
// sharing a clump label are restored as a single fused piece, which is how
// merged pieces survive a save/load cycle. Labels are arbitrary; fresh piece
// ids are assigned at load time.
type TrianglePlacement struct {
	Position TileCoord `json:"position"`
	Clump    int       `json:"clump"`
}

// RunePlacement is one rune tile in a level document.
type RunePlacement struct {
	Position TileCoord `json:"position"`
}

// Level is the hand-editable level document. It records each tile's kind,
// anchor cell and orientation, which is sufficient to reconstruct the board
// exactly.
type Level struct {
	Name       string              `json:"name,omitempty"`
	Bounds     *Bounds             `json:"bounds,omitempty"`
	Triangles  []TrianglePlacement `json:"triangles"`
	Immovables []TileCoord         `json:"immovables"`
	Runes      []RunePlacement     `json:"runes"`
}

// ValidateLevel checks that every coordinate in the document is well-formed.
// Overlapping placements are intentionally not an error: the editor permits
// them and the board tolerates them.
func ValidateLevel(lv *Level) error {
	if lv == nil {
		return fmt.Errorf("%w: level is nil", ErrInvalidArgument)
	}
	for i, tp := range lv.Triangles {
		if !tp.Position.Orient.Valid() {
			return fmt.Errorf("%w: triangle %d has orientation %q", ErrInvalidArgument, i, tp.Position.Orient)
		}
	}
	for i, t := range lv.Immovables {
		if !t.Orient.Valid() {
			return fmt.Errorf("%w: immovable %d has orientation %q", ErrInvalidArgument, i, t.Orient)
		}
	}
	for i, rp := range lv.Runes {
		if !rp.Position.Orient.Valid() {
			return fmt.Errorf("%w: rune %d has orientation %q", ErrInvalidArgument, i, rp.Position.Orient)
		}
	}
	return nil
}

// buildBoard reconstructs a board from a level document. Triangles are
// grouped by clump label in document order, each group spawning one piece.
func buildBoard(lv *Level) (*Board, error) {
	if err := ValidateLevel(lv); err != nil {
		return nil, err
	}

	bounds := DefaultBounds()
	if lv.Bounds != nil {
		bounds = *lv.Bounds
	}
	board := NewBoard(bounds)

	var clumpOrder []int
	clumps := make(map[int][]TileCoord)
	for _, tp := range lv.Triangles {
		if _, seen := clumps[tp.Clump]; !seen {
			clumpOrder = append(clumpOrder, tp.Clump)
		}
		clumps[tp.Clump] = append(clumps[tp.Clump], tp.Position)
	}
	for _, label := range clumpOrder {
		board.SpawnPiece(clumps[label]...)
	}

	for _, t := range lv.Immovables {
		board.PlaceImmovable(t)
	}
	for _, rp := range lv.Runes {
		board.PlaceRune(rp.Position)
	}

	return board, nil
}
