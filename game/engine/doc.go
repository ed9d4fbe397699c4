// Package engine provides the core puzzle logic for the Magnate rotation
// puzzle.
//
// The engine package implements the game mechanics including:
//   - The triangular lattice: coordinates, neighbors, vertex rotation
//   - Piece footprints and speculative rotation geometry
//   - Collision classification and the irreversible fusion of ruby pieces
//   - Win evaluation over rune cells
//   - Level documents and board reconstruction
//
// Core Types:
//
// The Engine interface defines the main contract for puzzle operations,
// implemented by GameEngine. Board owns tile occupancy and the piece arena,
// while Level is the JSON document a board is built from and exported to.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(lv)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Rotate a piece about one of its corners
//	outcome, err := gameEngine.Rotate(1, engine.VertexCoord{X: 1, Y: 0}, engine.Clockwise)
//	solved := gameEngine.IsSolved()
//
// Game Rules:
//
// Ruby triangles rotate in sixth turns about their corners. A rotation into
// an immovable tile or out of bounds is rejected. Pieces that touch after a
// rotation fuse permanently into one rigid body; there is no undo and no
// split. The puzzle is solved when every rune cell is covered by a ruby.
package engine
