// Package level provides level slot management for the Magnate rotation
// puzzle.
//
// The level package handles:
//   - Decoding and encoding level documents as JSON
//   - The ten numbered level slots (0 through 9)
//   - Built-in campaign levels embedded in the binary
//   - Saving edited levels to disk
//
// Slot Semantics:
//
// A slot holds either a built-in level or a saved file. Built-ins shadow
// saved files: loading a slot with a built-in always yields the built-in,
// even after a save wrote a file there. Slot 0 is the empty board, used to
// start the editor from scratch. Slot 1 is where a fresh session begins.
//
// Level Format:
//
// Level documents are hand-editable JSON listing each tile by vertex
// coordinate and orientation. Triangles carry a clump label; triangles
// sharing a label are restored as one fused piece.
//
// Usage:
//
//	manager, err := level.NewManager("levels")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	lv, err := manager.Load(1)
//	infos, err := manager.List()
package level
