package engine

import "fmt"

// Engine provides the main interface for puzzle operations
type Engine interface {
	// Board state
	GetState() *BoardState
	IsSolved() bool
	PieceAt(tile TileCoord) (PieceID, bool)

	// Gameplay operations
	Rotate(piece PieceID, pivot VertexCoord, dir RotationDirection) (*RotateOutcome, error)

	// Editor operations
	GetMode() Mode
	SetMode(mode Mode) error
	Place(tile TileCoord, kind TileKind) (PieceID, error)

	// Level round-trip
	ExportLevel() *Level
	StartLevel() *Level
	Reset() error
}

// GameEngine implements the Engine interface. It is owned by a single logic
// goroutine; callers needing cross-goroutine reads take BoardState snapshots
// between commands.
type GameEngine struct {
	board *Board
	level *Level // document the engine was built from, kept for Reset
	mode  Mode
}

// NewEngine builds an engine from a level document.
func NewEngine(lv *Level) (*GameEngine, error) {
	board, err := buildBoard(lv)
	if err != nil {
		return nil, fmt.Errorf("failed to build board: %w", err)
	}
	return &GameEngine{board: board, level: lv, mode: ModeNormal}, nil
}

// NewEmptyEngine builds an engine with an empty board, as used by the editor
// when starting a level from scratch.
func NewEmptyEngine() *GameEngine {
	return &GameEngine{
		board: NewBoard(DefaultBounds()),
		level: &Level{},
		mode:  ModeNormal,
	}
}

// RestoreEngine builds an engine whose board comes from a saved snapshot
// while Reset keeps restoring the level the board originally came from. A nil
// start falls back to the snapshot itself.
func RestoreEngine(start, board *Level) (*GameEngine, error) {
	b, err := buildBoard(board)
	if err != nil {
		return nil, fmt.Errorf("failed to build board: %w", err)
	}
	if start == nil {
		start = board
	}
	return &GameEngine{board: b, level: start, mode: ModeNormal}, nil
}

// Board exposes the underlying board for white-box tests and analysis tools.
func (e *GameEngine) Board() *Board {
	return e.board
}

// StartLevel returns the level document Reset restores.
func (e *GameEngine) StartLevel() *Level {
	return e.level
}

// GetState returns a read-only snapshot of the board.
func (e *GameEngine) GetState() *BoardState {
	ids := e.board.PieceIDs()
	pieces := make([]PieceState, 0, len(ids))
	for _, id := range ids {
		piece, err := e.board.Piece(id)
		if err != nil {
			continue
		}
		tiles := append([]TileCoord(nil), piece.Tiles...)
		sortTiles(tiles)
		pieces = append(pieces, PieceState{ID: id, Tiles: tiles})
	}

	return &BoardState{
		Bounds:     e.board.Bounds(),
		Mode:       e.mode,
		Pieces:     pieces,
		Immovables: e.board.ImmovableTiles(),
		Runes:      e.board.RuneTiles(),
		Solved:     e.board.Solved(),
	}
}

// IsSolved reports whether every rune is covered by ruby material.
func (e *GameEngine) IsSolved() bool {
	return e.board.Solved()
}

// PieceAt returns the id of the ruby piece covering the tile, if any.
func (e *GameEngine) PieceAt(tile TileCoord) (PieceID, bool) {
	for _, o := range e.board.OccupantsAt(tile) {
		if o.Kind == Ruby {
			if id, ok := e.board.Resolve(o.Piece); ok {
				return id, true
			}
		}
	}
	return NoPiece, false
}

// Rotate executes a rotation command. The win condition is re-evaluated
// after every mutation and reported in the outcome.
func (e *GameEngine) Rotate(piece PieceID, pivot VertexCoord, dir RotationDirection) (*RotateOutcome, error) {
	outcome, err := e.board.rotatePiece(piece, pivot, dir)
	if err != nil {
		return nil, err
	}
	outcome.Solved = e.board.Solved()
	return outcome, nil
}

// GetMode returns the current game mode.
func (e *GameEngine) GetMode() Mode {
	return e.mode
}

// SetMode switches between normal play and the level editor.
func (e *GameEngine) SetMode(mode Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: mode %q", ErrInvalidArgument, mode)
	}
	e.mode = mode
	return nil
}

// Place installs a tile directly, bypassing collision checks. Editor only.
// Placing a ruby spawns a fresh single-tile piece and returns its id.
func (e *GameEngine) Place(tile TileCoord, kind TileKind) (PieceID, error) {
	if e.mode != ModeEditor {
		return NoPiece, ErrEditorOnly
	}
	if !tile.Orient.Valid() {
		return NoPiece, fmt.Errorf("%w: orientation %q", ErrInvalidArgument, tile.Orient)
	}

	switch kind {
	case Ruby:
		return e.board.SpawnPiece(tile), nil
	case Immovable:
		e.board.PlaceImmovable(tile)
		return NoPiece, nil
	case Rune:
		e.board.PlaceRune(tile)
		return NoPiece, nil
	default:
		return NoPiece, fmt.Errorf("%w: kind %q", ErrInvalidArgument, kind)
	}
}

// ExportLevel snapshots the board as a level document. Merged pieces are
// recorded as one triangle placement per tile sharing a clump label, so
// decode(encode(board)) reconstructs the same piece structure.
func (e *GameEngine) ExportLevel() *Level {
	bounds := e.board.Bounds()
	lv := &Level{
		Name:       e.level.Name,
		Bounds:     &bounds,
		Immovables: e.board.ImmovableTiles(),
	}

	for _, id := range e.board.PieceIDs() {
		piece, err := e.board.Piece(id)
		if err != nil {
			continue
		}
		tiles := append([]TileCoord(nil), piece.Tiles...)
		sortTiles(tiles)
		for _, t := range tiles {
			lv.Triangles = append(lv.Triangles, TrianglePlacement{Position: t, Clump: int(id)})
		}
	}

	for _, t := range e.board.RuneTiles() {
		lv.Runes = append(lv.Runes, RunePlacement{Position: t})
	}

	return lv
}

// Reset rebuilds the board wholesale from the level document the engine was
// created with. Mode is preserved.
func (e *GameEngine) Reset() error {
	board, err := buildBoard(e.level)
	if err != nil {
		return fmt.Errorf("failed to rebuild board: %w", err)
	}
	e.board = board
	return nil
}
