package engine

import "errors"

// TileKind classifies the three tile families on the board.
type TileKind string

const (
	// Immovable tiles never move and block rotation into their cell.
	Immovable TileKind = "immovable"
	// Rune tiles never move and must all be covered by ruby material to win.
	Rune TileKind = "rune"
	// Ruby tiles form the movable, mergeable pieces.
	Ruby TileKind = "ruby"
)

// Valid reports whether the kind is one of the three known values.
func (k TileKind) Valid() bool {
	return k == Immovable || k == Rune || k == Ruby
}

// PieceID identifies a ruby piece. IDs of absorbed pieces remain resolvable
// to the surviving piece via the board's redirect table.
type PieceID int32

// NoPiece is the zero PieceID, used for occupants that are not rubies.
const NoPiece PieceID = 0

// Mode switches the engine between gameplay and level editing.
type Mode string

const (
	// ModeNormal permits rotations only; placement commands are refused.
	ModeNormal Mode = "normal"
	// ModeEditor permits direct tile placement without collision checks.
	ModeEditor Mode = "editor"
)

// Valid reports whether the mode is one of the two known values.
func (m Mode) Valid() bool {
	return m == ModeNormal || m == ModeEditor
}

var (
	// ErrPieceNotFound is returned when a piece id does not resolve to a
	// live piece.
	ErrPieceNotFound = errors.New("piece not found")

	// ErrInvalidPivot is returned when the requested pivot vertex is not a
	// corner of the rotating piece. This is a caller error, not a gameplay
	// outcome.
	ErrInvalidPivot = errors.New("pivot is not a corner of the piece")

	// ErrEditorOnly is returned when a placement command arrives outside
	// editor mode.
	ErrEditorOnly = errors.New("placement requires editor mode")

	// ErrInvalidArgument is returned for unknown kinds, orientations or
	// rotation directions.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Occupant is one entry of a cell's occupancy stack. Kind is always set;
// Piece is meaningful only for ruby occupants.
type Occupant struct {
	Kind  TileKind `json:"kind"`
	Piece PieceID  `json:"piece,omitempty"`
}

// RejectReason explains why a rotation was refused.
type RejectReason string

const (
	RejectOutOfBounds RejectReason = "out_of_bounds"
	RejectBlocked     RejectReason = "blocked"
)

// RotateOutcome reports the result of a rotation command. A rejected rotation
// is a normal negative outcome: the board is untouched and no error is
// returned alongside it.
type RotateOutcome struct {
	// Rejected is true when the candidate footprint left the lattice or hit
	// an immovable tile. The board is unchanged in that case.
	Rejected bool         `json:"rejected"`
	Reason   RejectReason `json:"reason,omitempty"`

	// Piece is the id owning the footprint after the command: the rotated
	// piece's resolved id, or the surviving id after a merge.
	Piece PieceID `json:"piece"`

	// Absorbed lists the ids that ceased to exist in this step, in
	// ascending order. Empty for a plain move.
	Absorbed []PieceID `json:"absorbed,omitempty"`

	// Footprint is the piece's footprint after the command.
	Footprint []TileCoord `json:"footprint,omitempty"`

	// Solved reports the win condition evaluated after the mutation.
	Solved bool `json:"solved"`
}

// PieceState is the read-only snapshot of one piece.
type PieceState struct {
	ID    PieceID     `json:"id"`
	Tiles []TileCoord `json:"tiles"`
}

// BoardState is the read-only snapshot handed to renderers and transports.
// It is recomputed on demand and never aliases engine-owned slices.
type BoardState struct {
	Bounds     Bounds       `json:"bounds"`
	Mode       Mode         `json:"mode"`
	Pieces     []PieceState `json:"pieces"`
	Immovables []TileCoord  `json:"immovables"`
	Runes      []TileCoord  `json:"runes"`
	Solved     bool         `json:"solved"`
}
