package service

import (
	"time"

	"github.com/Indeximal/magnate/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	Slot           int                `json:"slot"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	BoardState     *engine.BoardState `json:"board_state"`
}

// RotateResult contains the result of a rotation command
type RotateResult struct {
	Success    bool                  `json:"success"`
	Outcome    *engine.RotateOutcome `json:"outcome"`
	BoardState *engine.BoardState    `json:"board_state"`
	Message    string                `json:"message"`
}

// PlaceResult contains the result of an editor placement
type PlaceResult struct {
	Piece      engine.PieceID     `json:"piece,omitempty"`
	BoardState *engine.BoardState `json:"board_state"`
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Slot           int
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
