package service

import (
	"context"

	"github.com/Indeximal/magnate/game/engine"
	"github.com/Indeximal/magnate/game/level"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, slot int) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Rotate(ctx context.Context, sessionID string, piece engine.PieceID, pivot engine.VertexCoord, dir engine.RotationDirection) (*RotateResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.BoardState, error)

	// Editor Operations
	SetMode(ctx context.Context, sessionID string, mode engine.Mode) (*engine.BoardState, error)
	Place(ctx context.Context, sessionID string, tile engine.TileCoord, kind engine.TileKind) (*PlaceResult, error)

	// Game State
	GetBoardState(ctx context.Context, sessionID string) (*engine.BoardState, error)

	// Levels
	ListLevels(ctx context.Context) ([]level.Info, error)
	LoadLevel(ctx context.Context, sessionID string, slot int) (*engine.BoardState, error)
	SaveLevel(ctx context.Context, sessionID string, slot int) error
	ReloadCurrent(ctx context.Context, sessionID string) (*engine.BoardState, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, slot int, lv *engine.Level) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// LevelManager handles level slot loading and saving
type LevelManager interface {
	Load(slot int) (*engine.Level, error)
	Save(slot int, lv *engine.Level) error
	List() ([]level.Info, error)
	RefreshCache()
}
