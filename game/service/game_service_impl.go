package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/Indeximal/magnate/game/engine"
	"github.com/Indeximal/magnate/game/level"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	levels   LevelManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, levels LevelManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		levels:   levels,
	}
}

// CreateSession creates a new game session on the given level slot. A
// negative slot selects the default starting level.
func (s *gameServiceImpl) CreateSession(ctx context.Context, slot int) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slot < 0 {
		slot = level.DefaultPlaySlot
	}

	lv, err := s.levels.Load(slot)
	if err != nil {
		return nil, fmt.Errorf("failed to load level slot %d: %w", slot, err)
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", slot, lv)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Rotate executes a rotation command for a session
func (s *gameServiceImpl) Rotate(ctx context.Context, sessionID string, piece engine.PieceID, pivot engine.VertexCoord, dir engine.RotationDirection) (*RotateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	outcome, err := sess.Engine.Rotate(piece, pivot, dir)
	if err != nil {
		return nil, err
	}

	result := &RotateResult{
		Success:    !outcome.Rejected,
		Outcome:    outcome,
		BoardState: sess.Engine.GetState(),
		Message:    rotateMessage(outcome),
	}

	// Auto-save session after a state-changing command
	if !outcome.Rejected {
		if err := s.sessions.Save(sessionID); err != nil {
			fmt.Printf("Warning: Failed to persist session %s after rotation: %v\n", sessionID, err)
		}
	}

	return result, nil
}

// Reset restores a session's board to the level it was loaded from
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.BoardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if err := sess.Engine.Reset(); err != nil {
		return nil, err
	}

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after reset: %v\n", sessionID, err)
	}

	return sess.Engine.GetState(), nil
}

// SetMode switches a session between normal play and the level editor
func (s *gameServiceImpl) SetMode(ctx context.Context, sessionID string, mode engine.Mode) (*engine.BoardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if err := sess.Engine.SetMode(mode); err != nil {
		return nil, err
	}

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after mode change: %v\n", sessionID, err)
	}

	return sess.Engine.GetState(), nil
}

// Place installs a tile in editor mode
func (s *gameServiceImpl) Place(ctx context.Context, sessionID string, tile engine.TileCoord, kind engine.TileKind) (*PlaceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	piece, err := sess.Engine.Place(tile, kind)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after placement: %v\n", sessionID, err)
	}

	return &PlaceResult{
		Piece:      piece,
		BoardState: sess.Engine.GetState(),
	}, nil
}

// GetBoardState retrieves the current board state
func (s *gameServiceImpl) GetBoardState(ctx context.Context, sessionID string) (*engine.BoardState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return sess.Engine.GetState(), nil
}

// ListLevels returns information about all level slots
func (s *gameServiceImpl) ListLevels(ctx context.Context) ([]level.Info, error) {
	return s.levels.List()
}

// LoadLevel replaces a session's board with the level in the given slot.
// The current mode is preserved.
func (s *gameServiceImpl) LoadLevel(ctx context.Context, sessionID string, slot int) (*engine.BoardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	lv, err := s.levels.Load(slot)
	if err != nil {
		return nil, fmt.Errorf("failed to load level slot %d: %w", slot, err)
	}

	eng, err := engine.NewEngine(lv)
	if err != nil {
		return nil, fmt.Errorf("failed to build board: %w", err)
	}
	if err := eng.SetMode(sess.Engine.GetMode()); err != nil {
		return nil, err
	}

	sess.Engine = eng
	sess.Slot = slot

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after level load: %v\n", sessionID, err)
	}

	return sess.Engine.GetState(), nil
}

// ReloadCurrent rereads the session's current slot from the store and
// rebuilds the board from it, discarding progress. The slot cache is dropped
// first so edits saved outside the server are picked up. The current mode is
// preserved.
func (s *gameServiceImpl) ReloadCurrent(ctx context.Context, sessionID string) (*engine.BoardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	s.levels.RefreshCache()

	lv, err := s.levels.Load(sess.Slot)
	if err != nil {
		return nil, fmt.Errorf("failed to reload level slot %d: %w", sess.Slot, err)
	}

	eng, err := engine.NewEngine(lv)
	if err != nil {
		return nil, fmt.Errorf("failed to build board: %w", err)
	}
	if err := eng.SetMode(sess.Engine.GetMode()); err != nil {
		return nil, err
	}

	sess.Engine = eng

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after level reload: %v\n", sessionID, err)
	}

	return sess.Engine.GetState(), nil
}

// SaveLevel exports a session's board into the given slot. Saving into a
// slot shadowed by a built-in still writes the file.
func (s *gameServiceImpl) SaveLevel(ctx context.Context, sessionID string, slot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return s.levels.Save(slot, sess.Engine.ExportLevel())
}

// sessionInfo builds the API view of a session
func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		Slot:           sess.Slot,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		BoardState:     sess.Engine.GetState(),
	}
}

// rotateMessage builds a human-readable summary of a rotation outcome
func rotateMessage(outcome *engine.RotateOutcome) string {
	if outcome.Rejected {
		switch outcome.Reason {
		case engine.RejectOutOfBounds:
			return "Rotation rejected: the piece would leave the board"
		case engine.RejectBlocked:
			return "Rotation rejected: the piece would hit an immovable tile"
		default:
			return "Rotation rejected"
		}
	}

	msg := fmt.Sprintf("Piece %d rotated", outcome.Piece)
	if len(outcome.Absorbed) == 1 {
		msg = fmt.Sprintf("%s and fused with piece %d", msg, outcome.Absorbed[0])
	} else if len(outcome.Absorbed) > 1 {
		msg = fmt.Sprintf("%s and fused with %d pieces", msg, len(outcome.Absorbed))
	}
	if outcome.Solved {
		msg += ". All runes covered, puzzle solved!"
	}
	return msg
}
