package session

import (
	"time"

	"github.com/Indeximal/magnate/game/engine"
	"github.com/Indeximal/magnate/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData represents the JSON structure for persisted sessions.
// Board is the current state and Level the starting position, both stored as
// full level documents so a session survives a restart without reference to
// the slot it came from and a reset after restart still reaches the start.
type PersistedSessionData struct {
	ID             string        `json:"id"`
	Slot           int           `json:"slot"`
	Mode           engine.Mode   `json:"mode"`
	CreatedAt      time.Time     `json:"created_at"`
	LastAccessedAt time.Time     `json:"last_accessed_at"`
	Board          *engine.Level `json:"board"`
	Level          *engine.Level `json:"level,omitempty"`
}
