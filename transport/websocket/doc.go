// Package websocket provides WebSocket transport for the Magnate rotation
// puzzle.
//
// The websocket package implements:
//   - Real-time board state streaming
//   - Session-aware WebSocket connections
//   - Automatic state broadcasting on changes
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. The Run goroutine owns the viewer table; each
// connection gets read and write goroutines that handle frames, keepalive
// pings and cleanup.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded:
//
//	{"session_id": "ab12", "event": "state_update", "board_state": {...}}
//	{"session_id": "ab12", "event": "pieces_fused", "fusion": {"piece": 1, "absorbed": [2]}}
//	{"session_id": "ab12", "event": "solved"}
//
// Every mutation pushes a state_update. A rotation additionally pushes a
// pieces_fused event when it merged pieces and a solved event when it
// completed the level. Viewers do not send commands over the socket;
// mutations go through the REST API.
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?session=ab12) when establishing the connection.
// State updates are broadcast only to clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	hub.ServeWS(w, r, sessionID)
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive broadcasts
// simultaneously without blocking each other.
package websocket
