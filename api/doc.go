// Package api provides HTTP REST API handlers for the Magnate rotation
// puzzle.
//
// The api package implements:
//   - RESTful endpoints for puzzle operations
//   - Session management endpoints
//   - Level slot listing, loading and saving
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (optional {"slot": n})
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Get current board state
//   - POST /api/sessions/{id}/rotate - Rotate a piece about a pivot
//   - POST /api/sessions/{id}/reset - Restore the board to its level
//
// Editor:
//   - POST /api/sessions/{id}/mode - Switch between normal and editor mode
//   - POST /api/sessions/{id}/place - Place a ruby, rune or immovable tile
//
// Levels:
//   - GET /api/levels - List level slots
//   - POST /api/sessions/{id}/level/load - Load a slot into the session
//   - POST /api/sessions/{id}/level/save - Save the board into a slot
//   - POST /api/sessions/{id}/level/reload - Reread the session's slot from disk
//
// Request/Response Format:
//
// All endpoints accept and return JSON. A rotation is sent as:
//
//	{
//	  "piece": 1,
//	  "pivot": {"x": 1, "y": 0},
//	  "direction": "cw"
//	}
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
