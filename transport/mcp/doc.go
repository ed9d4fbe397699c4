// Package mcp provides Model Context Protocol server implementation for the
// Magnate rotation puzzle.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for puzzle operations
//   - Session-aware command execution
//   - Thin proxying to the REST API server
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - board_state: Get current board state with piece footprints
//   - rotate: Rotate a piece about a pivot vertex
//   - reset_board: Restore the board to the level's starting position
//   - set_mode: Switch between normal and editor mode
//   - place: Place a ruby, rune or immovable tile (editor mode)
//   - create_session: Create new game session with slot selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_levels: List level slots
//   - load_level: Load a slot into a session
//   - save_level: Save the board into a slot
//   - reload_level: Reread the session's slot and rebuild the board
//   - game_instructions: Get comprehensive game instructions and rules
//
// Architecture:
//
// The client is a thin proxy: every tool call is translated into a REST
// request against the running API server, so MCP agents and WebSocket
// viewers always observe the same session state.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously solve puzzle levels
//   - Build and save levels through the editor tools
//   - Analyze board states and plan rotation sequences
//   - Manage multiple game sessions
package mcp
