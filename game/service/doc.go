// Package service provides the business logic layer for the Magnate rotation
// puzzle.
//
// The service package implements:
//   - Multi-session game management
//   - Rotation command processing
//   - Level slot loading, saving and reloading
//   - Editor mode orchestration
//   - Session lifecycle management
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// LevelManager handles the numbered level slots.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing session isolation, level management, and
// business logic orchestration. Each session maintains its own game engine
// instance with independent state.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	levelMgr, _ := level.NewManager("levels")
//	gameService := service.NewGameService(sessionMgr, levelMgr)
//
//	// Create a new session on the default level
//	sessionInfo, err := gameService.CreateSession(ctx, -1)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Rotate a piece
//	result, err := gameService.Rotate(ctx, sessionInfo.ID, 1, engine.VertexCoord{X: 1}, engine.Clockwise)
//
// Session Management:
//
// Sessions are identified by unique 4-character IDs and maintain independent
// board state. Multiple sessions can run concurrently on different levels.
// Sessions track creation time and last access time.
package service
