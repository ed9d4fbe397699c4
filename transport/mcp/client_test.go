package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Indeximal/magnate/game/engine"
	"github.com/Indeximal/magnate/game/service"
	"github.com/mark3labs/mcp-go/mcp"
)

func up(x, y int) engine.TileCoord {
	return engine.TileCoord{Vertex: engine.VertexCoord{X: x, Y: y}, Orient: engine.PointingUp}
}

func down(x, y int) engine.TileCoord {
	return engine.TileCoord{Vertex: engine.VertexCoord{X: x, Y: y}, Orient: engine.PointingDown}
}

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	// Create a test server that returns a known response
	expectedResponse := map[string]interface{}{
		"id":     "test-session",
		"slot":   float64(1),
		"solved": false,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	// Check that we got the expected response
	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "session not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/sessions/zzzz", nil, nil)
	if err == nil || err.Error() != "session not found" {
		t.Errorf("Expected 'session not found' error, got: %v", err)
	}
}

func TestClient_createSession(t *testing.T) {
	// Mock server that responds to session creation
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}

		resp := service.SessionInfo{
			ID:   "ab12",
			Slot: 1,
			BoardState: &engine.BoardState{
				Mode:   engine.ModeNormal,
				Pieces: []engine.PieceState{{ID: 1, Tiles: []engine.TileCoord{up(0, 0)}}},
				Runes:  []engine.TileCoord{up(1, 0)},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	// Test create session without a slot
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "create_session",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleCreateSession(ctx, request)
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	// Check that the result contains the session ID
	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "ab12") {
		t.Errorf("Expected session ID in result, got: %s", resultStr.Text)
	}
}

func TestClient_rotate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions/ab12/rotate" {
			t.Errorf("Expected POST /api/sessions/ab12/rotate, got %s %s", r.Method, r.URL.Path)
		}

		var req struct {
			Piece     int            `json:"piece"`
			Pivot     map[string]int `json:"pivot"`
			Direction string         `json:"direction"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode rotate request: %v", err)
		}
		if req.Piece != 1 || req.Pivot["x"] != 1 || req.Pivot["y"] != 0 || req.Direction != "ccw" {
			t.Errorf("Unexpected rotate request: %+v", req)
		}

		resp := service.RotateResult{
			Success: true,
			Outcome: &engine.RotateOutcome{
				Piece:     1,
				Footprint: []engine.TileCoord{down(0, 0)},
			},
			BoardState: &engine.BoardState{
				Pieces: []engine.PieceState{{ID: 1, Tiles: []engine.TileCoord{down(0, 0)}}},
			},
			Message: "Piece 1 rotated",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "rotate",
			Arguments: map[string]interface{}{
				"session_id": "ab12",
				"piece":      float64(1),
				"pivot_x":    float64(1),
				"pivot_y":    float64(0),
				"direction":  "ccw",
				"intent":     "walk the triangle toward the rune",
			},
		},
	}

	result, err := client.handleRotate(context.Background(), request)
	if err != nil {
		t.Fatalf("handleRotate failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	if !strings.Contains(resultStr.Text, "✓ Rotation applied") {
		t.Errorf("Expected success marker in result, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "down(0,0)") {
		t.Errorf("Expected footprint in result, got: %s", resultStr.Text)
	}
}

func TestClient_reloadLevel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions/ab12/level/reload" {
			t.Errorf("Expected POST /api/sessions/ab12/level/reload, got %s %s", r.Method, r.URL.Path)
		}

		resp := map[string]interface{}{
			"message": "Level reloaded from its slot",
			"state": engine.BoardState{
				Pieces: []engine.PieceState{{ID: 1, Tiles: []engine.TileCoord{up(0, 0)}}},
				Runes:  []engine.TileCoord{up(1, 0), up(0, 1)},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "reload_level",
			Arguments: map[string]interface{}{"session_id": "ab12"},
		},
	}

	result, err := client.handleReloadLevel(context.Background(), request)
	if err != nil {
		t.Fatalf("handleReloadLevel failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	if !strings.Contains(resultStr.Text, "Level reloaded") {
		t.Errorf("Expected reload message in result, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "Runes: 2") {
		t.Errorf("Expected the rebuilt board in result, got: %s", resultStr.Text)
	}
}

func TestFormatBoardState(t *testing.T) {
	state := &engine.BoardState{
		Mode:   engine.ModeNormal,
		Bounds: engine.Bounds{MinX: -8, MinY: -5, MaxX: 8, MaxY: 5},
		Pieces: []engine.PieceState{
			{ID: 1, Tiles: []engine.TileCoord{up(0, 0), down(0, 0)}},
		},
		Runes:      []engine.TileCoord{up(0, 0), up(2, 0)},
		Immovables: []engine.TileCoord{down(3, 2)},
	}

	result := formatBoardState(state)

	expectedFields := []string{
		"Mode: normal | Pieces: 1 | Runes: 2 | Immovables: 1",
		"Piece 1: up(0,0) down(0,0)",
		"[✓] up(0,0)",
		"[ ] up(2,0)",
		"Immovables: down(3,2)",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatBoardState_Solved(t *testing.T) {
	state := &engine.BoardState{
		Mode:   engine.ModeNormal,
		Pieces: []engine.PieceState{{ID: 1, Tiles: []engine.TileCoord{up(1, 0)}}},
		Runes:  []engine.TileCoord{up(1, 0)},
		Solved: true,
	}

	result := formatBoardState(state)

	if !strings.Contains(result, "🎉 SOLVED!") {
		t.Errorf("Expected '🎉 SOLVED!' in result, got: %s", result)
	}
}

func TestFormatRotateResult_Rejected(t *testing.T) {
	rotateResult := &service.RotateResult{
		Success: false,
		Outcome: &engine.RotateOutcome{
			Rejected: true,
			Reason:   engine.RejectBlocked,
		},
		BoardState: &engine.BoardState{},
		Message:    "Rotation rejected: the piece would hit an immovable tile",
	}

	result := formatRotateResult(rotateResult)

	if !strings.Contains(result, "✗ Rotation rejected") {
		t.Errorf("Expected rejection marker in result, got: %s", result)
	}
	if !strings.Contains(result, "immovable tile") {
		t.Errorf("Expected rejection message in result, got: %s", result)
	}
}

func TestFormatRotateResult_Fusion(t *testing.T) {
	rotateResult := &service.RotateResult{
		Success: true,
		Outcome: &engine.RotateOutcome{
			Piece:     1,
			Absorbed:  []engine.PieceID{2, 3},
			Footprint: []engine.TileCoord{up(0, 0), down(0, 0), up(1, 0)},
		},
		BoardState: &engine.BoardState{},
	}

	result := formatRotateResult(rotateResult)

	if !strings.Contains(result, "Fused with piece(s) 2, 3; surviving piece is 1") {
		t.Errorf("Expected fusion summary in result, got: %s", result)
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "game_instructions",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleGameInstructions(ctx, request)
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	// Check that the result contains game instructions
	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"Magnate Rotation Puzzle - Complete Instructions",
		"GAME OBJECTIVE:",
		"THE BOARD:",
		"TILE KINDS:",
		"ROTATION:",
		"FUSION:",
		"STRATEGY HINTS:",
		"EDITOR MODE:",
		"SESSION MANAGEMENT:",
	}

	for _, content := range expectedContent {
		if !strings.Contains(resultStr.Text, content) {
			t.Errorf("Expected '%s' in instructions, got: %s", content, resultStr.Text)
		}
	}
}

func TestClient_Integration(t *testing.T) {
	// Integration test that verifies the client can be created and initialized without errors
	client := NewClient("http://localhost:8080")

	if client == nil {
		t.Fatal("Failed to create client")
	}

	// Test that the MCP server has been properly configured with tools
	if client.mcpServer == nil {
		t.Fatal("MCP server not initialized")
	}

	if client.baseURL == "" {
		t.Error("Base URL not set")
	}

	if client.httpClient == nil {
		t.Error("HTTP client not initialized")
	}
}
