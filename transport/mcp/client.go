package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/Indeximal/magnate/game/engine"
	"github.com/Indeximal/magnate/game/level"
	"github.com/Indeximal/magnate/game/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Magnate Rotation Puzzle",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Magnate Rotation Puzzle - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Rotate triangular ruby pieces around lattice vertices until every rune
cell is covered by ruby material. Pieces that touch or overlap after a
rotation fuse permanently into one larger piece.

AVAILABLE TOOLS:
- board_state: Get current board state
- rotate: Rotate a piece a sixth turn about one of its corner vertices - requires intent explanation
- reset_board: Restore the board to the level's starting position
- set_mode: Switch between normal and editor mode
- place: Place a ruby, rune or immovable tile (editor mode only)
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_levels: List level slots
- load_level: Load a level slot into a session
- save_level: Save the current board into a level slot
- reload_level: Reread the session's slot from storage and rebuild the board
- game_instructions: Get comprehensive game instructions and rules

NOTE: The 'intent' parameter on the rotate tool serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional level slot selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"slot": map[string]interface{}{
					"type":        "integer",
					"description": "Level slot to load, 0-9 (optional, defaults to the starting level)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_state",
		Description: "Get the current board state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleBoardState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "rotate",
		Description: "Rotate a piece a sixth turn (60 degrees) about a pivot vertex. The pivot must be a corner of one of the piece's tiles. A rotation that would leave the board or hit an immovable tile is rejected and leaves the board unchanged.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"piece": map[string]interface{}{
					"type":        "integer",
					"description": "ID of the piece to rotate",
				},
				"pivot_x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate of the pivot vertex",
				},
				"pivot_y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate of the pivot vertex",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"cw", "ccw"},
					"description": "Rotation direction",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this rotation (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "piece", "pivot_x", "pivot_y", "direction"},
		},
	}, c.handleRotate)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_board",
		Description: "Restore the board to the level's starting position",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	// Editor operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_mode",
		Description: "Switch the session between normal and editor mode",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"normal", "editor"},
					"description": "Mode to switch to",
				},
			},
			Required: []string{"session_id", "mode"},
		},
	}, c.handleSetMode)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place",
		Description: "Place a ruby, rune or immovable tile on the board. Only allowed in editor mode.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate of the tile's base vertex",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate of the tile's base vertex",
				},
				"orient": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down"},
					"description": "Triangle orientation",
				},
				"kind": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"ruby", "rune", "immovable"},
					"description": "Kind of tile to place",
				},
			},
			Required: []string{"session_id", "x", "y", "orient", "kind"},
		},
	}, c.handlePlace)

	// Levels
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_levels",
		Description: "List level slots with their names and contents",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListLevels)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "load_level",
		Description: "Load a level slot into a session, replacing the current board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"slot": map[string]interface{}{
					"type":        "integer",
					"description": "Level slot to load, 0-9",
				},
			},
			Required: []string{"session_id", "slot"},
		},
	}, c.handleLoadLevel)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "save_level",
		Description: "Save the session's current board into a level slot",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"slot": map[string]interface{}{
					"type":        "integer",
					"description": "Level slot to save into, 0-9",
				},
			},
			Required: []string{"session_id", "slot"},
		},
	}, c.handleSaveLevel)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reload_level",
		Description: "Reread the session's current slot from storage and rebuild the board from it. Discards progress and picks up edits saved outside the session.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReloadLevel)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})

	body := map[string]interface{}{}
	if slot, ok := args["slot"].(float64); ok {
		body["slot"] = int(slot)
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nSlot: %d\n\n%s",
		session.ID, session.Slot, formatBoardState(session.BoardState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Slot: %d, Created: %s)\n",
			s.ID, s.Slot, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleBoardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.BoardState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatBoardState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRotate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	piece, _ := args["piece"].(float64)
	pivotX, _ := args["pivot_x"].(float64)
	pivotY, _ := args["pivot_y"].(float64)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"piece":     int(piece),
		"pivot":     map[string]int{"x": int(pivotX), "y": int(pivotY)},
		"direction": direction,
	}

	var result service.RotateResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/rotate", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatRotateResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string             `json:"message"`
		State   *engine.BoardState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatBoardState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSetMode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	mode, _ := args["mode"].(string)

	var state engine.BoardState
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/mode", sessionID), map[string]string{"mode": mode}, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Mode switched to %s\n\n%s", state.Mode, formatBoardState(&state))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handlePlace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	x, _ := args["x"].(float64)
	y, _ := args["y"].(float64)
	orient, _ := args["orient"].(string)
	kind, _ := args["kind"].(string)

	body := map[string]interface{}{
		"position": map[string]interface{}{
			"vertex": map[string]int{"x": int(x), "y": int(y)},
			"orient": orient,
		},
		"kind": kind,
	}

	var result service.PlaceResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/place", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := fmt.Sprintf("Placed %s at %s(%d,%d)", kind, orient, int(x), int(y))
	if result.Piece != engine.NoPiece {
		response += fmt.Sprintf(" as piece %d", result.Piece)
	}
	response += "\n\n" + formatBoardState(result.BoardState)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleListLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var levels []level.Info
	err := c.apiCall("GET", "/api/levels", nil, &levels)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Level Slots:\n\n"
	for _, lv := range levels {
		origin := "saved"
		if lv.BuiltIn {
			origin = "built-in"
		}
		name := lv.Name
		if name == "" {
			name = "(unnamed)"
		}
		result += fmt.Sprintf("• Slot %d: %s (%s, %d triangles, %d runes)\n",
			lv.Slot, name, origin, lv.Triangles, lv.Runes)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleLoadLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	slot, _ := args["slot"].(float64)

	var state engine.BoardState
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/level/load", sessionID),
		map[string]int{"slot": int(slot)}, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Loaded slot %d\n\n%s", int(slot), formatBoardState(&state))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSaveLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	slot, _ := args["slot"].(float64)

	var response map[string]interface{}
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/level/save", sessionID),
		map[string]int{"slot": int(slot)}, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Level saved to slot %d", int(slot))), nil
}

func (c *Client) handleReloadLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string             `json:"message"`
		State   *engine.BoardState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/level/reload", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatBoardState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Magnate Rotation Puzzle - Complete Instructions

GAME OBJECTIVE:
Cover every rune cell with ruby material. You win the moment all runes
are covered by pieces.

THE BOARD:
The board is a triangular lattice. Vertices are addressed by integer
(x, y) coordinates on two axes 60 degrees apart. Each pair of adjacent
vertices spans two triangle cells: one pointing up and one pointing
down. A tile address is a vertex plus an orientation, written up(x,y)
or down(x,y).

- up(x,y) has corners (x,y), (x+1,y) and (x,y+1)
- down(x,y) has corners (x,y), (x+1,y) and (x+1,y-1)

TILE KINDS:
- ruby: movable triangle pieces, the things you rotate
- rune: fixed target cells that must all be covered to win
- immovable: fixed blockers that reject rotations into their cell

ROTATION:
A piece rotates as a rigid body a sixth turn (60 degrees) about a pivot
vertex. The pivot must be a corner of at least one of the piece's
tiles. Six applications of the same rotation return the piece to where
it started.

A rotation is REJECTED when the destination footprint would leave the
board bounds or land on an immovable tile. A rejected rotation changes
nothing; pick a different pivot or direction.

FUSION:
After a successful rotation, the moved piece fuses with every piece it
now touches edge-to-edge or overlaps. Fusion is permanent: the merged
piece rotates as one rigid body from then on and can never be split.
Plan carefully - an early careless merge can make a level unsolvable.
Merely sitting next to an immovable tile does not block anything;
immovables only reject rotations INTO their cell.

STRATEGY HINTS:
- Map the runes first, then work out which piece can reach each one.
- Walking a single triangle around one of its corners visits six cells
  in a hexagon around that vertex; use this to translate across the
  board.
- Fused pieces sweep larger areas per turn but fit through fewer gaps.
- Use reset_board freely; rotations are cheap, stuck boards are not.

EDITOR MODE:
Switch to editor mode with set_mode to build levels. In editor mode the
place tool puts tiles anywhere, even overlapping. Save your work with
save_level and play it with load_level. Slot 0 is a blank board for
starting fresh.

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent board state and mode
- Sessions persist across server restarts`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nSlot: %d\nCreated: %s\n\n%s",
		session.ID, session.Slot,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatBoardState(session.BoardState))
}

func formatTile(t engine.TileCoord) string {
	return fmt.Sprintf("%s(%d,%d)", t.Orient, t.Vertex.X, t.Vertex.Y)
}

func formatTiles(tiles []engine.TileCoord) string {
	parts := make([]string, len(tiles))
	for i, t := range tiles {
		parts[i] = formatTile(t)
	}
	return strings.Join(parts, " ")
}

func formatBoardState(state *engine.BoardState) string {
	if state == nil {
		return "No board state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Mode: %s | Pieces: %d | Runes: %d | Immovables: %d\n",
		state.Mode, len(state.Pieces), len(state.Runes), len(state.Immovables)))
	if state.Bounds != (engine.Bounds{}) {
		result.WriteString(fmt.Sprintf("Bounds: x %d..%d, y %d..%d\n",
			state.Bounds.MinX, state.Bounds.MaxX, state.Bounds.MinY, state.Bounds.MaxY))
	}
	result.WriteString("\n")

	pieces := append([]engine.PieceState(nil), state.Pieces...)
	sort.Slice(pieces, func(i, j int) bool { return pieces[i].ID < pieces[j].ID })
	for _, p := range pieces {
		result.WriteString(fmt.Sprintf("Piece %d: %s\n", p.ID, formatTiles(p.Tiles)))
	}

	if len(state.Runes) > 0 {
		covered := coveredRunes(state)
		result.WriteString("Runes:\n")
		for _, r := range state.Runes {
			mark := " "
			if covered[r] {
				mark = "✓"
			}
			result.WriteString(fmt.Sprintf("  [%s] %s\n", mark, formatTile(r)))
		}
	}

	if len(state.Immovables) > 0 {
		result.WriteString(fmt.Sprintf("Immovables: %s\n", formatTiles(state.Immovables)))
	}

	if state.Solved {
		result.WriteString("\n🎉 SOLVED! All runes are covered.")
	}

	return result.String()
}

// coveredRunes reports which rune cells currently carry ruby material.
func coveredRunes(state *engine.BoardState) map[engine.TileCoord]bool {
	occupied := make(map[engine.TileCoord]bool)
	for _, p := range state.Pieces {
		for _, t := range p.Tiles {
			occupied[t] = true
		}
	}
	covered := make(map[engine.TileCoord]bool)
	for _, r := range state.Runes {
		if occupied[r] {
			covered[r] = true
		}
	}
	return covered
}

func formatRotateResult(result *service.RotateResult) string {
	response := ""
	if result.Success {
		response = "✓ Rotation applied\n"
	} else {
		response = "✗ Rotation rejected\n"
	}

	if result.Message != "" {
		response += result.Message + "\n"
	}

	if o := result.Outcome; o != nil && !o.Rejected {
		if len(o.Absorbed) > 0 {
			parts := make([]string, len(o.Absorbed))
			for i, id := range o.Absorbed {
				parts[i] = fmt.Sprintf("%d", id)
			}
			response += fmt.Sprintf("Fused with piece(s) %s; surviving piece is %d\n",
				strings.Join(parts, ", "), o.Piece)
		}
		response += fmt.Sprintf("Footprint: %s\n", formatTiles(o.Footprint))
	}

	response += "\n" + formatBoardState(result.BoardState)
	return response
}
