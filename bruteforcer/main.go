// Command bruteforcer searches for a winning rotation sequence offline and
// then plays it against a running Magnate server over the REST API.
//
// It deliberately mirrors the wire types instead of importing the engine, so
// it can be pointed at any compatible server build.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type Vertex struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Tile struct {
	Vertex Vertex `json:"vertex"`
	Orient string `json:"orient"`
}

func (t Tile) String() string {
	return fmt.Sprintf("%s(%d,%d)", t.Orient, t.Vertex.X, t.Vertex.Y)
}

type Bounds struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

type Piece struct {
	ID    int    `json:"id"`
	Tiles []Tile `json:"tiles"`
}

type BoardState struct {
	Bounds     Bounds  `json:"bounds"`
	Mode       string  `json:"mode"`
	Pieces     []Piece `json:"pieces"`
	Immovables []Tile  `json:"immovables"`
	Runes      []Tile  `json:"runes"`
	Solved     bool    `json:"solved"`
}

type SessionResponse struct {
	ID         string      `json:"id"`
	Slot       int         `json:"slot"`
	BoardState *BoardState `json:"board_state"`
}

type RotateRequest struct {
	Piece     int    `json:"piece"`
	Pivot     Vertex `json:"pivot"`
	Direction string `json:"direction"`
}

type RotateOutcome struct {
	Rejected bool   `json:"rejected"`
	Reason   string `json:"reason,omitempty"`
	Piece    int    `json:"piece"`
	Absorbed []int  `json:"absorbed,omitempty"`
	Solved   bool   `json:"solved"`
}

type RotateResponse struct {
	Success    bool           `json:"success"`
	Outcome    *RotateOutcome `json:"outcome"`
	BoardState *BoardState    `json:"board_state"`
	Message    string         `json:"message"`
}

type ResetResponse struct {
	Message string      `json:"message"`
	State   *BoardState `json:"state"`
}

type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(slot int) (*BoardState, error) {
	var reqBody []byte
	var err error

	if slot >= 0 {
		reqBody, err = json.Marshal(map[string]int{"slot": slot})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	c.sessionID = session.ID
	return session.BoardState, nil
}

func (c *Client) GetState() (*BoardState, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/state", c.baseURL, c.sessionID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get state failed: %s - %s", resp.Status, string(body))
	}

	var state BoardState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}

	return &state, nil
}

func (c *Client) LoadLevel(slot int) (*BoardState, error) {
	body, err := json.Marshal(map[string]int{"slot": slot})
	if err != nil {
		return nil, fmt.Errorf("marshal load request: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/level/load", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("load level failed: %s - %s", resp.Status, string(respBody))
	}

	var state BoardState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("parse load response: %w", err)
	}

	return &state, nil
}

func (c *Client) Reset() (*BoardState, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/reset", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	defer resp.Body.Close()

	var resetResp ResetResponse
	if err := json.NewDecoder(resp.Body).Decode(&resetResp); err != nil {
		return nil, fmt.Errorf("parse reset response: %w", err)
	}

	return resetResp.State, nil
}

func (c *Client) Rotate(mv Move) (*RotateResponse, error) {
	req := RotateRequest{Piece: mv.Piece, Pivot: mv.Pivot, Direction: mv.Direction}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal rotate: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/rotate", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("execute rotate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("rotate failed: %s - %s", resp.Status, string(respBody))
	}

	var rotateResp RotateResponse
	if err := json.NewDecoder(resp.Body).Decode(&rotateResp); err != nil {
		return nil, fmt.Errorf("parse rotate response: %w", err)
	}

	return &rotateResp, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	slot := flag.Int("slot", -1, "Level slot to play (-1 = server default)")
	continueSession := flag.String("continue", "", "Resume playing an existing session by ID")
	maxDepth := flag.Int("max-depth", 12, "Maximum rotation sequence length to search")
	maxStates := flag.Int("max-states", 2000000, "Maximum board states to explore")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between rotations in milliseconds (0 = no delay)")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	var state *BoardState
	var err error

	// Check for saved session ID
	sessionFile := ".session"
	savedSessionID := ""

	if *continueSession != "" {
		savedSessionID = *continueSession
	} else {
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedSessionID = string(bytes.TrimSpace(data))
		}
	}

	if savedSessionID != "" {
		// Resume existing session
		client.sessionID = savedSessionID
		log.Printf("🔄 Resuming session: %s", client.sessionID)
		state, err = client.GetState()
		if err != nil {
			log.Printf("⚠️  Failed to resume session (may be expired): %v", err)
			log.Printf("Creating new session...")
			savedSessionID = "" // Force create new
		} else if *slot >= 0 {
			state, err = client.LoadLevel(*slot)
			if err != nil {
				log.Fatalf("Failed to load slot %d: %v", *slot, err)
			}
			log.Printf("Loaded slot %d into session", *slot)
		}
	}

	if savedSessionID == "" {
		state, err = client.CreateSession(*slot)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		log.Printf("✨ Session created: %s", client.sessionID)

		// Save session ID for next run
		if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
			log.Printf("Warning: Failed to save session ID: %v", err)
		}
	}

	// Start every run from the level's initial position
	log.Printf("🔄 Resetting board...")
	state, err = client.Reset()
	if err != nil {
		log.Fatalf("Failed to reset board: %v", err)
	}
	log.Printf("Board reset - Pieces: %d, Runes: %d, Immovables: %d",
		len(state.Pieces), len(state.Runes), len(state.Immovables))

	if state.Solved {
		log.Printf("🎉 Board is already solved, nothing to do")
		os.Exit(0)
	}
	if len(state.Runes) == 0 {
		log.Printf("⚠️  Level has no runes, nothing to solve")
		os.Exit(0)
	}

	// Search for a winning sequence offline
	solver := NewSolver(state, *maxDepth, *maxStates)
	start := time.Now()
	moves := solver.Solve(state)
	log.Printf("🔍 Searched %d board states in %v", solver.StatesExplored(), time.Since(start).Round(time.Millisecond))

	if moves == nil {
		log.Printf("❌ No solution within %d rotations (%d states explored)", *maxDepth, solver.StatesExplored())
		log.Printf("Session: %s", client.sessionID)
		os.Exit(1)
	}

	log.Printf("📋 Found solution in %d rotation(s):", len(moves))
	for i, mv := range moves {
		log.Printf("  %d. piece %d %s about (%d,%d)", i+1, mv.Piece, mv.Direction, mv.Pivot.X, mv.Pivot.Y)
	}

	// Play the sequence against the server
	for i, mv := range moves {
		resp, err := client.Rotate(mv)
		if err != nil {
			log.Fatalf("Rotation %d failed: %v", i+1, err)
		}
		if resp.Outcome != nil && resp.Outcome.Rejected {
			// The server disagrees with the offline model; stop rather than flail
			log.Fatalf("Rotation %d rejected by server (%s) - aborting", i+1, resp.Outcome.Reason)
		}

		if *verbose {
			log.Printf("✅ %d/%d: %s", i+1, len(moves), resp.Message)
			if resp.Outcome != nil && len(resp.Outcome.Absorbed) > 0 {
				log.Printf("   Fused with %v, surviving piece %d", resp.Outcome.Absorbed, resp.Outcome.Piece)
			}
		}

		if resp.BoardState != nil {
			state = resp.BoardState
		}

		if *delayMs > 0 {
			time.Sleep(time.Duration(*delayMs) * time.Millisecond)
		}
	}

	if state.Solved {
		log.Printf("\n🎉 VICTORY! Puzzle solved in %d rotation(s)", len(moves))
		log.Printf("Session: %s", client.sessionID)
		os.Exit(0)
	}

	log.Printf("\n❌ Sequence finished but board is not solved")
	log.Printf("Session: %s", client.sessionID)
	os.Exit(1)
}
