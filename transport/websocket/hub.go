package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/Indeximal/magnate/game/engine"
	"github.com/gorilla/websocket"
)

// Push event names. state_update carries the full board; pieces_fused and
// solved let viewers animate a rotation's consequences without diffing
// consecutive snapshots.
const (
	EventStateUpdate = "state_update"
	EventPiecesFused = "pieces_fused"
	EventSolved      = "solved"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Message is one push frame. BoardState is set on state updates, Fusion on
// pieces_fused events; the solved event carries neither.
type Message struct {
	SessionID  string             `json:"session_id"`
	Event      string             `json:"event"`
	BoardState *engine.BoardState `json:"board_state,omitempty"`
	Fusion     *FusionEvent       `json:"fusion,omitempty"`
}

// FusionEvent describes a merge: Piece survived, Absorbed ceased to exist.
type FusionEvent struct {
	Piece    engine.PieceID   `json:"piece"`
	Absorbed []engine.PieceID `json:"absorbed"`
}

// viewer is one connected socket. Viewers are read-only; commands go through
// the REST API.
type viewer struct {
	hub       *Hub
	conn      *websocket.Conn
	sessionID string
	send      chan []byte
}

// Hub fans session events out to every socket watching that session. All
// bookkeeping happens on the Run goroutine; the exported broadcast methods
// only enqueue.
type Hub struct {
	viewers map[string]map[*viewer]bool

	events      chan *Message
	subscribe   chan *viewer
	unsubscribe chan *viewer
}

// NewHub creates a hub. Call Run before serving connections.
func NewHub() *Hub {
	return &Hub{
		viewers:     make(map[string]map[*viewer]bool),
		events:      make(chan *Message, 64),
		subscribe:   make(chan *viewer),
		unsubscribe: make(chan *viewer),
	}
}

// Run owns the viewer table and loops forever.
func (h *Hub) Run() {
	for {
		select {
		case v := <-h.subscribe:
			h.addViewer(v)

		case v := <-h.unsubscribe:
			h.removeViewer(v)

		case msg := <-h.events:
			h.fanOut(msg)
		}
	}
}

// ServeWS upgrades an HTTP request and subscribes the socket to a session.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	v := &viewer{
		hub:       h,
		conn:      conn,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}
	h.subscribe <- v

	go v.writeLoop()
	go v.readLoop()
}

// BroadcastToSession pushes a fresh board snapshot to every viewer of the
// session.
func (h *Hub) BroadcastToSession(sessionID string, state *engine.BoardState) {
	h.enqueue(&Message{SessionID: sessionID, Event: EventStateUpdate, BoardState: state})
}

// BroadcastRotate pushes the consequences of a rotation: the new board,
// a pieces_fused event when the move merged pieces, and a solved event when
// it completed the level. A rejected rotation only re-sends the board.
func (h *Hub) BroadcastRotate(sessionID string, outcome *engine.RotateOutcome, state *engine.BoardState) {
	h.enqueue(&Message{SessionID: sessionID, Event: EventStateUpdate, BoardState: state})

	if outcome == nil || outcome.Rejected {
		return
	}
	if len(outcome.Absorbed) > 0 {
		h.enqueue(&Message{
			SessionID: sessionID,
			Event:     EventPiecesFused,
			Fusion:    &FusionEvent{Piece: outcome.Piece, Absorbed: outcome.Absorbed},
		})
	}
	if outcome.Solved {
		h.enqueue(&Message{SessionID: sessionID, Event: EventSolved})
	}
}

// enqueue hands a message to the Run goroutine without blocking the caller.
// Dropping under pressure is acceptable: viewers resync from the next state
// update.
func (h *Hub) enqueue(msg *Message) {
	select {
	case h.events <- msg:
	default:
		log.Printf("WebSocket event queue full, dropping %s for session %s", msg.Event, msg.SessionID)
	}
}

// addViewer subscribes a socket to its session.
func (h *Hub) addViewer(v *viewer) {
	if h.viewers[v.sessionID] == nil {
		h.viewers[v.sessionID] = make(map[*viewer]bool)
	}
	h.viewers[v.sessionID][v] = true

	log.Printf("Viewer joined session %s (%d watching)", v.sessionID, len(h.viewers[v.sessionID]))
}

// removeViewer unsubscribes a socket. Safe to call twice for the same viewer.
func (h *Hub) removeViewer(v *viewer) {
	watching, ok := h.viewers[v.sessionID]
	if !ok || !watching[v] {
		return
	}

	delete(watching, v)
	close(v.send)
	if len(watching) == 0 {
		delete(h.viewers, v.sessionID)
	}

	log.Printf("Viewer left session %s (%d watching)", v.sessionID, len(watching))
}

// fanOut marshals a message once and queues it on every viewer of the
// session. A viewer whose queue is full is dropped rather than stalling the
// hub.
func (h *Hub) fanOut(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", msg.Event, err)
		return
	}

	for v := range h.viewers[msg.SessionID] {
		select {
		case v.send <- data:
		default:
			h.removeViewer(v)
		}
	}
}

// readLoop drains the socket. Incoming frames are ignored; reading is still
// required to process pongs and to notice the peer going away.
func (v *viewer) readLoop() {
	defer func() {
		v.hub.unsubscribe <- v
		v.conn.Close()
	}()

	v.conn.SetReadLimit(maxMessageSize)
	v.conn.SetReadDeadline(time.Now().Add(pongWait))
	v.conn.SetPongHandler(func(string) error {
		return v.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}
	}
}

// writeLoop forwards queued events to the socket, one frame per event, and
// pings to keep the connection alive.
func (v *viewer) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		v.conn.Close()
	}()

	for {
		select {
		case data, ok := <-v.send:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub dropped this viewer
				v.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := v.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := v.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
