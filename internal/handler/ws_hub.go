package handler

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/tergiversators/internal/auth"
)

// Event types sent over WebSocket.
const (
	EventConnected  = "connected"
	EventView       = "view"
	EventTurnResult = "turn_result"
	EventError      = "error"
)

// WSEvent is the envelope for all WebSocket messages.
type WSEvent struct {
	Type   string `json:"type"`
	GameID string `json:"game_id"`
	Data   any    `json:"data"`
}

// ClientMessage is the envelope for messages sent from the client.
type ClientMessage struct {
	Type   string          `json:"type"` // "action" or "view"
	Action json.RawMessage `json:"action,omitempty"`
}

// WSConn wraps a WebSocket connection with the seat it plays for.
type WSConn struct {
	conn *websocket.Conn
	seat auth.Seat
	send chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

func newWSConn(conn *websocket.Conn, seat auth.Seat) *WSConn {
	return &WSConn{
		conn: conn,
		seat: seat,
		send: make(chan []byte, sendBufSize),
		done: make(chan struct{}),
	}
}

// shutdown asks the write pump to close the connection.
func (c *WSConn) shutdown() {
	c.closeOnce.Do(func() { close(c.done) })
}

// enqueue queues an event for the write pump, dropping it if the buffer is full.
func (c *WSConn) enqueue(event WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("gameId", c.seat.GameID).Msg("Failed to marshal WebSocket event")
		return
	}
	select {
	case c.send <- data:
	default:
		log.Warn().
			Str("gameId", c.seat.GameID).
			Str("player", string(c.seat.Player)).
			Msg("Dropping WebSocket message, buffer full")
	}
}

// Hub tracks live WebSocket connections per game so they can be closed when
// the game is deleted.
type Hub struct {
	mu    sync.RWMutex
	games map[string]map[*WSConn]bool // gameID -> set of connections
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{games: make(map[string]map[*WSConn]bool)}
}

// Register adds a connection to its game.
func (h *Hub) Register(c *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := c.seat.GameID
	if h.games[id] == nil {
		h.games[id] = make(map[*WSConn]bool)
	}
	h.games[id][c] = true
}

// Unregister removes a connection and closes its send channel. Only the
// connection's read pump, which is the sole sender, may call it.
func (h *Hub) Unregister(c *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := c.seat.GameID
	if !h.games[id][c] {
		return
	}
	delete(h.games[id], c)
	if len(h.games[id]) == 0 {
		delete(h.games, id)
	}
	c.shutdown()
	close(c.send)
}

// GameClosed implements service.Notifier: every connection to the game is
// shut down.
func (h *Hub) GameClosed(gameID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.games[gameID] {
		c.shutdown()
	}
}

// ConnectionCount returns the total number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, conns := range h.games {
		n += len(conns)
	}
	return n
}

// GameConnectionCount returns the number of connections to a game.
func (h *Hub) GameConnectionCount(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[gameID])
}
