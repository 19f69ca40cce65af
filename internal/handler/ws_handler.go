package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/tergiversators/internal/auth"
	"github.com/freeeve/tergiversators/internal/logger"
	"github.com/freeeve/tergiversators/internal/service"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = 54 * time.Second // Must be less than pongWait
	maxMsgSize  = 4096
	sendBufSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS handled by middleware; tighten in production
	},
}

// WSHandler plays a single seat over a WebSocket. Each inbound message gets
// a reply on the same connection only.
type WSHandler struct {
	hub     *Hub
	jwtMgr  *auth.JWTManager
	gameSvc *service.GameService
}

// NewWSHandler creates a WSHandler.
func NewWSHandler(hub *Hub, jwtMgr *auth.JWTManager, gameSvc *service.GameService) *WSHandler {
	return &WSHandler{hub: hub, jwtMgr: jwtMgr, gameSvc: gameSvc}
}

// ServeWS handles GET /api/v1/games/{id}/ws and upgrades to WebSocket.
// Auth via ?token= query parameter (WebSocket can't send headers).
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		writeError(w, http.StatusUnauthorized, "missing token parameter")
		return
	}

	claims, err := h.jwtMgr.ValidateToken(tokenStr)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	// The request context ends when ServeWS returns; the pumps outlive it.
	ctx := logger.WithRequestID(context.Background(), logger.RequestIDFromContext(r.Context()))
	view, err := h.gameSvc.SeatView(ctx, r.PathValue("id"), claims.Seat)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := newWSConn(conn, claims.Seat)
	h.hub.Register(client)
	client.enqueue(WSEvent{Type: EventConnected, GameID: claims.GameID, Data: view})

	go h.writePump(client)
	go h.readPump(ctx, client)

	log.Info().
		Str("gameId", claims.GameID).
		Str("player", string(claims.Player)).
		Int("total", h.hub.ConnectionCount()).
		Msg("WebSocket client connected")
}

// handleMessage answers one client message.
func (h *WSHandler) handleMessage(ctx context.Context, c *WSConn, message []byte) WSEvent {
	gameID := c.seat.GameID
	fail := func(status int, msg string) WSEvent {
		return WSEvent{Type: EventError, GameID: gameID, Data: map[string]any{"status": status, "error": msg}}
	}

	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		return fail(http.StatusBadRequest, "invalid message")
	}

	switch msg.Type {
	case "view":
		view, err := h.gameSvc.SeatView(ctx, gameID, c.seat)
		if err != nil {
			return fail(errorStatus(err), err.Error())
		}
		return WSEvent{Type: EventView, GameID: gameID, Data: view}
	case "action":
		action, err := decodeAction(msg.Action)
		if err != nil {
			return fail(http.StatusBadRequest, "invalid action: "+err.Error())
		}
		result, err := h.gameSvc.TakeTurn(ctx, gameID, c.seat, action)
		if err != nil {
			return fail(errorStatus(err), err.Error())
		}
		return WSEvent{Type: EventTurnResult, GameID: gameID, Data: result}
	default:
		return fail(http.StatusBadRequest, "unknown message type")
	}
}

// readPump reads messages from the WebSocket connection.
func (h *WSHandler) readPump(ctx context.Context, c *WSConn) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
		log.Info().Str("gameId", c.seat.GameID).Str("player", string(c.seat.Player)).Msg("WebSocket client disconnected")
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("gameId", c.seat.GameID).Msg("WebSocket unexpected close")
			}
			break
		}
		c.enqueue(h.handleMessage(ctx, c, message))
	}
}

// writePump writes messages to the WebSocket connection.
func (h *WSHandler) writePump(c *WSConn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "game closed"))
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
