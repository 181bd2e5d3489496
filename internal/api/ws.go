package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// wsMessage is the envelope for everything pushed over the round feed.
type wsMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed is read-only telemetry for local UIs.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	wsWriteTimeout = 10 * time.Second
	wsSendBuffer   = 32
)

// Hub fans played rounds out to websocket subscribers, keyed by session id.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*wsClient]struct{}
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*wsClient]struct{})}
}

func (h *Hub) register(sessionID string, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[*wsClient]struct{})
	}
	h.subs[sessionID][c] = struct{}{}
}

func (h *Hub) unregister(sessionID string, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.subs[sessionID]; ok {
		if _, ok := clients[c]; ok {
			delete(clients, c)
			close(c.send)
		}
		if len(clients) == 0 {
			delete(h.subs, sessionID)
		}
	}
}

// Broadcast pushes msg to every subscriber of the session. Slow clients are
// dropped rather than allowed to stall the play path.
func (h *Hub) Broadcast(sessionID string, msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.subs[sessionID] {
		select {
		case c.send <- data:
		default:
			delete(h.subs[sessionID], c)
			close(c.send)
		}
	}
}

func (s *Server) handleSessionWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.sessions.Get(id); !ok {
		s.writeError(w, http.StatusNotFound, ErrTypeSessionNotFound, "no live session with that id", map[string]any{"id": id})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("websocket upgrade: %v", err)
		return
	}

	client := &wsClient{conn: conn, send: make(chan []byte, wsSendBuffer)}
	s.hub.register(id, client)

	go client.writePump()
	client.readPump(func() { s.hub.unregister(id, client) })
}

func (c *wsClient) writePump() {
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			break
		}
	}
	c.conn.Close()
}

// readPump discards inbound frames; it exists to notice the close handshake.
func (c *wsClient) readPump(onClose func()) {
	defer onClose()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
