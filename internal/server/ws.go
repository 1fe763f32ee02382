package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Hub fans applied battle snapshots out to websocket spectators. Spectating
// is read-only; inbound frames are drained and dropped.
type Hub struct {
	log *slog.Logger

	mu   sync.Mutex
	subs map[string]map[*websocket.Conn]struct{}
}

// NewHub builds an empty hub.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{log: log, subs: make(map[string]map[*websocket.Conn]struct{})}
}

func (h *Hub) add(battleID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[battleID] == nil {
		h.subs[battleID] = make(map[*websocket.Conn]struct{})
	}
	h.subs[battleID][conn] = struct{}{}
}

func (h *Hub) remove(battleID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[battleID], conn)
	if len(h.subs[battleID]) == 0 {
		delete(h.subs, battleID)
	}
}

// Broadcast sends the snapshot to every spectator of the battle. Write
// failures drop the connection.
func (h *Hub) Broadcast(battleID string, snap Snapshot) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.subs[battleID]))
	for c := range h.subs[battleID] {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteJSON(wsMsg{Type: "state", Data: snap}); err != nil {
			h.log.Warn("ws write failed, dropping spectator", "battle_id", battleID, "error", err)
			h.remove(battleID, c)
			_ = c.Close()
		}
	}
}

type wsMsg struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// serve upgrades the request and keeps the spectator registered until the
// connection closes.
func (h *Hub) serve(w http.ResponseWriter, r *http.Request, battleID string, initial Snapshot) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "error", err)
		return
	}
	h.add(battleID, conn)
	defer func() {
		h.remove(battleID, conn)
		_ = conn.Close()
	}()

	if err := conn.WriteJSON(wsMsg{Type: "state", Data: initial}); err != nil {
		return
	}
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
