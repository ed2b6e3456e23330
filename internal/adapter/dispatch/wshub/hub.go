package wshub

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"voidwake/internal/app/ports"
)

const writeDeadline = 5 * time.Second

// Message is one frame pushed to observers. Replies targeted at a single
// player carry that player's id; broadcast events leave it empty.
type Message struct {
	Channel  string `json:"channel"`
	PlayerID string `json:"player_id,omitempty"`
	Text     string `json:"text"`
}

// observer wraps one connection with its write lock. The websocket library
// allows at most one concurrent writer per connection, and the narration
// fan-out delivers from many goroutines at once, so every write for a
// connection must funnel through this mutex.
type observer struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (o *observer) write(msg Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return o.conn.WriteJSON(msg)
}

// Hub fans game events out to websocket observers. It implements
// ports.Dispatcher: delivery is fire-and-forget, a dead connection is dropped
// and never fails the simulation.
type Hub struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	games map[string]map[*observer]struct{}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		games: map[string]map[*observer]struct{}{},
	}
}

// ServeHTTP upgrades GET /ws?game=<id> and parks the connection until the
// peer goes away. Observers only listen; inbound frames are drained and
// discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game query parameter", http.StatusBadRequest)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("wshub: upgrade failed: %v", err)
		return
	}
	obs := &observer{conn: conn}
	h.add(gameID, obs)

	go func() {
		defer h.remove(gameID, obs)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) add(gameID string, obs *observer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.games[gameID] == nil {
		h.games[gameID] = map[*observer]struct{}{}
	}
	h.games[gameID][obs] = struct{}{}
}

func (h *Hub) remove(gameID string, obs *observer) {
	h.mu.Lock()
	if observers, ok := h.games[gameID]; ok {
		delete(observers, obs)
		if len(observers) == 0 {
			delete(h.games, gameID)
		}
	}
	h.mu.Unlock()
	obs.conn.Close()
}

func (h *Hub) Send(gameID, channel, text string) {
	h.broadcast(gameID, Message{Channel: channel, Text: text})
}

// Reply delivers a player-directed line. Observers see it tagged with the
// player id; a real chat transport would route it privately.
func (h *Hub) Reply(rctx ports.ReplyContext, text string) {
	h.broadcast(rctx.GameID, Message{Channel: "reply", PlayerID: rctx.PlayerID, Text: text})
}

func (h *Hub) broadcast(gameID string, msg Message) {
	h.mu.Lock()
	observers := make([]*observer, 0, len(h.games[gameID]))
	for o := range h.games[gameID] {
		observers = append(observers, o)
	}
	h.mu.Unlock()

	for _, o := range observers {
		if err := o.write(msg); err != nil {
			log.Printf("wshub: game %s: dropping observer: %v", gameID, err)
			h.remove(gameID, o)
		}
	}
}

// Observers reports the live connection count for a game.
func (h *Hub) Observers(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.games[gameID])
}
