package ws

import (
	"encoding/json"
	"sync"

	"four-in-a-row/internal/protocol"

	"github.com/rs/zerolog/log"
)

const sendBuffer = 32

type Client struct {
	id   string
	send chan []byte
}

// Hub tracks live connections by id and fans events out to them.
// Notify never blocks: a client whose buffer is full loses the event.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{clients: map[string]*Client{}}
}

func (h *Hub) register(id string) *Client {
	c := &Client{id: id, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[id] = c
	h.mu.Unlock()
	return c
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cur, ok := h.clients[c.id]; ok && cur == c {
		delete(h.clients, c.id)
		close(c.send)
	}
}

func (h *Hub) Notify(connID string, ev protocol.Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("type", ev.EventType()).Msg("event_marshal_failed")
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	c := h.clients[connID]
	if c == nil {
		return
	}
	select {
	case c.send <- msg:
	default:
		log.Warn().Str("conn_id", connID).Str("type", ev.EventType()).Msg("send_buffer_full")
	}
}

func (h *Hub) Connected(connID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[connID]
	return ok
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// CloseAll drops every connection; their write loops close the sockets.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
	}
}
