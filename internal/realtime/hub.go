package realtime

import (
	"sync"
)

// Client represents a single websocket client connection.
// The actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active user connections and broadcasts post events to them.
// It is constructed at the composition root and injected, like the cache.
type Hub struct {
	mu              sync.RWMutex
	userIDToClients map[uint]map[Client]struct{}
}

// NewHub constructs an empty hub.
func NewHub() *Hub {
	return &Hub{
		userIDToClients: make(map[uint]map[Client]struct{}),
	}
}

// Register adds a client under a user ID.
func (h *Hub) Register(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.userIDToClients[userID]; !ok {
		h.userIDToClients[userID] = make(map[Client]struct{})
	}
	h.userIDToClients[userID][client] = struct{}{}
}

// Unregister removes a client; if the user has no more clients, cleans up the map.
func (h *Hub) Unregister(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.userIDToClients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userIDToClients, userID)
		}
	}
}

// Broadcast sends a message to all clients of a user.
func (h *Hub) Broadcast(userID uint, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.userIDToClients[userID] {
		if ok := c.Send(message); !ok {
			// client write failed; the handler cleans it up on its side
		}
	}
}
