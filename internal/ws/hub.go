package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"rps_webapp/internal/logger"
	"rps_webapp/internal/match"

	"github.com/google/uuid"
)

var ErrAlreadyConnected = errors.New("player already has an open session")

// Hub tracks one live session per player and delivers match events to it.
// It implements match.Notifier; Notify is called with a room lock held so it
// only queues and never waits on the network.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]*Client),
	}
}

func (h *Hub) Register(c *Client) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c.UserID]; ok {
		return ErrAlreadyConnected
	}
	h.clients[c.UserID] = c
	sessionsActive.Inc()
	return nil
}

// Unregister removes c if it is still the player's current session.
func (h *Hub) Unregister(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cur, ok := h.clients[c.UserID]; !ok || cur != c {
		return false
	}
	delete(h.clients, c.UserID)
	sessionsActive.Dec()
	return true
}

func (h *Hub) Connected(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Notify(playerID int64, ev match.Event) {
	err := h.Deliver(playerID, Message{
		Type:    string(ev.Type),
		ID:      uuid.NewString(),
		Payload: ev.Payload,
	})
	if err != nil {
		logger.Debug("event not delivered", "user_id", playerID, "type", ev.Type, "room", ev.Code, "error", err)
	}
}

// Deliver queues msg on the player's session without blocking.
func (h *Hub) Deliver(playerID int64, msg Message) error {
	h.mu.RLock()
	c := h.clients[playerID]
	h.mu.RUnlock()

	if c == nil {
		eventsDropped.WithLabelValues("no_session").Inc()
		return match.ErrTransportDisconnected
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", msg.Type, err)
	}
	if !c.enqueue(data) {
		return match.ErrTransportDisconnected
	}
	return nil
}

// Close ends every open session.
func (h *Hub) Close() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.close()
	}
}
