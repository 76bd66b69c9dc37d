package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"shearbook/models"
)

// Conn is the subset of *websocket.Conn the hub needs. Tests substitute
// an in-memory implementation.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub fans slot updates out to feed subscribers. Subscriptions are
// keyed by (shop, date, employeeKey); a subscriber handle is returned
// on subscribe and must be released on every exit path, so no stale
// view keeps receiving updates.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string][]Conn
	logger      *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subscribers: make(map[string][]Conn),
		logger:      logger,
	}
}

// FeedKey builds the subscription key for a shop/date/employee feed.
func FeedKey(shopID, date, employeeKey string) string {
	return shopID + "|" + date + "|" + employeeKey
}

// Subscription is an explicit handle owned by the subscribing context.
type Subscription struct {
	hub  *Hub
	key  string
	conn Conn
}

// Subscribe registers a connection under the given key and returns the
// handle used to tear it down.
func (h *Hub) Subscribe(key string, c Conn) *Subscription {
	h.mu.Lock()
	h.subscribers[key] = append(h.subscribers[key], c)
	h.mu.Unlock()
	return &Subscription{hub: h, key: key, conn: c}
}

// Close removes the subscription and closes the connection. Safe to
// call on every exit path; repeated calls are harmless.
func (s *Subscription) Close() {
	h := s.hub
	h.mu.Lock()
	conns := h.subscribers[s.key]
	next := make([]Conn, 0, len(conns))
	for _, c := range conns {
		if c != s.conn {
			next = append(next, c)
		}
	}
	if len(next) == 0 {
		delete(h.subscribers, s.key)
	} else {
		h.subscribers[s.key] = next
	}
	h.mu.Unlock()
	_ = s.conn.Close()
}

// Publish broadcasts a slot update to subscribers of the matching feed.
// Connections that fail to write are dropped from the subscriber list.
func (h *Hub) Publish(u models.SlotUpdate) {
	payload, err := json.Marshal(u)
	if err != nil {
		h.logger.Error("failed to marshal slot update", zap.Error(err))
		return
	}

	key := FeedKey(u.ShopID, u.Date, u.EmployeeKey)

	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.subscribers[key]
	next := conns[:0]
	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, payload); err == nil {
			next = append(next, c)
		} else {
			_ = c.Close()
		}
	}
	if len(next) == 0 {
		delete(h.subscribers, key)
	} else {
		h.subscribers[key] = next
	}
}

// SubscriberCount reports how many connections are attached to a key.
func (h *Hub) SubscriberCount(key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers[key])
}
