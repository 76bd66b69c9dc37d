package realtime

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"shearbook/models"
)

// memConn records written messages in place of a real websocket.
type memConn struct {
	mu       sync.Mutex
	messages [][]byte
	writeErr error
	closed   bool
}

func (c *memConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	c.messages = append(c.messages, cp)
	return nil
}

func (c *memConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *memConn) received() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func (c *memConn) lastUpdate(t *testing.T) models.SlotUpdate {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		t.Fatal("no messages received")
	}
	var u models.SlotUpdate
	if err := json.Unmarshal(c.messages[len(c.messages)-1], &u); err != nil {
		t.Fatalf("unmarshal update: %v", err)
	}
	return u
}

func testUpdate(blocked bool) models.SlotUpdate {
	return models.SlotUpdate{
		ShopID:  "acme-cuts",
		Date:    "2025-03-01",
		Time:    "09:00",
		Blocked: blocked,
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(zap.NewNop())
	key := FeedKey("acme-cuts", "2025-03-01", "")

	a, b := &memConn{}, &memConn{}
	subA := hub.Subscribe(key, a)
	defer subA.Close()
	subB := hub.Subscribe(key, b)
	defer subB.Close()

	hub.Publish(testUpdate(true))

	for _, c := range []*memConn{a, b} {
		if c.received() != 1 {
			t.Fatalf("subscriber received %d messages, want 1", c.received())
		}
		u := c.lastUpdate(t)
		if !u.Blocked || u.Time != "09:00" {
			t.Errorf("update = %+v, want blocked 09:00", u)
		}
	}
}

func TestHubKeysIsolateFeeds(t *testing.T) {
	hub := NewHub(zap.NewNop())

	sameDay := &memConn{}
	otherDay := &memConn{}
	otherEmployee := &memConn{}
	defer hub.Subscribe(FeedKey("acme-cuts", "2025-03-01", ""), sameDay).Close()
	defer hub.Subscribe(FeedKey("acme-cuts", "2025-03-02", ""), otherDay).Close()
	defer hub.Subscribe(FeedKey("acme-cuts", "2025-03-01", "jane"), otherEmployee).Close()

	hub.Publish(testUpdate(true))

	if sameDay.received() != 1 {
		t.Errorf("matching subscriber received %d, want 1", sameDay.received())
	}
	if otherDay.received() != 0 {
		t.Errorf("other-day subscriber received %d, want 0", otherDay.received())
	}
	if otherEmployee.received() != 0 {
		t.Errorf("other-employee subscriber received %d, want 0", otherEmployee.received())
	}
}

func TestSubscriptionClose(t *testing.T) {
	hub := NewHub(zap.NewNop())
	key := FeedKey("acme-cuts", "2025-03-01", "")

	a, b := &memConn{}, &memConn{}
	subA := hub.Subscribe(key, a)
	subB := hub.Subscribe(key, b)

	subA.Close()
	if !a.closed {
		t.Error("closed subscription left its connection open")
	}
	if n := hub.SubscriberCount(key); n != 1 {
		t.Fatalf("subscriber count after close = %d, want 1", n)
	}

	hub.Publish(testUpdate(false))
	if a.received() != 0 {
		t.Errorf("closed subscriber received %d messages, want 0", a.received())
	}
	if b.received() != 1 {
		t.Errorf("remaining subscriber received %d messages, want 1", b.received())
	}

	// Double close is harmless.
	subA.Close()
	subB.Close()
	if n := hub.SubscriberCount(key); n != 0 {
		t.Errorf("subscriber count after teardown = %d, want 0", n)
	}
}

func TestHubDropsFailingConnections(t *testing.T) {
	hub := NewHub(zap.NewNop())
	key := FeedKey("acme-cuts", "2025-03-01", "")

	healthy := &memConn{}
	broken := &memConn{writeErr: errors.New("broken pipe")}
	defer hub.Subscribe(key, healthy).Close()
	hub.Subscribe(key, broken)

	hub.Publish(testUpdate(true))

	if !broken.closed {
		t.Error("failing connection was not closed")
	}
	if n := hub.SubscriberCount(key); n != 1 {
		t.Errorf("subscriber count after failed write = %d, want 1", n)
	}

	hub.Publish(testUpdate(false))
	if healthy.received() != 2 {
		t.Errorf("healthy subscriber received %d messages, want 2", healthy.received())
	}
}

func TestHubConcurrentPublish(t *testing.T) {
	hub := NewHub(zap.NewNop())
	key := FeedKey("acme-cuts", "2025-03-01", "")

	c := &memConn{}
	defer hub.Subscribe(key, c).Close()

	const publishers = 25
	var wg sync.WaitGroup
	for i := 0; i < publishers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hub.Publish(testUpdate(i%2 == 0))
		}(i)
	}
	wg.Wait()

	if c.received() != publishers {
		t.Errorf("subscriber received %d messages, want %d", c.received(), publishers)
	}
}
