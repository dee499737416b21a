// Package notify is the process-wide queue of ephemeral user messages.
// Controllers push outcomes here; the application root subscribes at mount
// and unsubscribes at teardown. Entries self-expire after a fixed duration.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

const DefaultTTL = 4000 * time.Millisecond

type Notification struct {
	ID      string
	Message string
	Kind    Kind
}

type Hub struct {
	mu     sync.Mutex
	ttl    time.Duration
	queue  []Notification
	timers map[string]*time.Timer
	subs   map[chan Notification]bool
	closed bool
}

func NewHub(ttl time.Duration) *Hub {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Hub{
		ttl:    ttl,
		timers: map[string]*time.Timer{},
		subs:   map[chan Notification]bool{},
	}
}

// Notify appends a message to the queue, fans it out to subscribers, and
// schedules its expiry. The returned id allows early dismissal.
func (h *Hub) Notify(message string, kind Kind) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ""
	}

	n := Notification{ID: uuid.NewString(), Message: message, Kind: kind}
	h.queue = append(h.queue, n)
	h.timers[n.ID] = time.AfterFunc(h.ttl, func() { h.Dismiss(n.ID) })

	for ch := range h.subs {
		select {
		case ch <- n:
		default: // slow subscriber, drop rather than block
		}
	}
	return n.ID
}

func (h *Hub) Success(message string) string { return h.Notify(message, KindSuccess) }
func (h *Hub) Error(message string) string   { return h.Notify(message, KindError) }
func (h *Hub) Info(message string) string    { return h.Notify(message, KindInfo) }

// Dismiss removes a notification before its timer fires. Unknown ids are
// ignored, so expiry and manual dismissal can race safely.
func (h *Hub) Dismiss(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if timer, ok := h.timers[id]; ok {
		timer.Stop()
		delete(h.timers, id)
	}
	for i, n := range h.queue {
		if n.ID == id {
			h.queue = append(h.queue[:i], h.queue[i+1:]...)
			break
		}
	}
}

// Active returns the live notifications in arrival order.
func (h *Hub) Active() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Notification, len(h.queue))
	copy(out, h.queue)
	return out
}

// Subscribe registers a listener for new notifications. The channel is
// buffered; a subscriber that stops draining misses messages instead of
// blocking publishers.
func (h *Hub) Subscribe() chan Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan Notification, 16)
	if h.closed {
		close(ch)
		return ch
	}
	h.subs[ch] = true
	return ch
}

func (h *Hub) Unsubscribe(ch chan Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[ch] {
		delete(h.subs, ch)
		close(ch)
	}
}

// Close stops all timers and closes every subscriber channel. Further
// Notify calls are no-ops.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, timer := range h.timers {
		timer.Stop()
		delete(h.timers, id)
	}
	h.queue = nil
	for ch := range h.subs {
		close(ch)
		delete(h.subs, ch)
	}
}
