package websocket

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	// ErrClientClosed is returned when sending to a closed client
	ErrClientClosed = errors.New("client is closed")
	// ErrClientTooSlow is returned when a client's send buffer is full
	ErrClientTooSlow = errors.New("client send buffer is full")
)

// Subscriber is a connection the hub pushes encoded events to
type Subscriber interface {
	ID() string
	// Send queues data without blocking
	Send(data []byte) error
	Close() error
}

// Hub fans settings events out to every connected planner screen.
// There is one user, so every subscriber gets every event. The latest event is
// kept and replayed to screens that connect later.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]Subscriber
	seq         uint64
	latest      []byte
}

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]Subscriber)}
}

// Register adds a subscriber and replays the latest event to it. The replay is
// queued under the lock so no later event can overtake it.
func (h *Hub) Register(s Subscriber) {
	h.mu.Lock()
	h.subscribers[s.ID()] = s
	var err error
	if h.latest != nil {
		err = s.Send(h.latest)
	}
	h.mu.Unlock()

	log.Debug().Str("client_id", s.ID()).Msg("WebSocket client registered")

	if err != nil {
		h.drop(s, err)
	}
}

// Unregister removes a subscriber; unknown subscribers are ignored
func (h *Hub) Unregister(s Subscriber) {
	h.mu.Lock()
	current, ok := h.subscribers[s.ID()]
	ok = ok && current == s
	if ok {
		delete(h.subscribers, s.ID())
	}
	h.mu.Unlock()

	if ok {
		log.Debug().Str("client_id", s.ID()).Msg("WebSocket client unregistered")
	}
}

// Publish stamps the event with the next sequence number and queues it on every
// subscriber in sequence order. A subscriber that cannot take the event is dropped.
func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	h.seq++
	event.Seq = h.seq
	data, err := json.Marshal(event)
	if err != nil {
		h.mu.Unlock()
		log.Error().Err(err).Str("event_type", event.Type).Msg("Failed to encode event")
		return
	}
	h.latest = data

	var failed []Subscriber
	var reasons []error
	for _, s := range h.subscribers {
		if err := s.Send(data); err != nil {
			failed = append(failed, s)
			reasons = append(reasons, err)
		}
	}
	delivered := len(h.subscribers) - len(failed)
	h.mu.Unlock()

	for i, s := range failed {
		h.drop(s, reasons[i])
	}

	log.Debug().
		Str("event_type", event.Type).
		Uint64("seq", event.Seq).
		Int("client_count", delivered).
		Msg("Published event")
}

// ClientCount returns the number of connected subscribers
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

func (h *Hub) drop(s Subscriber, reason error) {
	log.Warn().Err(reason).Str("client_id", s.ID()).Msg("Dropping WebSocket client")
	h.Unregister(s)
	_ = s.Close()
}
