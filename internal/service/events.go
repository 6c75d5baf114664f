package service

import (
	"encoding/json"
	"sync"
	"time"
)

// EventType labels a server-sent event.
type EventType string

const (
	// EventNotice is a player-directed message (payroll, hire, fire).
	EventNotice EventType = "notice"

	// EventHeartbeat keeps idle streams alive.
	EventHeartbeat EventType = "heartbeat"
)

// Event is one server-sent event.
type Event struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data"`
}

// Format returns the SSE wire form of the event.
func (e *Event) Format() string {
	data, _ := json.Marshal(e.Data)
	return "event: " + string(e.Type) + "\ndata: " + string(data) + "\n\n"
}

// Subscriber is one connected SSE client for one player.
type Subscriber struct {
	ID     string
	Events chan *Event
	Done   chan struct{}
}

// EventHub fans player-directed notices out to SSE subscribers. A player
// may hold several streams at once; each gets every notice. Sends never
// block: a subscriber with a full buffer misses the event.
type EventHub struct {
	mu          sync.RWMutex
	subscribers map[string]map[string]*Subscriber
	heartbeat   *time.Ticker
	done        chan struct{}
}

// NewEventHub creates a hub and starts its heartbeat loop.
func NewEventHub() *EventHub {
	hub := &EventHub{
		subscribers: make(map[string]map[string]*Subscriber),
		done:        make(chan struct{}),
	}
	hub.heartbeat = time.NewTicker(30 * time.Second)
	go hub.sendHeartbeats()
	return hub
}

// Subscribe opens a stream for the player.
func (h *EventHub) Subscribe(playerID, subscriberID string) *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &Subscriber{
		ID:     subscriberID,
		Events: make(chan *Event, 64),
		Done:   make(chan struct{}),
	}
	if h.subscribers[playerID] == nil {
		h.subscribers[playerID] = make(map[string]*Subscriber)
	}
	h.subscribers[playerID][subscriberID] = sub
	return sub
}

// Unsubscribe closes and removes one stream.
func (h *EventHub) Unsubscribe(playerID, subscriberID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	playerSubs, ok := h.subscribers[playerID]
	if !ok {
		return
	}
	if sub, ok := playerSubs[subscriberID]; ok {
		close(sub.Done)
		close(sub.Events)
		delete(playerSubs, subscriberID)
	}
	if len(playerSubs) == 0 {
		delete(h.subscribers, playerID)
	}
}

// NotifyPlayer sends a notice to every stream the player holds. Players
// with no stream miss the notice.
func (h *EventHub) NotifyPlayer(playerID, message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event := &Event{
		Type: EventNotice,
		Data: map[string]string{
			"player":  playerID,
			"message": message,
			"at":      time.Now().UTC().Format(time.RFC3339),
		},
	}
	for _, sub := range h.subscribers[playerID] {
		select {
		case sub.Events <- event:
		default:
		}
	}
}

// SubscriberCount returns how many streams the player holds.
func (h *EventHub) SubscriberCount(playerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[playerID])
}

func (h *EventHub) sendHeartbeats() {
	for {
		select {
		case <-h.heartbeat.C:
			h.mu.RLock()
			event := &Event{
				Type: EventHeartbeat,
				Data: map[string]string{
					"timestamp": time.Now().UTC().Format(time.RFC3339),
				},
			}
			for _, playerSubs := range h.subscribers {
				for _, sub := range playerSubs {
					select {
					case sub.Events <- event:
					default:
					}
				}
			}
			h.mu.RUnlock()
		case <-h.done:
			return
		}
	}
}

// Close stops the heartbeat loop and closes every stream.
func (h *EventHub) Close() {
	close(h.done)
	h.heartbeat.Stop()

	h.mu.Lock()
	defer h.mu.Unlock()
	for playerID, playerSubs := range h.subscribers {
		for _, sub := range playerSubs {
			close(sub.Done)
			close(sub.Events)
		}
		delete(h.subscribers, playerID)
	}
}
