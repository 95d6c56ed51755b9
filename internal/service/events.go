package service

import (
	"sync"

	"flowstate/internal/domain"
)

// EventType defines the type of event
type EventType string

const (
	EventStateChanged   EventType = "state_changed"
	EventActionRejected EventType = "action_rejected"
)

// Event represents an event that occurred in the system
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// EventName returns the SSE event name
func (e Event) EventName() string {
	return string(e.Type)
}

// StateChanged is the payload of EventStateChanged
type StateChanged struct {
	Action  string       `json:"action"`
	Version uint64       `json:"version"`
	State   domain.State `json:"state"`
}

// ActionRejected is the payload of EventActionRejected
type ActionRejected struct {
	Action string `json:"action"`
	Error  string `json:"error"`
}

// EventBus allows publishing and subscribing to events
type EventBus struct {
	mu          sync.RWMutex
	subscribers []chan<- Event
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make([]chan<- Event, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (eb *EventBus) Subscribe(ch chan<- Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers = append(eb.subscribers, ch)
}

// Publish sends an event to all subscribers
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	for _, ch := range eb.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber is slow, skip
		}
	}
}
