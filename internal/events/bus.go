package events

import (
	"fmt"
	"log"
	"sort"
	"sync"
)

// EventListener processes events
type EventListener interface {
	HandleEvent(event Event) error
	Priority() int
	ID() string
}

// ListenerFunc adapts a plain function into an EventListener
type ListenerFunc struct {
	Name     string
	Order    int
	Callback func(event Event) error
}

func (l *ListenerFunc) HandleEvent(event Event) error { return l.Callback(event) }
func (l *ListenerFunc) Priority() int                 { return l.Order }
func (l *ListenerFunc) ID() string                    { return l.Name }

// Bus distributes events to listeners in priority order, lowest first
type Bus struct {
	listeners map[EventType][]EventListener
	mu        sync.RWMutex
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[EventType][]EventListener),
	}
}

// Subscribe adds a listener for a specific event type
func (b *Bus) Subscribe(eventType EventType, listener EventListener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	listeners := append(b.listeners[eventType], listener)
	sort.SliceStable(listeners, func(i, j int) bool {
		return listeners[i].Priority() < listeners[j].Priority()
	})
	b.listeners[eventType] = listeners

	log.Printf("EventBus: Subscribed listener %s to event %s with priority %d",
		listener.ID(), eventType, listener.Priority())
}

// Unsubscribe removes a listener by ID
func (b *Bus) Unsubscribe(eventType EventType, listenerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.listeners[eventType][:0]
	for _, l := range b.listeners[eventType] {
		if l.ID() != listenerID {
			kept = append(kept, l)
		}
	}
	b.listeners[eventType] = kept
}

// ListenerCount returns how many listeners are subscribed to an event type
func (b *Bus) ListenerCount(eventType EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[eventType])
}

// Emit sends an event to all registered listeners. A cancelled event stops
// propagating; the first listener error aborts the emit.
func (b *Bus) Emit(event Event) error {
	b.mu.RLock()
	listeners := make([]EventListener, len(b.listeners[event.GetType()]))
	copy(listeners, b.listeners[event.GetType()])
	b.mu.RUnlock()

	for _, listener := range listeners {
		if event.IsCancelled() {
			log.Printf("EventBus: Event %s cancelled, stopping propagation", event.GetType())
			break
		}

		if err := listener.HandleEvent(event); err != nil {
			return fmt.Errorf("listener %s failed: %w", listener.ID(), err)
		}
	}

	return nil
}

// Clear removes all listeners
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = make(map[EventType][]EventListener)
}
