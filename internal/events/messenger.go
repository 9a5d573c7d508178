package events

import (
	"log"

	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
)

// Messenger is the UI message sink abilities and scripts write to
type Messenger interface {
	AddMessage(text string)
	AddFadeAway(text string, at grid.Point, color string)
}

// BusMessenger publishes UI messages on a Bus so any number of
// presenters (terminal, Discord relay, tests) can pick them up
type BusMessenger struct {
	bus *Bus
}

// NewBusMessenger creates a messenger that emits on the given bus
func NewBusMessenger(bus *Bus) *BusMessenger {
	return &BusMessenger{bus: bus}
}

// AddMessage implements Messenger
func (m *BusMessenger) AddMessage(text string) {
	m.emit(NewMessageEvent(text))
}

// AddFadeAway implements Messenger
func (m *BusMessenger) AddFadeAway(text string, at grid.Point, color string) {
	m.emit(&FadeAwayEvent{
		BaseEvent: BaseEvent{Type: EventTypeFadeAway},
		Text:      text,
		Position:  at,
		Color:     color,
	})
}

// Emit forwards any other event to the bus
func (m *BusMessenger) Emit(event Event) {
	m.emit(event)
}

func (m *BusMessenger) emit(event Event) {
	if m.bus == nil {
		return
	}
	if err := m.bus.Emit(event); err != nil {
		log.Printf("Messenger: failed to emit %s: %v", event.GetType(), err)
	}
}
