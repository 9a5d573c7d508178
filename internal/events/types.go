package events

import (
	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
)

// EventType represents the type of engine event
type EventType string

const (
	// EventTypeMessage is a line for the combat log
	EventTypeMessage EventType = "message"

	// EventTypeFadeAway is floating text shown over a grid position
	EventTypeFadeAway EventType = "fade_away"

	// EventTypeAbilityActivated fires after an ability has been paid for
	EventTypeAbilityActivated EventType = "ability_activated"
)

// Event is the base interface for all engine events
type Event interface {
	GetType() EventType
	IsCancelled() bool
	Cancel()
}

// BaseEvent provides the common implementation for all events
type BaseEvent struct {
	Type      EventType
	Cancelled bool
}

func (e *BaseEvent) GetType() EventType { return e.Type }
func (e *BaseEvent) IsCancelled() bool  { return e.Cancelled }
func (e *BaseEvent) Cancel()            { e.Cancelled = true }

// MessageEvent carries a combat log line
type MessageEvent struct {
	BaseEvent
	Color string
	Text  string
}

// FadeAwayEvent carries floating text anchored to a grid point
type FadeAwayEvent struct {
	BaseEvent
	Text     string
	Position grid.Point
	Color    string
}

// AbilityActivatedEvent is emitted when a creature uses an ability
type AbilityActivatedEvent struct {
	BaseEvent
	ActorName string
	AbilityID string
	APCost    int
}

// NewMessageEvent creates a message event with the default color
func NewMessageEvent(text string) *MessageEvent {
	return &MessageEvent{
		BaseEvent: BaseEvent{Type: EventTypeMessage},
		Text:      text,
	}
}
