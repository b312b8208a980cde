// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Game event types
const (
	GameStarted      Type = "game_started"
	BulletFired      Type = "bullet_fired"
	InvaderDestroyed Type = "invader_destroyed"
	DefenderHit      Type = "defender_hit"
	ShieldEroded     Type = "shield_eroded"
	RoundWon         Type = "round_won"
	GameLost         Type = "game_lost"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// SubscriptionID identifies a single Subscribe call.
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine, in subscription order.
type Bus struct {
	handlers map[Type][]subscription
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscription),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})
	return id
}

// Unsubscribe removes the subscription with the given id. It reports whether
// a subscription was removed.
func (b *Bus) Unsubscribe(eventType Type, id SubscriptionID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			return true
		}
	}
	return false
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// ShipEvent describes something that happened to a ship.
type ShipEvent struct {
	BaseEvent
	ShipID  uint64
	Variant string
	Side    string
	X, Y    float64
}

// NewShipEvent creates a new ship event
func NewShipEvent(eventType Type, source interface{}, shipID uint64, variant, side string, x, y float64) *ShipEvent {
	return &ShipEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ShipID:  shipID,
		Variant: variant,
		Side:    side,
		X:       x,
		Y:       y,
	}
}

// ScoreEvent carries the scoreboard after a change.
type ScoreEvent struct {
	BaseEvent
	Score int
	Lives int
	Round int
}

// NewScoreEvent creates a new score event
func NewScoreEvent(eventType Type, source interface{}, score, lives, round int) *ScoreEvent {
	return &ScoreEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Score: score,
		Lives: lives,
		Round: round,
	}
}

// ShieldEvent reports an eroded shield piece.
type ShieldEvent struct {
	BaseEvent
	ShieldID uint64
	PieceID  uint64
	BulletID uint64
}

// NewShieldEvent creates a ShieldEroded event
func NewShieldEvent(source interface{}, shieldID, pieceID, bulletID uint64) *ShieldEvent {
	return &ShieldEvent{
		BaseEvent: BaseEvent{
			EventType: ShieldEroded,
			Source:    source,
		},
		ShieldID: shieldID,
		PieceID:  pieceID,
		BulletID: bulletID,
	}
}
