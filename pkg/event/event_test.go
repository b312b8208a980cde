// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"
)

func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus() returned nil")
	}
	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}
	if bus.nextID != 1 {
		t.Errorf("expected nextID to be 1, got %d", bus.nextID)
	}
}

func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{"GameStarted event", GameStarted, "game"},
		{"RoundWon event", RoundWon, 123},
		{"Empty source", GameLost, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &BaseEvent{EventType: tt.eventType, Source: tt.source}
			if event.GetType() != tt.eventType {
				t.Errorf("GetType() = %v, want %v", event.GetType(), tt.eventType)
			}
			if event.GetSource() != tt.source {
				t.Errorf("GetSource() = %v, want %v", event.GetSource(), tt.source)
			}
		})
	}
}

func TestBusSubscribe_MultipleHandlers_DistinctIDs(t *testing.T) {
	bus := NewEventBus()
	noop := func(Event) {}

	id1 := bus.Subscribe(BulletFired, noop)
	id2 := bus.Subscribe(BulletFired, noop)
	id3 := bus.Subscribe(GameLost, noop)

	if id1 == id2 || id2 == id3 || id1 == id3 {
		t.Errorf("subscription ids not unique: %d %d %d", id1, id2, id3)
	}
	if got := len(bus.handlers[BulletFired]); got != 2 {
		t.Errorf("expected 2 BulletFired handlers, got %d", got)
	}
}

func TestBusPublish_WithSubscribers_CallsHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var calls []string

	bus.Subscribe(InvaderDestroyed, func(Event) { calls = append(calls, "first") })
	bus.Subscribe(InvaderDestroyed, func(Event) { calls = append(calls, "second") })
	bus.Subscribe(DefenderHit, func(Event) { calls = append(calls, "wrong type") })

	bus.Publish(NewShipEvent(InvaderDestroyed, "test", 7, "grunt", "invader", 1, 2))

	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("handler calls = %v, want [first second]", calls)
	}
}

func TestBusPublish_NoSubscribers_NoError(t *testing.T) {
	bus := NewEventBus()
	bus.Publish(&BaseEvent{EventType: GameStarted})
}

func TestBusUnsubscribe_ValidSubscription_RemovesHandler(t *testing.T) {
	bus := NewEventBus()
	called := map[string]int{}

	keep := bus.Subscribe(ShieldEroded, func(Event) { called["keep"]++ })
	drop := bus.Subscribe(ShieldEroded, func(Event) { called["drop"]++ })

	if !bus.Unsubscribe(ShieldEroded, drop) {
		t.Fatal("Unsubscribe() = false for a live subscription")
	}
	if bus.Unsubscribe(ShieldEroded, drop) {
		t.Error("Unsubscribe() = true for an already removed subscription")
	}
	if bus.Unsubscribe(GameLost, keep) {
		t.Error("Unsubscribe() removed a subscription under the wrong type")
	}

	bus.Publish(NewShieldEvent("test", 1, 2, 3))

	if called["keep"] != 1 || called["drop"] != 0 {
		t.Errorf("calls after unsubscribe = %v", called)
	}
}

func TestBusSubscribe_ConcurrentAccess_ThreadSafe(t *testing.T) {
	bus := NewEventBus()
	var wg sync.WaitGroup
	var mu sync.Mutex
	handlerCount := 0

	handler := func(Event) {
		mu.Lock()
		handlerCount++
		mu.Unlock()
	}

	numGoroutines := 10
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			bus.Subscribe(BulletFired, handler)
		}()
	}
	wg.Wait()

	wg.Add(3)
	for i := 0; i < 3; i++ {
		go func() {
			defer wg.Done()
			bus.Publish(&BaseEvent{EventType: BulletFired})
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if handlerCount != numGoroutines*3 {
		t.Errorf("expected %d handler calls, got %d", numGoroutines*3, handlerCount)
	}
}

func TestNewShipEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	event := NewShipEvent(DefenderHit, "game", 1, "defender", "defender", 88.4, 230)

	if event.GetType() != DefenderHit {
		t.Errorf("type = %v", event.GetType())
	}
	if event.ShipID != 1 || event.Variant != "defender" || event.Side != "defender" {
		t.Errorf("unexpected event fields: %+v", event)
	}
	if event.X != 88.4 || event.Y != 230 {
		t.Errorf("position = (%v, %v)", event.X, event.Y)
	}
}

func TestNewScoreEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	event := NewScoreEvent(RoundWon, nil, 990, 3, 2)

	if event.GetType() != RoundWon || event.Score != 990 || event.Lives != 3 || event.Round != 2 {
		t.Errorf("unexpected score event: %+v", event)
	}
}

func TestNewShieldEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	event := NewShieldEvent("game", 4, 40, 400)

	if event.GetType() != ShieldEroded {
		t.Errorf("type = %v, want %v", event.GetType(), ShieldEroded)
	}
	if event.ShieldID != 4 || event.PieceID != 40 || event.BulletID != 400 {
		t.Errorf("unexpected shield event: %+v", event)
	}
}

func TestEventTypes_Constants_AllDistinct(t *testing.T) {
	types := []Type{GameStarted, BulletFired, InvaderDestroyed, DefenderHit, ShieldEroded, RoundWon, GameLost}
	seen := map[Type]bool{}
	for _, typ := range types {
		if typ == "" {
			t.Error("empty event type constant")
		}
		if seen[typ] {
			t.Errorf("duplicate event type %q", typ)
		}
		seen[typ] = true
	}
}
