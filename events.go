package ballast

import (
	"github.com/dtholl/ballast/body"
)

const (
	CONTACT_ENTER EventType = iota
	CONTACT_STAY
	CONTACT_EXIT
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// ContactEnterEvent fires on the first tick a pair touches.
type ContactEnterEvent struct {
	BodyA *body.Body
	BodyB *body.Body
}

func (e ContactEnterEvent) Type() EventType { return CONTACT_ENTER }

// ContactStayEvent fires on every subsequent tick the pair keeps touching.
type ContactStayEvent struct {
	BodyA *body.Body
	BodyB *body.Body
}

func (e ContactStayEvent) Type() EventType { return CONTACT_STAY }

// ContactExitEvent fires on the first tick a previously touching pair no
// longer touches.
type ContactExitEvent struct {
	BodyA *body.Body
	BodyB *body.Body
}

func (e ContactExitEvent) Type() EventType { return CONTACT_EXIT }

type pairKey struct {
	bodyA *body.Body
	bodyB *body.Body
}

// makePairKey creates a normalized pair key with consistent ordering. Body
// IDs are stable across the between-tick shuffle, so the same pair maps to
// the same key on every tick.
func makePairKey(bodyA, bodyB *body.Body) pairKey {
	if bodyB.ID < bodyA.ID {
		bodyA, bodyB = bodyB, bodyA
	}
	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

// EventListener - callback for events
type EventListener func(event Event)

// Events tracks which pairs touched during the current tick and turns the
// tick-to-tick difference into Enter/Stay/Exit events, dispatched at the end
// of Step.
type Events struct {
	listeners map[EventType][]EventListener

	buffer []Event

	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
}

func newEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 64),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

// Subscribe adds a listener for an event type.
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// markPair records a touching pair, from the collision scan or the contact
// graph probe. Marking the same pair repeatedly within a tick is harmless.
func (e *Events) markPair(bodyA, bodyB *body.Body) {
	e.currentActivePairs[makePairKey(bodyA, bodyB)] = true
}

// processPairs compares current and previous pairs to detect Enter/Stay/Exit.
func (e *Events) processPairs() {
	for pair := range e.currentActivePairs {
		if e.previousActivePairs[pair] {
			e.buffer = append(e.buffer, ContactStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		} else {
			e.buffer = append(e.buffer, ContactEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	for pair := range e.previousActivePairs {
		if !e.currentActivePairs[pair] {
			e.buffer = append(e.buffer, ContactExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	// Swap for next tick and clear current.
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

// flush sends all buffered events and clears the buffer.
func (e *Events) flush() {
	e.processPairs()

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
