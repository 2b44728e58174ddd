package eventbus

import (
	"log/slog"
	"runtime/debug"
	"sync"

	"tabpager/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSelectionChanged     = domain.EventSelectionChanged
	EventTransitionStarted    = domain.EventTransitionStarted
	EventTransitionProgressed = domain.EventTransitionProgressed
	EventTransitionEnded      = domain.EventTransitionEnded
	EventWindowExtended       = domain.EventWindowExtended
	EventWindowReloaded       = domain.EventWindowReloaded
	EventItemsCleared         = domain.EventItemsCleared
	EventMenuOffsetChanged    = domain.EventMenuOffsetChanged
	EventOptionsApplied       = domain.EventOptionsApplied
	EventError                = domain.EventError
)

// Re-export domain event types
type SelectionChangedEvent = domain.SelectionChangedEvent
type TransitionStartedEvent = domain.TransitionStartedEvent
type TransitionProgressedEvent = domain.TransitionProgressedEvent
type TransitionEndedEvent = domain.TransitionEndedEvent
type WindowExtendedEvent = domain.WindowExtendedEvent
type WindowReloadedEvent = domain.WindowReloadedEvent
type ItemsClearedEvent = domain.ItemsClearedEvent
type MenuOffsetChangedEvent = domain.MenuOffsetChangedEvent
type OptionsAppliedEvent = domain.OptionsAppliedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus. Events are informational
// fan-out for hosts and logging; navigation state never mutates through
// the bus, so ordering between handlers and state is not load-bearing.
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type registration struct {
	id      int
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	nextID    int
	handlers  map[EventType][]registration
	eventChan chan DomainEvent
	quit      chan struct{}
	wg        sync.WaitGroup
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]registration),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	switch event.Type() {
	case EventTransitionProgressed, EventMenuOffsetChanged:
		// Per-frame events, too frequent to log
	default:
		slog.Debug("eventbus publish", "event", event.Type())
	}

	select {
	case b.eventChan <- event:
	default:
		slog.Warn("event bus channel full, dropping event", "event", event.Type())
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		regs := b.handlers[eventType]
		for i, r := range regs {
			if r.id == id {
				b.handlers[eventType] = append(regs[:i], regs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher and discards queued events.
func (b *bus) Close() {
	close(b.quit)
	b.wg.Wait()
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			regs := b.handlers[event.Type()]
			regsCopy := make([]registration, len(regs))
			copy(regsCopy, regs)
			b.mu.RUnlock()

			for _, r := range regsCopy {
				func(h EventHandler, eventType EventType) {
					defer func() {
						if rec := recover(); rec != nil {
							slog.Error("event handler panic",
								"event", eventType, "panic", rec, "stack", string(debug.Stack()))
						}
					}()
					h(event)
				}(r.handler, event.Type())
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
					// Discard event
				default:
					return
				}
			}
		}
	}
}
