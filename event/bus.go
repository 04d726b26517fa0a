package event

import (
	"context"
	"log"
	"sync"
)

// EventHandler reacts to a published event.
type EventHandler func(ctx context.Context, event Event) error

// EventBus distributes probe events to subscribed handlers.
type EventBus interface {
	// Publish delivers an event to every matching handler.
	Publish(ctx context.Context, event Event) error
	// Subscribe registers a handler for one event type.
	Subscribe(eventType EventType, handler EventHandler) error
	// SubscribeAll registers a handler for every event.
	SubscribeAll(handler EventHandler) error
}

// MemoryEventBus is a synchronous in-memory event bus.
type MemoryEventBus struct {
	mu          sync.RWMutex
	handlers    map[EventType][]EventHandler
	allHandlers []EventHandler
	logger      Logger
}

// Logger is the minimal logging interface the bus needs.
type Logger interface {
	Printf(format string, v ...any)
}

type defaultLogger struct{}

func (l *defaultLogger) Printf(format string, v ...any) {
	log.Printf(format, v...)
}

// MemoryEventBusOption configures a MemoryEventBus.
type MemoryEventBusOption func(*MemoryEventBus)

// WithLogger sets a custom logger for the event bus.
func WithLogger(logger Logger) MemoryEventBusOption {
	return func(b *MemoryEventBus) {
		b.logger = logger
	}
}

// NewMemoryEventBus creates a new in-memory event bus.
func NewMemoryEventBus(opts ...MemoryEventBusOption) *MemoryEventBus {
	bus := &MemoryEventBus{
		handlers:    make(map[EventType][]EventHandler),
		allHandlers: make([]EventHandler, 0),
		logger:      &defaultLogger{},
	}

	for _, opt := range opts {
		opt(bus)
	}

	return bus
}

// Publish publishes an event to all subscribed handlers.
// Handler errors are logged but never interrupt the probe run.
func (b *MemoryEventBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	// Copy handlers to avoid holding the lock during execution
	typeHandlers := make([]EventHandler, len(b.handlers[event.Type]))
	copy(typeHandlers, b.handlers[event.Type])
	allHandlers := make([]EventHandler, len(b.allHandlers))
	copy(allHandlers, b.allHandlers)
	b.mu.RUnlock()

	for _, handler := range typeHandlers {
		b.executeHandler(ctx, handler, event)
	}
	for _, handler := range allHandlers {
		b.executeHandler(ctx, handler, event)
	}

	return nil
}

// executeHandler executes a single handler and logs any errors.
// Panics are contained so a misbehaving observer cannot abort a run.
func (b *MemoryEventBus) executeHandler(ctx context.Context, handler EventHandler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Printf("[EventBus] handler panic for event %s: %v", event.Type, r)
		}
	}()

	if err := handler(ctx, event); err != nil {
		b.logger.Printf("[EventBus] handler error for event %s (tx=%s): %v", event.Type, event.TransactionID, err)
	}
}

// Subscribe subscribes a handler to a specific event type.
// Multiple handlers can be registered for the same event type.
func (b *MemoryEventBus) Subscribe(eventType EventType, handler EventHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
	return nil
}

// SubscribeAll subscribes a handler to all events.
func (b *MemoryEventBus) SubscribeAll(handler EventHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.allHandlers = append(b.allHandlers, handler)
	return nil
}

// Unsubscribe removes all handlers for a specific event type.
func (b *MemoryEventBus) Unsubscribe(eventType EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.handlers, eventType)
}

// UnsubscribeAll removes every registered handler.
func (b *MemoryEventBus) UnsubscribeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers = make(map[EventType][]EventHandler)
	b.allHandlers = make([]EventHandler, 0)
}

// HandlerCount returns the number of handlers for a specific event type.
func (b *MemoryEventBus) HandlerCount(eventType EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.handlers[eventType])
}

// AllHandlerCount returns the number of all-event handlers.
func (b *MemoryEventBus) AllHandlerCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.allHandlers)
}

// NoOpEventBus discards every event. Useful when observation is disabled.
type NoOpEventBus struct{}

var _ EventBus = (*NoOpEventBus)(nil)

func (NoOpEventBus) Publish(ctx context.Context, event Event) error            { return nil }
func (NoOpEventBus) Subscribe(eventType EventType, handler EventHandler) error { return nil }
func (NoOpEventBus) SubscribeAll(handler EventHandler) error                   { return nil }
