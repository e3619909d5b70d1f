package memory

import (
	"context"
	"sync"

	"gatelab/pkg/domain"
	"gatelab/pkg/ports"
)

// EventBus implements EventBus with in-process handlers. The harness is a
// single process, so no broker is involved; handlers run asynchronously.
type EventBus struct {
	subscribers map[string][]ports.EventHandler
	mu          sync.RWMutex
}

// NewEventBus creates a new in-memory event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]ports.EventHandler),
	}
}

// Publish delivers an event to all subscribers of a topic
func (e *EventBus) Publish(ctx context.Context, topic string, event domain.Event) error {
	e.mu.RLock()
	handlers := make([]ports.EventHandler, len(e.subscribers[topic]))
	copy(handlers, e.subscribers[topic])
	e.mu.RUnlock()

	for _, handler := range handlers {
		if handler == nil {
			continue
		}
		go func(h ports.EventHandler) {
			// handler errors are the handler's problem
			_ = h(ctx, event)
		}(handler)
	}

	return nil
}

// Subscribe registers a handler for a topic until ctx is cancelled
func (e *EventBus) Subscribe(ctx context.Context, topic string, handler ports.EventHandler) error {
	e.mu.Lock()
	e.subscribers[topic] = append(e.subscribers[topic], handler)
	idx := len(e.subscribers[topic]) - 1
	e.mu.Unlock()

	go func() {
		<-ctx.Done()
		e.unsubscribe(topic, idx)
	}()

	return nil
}

// Close clears all subscriptions
func (e *EventBus) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.subscribers = make(map[string][]ports.EventHandler)
	return nil
}

// unsubscribe disables the handler at idx without shifting later indexes
func (e *EventBus) unsubscribe(topic string, idx int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	handlers := e.subscribers[topic]
	if idx < len(handlers) {
		handlers[idx] = nil
	}
}
