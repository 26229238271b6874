package events

import (
	"context"
	"sync"

	"fintrack/internal/store"
)

// Handler receives a change notification. Handlers must be fast; slow work
// belongs in the handler's own goroutine.
type Handler func(store.Change)

// Bus delivers store change notifications to subscribers. Delivery is
// at-least-once and unordered across tables; consumers treat every change
// as an invalidation hint, not as state.
type Bus interface {
	Publish(ctx context.Context, change store.Change) error
	Subscribe(handler Handler) (unsubscribe func())
	Close() error
}

// MemoryBus is an in-process Bus for single-instance deployments and tests.
type MemoryBus struct {
	mu       sync.RWMutex
	closed   bool
	nextID   int
	handlers map[int]Handler
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[int]Handler)}
}

func (b *MemoryBus) Publish(_ context.Context, change store.Change) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}
	for _, h := range b.handlers {
		h(change)
	}
	return nil
}

func (b *MemoryBus) Subscribe(handler Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = handler
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}
}

func (b *MemoryBus) Close() error {
	b.mu.Lock()
	b.closed = true
	b.handlers = make(map[int]Handler)
	b.mu.Unlock()
	return nil
}
