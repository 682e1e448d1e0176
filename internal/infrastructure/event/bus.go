package event

import (
	"context"
	"errors"
	"sync"

	"github.com/shcya/backend/internal/domain/shared"
	"github.com/shcya/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ErrBusStopped is returned by Start after Stop.
var ErrBusStopped = errors.New("event bus stopped")

// InMemoryEventBus implements EventBus with in-memory pub/sub.
//
// Before Start, or when created without workers, Publish dispatches
// synchronously. Once started with workers, events are queued and handled
// in the background so that slow handlers (email) never delay the request
// that produced the event. A full queue falls back to synchronous dispatch.
type InMemoryEventBus struct {
	registry  *HandlerRegistry
	logger    *zap.Logger
	workers   int
	queueSize int

	mu      sync.RWMutex
	queue   chan envelope
	running bool
	stopped bool
	wg      sync.WaitGroup
}

type envelope struct {
	ctx   context.Context
	event shared.DomainEvent
}

// Option configures an InMemoryEventBus
type Option func(*InMemoryEventBus)

// WithWorkers enables asynchronous dispatch with n workers and a queue of queueSize events
func WithWorkers(n, queueSize int) Option {
	return func(b *InMemoryEventBus) {
		b.workers = n
		b.queueSize = queueSize
	}
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger, opts ...Option) *InMemoryEventBus {
	b := &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.queueSize <= 0 {
		b.queueSize = 100
	}
	return b
}

// Publish hands events to all registered handlers. Handler failures are
// logged and never returned to the publisher.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	// handlers outlive the request when dispatched in the background
	detached := context.WithoutCancel(ctx)
	for _, event := range events {
		if b.enqueue(detached, event) {
			continue
		}
		b.dispatch(detached, event)
	}
	return nil
}

func (b *InMemoryEventBus) enqueue(ctx context.Context, event shared.DomainEvent) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.running || b.queue == nil {
		return false
	}
	select {
	case b.queue <- envelope{ctx: ctx, event: event}:
		return true
	default:
		b.logger.Warn("Event queue full, dispatching synchronously",
			zap.String("event_type", event.EventType()),
		)
		return false
	}
}

// Subscribe registers a handler for specific event types
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	// If handler specifies its own event types, use those
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("Handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

// Start launches the workers. Calling Start twice is a no-op.
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return ErrBusStopped
	}
	if b.running {
		return nil
	}
	b.running = true
	if b.workers > 0 {
		b.queue = make(chan envelope, b.queueSize)
		for i := 0; i < b.workers; i++ {
			b.wg.Add(1)
			go b.worker(b.queue)
		}
	}
	b.logger.Info("Event bus started", zap.Int("workers", b.workers))
	return nil
}

// Stop stops accepting queued events and waits for the workers to drain
// the queue, or for ctx to expire.
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.mu.Lock()
	if !b.running {
		b.stopped = true
		b.mu.Unlock()
		return nil
	}
	b.running = false
	b.stopped = true
	if b.queue != nil {
		close(b.queue)
		b.queue = nil
	}
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("Event bus stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *InMemoryEventBus) worker(queue <-chan envelope) {
	defer b.wg.Done()
	for env := range queue {
		b.dispatch(env.ctx, env.event)
	}
}

func (b *InMemoryEventBus) dispatch(ctx context.Context, event shared.DomainEvent) {
	for _, handler := range b.registry.GetHandlers(event.EventType()) {
		if err := b.dispatchToHandler(ctx, handler, event); err != nil {
			b.logger.Error("Handler failed to process event",
				zap.String("request_id", logger.GetRequestID(ctx)),
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()),
				zap.Error(err),
			)
		}
	}
}

// dispatchToHandler safely dispatches an event to a handler
func (b *InMemoryEventBus) dispatchToHandler(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Handler panicked",
				zap.String("event_type", event.EventType()),
				zap.Any("panic", r),
			)
		}
	}()

	return handler.Handle(ctx, event)
}

// Ensure InMemoryEventBus implements EventBus
var _ shared.EventBus = (*InMemoryEventBus)(nil)
