package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shcya/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testEvent implements DomainEvent for testing
type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New())}
}

// testHandler records the events it handles
type testHandler struct {
	eventTypes []string
	mu         sync.Mutex
	handled    []shared.DomainEvent
	err        error
	panics     bool
	block      chan struct{}
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.block != nil {
		<-h.block
	}
	if h.panics {
		panic("boom")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestInMemoryEventBus_PublishSynchronous(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("InquirySubmitted")
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("InquirySubmitted"), newTestEvent("InquirySubmitted")))

	assert.Equal(t, 2, handler.count())
}

func TestInMemoryEventBus_SubscribeExplicitTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("Ignored")
	bus.Subscribe(handler, "DSCApplicationSubmitted")

	_ = bus.Publish(context.Background(), newTestEvent("Ignored"), newTestEvent("DSCApplicationSubmitted"))

	assert.Equal(t, 1, handler.count())
}

func TestInMemoryEventBus_HandlerFailuresAreIsolated(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := newTestHandler("InquirySubmitted")
	failing.err = errors.New("mail down")
	panicking := newTestHandler("InquirySubmitted")
	panicking.panics = true
	healthy := newTestHandler("InquirySubmitted")
	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("InquirySubmitted"))

	require.NoError(t, err)
	assert.Equal(t, 1, failing.count())
	assert.Equal(t, 1, healthy.count())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("InquirySubmitted")
	bus.Subscribe(handler)
	_ = bus.Publish(context.Background(), newTestEvent("InquirySubmitted"))

	bus.Unsubscribe(handler)
	_ = bus.Publish(context.Background(), newTestEvent("InquirySubmitted"))

	assert.Equal(t, 1, handler.count())
}

func TestInMemoryEventBus_AsyncDispatch(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop(), WithWorkers(2, 10))
	handler := newTestHandler("JobApplicationSubmitted")
	handler.block = make(chan struct{})
	bus.Subscribe(handler)
	require.NoError(t, bus.Start(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, bus.Publish(ctx, newTestEvent("JobApplicationSubmitted")))
	// Publish returned while the handler is still blocked
	assert.Equal(t, 0, handler.count())
	cancel()
	close(handler.block)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	require.NoError(t, bus.Stop(stopCtx))
	assert.Equal(t, 1, handler.count(), "queued events are drained on stop")
}

func TestInMemoryEventBus_FullQueueFallsBackToSync(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop(), WithWorkers(1, 1))
	blocker := newTestHandler("Slow")
	blocker.block = make(chan struct{})
	counter := newTestHandler("Fast")
	bus.Subscribe(blocker)
	bus.Subscribe(counter)
	require.NoError(t, bus.Start(context.Background()))

	// occupy the worker, then fill the single queue slot
	_ = bus.Publish(context.Background(), newTestEvent("Slow"))
	require.Eventually(t, func() bool { return len(bus.queue) == 0 }, time.Second, time.Millisecond)
	_ = bus.Publish(context.Background(), newTestEvent("Slow"))

	_ = bus.Publish(context.Background(), newTestEvent("Fast"))
	assert.Equal(t, 1, counter.count(), "dispatched inline while the queue is full")

	close(blocker.block)
	require.NoError(t, bus.Stop(context.Background()))
}

func TestInMemoryEventBus_Lifecycle(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop(), WithWorkers(1, 1))
	ctx := context.Background()

	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Stop(ctx))
	require.NoError(t, bus.Stop(ctx))
	assert.ErrorIs(t, bus.Start(ctx), ErrBusStopped)

	// after stop, publishing still reaches handlers synchronously
	handler := newTestHandler("InquirySubmitted")
	bus.Subscribe(handler)
	_ = bus.Publish(ctx, newTestEvent("InquirySubmitted"))
	assert.Equal(t, 1, handler.count())
}

func TestInMemoryEventBus_StopHonoursContext(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop(), WithWorkers(1, 1))
	handler := newTestHandler("Slow")
	handler.block = make(chan struct{})
	bus.Subscribe(handler)
	require.NoError(t, bus.Start(context.Background()))
	_ = bus.Publish(context.Background(), newTestEvent("Slow"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, bus.Stop(ctx), context.DeadlineExceeded)

	close(handler.block)
	bus.wg.Wait()
}
