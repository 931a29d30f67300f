package bus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/linanwx/hal9000/logger"
)

const defaultBufferSize = 100

// ErrAlreadyRunning is returned by Run when the loop is already running or has
// been stopped.
var ErrAlreadyRunning = errors.New("bus: run loop already started")

// Handler is a function that handles events.
type Handler func(ctx context.Context, event *Event)

// Subscription represents a subscription to events.
type Subscription struct {
	ID        string
	EventType EventType
	Handler   Handler
}

// Bus queues published events and dispatches them one at a time on the
// goroutine that called Run. Handlers never overlap.
type Bus struct {
	mu            sync.RWMutex
	subscriptions []*Subscription
	subCounter    int64

	seq       uint64 // owned by the Run goroutine
	started   atomic.Bool
	eventChan chan *Event
	done      chan struct{}
	stopOnce  sync.Once
}

// New creates a new event bus.
func New(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &Bus{
		eventChan: make(chan *Event, bufferSize),
		done:      make(chan struct{}),
	}
}

// Subscribe registers a handler for a specific event type. Handlers for the same
// event run in subscription order.
func (b *Bus) Subscribe(eventType EventType, handler Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subCounter++
	id := fmt.Sprintf("sub-%d", b.subCounter)

	b.subscriptions = append(b.subscriptions, &Subscription{
		ID:        id,
		EventType: eventType,
		Handler:   handler,
	})

	logger.Debug("subscription added", "id", id, "eventType", eventType)
	return id
}

// Unsubscribe removes a subscription. Unknown ids are ignored.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscriptions {
		if sub.ID == id {
			b.subscriptions = append(b.subscriptions[:i], b.subscriptions[i+1:]...)
			return
		}
	}
}

// Publish queues an event without blocking. The event is dropped when the
// buffer is full or the bus has been stopped.
func (b *Bus) Publish(event *Event) bool {
	if event == nil {
		return false
	}
	select {
	case <-b.done:
		logger.Warn("bus stopped, event dropped", "type", event.Type)
		return false
	default:
	}

	select {
	case b.eventChan <- event:
		logger.Debug("event published", "type", event.Type, "source", event.Source)
		return true
	default:
		logger.Warn("event buffer full, event dropped", "type", event.Type)
		return false
	}
}

// Send queues an event, waiting for buffer space. It reports false when the
// bus is stopped or ctx is done first.
func (b *Bus) Send(ctx context.Context, event *Event) bool {
	if event == nil {
		return false
	}
	select {
	case <-b.done:
		return false
	default:
	}

	select {
	case b.eventChan <- event:
		logger.Debug("event sent", "type", event.Type, "source", event.Source)
		return true
	case <-b.done:
		return false
	case <-ctx.Done():
		return false
	}
}

// Stop ends the run loop. Events still queued are discarded. Safe to call more
// than once and from any goroutine, including from inside a handler.
func (b *Bus) Stop() {
	b.stopOnce.Do(func() {
		close(b.done)
	})
}

// Done is closed once Stop has been called.
func (b *Bus) Done() <-chan struct{} {
	return b.done
}

// Run dispatches events until ctx is cancelled or Stop is called.
func (b *Bus) Run(ctx context.Context) error {
	if !b.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	for {
		// A stop requested by the previous handler wins over queued events.
		select {
		case <-b.done:
			return nil
		case <-ctx.Done():
			return nil
		default:
		}

		select {
		case event := <-b.eventChan:
			b.dispatch(ctx, event)
		case <-b.done:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

// dispatch stamps the event with the next delivery number and sends it to all
// matching subscribers in order.
func (b *Bus) dispatch(ctx context.Context, event *Event) {
	b.seq++
	event.Seq = b.seq
	b.mu.RLock()
	subs := make([]*Subscription, 0, len(b.subscriptions))
	for _, sub := range b.subscriptions {
		if sub.EventType == event.Type {
			subs = append(subs, sub)
		}
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		b.call(ctx, sub, event)
	}
}

func (b *Bus) call(ctx context.Context, sub *Subscription, event *Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("handler panic", "subscription", sub.ID, "type", event.Type, "panic", r)
		}
	}()
	sub.Handler(ctx, event)
}
