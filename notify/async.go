package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
)

// DefaultAsyncBuffer is the queue size used when NewAsyncNotifier gets a
// non-positive buffer.
const DefaultAsyncBuffer = 64

var (
	// ErrQueueFull is returned when an AsyncNotifier drops an event.
	ErrQueueFull = errors.New("notify: delivery queue full")

	// ErrNotifierClosed is returned by Notify after Close.
	ErrNotifierClosed = errors.New("notify: notifier closed")
)

// AsyncNotifier hands events to a background worker that delivers them to
// Next. Notify never blocks: when the queue is full the event is dropped and
// ErrQueueFull returned.
//
// Deliveries keep the values of the caller's context but not its
// cancellation. Close stops intake, drains the queue and waits for the worker.
type AsyncNotifier struct {
	next   Notifier
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan queuedEvent
	done   chan struct{}

	dropped atomic.Int64
}

type queuedEvent struct {
	ctx   context.Context
	event Event
}

// NewAsyncNotifier starts a worker delivering to next.
func NewAsyncNotifier(next Notifier, buffer int, logger *slog.Logger) *AsyncNotifier {
	if buffer <= 0 {
		buffer = DefaultAsyncBuffer
	}
	if logger == nil {
		logger = slog.Default()
	}
	n := &AsyncNotifier{
		next:   next,
		logger: logger,
		queue:  make(chan queuedEvent, buffer),
		done:   make(chan struct{}),
	}
	go n.run()
	return n
}

// Notify implements Notifier.
func (n *AsyncNotifier) Notify(ctx context.Context, event Event) error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return ErrNotifierClosed
	}

	select {
	case n.queue <- queuedEvent{ctx: context.WithoutCancel(ctx), event: event}:
		return nil
	default:
		n.dropped.Add(1)
		return ErrQueueFull
	}
}

// Dropped returns how many events were discarded because the queue was full.
func (n *AsyncNotifier) Dropped() int64 {
	return n.dropped.Load()
}

// Close stops accepting events and waits until queued ones are delivered.
// It is safe to call more than once.
func (n *AsyncNotifier) Close() error {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	<-n.done
	return nil
}

func (n *AsyncNotifier) run() {
	defer close(n.done)
	for q := range n.queue {
		n.deliver(q)
	}
}

func (n *AsyncNotifier) deliver(q queuedEvent) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Warn("async notifier panicked", "event_type", q.event.Type, "panic", r)
		}
	}()
	if n.next == nil {
		return
	}
	if err := n.next.Notify(q.ctx, q.event); err != nil {
		n.logger.Warn("async delivery failed",
			"error", err,
			"event_type", q.event.Type,
		)
	}
}
