package testutil

import (
	"context"
	"sync"

	"github.com/randalmurphal/promptstream/notify"
)

// RecordingNotifier keeps every event it receives.
type RecordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

// Notify implements notify.Notifier.
func (r *RecordingNotifier) Notify(ctx context.Context, event notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of the recorded events.
func (r *RecordingNotifier) Events() []notify.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Event(nil), r.events...)
}

// Types returns the recorded event types in order.
func (r *RecordingNotifier) Types() []notify.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]notify.EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}

// Count returns how many events of type typ were recorded.
func (r *RecordingNotifier) Count(typ notify.EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

// Reset discards recorded events.
func (r *RecordingNotifier) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
