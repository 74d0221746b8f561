package stream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"

	"github.com/randalmurphal/promptstream/errors"
	"github.com/randalmurphal/promptstream/notify"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Stream is a re-entrant prompt stream over one Expander.
//
// A Stream is safe for concurrent use; each Next call is a single critical
// section, and notifiers run outside it. One Stream corresponds to one node site in the host graph.
type Stream struct {
	mu sync.Mutex

	id       string
	name     string
	expander Expander
	rng      RandomSource
	logger   *slog.Logger
	notifier notify.Notifier

	template string   // last accepted template, valid when bound
	bound    bool     // whether template has been set
	seq      Sequence // active sequence for template; nil before first use or after expansion failure
	state    State
	stats    Stats
	pending  []notify.Event // raised under mu, delivered after unlock
}

// New creates a Stream that renders with expander and draws from rng.
func New(expander Expander, rng RandomSource, opts ...Option) *Stream {
	s := &Stream{
		expander: expander,
		rng:      rng,
		logger:   slog.Default(),
		state:    StateEmpty,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = newID()
	}
	s.logger = s.logger.With("stream_id", s.id)
	if s.name != "" {
		s.logger = s.logger.With("stream", s.name)
	}
	return s
}

func newID() string {
	id, err := nanoid.Generate(idAlphabet, 12)
	if err != nil {
		return fmt.Sprintf("strm_%d", time.Now().UnixNano())
	}
	return "strm_" + id
}

// ID returns the stream identifier used in logs and events.
func (s *Stream) ID() string {
	return s.id
}

// Next returns the next rendering of template. See NextContext.
func (s *Stream) Next(template string, seed int64) string {
	return s.NextContext(context.Background(), template, seed)
}

// NextContext returns the next rendering of template.
//
// A positive seed reseeds the random source first. A blank template returns
// "" without touching stream state. A template different from the bound one
// replaces the active sequence. When the sequence is exhausted it is recreated
// and pulled exactly once more. The result is "" whenever nothing could be
// rendered; the cause goes to the logger and notifier, never to the caller.
// ctx is only used for event delivery. Events raised by the call are
// delivered after the stream is unlocked, on the caller's goroutine.
func (s *Stream) NextContext(ctx context.Context, template string, seed int64) string {
	s.mu.Lock()
	out := s.next(ctx, template, seed)
	events := s.pending
	s.pending = nil
	s.mu.Unlock()

	s.deliver(ctx, events)
	return out
}

func (s *Stream) next(ctx context.Context, template string, seed int64) (out string) {
	s.stats.Calls++

	defer func() {
		if r := recover(); r != nil {
			s.fail(ctx, notify.EventInvariantViolated, "stream panicked", fmt.Errorf("panic: %v", r))
			out = ""
		}
	}()

	if seed > 0 {
		s.reseed(ctx, uint64(seed))
	}

	if strings.TrimSpace(template) == "" {
		return ""
	}

	if s.hasTemplateChanged(template) {
		if !s.bind(ctx, template) {
			return ""
		}
	}

	if !s.bound {
		s.fail(ctx, notify.EventInvariantViolated, "current template is unset", errors.ErrNoTemplate)
		return ""
	}

	if s.seq == nil {
		// The last expansion for this template failed; try again now.
		return s.recoverSequence(ctx, errors.ErrNoSequence)
	}

	item, err := pull(s.seq)
	if err == nil {
		return s.rendered(item)
	}
	return s.recoverSequence(ctx, err)
}

// HasTemplateChanged reports whether candidate differs from the bound template.
// It is true for any candidate before the first template is bound.
func (s *Stream) HasTemplateChanged(candidate string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasTemplateChanged(candidate)
}

func (s *Stream) hasTemplateChanged(candidate string) bool {
	return !s.bound || s.template != candidate
}

// Template returns the bound template and whether one is bound.
func (s *Stream) Template() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.template, s.bound
}

// State returns the current lifecycle state.
func (s *Stream) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Stats returns a snapshot of the stream counters.
func (s *Stream) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Stream) reseed(ctx context.Context, seed uint64) {
	s.rng.Seed(seed)
	s.stats.Reseeds++
	s.logger.Debug("random source reseeded", "seed", seed)
	s.emit(ctx, notify.Event{
		Type:     notify.EventReseeded,
		Message:  "random source reseeded",
		Severity: notify.SeverityDebug,
		Metadata: map[string]any{"seed": seed},
	})
}

// bind replaces the bound template and its sequence. It reports whether a
// sequence was created.
func (s *Stream) bind(ctx context.Context, template string) bool {
	s.release()
	s.template = template
	s.bound = true

	seq, err := s.expand(template)
	if err != nil {
		s.fail(ctx, notify.EventExpansionFailed, "template expansion failed", err)
		return false
	}
	s.seq = seq

	s.logger.Debug("sequence bound", "template", template)
	s.emit(ctx, notify.Event{
		Type:     notify.EventSequenceBound,
		Message:  "sequence bound to new template",
		Severity: notify.SeverityDebug,
	})
	return true
}

// recoverSequence recreates the sequence for the bound template after cause
// and pulls exactly once more.
func (s *Stream) recoverSequence(ctx context.Context, cause error) string {
	if errors.IsExhausted(cause) {
		s.logger.Debug("sequence exhausted, recreating", "template", s.template)
		s.emit(ctx, notify.Event{
			Type:     notify.EventSequenceExhausted,
			Message:  "sequence exhausted",
			Severity: notify.SeverityDebug,
		})
	} else {
		s.logger.Warn("sequence failed, recreating", "template", s.template, "error", cause)
	}

	s.release()
	s.stats.Recreations++
	seq, err := s.expand(s.template)
	if err != nil {
		s.fail(ctx, notify.EventExpansionFailed, "template expansion failed", err)
		return ""
	}
	s.seq = seq

	item, err := pull(seq)
	if err != nil {
		s.fail(ctx, notify.EventRecoveryFailed, "no more prompts to generate",
			errors.Wrap("recover", s.template, err))
		return ""
	}

	s.emit(ctx, notify.Event{
		Type:     notify.EventSequenceRecreated,
		Message:  "sequence recreated",
		Severity: notify.SeverityInfo,
		Metadata: map[string]any{"cause": cause.Error()},
	})
	return s.rendered(item)
}

func (s *Stream) rendered(item string) string {
	s.state = StateBound
	s.stats.Rendered++
	return item
}

// expand calls the expander, turning panics and nil sequences into errors.
func (s *Stream) expand(template string) (seq Sequence, err error) {
	s.stats.Expansions++
	defer func() {
		if r := recover(); r != nil {
			seq, err = nil, errors.Expansion(template, fmt.Errorf("panic: %v", r))
		}
	}()

	if s.expander == nil {
		return nil, errors.Expansion(template, fmt.Errorf("no expander configured"))
	}
	seq, err = s.expander.Expand(template, s.rng)
	if err != nil {
		return nil, errors.Expansion(template, err)
	}
	if seq == nil {
		return nil, errors.Expansion(template, errors.ErrNoSequence)
	}
	return seq, nil
}

// pull takes one item from seq, turning panics into errors.
func pull(seq Sequence) (item string, err error) {
	defer func() {
		if r := recover(); r != nil {
			item, err = "", fmt.Errorf("pull panicked: %v", r)
		}
	}()
	return seq.Next()
}

// release drops the active sequence, closing it when it holds resources.
func (s *Stream) release() {
	if c, ok := s.seq.(io.Closer); ok {
		_ = c.Close()
	}
	s.seq = nil
}

// fail records a degraded call.
func (s *Stream) fail(ctx context.Context, typ notify.EventType, msg string, err error) {
	s.state = StateDegraded
	s.stats.Failures++

	s.logger.Error(msg, "type", typ, "template", s.template, "error", err)

	event := notify.Event{
		Type:     typ,
		Message:  msg,
		Severity: notify.SeverityError,
	}
	if err != nil {
		event.Error = err.Error()
	}
	s.emit(ctx, event)
}

// emit queues event for delivery once the current call unlocks.
func (s *Stream) emit(_ context.Context, event notify.Event) {
	event.StreamID = s.id
	event.Stream = s.name
	if event.Template == "" {
		event.Template = s.template
	}
	event.Timestamp = time.Now()
	s.pending = append(s.pending, event)
}

// deliver sends events to the notifier. It runs without s.mu held, so a slow
// or re-entrant notifier never blocks other callers of the stream.
func (s *Stream) deliver(ctx context.Context, events []notify.Event) {
	if len(events) == 0 {
		return
	}
	n := s.notifier
	if n == nil {
		n = notify.NotifierFromContext(ctx)
	}
	if n == nil {
		return
	}
	for _, event := range events {
		s.notify(ctx, n, event)
	}
}

func (s *Stream) notify(ctx context.Context, n notify.Notifier, event notify.Event) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("notifier panicked", "event_type", event.Type, "panic", r)
		}
	}()
	if err := n.Notify(ctx, event); err != nil {
		s.logger.Warn("notifier failed", "event_type", event.Type, "error", err)
	}
}
