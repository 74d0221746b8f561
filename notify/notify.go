package notify

import (
	"context"
	"time"
)

// =============================================================================
// Event Types
// =============================================================================

// EventType represents the kind of stream condition being reported.
type EventType string

// Event type constants.
const (
	EventSequenceBound     EventType = "sequence_bound"
	EventSequenceExhausted EventType = "sequence_exhausted"
	EventSequenceRecreated EventType = "sequence_recreated"
	EventRecoveryFailed    EventType = "recovery_failed"
	EventExpansionFailed   EventType = "expansion_failed"
	EventInvariantViolated EventType = "invariant_violated"
	EventReseeded          EventType = "reseeded"
)

// Severity constants, ordered from least to most severe.
const (
	SeverityDebug   = "debug"
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// severityRank orders severities for filtering. Unknown severities rank as info.
func severityRank(s string) int {
	switch s {
	case SeverityDebug:
		return 0
	case SeverityWarning:
		return 2
	case SeverityError:
		return 3
	default:
		return 1
	}
}

// Event describes a stream condition.
type Event struct {
	Type      EventType      `json:"type"`
	StreamID  string         `json:"stream_id"`
	Stream    string         `json:"stream,omitempty"` // human-readable stream name
	Template  string         `json:"template,omitempty"`
	Message   string         `json:"message"`
	Severity  string         `json:"severity"`
	Error     string         `json:"error,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// =============================================================================
// Notifier Interface
// =============================================================================

// Notifier receives stream events.
type Notifier interface {
	// Notify delivers an event. Implementations must not panic; callers
	// log returned errors and carry on.
	Notify(ctx context.Context, event Event) error
}

// =============================================================================
// Context Injection
// =============================================================================

type serviceContextKey string

const notifierServiceKey serviceContextKey = "promptstream.notifier"

// WithNotifier adds a Notifier to the context.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, notifierServiceKey, n)
}

// NotifierFromContext extracts the Notifier from context.
// Returns nil if no notifier is configured.
func NotifierFromContext(ctx context.Context) Notifier {
	if n, ok := ctx.Value(notifierServiceKey).(Notifier); ok {
		return n
	}
	return nil
}
