package notify

import (
	"context"
	"log/slog"
)

// =============================================================================
// MultiNotifier
// =============================================================================

// MultiNotifier sends events to multiple notifiers.
type MultiNotifier struct {
	Notifiers []Notifier
	Logger    *slog.Logger
}

// NewMultiNotifier creates a notifier that fans out to multiple notifiers.
// Nil entries are skipped. Errors from individual notifiers are logged but
// don't stop other notifications.
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	kept := make([]Notifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			kept = append(kept, n)
		}
	}
	return &MultiNotifier{
		Notifiers: kept,
		Logger:    slog.Default(),
	}
}

// Notify implements Notifier.
func (n *MultiNotifier) Notify(ctx context.Context, event Event) error {
	var lastErr error
	for _, notifier := range n.Notifiers {
		if err := notifier.Notify(ctx, event); err != nil {
			lastErr = err
			if n.Logger != nil {
				n.Logger.Warn("notifier failed",
					"error", err,
					"event_type", event.Type,
				)
			}
		}
	}
	return lastErr // Return last error, if any
}

// =============================================================================
// SeverityFilter
// =============================================================================

// SeverityFilter forwards only events at or above MinSeverity.
type SeverityFilter struct {
	MinSeverity string
	Next        Notifier
}

// NewSeverityFilter wraps next so it only sees events at or above min.
func NewSeverityFilter(min string, next Notifier) *SeverityFilter {
	return &SeverityFilter{MinSeverity: min, Next: next}
}

// Notify implements Notifier.
func (f *SeverityFilter) Notify(ctx context.Context, event Event) error {
	if f.Next == nil || severityRank(event.Severity) < severityRank(f.MinSeverity) {
		return nil
	}
	return f.Next.Notify(ctx, event)
}

// =============================================================================
// NopNotifier
// =============================================================================

// NopNotifier is a no-op notifier that discards all events.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(ctx context.Context, event Event) error {
	return nil
}
