// Package notify reports prompt stream conditions to observability sinks.
//
// A stream never returns errors to its caller. Instead, exhaustion,
// expansion failures, and invariant violations are described as Events and
// handed to a Notifier.
//
// Core types:
//   - Notifier: Interface for sending events
//   - Event: Stream condition with type, severity, template, and metadata
//   - EventType: Kind of condition (bound, exhausted, recovery failed, etc.)
//
// Implementations:
//   - LogNotifier: Logs events with slog
//   - WebhookNotifier: POSTs events as JSON to an HTTP endpoint
//   - AsyncNotifier: Delivers on a background worker with a bounded queue
//   - MultiNotifier: Fans out to several notifiers
//   - SeverityFilter: Drops events below a minimum severity
//   - NopNotifier: Discards everything
//
// Example usage:
//
//	notifier := notify.NewMultiNotifier(
//	    notify.NewLogNotifier(logger),
//	    notify.NewSeverityFilter(notify.SeverityError,
//	        notify.NewAsyncNotifier(notify.NewWebhookNotifier(webhookURL, nil), 0, logger)),
//	)
//	s := stream.New(expander, rng, stream.WithNotifier(notifier))
package notify
