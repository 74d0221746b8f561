package stream

import (
	"log/slog"

	"github.com/randalmurphal/promptstream/notify"
)

// Option configures a Stream.
type Option func(*Stream)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Stream) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithNotifier sets the sink that receives stream events. Without one, events
// go to the notifier carried by the call's context, if any.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Stream) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithName labels the stream in logs and events, typically with the node ID.
func WithName(name string) Option {
	return func(s *Stream) {
		s.name = name
	}
}

// WithID overrides the generated stream ID.
func WithID(id string) Option {
	return func(s *Stream) {
		if id != "" {
			s.id = id
		}
	}
}
