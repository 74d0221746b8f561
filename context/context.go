package context

import (
	"context"

	"github.com/randalmurphal/promptstream/stream"
	"github.com/randalmurphal/promptstream/wildcard"
)

// serviceContextKey is a private type for context keys to avoid collisions
type serviceContextKey string

const (
	streamServiceKey   serviceContextKey = "promptstream.stream"
	wildcardServiceKey serviceContextKey = "promptstream.wildcards"
)

// WithStream adds a prompt stream to the context
func WithStream(ctx context.Context, s *stream.Stream) context.Context {
	return context.WithValue(ctx, streamServiceKey, s)
}

// Stream extracts the prompt stream from context
func Stream(ctx context.Context) *stream.Stream {
	if s, ok := ctx.Value(streamServiceKey).(*stream.Stream); ok {
		return s
	}
	return nil
}

// MustStream extracts the prompt stream or panics
func MustStream(ctx context.Context) *stream.Stream {
	s := Stream(ctx)
	if s == nil {
		panic("promptstream/context: stream.Stream not found in context")
	}
	return s
}

// WithWildcards adds a wildcard manager to the context
func WithWildcards(ctx context.Context, m *wildcard.Manager) context.Context {
	return context.WithValue(ctx, wildcardServiceKey, m)
}

// Wildcards extracts the wildcard manager from context
func Wildcards(ctx context.Context) *wildcard.Manager {
	if m, ok := ctx.Value(wildcardServiceKey).(*wildcard.Manager); ok {
		return m
	}
	return nil
}

// MustWildcards extracts the wildcard manager or panics
func MustWildcards(ctx context.Context) *wildcard.Manager {
	m := Wildcards(ctx)
	if m == nil {
		panic("promptstream/context: wildcard.Manager not found in context")
	}
	return m
}
