package node

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"

	pscontext "github.com/randalmurphal/promptstream/context"
	"github.com/randalmurphal/promptstream/errors"
	"github.com/randalmurphal/promptstream/stream"
)

// NodeFunc is a function that processes state and returns updated state.
// This signature is compatible with flowgraph's NodeFunc[State].
type NodeFunc func(ctx flowgraph.Context, state State) (State, error)

// StreamFromContext returns the stream injected with context.WithStream, or
// nil when none was injected.
func StreamFromContext(ctx flowgraph.Context) *stream.Stream {
	return pscontext.Stream(ctx)
}

// StreamNode renders the next prompt from the stream injected into the
// context. Use it when several graphs share one stream through
// context.Services; otherwise prefer Sampler.Node.
//
// Updates: state.Prompt, state.Template, state.Prompts
func StreamNode(ctx flowgraph.Context, state State) (State, error) {
	st := StreamFromContext(ctx)
	if st == nil {
		return state, fmt.Errorf("stream node: %w", errors.ErrNoStream)
	}
	return render(ctx, st, state), nil
}

// =============================================================================
// Node Wrappers
// =============================================================================

// WithTiming wraps a node with timing logs
func WithTiming(node NodeFunc) NodeFunc {
	return func(ctx flowgraph.Context, state State) (State, error) {
		start := time.Now()
		result, err := node(ctx, state)
		slog.Debug("node execution completed",
			"runId", state.RunID,
			"duration", time.Since(start),
			"rendered", result.Prompt != "")
		return result, err
	}
}

// WithRecover wraps a node so a panic fails the run with an error instead of
// crashing the host.
func WithRecover(node NodeFunc) NodeFunc {
	return func(ctx flowgraph.Context, state State) (result State, err error) {
		defer func() {
			if r := recover(); r != nil {
				result, err = state, fmt.Errorf("node panicked: %v", r)
			}
		}()
		return node(ctx, state)
	}
}
