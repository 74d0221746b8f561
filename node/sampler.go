package node

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"

	"github.com/randalmurphal/promptstream/notify"
	"github.com/randalmurphal/promptstream/random"
	"github.com/randalmurphal/promptstream/stream"
	"github.com/randalmurphal/promptstream/wildcard"
)

// AlwaysReevaluate documents the host contract for prompt nodes: a host must
// execute the node on every run and never reuse a cached output because the
// inputs compare equal. Repeated runs with the same template are how the
// stream advances.
const AlwaysReevaluate = true

// IsChanged is the change hook for hosts that cache by input fingerprint.
// It returns NaN, which never compares equal to a previous fingerprint.
func IsChanged(State) float64 {
	return math.NaN()
}

// Config configures NewSampler.
type Config struct {
	// Expander renders templates. Exactly one of Expander and
	// ExpanderFactory is required.
	Expander stream.Expander

	// ExpanderFactory builds the expander over the wildcard manager.
	ExpanderFactory func(*wildcard.Manager) stream.Expander

	// Wildcards is used by ExpanderFactory. When nil, a manager over
	// <WildcardsDir>/wildcards is created, bootstrapping the folder.
	Wildcards    *wildcard.Manager
	WildcardsDir string // Base folder for the wildcards folder (default: ".")

	// Random defaults to a random.Source seeded with Seed, or from the clock
	// when Seed is not positive.
	Random stream.RandomSource
	Seed   int64

	Name     string          // Labels the stream in logs and events
	Logger   *slog.Logger    // Defaults to slog.Default()
	Notifier notify.Notifier // Defaults to the notifier in the node context, if any
}

// Sampler is a graph node that renders one prompt per execution.
//
// One Sampler corresponds to one node site; graphs with several prompt nodes
// need one Sampler each.
type Sampler struct {
	stream    *stream.Stream
	wildcards *wildcard.Manager
}

// NewSampler creates a Sampler.
func NewSampler(cfg Config) (*Sampler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	expander := cfg.Expander
	wildcards := cfg.Wildcards
	switch {
	case expander != nil && cfg.ExpanderFactory != nil:
		return nil, fmt.Errorf("sampler: set either Expander or ExpanderFactory, not both")
	case expander == nil && cfg.ExpanderFactory == nil:
		return nil, fmt.Errorf("sampler: an expander is required")
	case cfg.ExpanderFactory != nil:
		if wildcards == nil {
			base := cfg.WildcardsDir
			if base == "" {
				base = "."
			}
			dir, err := wildcard.FindOrCreateDir(base)
			if err != nil {
				return nil, fmt.Errorf("sampler: %w", err)
			}
			wildcards = wildcard.NewManager(wildcard.Config{Dirs: []string{dir}, Logger: logger})
		}
		expander = cfg.ExpanderFactory(wildcards)
		if expander == nil {
			return nil, fmt.Errorf("sampler: expander factory returned nil")
		}
	}

	rng := cfg.Random
	if rng == nil {
		if cfg.Seed > 0 {
			rng = random.New(uint64(cfg.Seed))
		} else {
			rng = random.NewFromTime()
		}
	}

	opts := []stream.Option{stream.WithLogger(logger), stream.WithName(cfg.Name)}
	if cfg.Notifier != nil {
		opts = append(opts, stream.WithNotifier(cfg.Notifier))
	}

	return &Sampler{
		stream:    stream.New(expander, rng, opts...),
		wildcards: wildcards,
	}, nil
}

// Stream returns the sampler's stream.
func (s *Sampler) Stream() *stream.Stream {
	return s.stream
}

// Wildcards returns the wildcard manager, or nil when the sampler was built
// from a plain Expander.
func (s *Sampler) Wildcards() *wildcard.Manager {
	return s.wildcards
}

// Node renders the next prompt for state.Text.
//
// Rendering problems never fail the graph: they leave state.Prompt empty and
// are reported through the stream's logger and notifier.
//
// Updates: state.Prompt, state.Template, state.Prompts
func (s *Sampler) Node(ctx flowgraph.Context, state State) (State, error) {
	return render(ctx, s.stream, state), nil
}

func render(ctx context.Context, st *stream.Stream, state State) State {
	prompt := st.NextContext(ctx, state.Text, state.Seed)
	state.Prompt = prompt
	state.Template, _ = st.Template()
	if prompt != "" {
		state.Prompts = append(slices.Clone(state.Prompts), prompt)
	}
	return state
}
