// Package promptstream turns a one-shot prompt template expander into a
// re-entrant stream: each call returns the next prompt for the current
// template, restarting when the template changes and recreating the
// underlying sequence when it runs out.
//
// The package is organized into subpackages by domain:
//
//   - stream: The stream state machine and the Expander/Sequence contracts
//   - random: Seedable random source shared by a stream and its expander
//   - wildcard: Wildcard folder bootstrap, loading, lookup, and watching
//   - node: flowgraph node binding (Sampler, StreamNode, wrappers)
//   - context: Service dependency injection
//   - notify: Stream event sinks (log, webhook, fan-out, severity filter)
//   - config: Layered configuration (defaults, yaml, .env, environment, flags)
//   - errors: Sentinel errors and predicates
//   - testutil: Test utilities and fixtures
//
// # Quick Start
//
//	import (
//	    "github.com/randalmurphal/promptstream/random"
//	    "github.com/randalmurphal/promptstream/stream"
//	)
//
//	s := stream.New(myExpander, random.New(42))
//	first := s.Next("a {b|c}", 0)
//	second := s.Next("a {b|c}", 0) // next item, not a restart
//
// See individual package documentation for detailed usage.
package promptstream
