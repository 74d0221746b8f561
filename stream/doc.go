// Package stream turns a one-shot template expander into a re-entrant prompt stream.
//
// Each call to Stream.Next with the same template returns the next rendering
// from the expander's sequence. A changed template restarts sampling from
// scratch; an exhausted sequence is recreated and pulled once more. Next never
// fails: problems are logged, reported to a notify.Notifier, and answered with
// the empty string.
//
// Core types:
//   - Stream: owns the bound template, the active sequence, and the random source
//   - Expander: builds a Sequence for a template and RandomSource
//   - Sequence: pull-based source of rendered strings
//   - RandomSource: seedable generator shared across expansions
//
// Lifecycle:
//
//	Empty --first non-blank Next--> Bound
//	Bound --template change or recovery--> Bound (new sequence)
//	Bound --recovery pull fails--> Degraded
//	Degraded --next successful recreate and pull--> Bound
//
// Seeds are edge-triggered: a positive seed reseeds the random source before
// anything else happens; zero (or a negative value) keeps advancing. Reseeding
// never replaces the active sequence. It affects only randomness drawn later.
//
// Example usage:
//
//	s := stream.New(expander, random.New(1),
//	    stream.WithLogger(logger),
//	    stream.WithNotifier(notifier),
//	)
//	first := s.Next("a {red|blue} ball", 42)
//	second := s.Next("a {red|blue} ball", 0)
package stream
