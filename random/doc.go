// Package random provides the seedable random source consumed by template expanders.
//
// Source wraps a PCG generator from math/rand/v2. Reseeding replaces the
// generator state in place, so every holder of the *Source observes the new
// seed; the source itself is never copied.
//
//	rng := random.New(42)
//	s := stream.New(expander, rng)
package random
