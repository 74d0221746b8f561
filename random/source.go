package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source is a seedable, concurrency-safe pseudo-random generator.
type Source struct {
	mu   sync.Mutex
	pcg  *rand.PCG
	rand *rand.Rand
	seed uint64
}

// New creates a source seeded with seed.
func New(seed uint64) *Source {
	pcg := rand.NewPCG(seed, mix(seed))
	return &Source{
		pcg:  pcg,
		rand: rand.New(pcg),
		seed: seed,
	}
}

// NewFromTime creates a source seeded from the wall clock, for callers that
// never supply a seed.
func NewFromTime() *Source {
	return New(uint64(time.Now().UnixNano()))
}

// Seed resets the generator so subsequent draws are a deterministic function of seed.
func (s *Source) Seed(seed uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pcg.Seed(seed, mix(seed))
	s.seed = seed
}

// LastSeed returns the seed most recently applied.
func (s *Source) LastSeed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

// IntN returns a value in [0, n). It panics if n <= 0, like math/rand/v2.
func (s *Source) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.IntN(n)
}

// Float64 returns a value in [0.0, 1.0).
func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Float64()
}

// Perm returns a pseudo-random permutation of [0, n).
func (s *Source) Perm(n int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Perm(n)
}

// Shuffle randomizes the order of n elements using swap. The swap indices
// are drawn up front and swap runs without the source locked, so swap may
// itself draw from s.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	if n < 0 {
		panic("invalid argument to Shuffle")
	}
	js := make([]int, n)
	s.mu.Lock()
	for i := n - 1; i > 0; i-- {
		js[i] = s.rand.IntN(i + 1)
	}
	s.mu.Unlock()

	for i := n - 1; i > 0; i-- {
		swap(i, js[i])
	}
}

// mix derives the second PCG word from the seed (splitmix64 finalizer).
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
