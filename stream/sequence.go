package stream

import (
	"iter"
	"sync"

	"github.com/randalmurphal/promptstream/errors"
)

// Sequence is a pull-based source of rendered strings.
//
// Next returns errors.ErrExhausted (or an error wrapping it) once the
// sequence has no more items, and keeps doing so on further calls.
type Sequence interface {
	Next() (string, error)
}

// RandomSource is the seedable generator handed to expanders.
// The stream only ever calls Seed; draws belong to the expander.
type RandomSource interface {
	Seed(seed uint64)
	IntN(n int) int
	Float64() float64
}

// Expander builds a fresh Sequence for template. It must be safe to call
// repeatedly with the same arguments.
type Expander interface {
	Expand(template string, rng RandomSource) (Sequence, error)
}

// ExpanderFunc adapts a function to Expander.
type ExpanderFunc func(template string, rng RandomSource) (Sequence, error)

// Expand implements Expander.
func (f ExpanderFunc) Expand(template string, rng RandomSource) (Sequence, error) {
	return f(template, rng)
}

// SequenceFunc adapts a function to Sequence.
type SequenceFunc func() (string, error)

// Next implements Sequence.
func (f SequenceFunc) Next() (string, error) {
	return f()
}

// sliceSequence yields a fixed list of items once.
type sliceSequence struct {
	items []string
	pos   int
}

// SliceSequence returns a finite sequence over items.
func SliceSequence(items ...string) Sequence {
	return &sliceSequence{items: items}
}

func (s *sliceSequence) Next() (string, error) {
	if s.pos >= len(s.items) {
		return "", errors.ErrExhausted
	}
	item := s.items[s.pos]
	s.pos++
	return item, nil
}

// seqSequence pulls from a range-over-func iterator.
type seqSequence struct {
	once sync.Once
	seq  iter.Seq[string]
	next func() (string, bool)
	stop func()
	done bool
}

// FromSeq adapts an iter.Seq to Sequence. The iterator is started lazily on
// the first pull and released once it reports completion.
//
// The returned Sequence also implements io.Closer. Stream closes sequences it
// replaces, which releases the iterator's pull goroutine.
func FromSeq(seq iter.Seq[string]) Sequence {
	return &seqSequence{seq: seq}
}

func (s *seqSequence) Next() (string, error) {
	if s.done {
		return "", errors.ErrExhausted
	}
	s.once.Do(func() {
		s.next, s.stop = iter.Pull(s.seq)
	})
	item, ok := s.next()
	if !ok {
		s.done = true
		s.stop()
		return "", errors.ErrExhausted
	}
	return item, nil
}

// Close releases the underlying iterator.
func (s *seqSequence) Close() error {
	if s.stop != nil {
		s.stop()
	}
	s.done = true
	return nil
}
