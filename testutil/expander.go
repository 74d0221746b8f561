package testutil

import (
	"fmt"
	"sync"

	"github.com/randalmurphal/promptstream/errors"
	"github.com/randalmurphal/promptstream/stream"
)

// Expander is a configurable stream.Expander for tests.
//
// Without Choices, the n-th item of a sequence for template T is "T#n"
// (1-based), so a restarted sequence is easy to tell from a resumed one.
// With Choices, every pull draws one choice from the random source and
// yields "T:choice".
type Expander struct {
	// Limit is the number of items per sequence. Zero means unbounded.
	Limit int

	// Choices, when set, makes each item a random draw.
	Choices []string

	mu     sync.Mutex
	err    error
	panics any
	calls  map[string]int
}

// NewExpander returns an Expander whose sequences hold limit items (0 = unbounded).
func NewExpander(limit int) *Expander {
	return &Expander{Limit: limit}
}

// NewRandomExpander returns an unbounded Expander that draws from choices.
func NewRandomExpander(choices ...string) *Expander {
	return &Expander{Choices: choices}
}

// Expand implements stream.Expander.
func (e *Expander) Expand(template string, rng stream.RandomSource) (stream.Sequence, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.calls == nil {
		e.calls = make(map[string]int)
	}
	e.calls[template]++

	if e.panics != nil {
		panic(e.panics)
	}
	if e.err != nil {
		return nil, e.err
	}

	limit := e.Limit
	choices := append([]string(nil), e.Choices...)
	n := 0
	return stream.SequenceFunc(func() (string, error) {
		if limit > 0 && n >= limit {
			return "", errors.ErrExhausted
		}
		n++
		if len(choices) > 0 {
			return template + ":" + choices[rng.IntN(len(choices))], nil
		}
		return fmt.Sprintf("%s#%d", template, n), nil
	}), nil
}

// Calls returns how many times Expand was called for template.
func (e *Expander) Calls(template string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[template]
}

// TotalCalls returns how many times Expand was called.
func (e *Expander) TotalCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := 0
	for _, n := range e.calls {
		total += n
	}
	return total
}

// FailWith makes subsequent Expand calls return err. Pass nil to heal.
func (e *Expander) FailWith(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = err
}

// PanicWith makes subsequent Expand calls panic with v. Pass nil to heal.
func (e *Expander) PanicWith(v any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.panics = v
}
