package errors

import "errors"

// Stream failure sentinels.
var (
	// ErrExhausted indicates a sequence ran out of items.
	ErrExhausted = errors.New("sequence exhausted")

	// ErrConcurrentModification indicates the data behind a sequence changed mid-iteration.
	ErrConcurrentModification = errors.New("sequence source modified during iteration")

	// ErrNoSequence indicates a template is bound but has no active sequence.
	ErrNoSequence = errors.New("no active sequence")

	// ErrNoTemplate indicates no template has been bound yet.
	ErrNoTemplate = errors.New("no template bound")

	// ErrExpansionFailed indicates the expander could not produce a sequence.
	ErrExpansionFailed = errors.New("template expansion failed")

	// ErrWildcardNotFound indicates a wildcard name has no values.
	ErrWildcardNotFound = errors.New("wildcard not found")
)

// Wiring errors.
var (
	// ErrNoStream indicates a node ran without a stream in its context.
	ErrNoStream = errors.New("no stream in context")
)
