// Package errors defines the failure taxonomy for prompt streams.
//
// Sentinel errors:
//   - ErrExhausted: a rendering sequence has no more items
//   - ErrConcurrentModification: the expander's source changed while a sequence was being pulled
//   - ErrNoSequence: a template is bound but no sequence exists
//   - ErrNoTemplate: an item was requested before any template was bound
//   - ErrExpansionFailed: the expander could not produce a sequence
//   - ErrWildcardNotFound: a wildcard name has no backing file
//
// Core types:
//   - StreamError: wraps an error with the operation and template that produced it
//
// Exhaustion and concurrent modification both mean "no more items" and are
// recovered by recreating the sequence. The other sentinels degrade a call to
// the empty string.
//
// Example usage:
//
//	item, err := seq.Next()
//	if errors.IsExhausted(err) {
//	    // recreate the sequence and try once more
//	}
package errors
