package errors

import "errors"

// IsExhausted reports whether err means a sequence has no more items.
// Concurrent modification counts as exhaustion: the sequence cannot continue
// and must be recreated.
func IsExhausted(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrExhausted) || errors.Is(err, ErrConcurrentModification)
}

// IsInvariantViolation reports whether err signals missing internal state.
func IsInvariantViolation(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrNoSequence) || errors.Is(err, ErrNoTemplate)
}

// IsExpansionError reports whether err came from the expander.
func IsExpansionError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrExpansionFailed)
}

// IsNotFound reports whether err is a missing wildcard.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrWildcardNotFound)
}
