package errors

import (
	"fmt"
	"strings"
)

// maxTemplateLen bounds how much template text is echoed into error messages.
const maxTemplateLen = 64

// StreamError wraps an error with the stream operation that produced it.
type StreamError struct {
	// Op is the operation that failed ("expand", "pull", "recover").
	Op string

	// Template is the template text being rendered, if any.
	Template string

	// Err is the underlying error
	Err error
}

func (e *StreamError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	if e.Template != "" {
		sb.WriteString(" ")
		sb.WriteString(fmt.Sprintf("%q", truncate(e.Template)))
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// Wrap returns a StreamError for op, or nil if err is nil.
func Wrap(op, template string, err error) error {
	if err == nil {
		return nil
	}
	return &StreamError{Op: op, Template: template, Err: err}
}

// Expansion wraps an expander error so it matches ErrExpansionFailed
// while keeping the original cause reachable.
func Expansion(template string, err error) error {
	if err == nil {
		return nil
	}
	return &StreamError{
		Op:       "expand",
		Template: template,
		Err:      fmt.Errorf("%w: %w", ErrExpansionFailed, err),
	}
}

func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= maxTemplateLen {
		return s
	}
	return s[:maxTemplateLen] + "..."
}
