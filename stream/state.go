package stream

// State describes where a Stream is in its lifecycle.
type State int

const (
	// StateEmpty means no template has been bound yet.
	StateEmpty State = iota

	// StateBound means a sequence is active for the bound template.
	StateBound

	// StateDegraded means the last render attempt failed. The next call retries.
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateBound:
		return "bound"
	case StateDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// Stats counts what a Stream has done since creation.
type Stats struct {
	Calls       int // Next invocations, including blank ones
	Rendered    int // non-empty results returned
	Expansions  int // calls to Expander.Expand
	Recreations int // expansions triggered by recovery rather than a template change
	Failures    int // calls that degraded to the empty string
	Reseeds     int // positive seeds applied
}
