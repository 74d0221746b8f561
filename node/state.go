package node

import (
	"fmt"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
)

const runIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// State is the graph state a prompt node reads and writes.
type State struct {
	RunID string `json:"runId"`

	// Text is the template to render. Seed > 0 reseeds the sampler's random
	// source before rendering.
	Text string `json:"text"`
	Seed int64  `json:"seed,omitempty"`

	// Prompt is the last rendered prompt; empty when nothing was rendered.
	Prompt string `json:"prompt"`

	// Template is the template the sampler was bound to when Prompt was rendered.
	Template string `json:"template,omitempty"`

	// Prompts accumulates every non-empty prompt rendered during the run.
	Prompts []string `json:"prompts,omitempty"`
}

// NewState creates a state for rendering text.
func NewState(text string, seed int64) State {
	return State{
		RunID: generateRunID(),
		Text:  text,
		Seed:  seed,
	}
}

// WithRunID sets a custom run ID
func (s State) WithRunID(runID string) State {
	s.RunID = runID
	return s
}

// generateRunID creates a run ID like "2026-01-02-k3j9x2ab".
func generateRunID() string {
	timestamp := time.Now().Format("2006-01-02")
	suffix, err := nanoid.Generate(runIDAlphabet, 8)
	if err != nil {
		suffix = fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return fmt.Sprintf("%s-%s", timestamp, suffix)
}
