// Package llm is the boundary to the language model. Everything behind
// Generator is opaque to the pipeline; tests substitute a fixed generator.
package llm

import (
	"context"
	"fmt"
)

// Generator produces a structured text response for an instruction/prompt
// pair. Implementations make exactly one outbound call, no retries.
type Generator interface {
	Generate(ctx context.Context, instructions, prompt string) (string, error)
}

// ModelError wraps a failed or unusable generation call.
type ModelError struct {
	Op  string // which builder issued the call
	Err error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model call for %s failed: %v", e.Op, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}
