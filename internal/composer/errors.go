package composer

import (
	"errors"
	"fmt"
)

// ErrEmptyInstruction rejects Enhance calls with a blank instruction.
var ErrEmptyInstruction = errors.New("enhancement instruction is required")

// ProviderError wraps transport/timeout/non-success failures from the content
// provider. Quota is never charged when it occurs.
type ProviderError struct {
	Tier string
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("content provider failed (tier %s): %v", e.Tier, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ParseError reports provider text that is not valid JSON or lacks the
// required shape. Surfaced distinctly from ProviderError; quota stays
// uncharged.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("provider response is not a valid document: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
