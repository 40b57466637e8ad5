package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation failures.
var (
	ErrInvalidProduct   = errors.New("invalid product")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrMissingPartNo    = errors.New("missing part number")
	ErrPriceDiscount    = errors.New("discounted price not below original")
	ErrNegativeStock    = errors.New("negative stock count")
	ErrEmptyQuery       = errors.New("empty search query")
	ErrInvalidLimit     = errors.New("invalid result limit")
)

// Pipeline failure taxonomy. Each external collaborator gets its own
// sentinel so callers can decide how a failure surfaces to the user.
var (
	// ErrEmbedding marks an upstream embedding failure. Fatal to the search
	// call; surfaced as "no products found" to the user-visible flow.
	ErrEmbedding = errors.New("embedding failed")
	// ErrIndex marks a vector store failure. Same user-visible treatment.
	ErrIndex = errors.New("product index failed")
	// ErrUnknownTool marks a model-requested operation outside the fixed
	// tool set. That call's context is omitted and the turn continues.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrLanguageModel marks a failed model call. Fatal to the turn.
	ErrLanguageModel = errors.New("language model call failed")
)

// ValidationError wraps a sentinel with field context.
type ValidationError struct {
	Field   string
	Value   string
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s (value=%q)", e.Wrapped, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Wrapped }

// NewValidationError creates a ValidationError.
func NewValidationError(field, value string, wrapped error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Wrapped: wrapped}
}

// ToolError wraps a failure inside one tool invocation. Failures are isolated
// at the dispatcher boundary and never abort sibling calls.
type ToolError struct {
	Tool string
	Err  error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %s: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }
