package compiler

import (
	"fmt"
	"strings"
)

// Error codes for step operations.
const (
	ErrCodeApplyFailed = "APPLY_FAILED"
	ErrCodeCheckFailed = "CHECK_FAILED"
)

// StepError represents a fatal step failure with an actionable suggestion.
type StepError struct {
	Code       string // Error code for categorization
	Message    string // User-friendly error message
	StepID     string // Step ID if applicable
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *StepError) Error() string {
	var b strings.Builder
	if e.StepID != "" {
		fmt.Fprintf(&b, "step %q: ", e.StepID)
	}
	b.WriteString(e.Message)
	if e.Underlying != nil {
		fmt.Fprintf(&b, ": %v", e.Underlying)
	}
	return b.String()
}

// Unwrap returns the underlying error for error chain support.
func (e *StepError) Unwrap() error {
	return e.Underlying
}

// Format returns a fully formatted error with all details.
func (e *StepError) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.StepID != "" {
		fmt.Fprintf(&b, "\n  Step: %s", e.StepID)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}
	if e.Underlying != nil {
		fmt.Fprintf(&b, "\n  Cause: %s", e.Underlying.Error())
	}

	return b.String()
}

// WithSuggestion returns a copy of the error with suggestion set.
func (e *StepError) WithSuggestion(suggestion string) *StepError {
	c := *e
	c.Suggestion = suggestion
	return &c
}

// NewApplyFailedError creates an error for a step that could not converge.
func NewApplyFailedError(stepID StepID, message string, err error) *StepError {
	return &StepError{
		Code:       ErrCodeApplyFailed,
		Message:    message,
		StepID:     stepID.String(),
		Underlying: err,
	}
}

// NewCheckFailedError creates an error for a step whose state could not be determined.
func NewCheckFailedError(stepID StepID, err error) *StepError {
	return &StepError{
		Code:       ErrCodeCheckFailed,
		Message:    "status check failed",
		StepID:     stepID.String(),
		Suggestion: "The probe command could not be started. Check that its executable is installed and on PATH.",
		Underlying: err,
	}
}
