package config

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorization.
const (
	ErrCodeConfigNotFound  = "CONFIG_NOT_FOUND"
	ErrCodeConfigParse     = "CONFIG_PARSE"
	ErrCodeConfigInvalid   = "CONFIG_INVALID"
	ErrCodeFileNotFound    = "FILE_NOT_FOUND"
	ErrCodeUnboundVariable = "UNBOUND_VARIABLE"
)

// UserError represents a configuration error with an actionable suggestion.
type UserError struct {
	Code       string // Error code for categorization (e.g., "CONFIG_INVALID")
	Message    string // User-friendly error message
	Context    string // Entry name, file path or line
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *UserError) Error() string {
	var b strings.Builder

	b.WriteString(e.Message)
	if e.Context != "" {
		fmt.Fprintf(&b, " (at %s)", e.Context)
	}
	if e.Underlying != nil {
		fmt.Fprintf(&b, ": %v", e.Underlying)
	}

	return b.String()
}

// Unwrap returns the underlying error for error chain support.
func (e *UserError) Unwrap() error {
	return e.Underlying
}

// Is supports errors.Is() for comparing error codes.
func (e *UserError) Is(target error) bool {
	if t, ok := target.(*UserError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithContext returns a copy of the error with context set.
func (e *UserError) WithContext(ctx string) *UserError {
	c := *e
	c.Context = ctx
	return &c
}

// NewConfigNotFoundError creates an error for a missing config file.
func NewConfigNotFoundError(path string) *UserError {
	return &UserError{
		Code:       ErrCodeConfigNotFound,
		Message:    fmt.Sprintf("configuration file not found: %s", path),
		Context:    path,
		Suggestion: "Pass the configuration path with --config, or create config.yaml in the working directory.",
	}
}

// NewInvalidEntryError reports a structural or invariant violation in one entry.
func NewInvalidEntryError(entry string, err error) *UserError {
	return &UserError{
		Code:       ErrCodeConfigInvalid,
		Message:    "invalid entry",
		Context:    entry,
		Suggestion: "Each entry may have an 'install' block (if_fail plus exactly one of install_from_repo or install_from_remote_file) and a 'files' mapping of source to target.",
		Underlying: err,
	}
}

// NewSourceNotFoundError reports a managed file whose source cannot be read.
func NewSourceNotFoundError(entry, source string, err error) *UserError {
	return &UserError{
		Code:       ErrCodeFileNotFound,
		Message:    fmt.Sprintf("cannot read source file %s", source),
		Context:    entry,
		Suggestion: "Relative source paths are resolved against the directory of the configuration file.",
		Underlying: err,
	}
}

// NewUnboundVariableError reports a target pattern referencing an unset variable.
func NewUnboundVariableError(entry string, err error) *UserError {
	return &UserError{
		Code:       ErrCodeUnboundVariable,
		Message:    "target path references an unset environment variable",
		Context:    entry,
		Suggestion: "Export the variable before running, or remove the ${...} placeholder.",
		Underlying: err,
	}
}

// IsUserError checks if an error is a UserError with a specific code.
func IsUserError(err error, code string) bool {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Code == code
	}
	return false
}

// NewYAMLParseError translates technical YAML errors into user-friendly messages.
func NewYAMLParseError(path string, err error) *UserError {
	errStr := err.Error()
	var message, suggestion string

	switch {
	case strings.Contains(errStr, "cannot unmarshal !!seq into map"):
		message = "expected a mapping but found a list"
		suggestion = "Entries and their 'files' are written as 'key: value' pairs, not '- item' lists."

	case strings.Contains(errStr, "did not find expected key"):
		message = "missing required field or incorrect indentation"
		suggestion = "YAML is sensitive to indentation. Use 2 spaces (not tabs) for each level."

	case strings.Contains(errStr, "mapping values are not allowed"):
		message = "invalid YAML structure"
		suggestion = "Check for missing colons after keys, or incorrect indentation."

	case strings.Contains(errStr, "found character that cannot start"):
		message = "invalid character in YAML"
		suggestion = "Quote values that contain special characters like ':', '#', or '{'. Target patterns such as ${HOME}/x are fine unquoted."

	default:
		message = "invalid YAML syntax"
		suggestion = "Check your YAML syntax. Common issues: incorrect indentation, missing colons, or unquoted special characters."
	}

	context := path
	if parts := strings.SplitN(errStr, "line ", 2); len(parts) == 2 {
		context = fmt.Sprintf("%s (line %s)", path, strings.Split(parts[1], ":")[0])
	}

	return &UserError{
		Code:       ErrCodeConfigParse,
		Message:    message,
		Context:    context,
		Suggestion: suggestion,
		Underlying: err,
	}
}
