package compiler

import (
	"errors"
	"regexp"
	"strings"
)

// StepID uniquely identifies a step within a run.
// Format: kind:entry[:resource] (e.g., "install:docker", "files:dotfiles:1f2e3d4c").
type StepID struct {
	value string
}

// Errors for StepID validation.
var (
	ErrEmptyStepID   = errors.New("step ID cannot be empty")
	ErrInvalidStepID = errors.New("step ID format invalid: must be alphanumeric segments separated by colons")
)

var (
	stepIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._@/-]*(?::[a-zA-Z0-9][a-zA-Z0-9._@/-]*)*$`)
	unsafeChars   = regexp.MustCompile(`[^a-zA-Z0-9._@/-]+`)
)

// NewStepID creates a new StepID from a string.
func NewStepID(value string) (StepID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return StepID{}, ErrEmptyStepID
	}

	if !stepIDPattern.MatchString(trimmed) {
		return StepID{}, ErrInvalidStepID
	}

	return StepID{value: trimmed}, nil
}

// MustNewStepID creates a new StepID from a string, panicking on error.
// Use it with segments passed through Segment.
func MustNewStepID(value string) StepID {
	id, err := NewStepID(value)
	if err != nil {
		panic("invalid step ID: " + value + ": " + err.Error())
	}
	return id
}

// Segment turns free text such as an entry name into a valid ID segment.
func Segment(s string) string {
	cleaned := strings.Trim(unsafeChars.ReplaceAllString(s, "-"), "-._@/")
	if cleaned == "" {
		return "unnamed"
	}
	return cleaned
}

// String returns the string representation.
func (id StepID) String() string {
	return id.value
}
