// Package files provides the managed-file directive: a source file whose
// exact content must be present at a target path.
package files

import (
	"errors"
	"fmt"
	"strings"
)

// Errors reported while building file steps.
var (
	ErrUnreadableSource = errors.New("cannot read source file")
	ErrEmptyPair        = errors.New("file source and target must be non-empty")
)

// Pair maps a source file to a target path pattern.
// The target may contain ${NAME} placeholders.
type Pair struct {
	Source string
	Target string
}

// Validate checks that both sides are set.
func (p Pair) Validate() error {
	if strings.TrimSpace(p.Source) == "" || strings.TrimSpace(p.Target) == "" {
		return fmt.Errorf("%w: %q -> %q", ErrEmptyPair, p.Source, p.Target)
	}
	return nil
}

// Action is what a file step will do to its target.
type Action int

const (
	// ActionNoOp means the target already holds the source content.
	ActionNoOp Action = iota
	// ActionCreate means the target does not exist.
	ActionCreate
	// ActionUpdate means the target exists with different content.
	ActionUpdate
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	default:
		return "none"
	}
}
