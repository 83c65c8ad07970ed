package variables

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrUnboundVariable is matched by every UnboundVariableError.
var ErrUnboundVariable = errors.New("unbound variable")

// UnboundVariableError names the placeholder that had no binding.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable ${%s}", e.Name)
}

// Is reports ErrUnboundVariable as a match.
func (e *UnboundVariableError) Is(target error) bool {
	return target == ErrUnboundVariable
}

var placeholder = regexp.MustCompile(`\$\{([^{}]*)\}`)

// Expand replaces every ${NAME} in s with its binding in env.
//
// Expansion is a single left-to-right pass: substituted values are not
// scanned again, so a value containing ${...} is kept literally. There is no
// escape syntax. The first unbound name aborts expansion.
func Expand(s string, env Environment) (string, error) {
	var unbound error

	out := placeholder.ReplaceAllStringFunc(s, func(match string) string {
		if unbound != nil {
			return match
		}
		name := placeholder.FindStringSubmatch(match)[1]
		value, ok := env.Lookup(name)
		if !ok {
			unbound = &UnboundVariableError{Name: name}
			return match
		}
		return value
	})

	if unbound != nil {
		return "", unbound
	}
	return out, nil
}
