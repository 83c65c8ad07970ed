// Package variables expands ${NAME} placeholders against an environment snapshot.
package variables

import (
	"os"
	"strings"
)

// Environment resolves variable names to values.
type Environment interface {
	Lookup(name string) (string, bool)
}

// Snapshot is an immutable-by-convention copy of environment bindings.
type Snapshot map[string]string

// Lookup returns the value bound to name.
func (s Snapshot) Lookup(name string) (string, bool) {
	v, ok := s[name]
	return v, ok
}

// FromPairs builds a Snapshot from KEY=VALUE strings as returned by os.Environ.
// Entries without '=' are ignored; later duplicates win.
func FromPairs(pairs []string) Snapshot {
	s := make(Snapshot, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}
		s[key] = value
	}
	return s
}

// FromOS captures the current process environment.
func FromOS() Snapshot {
	return FromPairs(os.Environ())
}

// Ensure Snapshot implements Environment.
var _ Environment = Snapshot(nil)
