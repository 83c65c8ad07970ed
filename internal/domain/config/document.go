// Package config loads the converge configuration: an ordered mapping of
// entry names to an optional install block and an ordered files mapping.
package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/converge/internal/provider/files"
)

// RawEntry is one entry as written in the configuration file.
type RawEntry struct {
	Name    string
	Install map[string]interface{}
	Files   []files.Pair
}

// Document is a decoded configuration file, entries in file order.
type Document struct {
	Entries []RawEntry
}

// Errors for structural problems in the document.
var (
	ErrNotMapping     = errors.New("expected a mapping")
	ErrDuplicateEntry = errors.New("duplicate key")
	ErrUnknownKey     = errors.New("unknown key")
)

// ParseDocument decodes configuration YAML, keeping declaration order for
// entries and for the pairs of each files mapping.
func ParseDocument(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	doc := &Document{}
	if root.Kind == 0 || len(root.Content) == 0 {
		return doc, nil
	}

	top := root.Content[0]
	if isNull(top) {
		return doc, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, &entryError{err: fmt.Errorf("%w of entry names at line %d", ErrNotMapping, top.Line)}
	}

	seen := make(map[string]bool, len(top.Content)/2)
	for i := 0; i+1 < len(top.Content); i += 2 {
		name := top.Content[i].Value
		if seen[name] {
			return nil, &entryError{entry: name, err: fmt.Errorf("%w %q at line %d", ErrDuplicateEntry, name, top.Content[i].Line)}
		}
		seen[name] = true

		entry, err := parseEntry(name, top.Content[i+1])
		if err != nil {
			return nil, &entryError{entry: name, err: err}
		}
		doc.Entries = append(doc.Entries, entry)
	}
	return doc, nil
}

func parseEntry(name string, node *yaml.Node) (RawEntry, error) {
	entry := RawEntry{Name: name}
	if isNull(node) {
		return entry, nil
	}
	if node.Kind != yaml.MappingNode {
		return entry, fmt.Errorf("%w with 'install' and/or 'files' at line %d", ErrNotMapping, node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "install":
			if isNull(value) {
				continue
			}
			if value.Kind != yaml.MappingNode {
				return entry, fmt.Errorf("'install' %w at line %d", ErrNotMapping, value.Line)
			}
			raw := map[string]interface{}{}
			if err := value.Decode(&raw); err != nil {
				return entry, fmt.Errorf("'install': %w", err)
			}
			entry.Install = raw
		case "files":
			pairs, err := parsePairs(value)
			if err != nil {
				return entry, err
			}
			entry.Files = pairs
		default:
			return entry, fmt.Errorf("%w %q at line %d (expected 'install' or 'files')", ErrUnknownKey, key.Value, key.Line)
		}
	}
	return entry, nil
}

func parsePairs(node *yaml.Node) ([]files.Pair, error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("'files' %w of source to target at line %d", ErrNotMapping, node.Line)
	}

	seen := make(map[string]bool, len(node.Content)/2)
	pairs := make([]files.Pair, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		src, dst := node.Content[i], node.Content[i+1]
		if src.Kind != yaml.ScalarNode || dst.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("'files' entries must map a source path to a target path (line %d)", src.Line)
		}
		if seen[src.Value] {
			return nil, fmt.Errorf("'files' %w %q at line %d", ErrDuplicateEntry, src.Value, src.Line)
		}
		seen[src.Value] = true
		pairs = append(pairs, files.Pair{Source: src.Value, Target: dst.Value})
	}
	return pairs, nil
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}

// entryError marks a structural error, as opposed to a YAML syntax error.
type entryError struct {
	entry string
	err   error
}

func (e *entryError) Error() string { return e.err.Error() }
func (e *entryError) Unwrap() error { return e.err }
