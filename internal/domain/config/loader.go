package config

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/felixgeelhaar/converge/internal/domain/entry"
	"github.com/felixgeelhaar/converge/internal/domain/variables"
	"github.com/felixgeelhaar/converge/internal/provider/files"
	"github.com/felixgeelhaar/converge/internal/provider/install"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "config.yaml"

// Loader reads a configuration file and builds its entries.
type Loader struct {
	install install.Deps
	files   files.Deps
}

// NewLoader creates a Loader. The files FileSystem also reads the
// configuration itself.
func NewLoader(installDeps install.Deps, fileDeps files.Deps) *Loader {
	return &Loader{install: installDeps, files: fileDeps}
}

// Load reads path and builds every entry in declaration order.
// Relative sources resolve against the directory holding path.
func (l *Loader) Load(path string) ([]*entry.Entry, error) {
	data, err := l.files.FS.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewConfigNotFoundError(path)
		}
		return nil, err
	}

	doc, err := ParseDocument(data)
	if err != nil {
		var ee *entryError
		if errors.As(err, &ee) {
			return nil, NewInvalidEntryError(ee.entry, ee.err).WithContext(contextFor(path, ee.entry))
		}
		return nil, NewYAMLParseError(path, err)
	}

	fileDeps := l.files
	if fileDeps.BaseDir == "" {
		fileDeps.BaseDir = filepath.Dir(path)
	}
	return l.Build(doc, fileDeps)
}

// Build constructs the entries of a decoded document.
func (l *Loader) Build(doc *Document, fileDeps files.Deps) ([]*entry.Entry, error) {
	entries := make([]*entry.Entry, 0, len(doc.Entries))
	for _, raw := range doc.Entries {
		e, err := l.buildEntry(raw, fileDeps)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (l *Loader) buildEntry(raw RawEntry, fileDeps files.Deps) (*entry.Entry, error) {
	var installStep *install.Step
	if raw.Install != nil {
		cfg, err := install.ParseConfig(raw.Install)
		if err != nil {
			return nil, NewInvalidEntryError(raw.Name, err)
		}
		installStep, err = install.NewStep(raw.Name, *cfg, l.install)
		if err != nil {
			return nil, NewInvalidEntryError(raw.Name, err)
		}
	}

	var group *files.Group
	if len(raw.Files) > 0 {
		var err error
		if group, err = files.NewGroup(raw.Name, raw.Files, fileDeps); err != nil {
			return nil, fileError(raw.Name, err)
		}
	}

	return entry.New(raw.Name, installStep, group), nil
}

func fileError(name string, err error) error {
	var pe *files.PairError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	switch {
	case errors.Is(err, variables.ErrUnboundVariable):
		return NewUnboundVariableError(name, err)
	case errors.Is(err, files.ErrUnreadableSource) && pe != nil:
		return NewSourceNotFoundError(name, pe.Pair.Source, err)
	default:
		return NewInvalidEntryError(name, err)
	}
}

func contextFor(path, entryName string) string {
	if entryName == "" {
		return path
	}
	return path + ": " + entryName
}
