// Package entry groups the directives declared under one configuration name.
package entry

import (
	"context"

	"github.com/felixgeelhaar/converge/internal/domain/compiler"
	"github.com/felixgeelhaar/converge/internal/provider/files"
	"github.com/felixgeelhaar/converge/internal/provider/install"
)

// Entry is a named unit of desired state: an optional package install and
// an ordered list of managed files.
type Entry struct {
	name    string
	install *install.Step
	files   *files.Group
}

// New creates an Entry. Either directive may be nil.
func New(name string, installStep *install.Step, fileGroup *files.Group) *Entry {
	return &Entry{name: name, install: installStep, files: fileGroup}
}

// Name returns the entry name.
func (e *Entry) Name() string {
	return e.name
}

// Install returns the install step, or nil.
func (e *Entry) Install() *install.Step {
	return e.install
}

// Files returns the file steps in declaration order.
func (e *Entry) Files() []*files.Step {
	if e.files == nil {
		return nil
	}
	return e.files.Steps()
}

// Steps returns every directive, install first.
func (e *Entry) Steps() []compiler.Step {
	steps := make([]compiler.Step, 0, 1+len(e.Files()))
	if e.install != nil {
		steps = append(steps, e.install)
	}
	for _, f := range e.Files() {
		steps = append(steps, f)
	}
	return steps
}

// PlanDescription returns one line per pending change. It runs the install
// probe but changes nothing; calling it twice yields the same lines.
func (e *Entry) PlanDescription(ctx context.Context) ([]string, error) {
	rc := compiler.NewRunContext(ctx)

	var lines []string
	for _, step := range e.Steps() {
		status, err := step.Check(rc)
		if err != nil {
			return nil, err
		}
		if !status.NeedsAction() {
			continue
		}
		diff, err := step.Plan(rc)
		if err != nil {
			return nil, err
		}
		if diff.IsEmpty() {
			continue
		}
		lines = append(lines, diff.Summary())
	}
	return lines, nil
}

// Result is the outcome of applying one entry.
type Result struct {
	Install *compiler.Outcome
	Files   []compiler.Outcome
}

// Apply runs the install step, then writes the files in order.
// The first fatal error stops the entry.
func (e *Entry) Apply(ctx context.Context) (Result, error) {
	rc := compiler.NewRunContext(ctx)

	var result Result
	if e.install != nil {
		outcome, err := e.install.Apply(rc)
		if err != nil {
			return result, err
		}
		result.Install = &outcome
	}

	if e.files != nil {
		outcomes, err := e.files.WriteFiles(rc)
		result.Files = outcomes
		if err != nil {
			return result, err
		}
	}
	return result, nil
}
