package files

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/felixgeelhaar/converge/internal/adapters/command"
	"github.com/felixgeelhaar/converge/internal/domain/compiler"
	"github.com/felixgeelhaar/converge/internal/domain/variables"
	"github.com/felixgeelhaar/converge/internal/ports"
	"github.com/felixgeelhaar/converge/internal/validation"
)

// Deps are the host collaborators a file step needs.
type Deps struct {
	FS     ports.FileSystem
	Runner ports.CommandRunner
	Env    variables.Environment

	// Prefix elevates the fallback commands. Empty runs them directly.
	Prefix string
	// BaseDir resolves relative source paths.
	BaseDir string
}

// Step keeps one target file in sync with a source file.
// The action is decided once, when the step is built.
type Step struct {
	id      compiler.StepID
	source  string
	target  string
	content []byte
	action  Action
	deps    Deps
}

// NewStep expands the target, captures the source content and classifies
// the action against the current target.
func NewStep(entry string, pair Pair, deps Deps) (*Step, error) {
	if err := pair.Validate(); err != nil {
		return nil, err
	}
	if deps.Env == nil {
		deps.Env = variables.Snapshot{}
	}

	target, err := variables.Expand(pair.Target, deps.Env)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidatePath(target); err != nil {
		return nil, fmt.Errorf("invalid target %q: %w", target, err)
	}

	source := pair.Source
	if !filepath.IsAbs(source) && deps.BaseDir != "" {
		source = filepath.Join(deps.BaseDir, source)
	}
	content, err := deps.FS.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrUnreadableSource, source, err)
	}

	action, err := classify(deps.FS, target, content)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256([]byte(target))
	return &Step{
		id:      compiler.MustNewStepID("files:" + compiler.Segment(entry) + ":" + hex.EncodeToString(sum[:4])),
		source:  source,
		target:  target,
		content: content,
		action:  action,
		deps:    deps,
	}, nil
}

func classify(fsys ports.FileSystem, target string, content []byte) (Action, error) {
	if !fsys.Exists(target) {
		return ActionCreate, nil
	}
	if fsys.IsDir(target) {
		return ActionNoOp, fmt.Errorf("target %s is a directory", target)
	}

	current, err := fsys.ReadFile(target)
	switch {
	case errors.Is(err, fs.ErrPermission):
		// Unreadable without privileges; the elevated copy will settle it.
		return ActionUpdate, nil
	case err != nil:
		return ActionNoOp, fmt.Errorf("read target %s: %w", target, err)
	case bytes.Equal(current, content):
		return ActionNoOp, nil
	default:
		return ActionUpdate, nil
	}
}

// ID returns the step identifier.
func (s *Step) ID() compiler.StepID {
	return s.id
}

// Source returns the resolved source path.
func (s *Step) Source() string {
	return s.source
}

// Target returns the expanded target path.
func (s *Step) Target() string {
	return s.target
}

// Action returns the action decided at construction.
func (s *Step) Action() Action {
	return s.action
}

// Check reports whether the target needs writing.
func (s *Step) Check(_ compiler.RunContext) (compiler.StepStatus, error) {
	if s.action == ActionNoOp {
		return compiler.StatusSatisfied, nil
	}
	return compiler.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *Step) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	return s.diff(), nil
}

// Apply writes the captured source content to the target.
// A permission error switches to the elevated copy; its failure is reported
// in the outcome, not as an error.
func (s *Step) Apply(ctx compiler.RunContext) (compiler.Outcome, error) {
	log := ctx.Logger()
	parent := filepath.Dir(s.target)

	var err error
	switch s.action {
	case ActionCreate:
		log.Info(ctx.Context(), "Creating file", ports.F("target", s.target))
		if err = s.deps.FS.MkdirAll(parent, 0o755); err == nil {
			err = s.deps.FS.WriteFile(s.target, s.content, 0o644)
		}
	case ActionUpdate:
		log.Info(ctx.Context(), "Updating file", ports.F("target", s.target))
		err = s.deps.FS.WriteFile(s.target, s.content, 0o644)
	default:
		return compiler.Outcome{}, nil
	}

	if err == nil {
		return compiler.Outcome{Changed: true, Diff: s.diff()}, nil
	}
	if !errors.Is(err, fs.ErrPermission) {
		return compiler.Outcome{}, compiler.NewApplyFailedError(s.id, "failed to write "+s.target, err)
	}

	log.Debug(ctx.Context(), "Permission denied, retrying elevated", ports.F("target", s.target))
	var steps [][]string
	if s.action == ActionCreate {
		steps = append(steps, []string{s.deps.Prefix, "mkdir", "-p", parent})
	}
	steps = append(steps, []string{s.deps.Prefix, "cp", s.source, s.target})

	outcome := compiler.Outcome{Diff: s.diff(), Elevated: true}
	if err := s.runFallback(ctx, steps); err != nil {
		outcome.FallbackErr = err
		log.Warn(ctx.Context(), "Elevated copy failed, file left unsynced",
			ports.F("target", s.target), ports.F("error", err))
		return outcome, nil
	}
	outcome.Changed = true
	return outcome, nil
}

func (s *Step) runFallback(ctx compiler.RunContext, steps [][]string) error {
	if s.deps.Runner == nil {
		return errors.New("no command runner for elevated copy")
	}
	for _, words := range steps {
		ok, output, err := command.RunWords(ctx.Context(), s.deps.Runner, words...)
		if err != nil {
			return fmt.Errorf("%s: %w", command.Join(words...), err)
		}
		if !ok {
			return fmt.Errorf("%s: %s", command.Join(words...), output)
		}
	}
	return nil
}

func (s *Step) diff() compiler.Diff {
	switch s.action {
	case ActionCreate:
		return compiler.NewDiff(compiler.DiffTypeAdd, compiler.ResourceFile, s.target)
	case ActionUpdate:
		return compiler.NewDiff(compiler.DiffTypeModify, compiler.ResourceFile, s.target)
	default:
		return compiler.NewDiff(compiler.DiffTypeNone, compiler.ResourceFile, s.target)
	}
}

// Ensure Step implements compiler.Step.
var _ compiler.Step = (*Step)(nil)
