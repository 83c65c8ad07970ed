// Package app wires configuration loading, planning, confirmation and
// apply into a single reconciliation run.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/felixgeelhaar/statekit"
	"github.com/google/uuid"

	"github.com/felixgeelhaar/converge/internal/adapters/command"
	"github.com/felixgeelhaar/converge/internal/adapters/filesystem"
	"github.com/felixgeelhaar/converge/internal/adapters/httpfetch"
	"github.com/felixgeelhaar/converge/internal/domain/config"
	"github.com/felixgeelhaar/converge/internal/domain/entry"
	"github.com/felixgeelhaar/converge/internal/domain/variables"
	"github.com/felixgeelhaar/converge/internal/ports"
	"github.com/felixgeelhaar/converge/internal/provider/files"
	"github.com/felixgeelhaar/converge/internal/provider/install"
)

// ErrDegraded is returned in strict mode when a file could not be synced.
var ErrDegraded = errors.New("some files were left unsynced")

// Options configures a Runner. Unset collaborators default to the real host.
type Options struct {
	ConfigPath string

	// Input supplies the confirmation answer.
	Input io.Reader
	// Output receives the plan, the prompt and the summary.
	Output io.Writer
	// Env resolves ${NAME} placeholders in target paths.
	Env variables.Environment

	Runner  ports.CommandRunner
	FS      ports.FileSystem
	Fetcher ports.Fetcher
	Repos   ports.RepoIndex
	Logger  ports.Logger

	// PackageTool, PrivilegePrefix and TempDir parameterize install commands.
	PackageTool     string
	PrivilegePrefix string
	TempDir         string

	// AssumeYes skips the prompt.
	AssumeYes bool
	// DryRun stops after the plan.
	DryRun bool
	// Strict turns unsynced files into a failed run.
	Strict bool
}

// Runner performs reconciliation runs.
type Runner struct {
	opts    Options
	printer *Printer
}

// NewRunner creates a Runner, filling in defaults.
func NewRunner(opts Options) *Runner {
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.DefaultPath
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Env == nil {
		opts.Env = variables.FromOS()
	}
	if opts.Runner == nil {
		opts.Runner = command.NewRealRunner()
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewRealFileSystem()
	}
	if opts.Fetcher == nil {
		opts.Fetcher = httpfetch.NewClient(nil)
	}
	if opts.Repos == nil {
		opts.Repos = ports.NoRepoIndex{}
	}
	if opts.Logger == nil {
		opts.Logger = ports.Discard
	}
	if opts.PackageTool == "" {
		opts.PackageTool = install.DefaultTool
	}
	return &Runner{opts: opts, printer: NewPrinter(opts.Output)}
}

// Load reads the configuration and builds its entries.
func (r *Runner) Load() ([]*entry.Entry, error) {
	loader := config.NewLoader(
		install.Deps{
			Runner:  r.opts.Runner,
			Fetcher: r.opts.Fetcher,
			Repos:   r.opts.Repos,
			FS:      r.opts.FS,
			Tool:    r.opts.PackageTool,
			Prefix:  r.opts.PrivilegePrefix,
			TempDir: r.opts.TempDir,
		},
		files.Deps{
			FS:     r.opts.FS,
			Runner: r.opts.Runner,
			Env:    r.opts.Env,
			Prefix: r.opts.PrivilegePrefix,
		},
	)
	return loader.Load(r.opts.ConfigPath)
}

// Plan prints every entry's pending changes and reports whether any exist.
func (r *Runner) Plan(ctx context.Context, entries []*entry.Entry) (bool, error) {
	hasWork := false
	for _, e := range entries {
		lines, err := e.PlanDescription(ctx)
		if err != nil {
			return false, fmt.Errorf("plan %s: %w", e.Name(), err)
		}
		r.printer.Entry(e.Name(), lines)
		hasWork = hasWork || len(lines) > 0
	}
	return hasWork, nil
}

// Confirm asks once and returns true only for an exact "Y" answer.
// End of input declines.
func (r *Runner) Confirm() bool {
	r.printer.Prompt()
	line, err := bufio.NewReader(r.opts.Input).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	return strings.TrimRight(line, "\r\n") == "Y"
}

// Run loads, plans, asks for confirmation and applies.
// The returned Report is never nil.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.New().String()}
	log := r.opts.Logger.With(ports.F("run", report.RunID))
	ctx = ports.ContextWithLogger(ctx, log)

	interp, err := buildRunMachine(report)
	if err != nil {
		return report, fmt.Errorf("failed to build state machine: %w", err)
	}
	interp.Start()
	defer interp.Stop()

	send := func(event string, payload interface{}) {
		interp.Send(statekit.Event{Type: statekit.EventType(event), Payload: payload})
		report.State = State(interp.State().Value)
		log.Debug(ctx, "Run state", ports.F("state", report.State))
	}
	fail := func(err error) (*Report, error) {
		send(EventFail, err)
		return report, err
	}

	log.Debug(ctx, "Loading configuration", ports.F("path", r.opts.ConfigPath))
	entries, err := r.Load()
	if err != nil {
		return fail(err)
	}
	report.Entries = len(entries)
	send(EventLoaded, nil)

	report.HasWork, err = r.Plan(ctx, entries)
	if err != nil {
		return fail(err)
	}
	send(EventPlanned, nil)

	switch {
	case !report.HasWork:
		send(EventNothingDue, nil)
		return report, nil
	case r.opts.DryRun:
		send(EventSkip, nil)
		return report, nil
	}

	if !r.opts.AssumeYes && !r.Confirm() {
		send(EventDecline, nil)
		send(EventFinish, nil)
		log.Info(ctx, "Not confirmed, nothing applied")
		return report, nil
	}
	send(EventConfirm, nil)

	for _, e := range entries {
		res, err := e.Apply(ctx)
		report.add(res)
		if err != nil {
			return fail(fmt.Errorf("apply %s: %w", e.Name(), err))
		}
	}
	send(EventApplied, nil)
	r.printer.Summary(report)

	if r.opts.Strict && report.Degraded > 0 {
		return report, fmt.Errorf("%w: %s", ErrDegraded, strings.Join(report.Unsynced, ", "))
	}
	return report, nil
}
