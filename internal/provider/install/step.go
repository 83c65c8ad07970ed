package install

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/converge/internal/adapters/command"
	"github.com/felixgeelhaar/converge/internal/domain/compiler"
	"github.com/felixgeelhaar/converge/internal/ports"
)

// Defaults for the package manager invocation.
const (
	DefaultTool   = "dnf"
	DefaultPrefix = "sudo"
)

// Deps are the host collaborators an install step needs.
type Deps struct {
	Runner  ports.CommandRunner
	Fetcher ports.Fetcher
	Repos   ports.RepoIndex
	FS      ports.FileSystem

	// Tool is the package manager executable.
	Tool string
	// Prefix elevates package manager calls. Empty runs them directly.
	Prefix string
	// TempDir receives downloaded archives.
	TempDir string
}

// Step installs one package when its probe fails.
type Step struct {
	cfg  Config
	id   compiler.StepID
	deps Deps
}

// NewStep validates cfg and creates the install step for the named entry.
func NewStep(entry string, cfg Config, deps Deps) (*Step, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Runner == nil {
		return nil, errors.New("install step requires a command runner")
	}
	if deps.Tool == "" {
		deps.Tool = DefaultTool
	}
	if deps.TempDir == "" {
		deps.TempDir = os.TempDir()
	}
	if deps.Repos == nil {
		deps.Repos = ports.NoRepoIndex{}
	}

	return &Step{
		cfg:  cfg,
		id:   compiler.MustNewStepID("install:" + compiler.Segment(entry)),
		deps: deps,
	}, nil
}

// ID returns the step identifier.
func (s *Step) ID() compiler.StepID {
	return s.id
}

// Config returns the validated configuration.
func (s *Step) Config() Config {
	return s.cfg
}

// ShouldInstall runs the probe and returns true iff it exits nonzero.
// A probe whose executable is missing counts as a failed probe.
func (s *Step) ShouldInstall(ctx context.Context) (bool, error) {
	log := ports.LoggerOrDiscard(ctx)

	ok, output, err := command.RunLine(ctx, s.deps.Runner, s.cfg.IfFail)
	if errors.Is(err, exec.ErrNotFound) {
		log.Debug(ctx, "Probe executable not found", ports.F("probe", s.cfg.IfFail))
		return true, nil
	}
	if err != nil {
		return false, err
	}

	log.Debug(ctx, "Probe finished",
		ports.F("probe", s.cfg.IfFail),
		ports.F("passed", ok),
		ports.F("output", strings.TrimSpace(output)),
	)
	return !ok, nil
}

// Check determines if the package needs installing.
func (s *Step) Check(ctx compiler.RunContext) (compiler.StepStatus, error) {
	needs, err := s.ShouldInstall(ctx.Context())
	if err != nil {
		return compiler.StatusFailed, compiler.NewCheckFailedError(s.id, err)
	}
	if needs {
		return compiler.StatusNeedsApply, nil
	}
	return compiler.StatusSatisfied, nil
}

// Plan returns the diff for this step.
func (s *Step) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	return s.diff(), nil
}

// Apply installs the package unless the probe now passes.
func (s *Step) Apply(ctx compiler.RunContext) (compiler.Outcome, error) {
	status, err := s.Check(ctx)
	if err != nil {
		return compiler.Outcome{}, err
	}
	if !status.NeedsAction() {
		return compiler.Outcome{}, nil
	}

	target := s.cfg.InstallFromRepo
	if s.cfg.Remote() {
		target, err = s.download(ctx)
		if err != nil {
			return compiler.Outcome{}, err
		}
	} else if err := s.addRepo(ctx); err != nil {
		return compiler.Outcome{}, err
	}

	if err := s.installPackage(ctx, target); err != nil {
		return compiler.Outcome{}, err
	}
	return compiler.Outcome{Changed: true, Diff: s.diff()}, nil
}

func (s *Step) addRepo(ctx compiler.RunContext) error {
	repo := s.cfg.Repo
	if repo == "" {
		return nil
	}
	log := ctx.Logger()

	found, err := s.deps.Repos.HasRepo(repo)
	if err != nil {
		log.Warn(ctx.Context(), "Could not inspect configured repos", ports.F("error", err))
	}
	if found {
		log.Info(ctx.Context(), "Repo already configured", ports.F("repo", repo))
		return nil
	}

	log.Info(ctx.Context(), "Adding repo", ports.F("repo", repo))
	ok, output, err := command.RunWords(ctx.Context(), s.deps.Runner,
		s.deps.Prefix, s.deps.Tool, "config-manager", "-y", "--add-repo", repo)
	if err != nil {
		return compiler.NewApplyFailedError(s.id, "failed to add repo "+repo, err)
	}
	if !ok {
		return compiler.NewApplyFailedError(s.id, "failed to add repo "+repo, outputError(output)).
			WithSuggestion("Check that the repository URL is reachable and that " + s.deps.Tool + " has the config-manager plugin.")
	}
	return nil
}

func (s *Step) download(ctx compiler.RunContext) (string, error) {
	remote := s.cfg.InstallFromRemoteFile
	ctx.Logger().Info(ctx.Context(), "Downloading remote file", ports.F("url", remote))

	if s.deps.Fetcher == nil || s.deps.FS == nil {
		return "", compiler.NewApplyFailedError(s.id, "remote installs are not available", nil)
	}

	resp, err := s.deps.Fetcher.Get(ctx.Context(), remote)
	if err != nil {
		return "", compiler.NewApplyFailedError(s.id, "failed to download remote file from "+remote, err)
	}
	if !resp.OK() {
		return "", compiler.NewApplyFailedError(s.id, "failed to download remote file from "+remote,
			fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(resp.Body))))
	}

	dest := filepath.Join(s.deps.TempDir, archiveName(remote))
	if err := s.deps.FS.WriteFile(dest, resp.Body, 0o644); err != nil {
		return "", compiler.NewApplyFailedError(s.id, "failed to store downloaded file", err)
	}
	return dest, nil
}

func (s *Step) installPackage(ctx compiler.RunContext, target string) error {
	ctx.Logger().Info(ctx.Context(), "Installing package", ports.F("package", target))

	ok, output, err := command.RunWords(ctx.Context(), s.deps.Runner,
		s.deps.Prefix, s.deps.Tool, "install", "-y", target)
	if err != nil {
		return compiler.NewApplyFailedError(s.id, "failed to install package", err)
	}
	if !ok {
		return compiler.NewApplyFailedError(s.id, "failed to install package", outputError(output))
	}
	return nil
}

func (s *Step) diff() compiler.Diff {
	return compiler.NewDiff(compiler.DiffTypeAdd, compiler.ResourcePackage, s.cfg.PackageSpec())
}

// archiveName returns the last path segment of the archive URL.
func archiveName(remote string) string {
	if u, err := url.Parse(remote); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return path.Base(remote)
}

func outputError(output string) error {
	output = strings.TrimSpace(output)
	if output == "" {
		return errors.New("command exited with a nonzero status")
	}
	return errors.New(output)
}

// Ensure Step implements compiler.Step.
var _ compiler.Step = (*Step)(nil)
