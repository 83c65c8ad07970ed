package entry_test

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/converge/internal/domain/entry"
	"github.com/felixgeelhaar/converge/internal/domain/variables"
	"github.com/felixgeelhaar/converge/internal/ports"
	"github.com/felixgeelhaar/converge/internal/provider/files"
	"github.com/felixgeelhaar/converge/internal/provider/install"
	"github.com/felixgeelhaar/converge/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type host struct {
	runner *mocks.CommandRunner
	fs     *mocks.FileSystem
}

func newHost() *host {
	return &host{runner: mocks.NewCommandRunner(), fs: mocks.NewFileSystem()}
}

func (h *host) installStep(t *testing.T, cfg install.Config) *install.Step {
	t.Helper()
	step, err := install.NewStep("tool-x", cfg, install.Deps{
		Runner:  h.runner,
		Fetcher: mocks.NewFetcher(),
		FS:      h.fs,
		Prefix:  "sudo",
		TempDir: "/tmp",
	})
	require.NoError(t, err)
	return step
}

func (h *host) group(t *testing.T, pairs ...files.Pair) *files.Group {
	t.Helper()
	g, err := files.NewGroup("tool-x", pairs, files.Deps{
		FS:     h.fs,
		Runner: h.runner,
		Env:    variables.Snapshot{"HOME": "/home/dev"},
		Prefix: "sudo",
	})
	require.NoError(t, err)
	return g
}

func TestEntry_PlanDescription(t *testing.T) {
	t.Parallel()

	h := newHost()
	h.runner.AddLine("false", ports.CommandResult{ExitCode: 1})
	h.fs.AddFile("/src/new.conf", "new")
	h.fs.AddFile("/src/changed.conf", "v2")
	h.fs.AddFile("/src/same.conf", "same")
	h.fs.AddFile("/home/dev/changed.conf", "v1")
	h.fs.AddFile("/home/dev/same.conf", "same")

	e := entry.New("tool-x",
		h.installStep(t, install.Config{IfFail: "false", InstallFromRepo: "tool-x"}),
		h.group(t,
			files.Pair{Source: "/src/new.conf", Target: "${HOME}/new.conf"},
			files.Pair{Source: "/src/same.conf", Target: "${HOME}/same.conf"},
			files.Pair{Source: "/src/changed.conf", Target: "${HOME}/changed.conf"},
		),
	)

	lines, err := e.PlanDescription(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Package will be installed: tool-x",
		"File will be created: /home/dev/new.conf",
		"File will be updated: /home/dev/changed.conf",
	}, lines)

	again, err := e.PlanDescription(context.Background())
	require.NoError(t, err)
	assert.Equal(t, lines, again)
	assert.Empty(t, h.fs.Writes())
	assert.Equal(t, []string{"false", "false"}, h.runner.Lines())
}

func TestEntry_NothingToDo(t *testing.T) {
	t.Parallel()

	h := newHost()
	h.runner.AddLine("which git", ports.CommandResult{ExitCode: 0})

	e := entry.New("git", h.installStep(t, install.Config{IfFail: "which git", InstallFromRepo: "git"}), nil)

	lines, err := e.PlanDescription(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestEntry_Empty(t *testing.T) {
	t.Parallel()

	e := entry.New("nothing", nil, nil)
	assert.Equal(t, "nothing", e.Name())
	assert.Nil(t, e.Install())
	assert.Empty(t, e.Files())
	assert.Empty(t, e.Steps())

	result, err := e.Apply(context.Background())
	require.NoError(t, err)
	assert.Nil(t, result.Install)
}

func TestEntry_Apply(t *testing.T) {
	t.Parallel()

	h := newHost()
	installed := false
	h.runner.AddLine("which tool-x", ports.CommandResult{ExitCode: 1})
	h.runner.AddLine("sudo dnf install -y tool-x", ports.CommandResult{ExitCode: 0})
	h.runner.OnRun("sudo dnf install -y tool-x", func() {
		installed = true
		h.runner.AddLine("which tool-x", ports.CommandResult{ExitCode: 0})
	})
	h.fs.AddFile("/src/tool.conf", "key=value\n")

	e := entry.New("tool-x",
		h.installStep(t, install.Config{IfFail: "which tool-x", InstallFromRepo: "tool-x"}),
		h.group(t, files.Pair{Source: "/src/tool.conf", Target: "${HOME}/.config/tool.conf"}),
	)

	result, err := e.Apply(context.Background())
	require.NoError(t, err)
	assert.True(t, installed)
	require.NotNil(t, result.Install)
	assert.True(t, result.Install.Changed)
	require.Len(t, result.Files, 1)
	assert.True(t, result.Files[0].Changed)

	content, err := h.fs.ReadFile("/home/dev/.config/tool.conf")
	require.NoError(t, err)
	assert.Equal(t, "key=value\n", string(content))

	// The install probe now passes; the file step kept its action from construction.
	lines, err := e.PlanDescription(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"File will be created: /home/dev/.config/tool.conf"}, lines)
}

func TestEntry_Apply_InstallFailureSkipsFiles(t *testing.T) {
	t.Parallel()

	h := newHost()
	h.runner.AddLine("false", ports.CommandResult{ExitCode: 1})
	h.runner.AddLine("sudo dnf install -y nope", ports.CommandResult{ExitCode: 1, Stderr: "No match for argument: nope"})
	h.fs.AddFile("/src/a", "a")

	e := entry.New("nope",
		h.installStep(t, install.Config{IfFail: "false", InstallFromRepo: "nope"}),
		h.group(t, files.Pair{Source: "/src/a", Target: "/home/dev/a"}),
	)

	_, err := e.Apply(context.Background())
	require.Error(t, err)
	assert.Empty(t, h.fs.Writes())
}
