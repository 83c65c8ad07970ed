package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/converge/internal/adapters/command"
	"github.com/felixgeelhaar/converge/internal/ports"
	"github.com/felixgeelhaar/converge/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		wantName string
		wantArgs []string
		wantErr  bool
	}{
		{
			name:     "single word",
			line:     "false",
			wantName: "false",
			wantArgs: []string{},
		},
		{
			name:     "words separated by runs of whitespace",
			line:     "rpm  -q\tgit ",
			wantName: "rpm",
			wantArgs: []string{"-q", "git"},
		},
		{
			name:     "quotes are not interpreted",
			line:     `echo "a b"`,
			wantName: "echo",
			wantArgs: []string{`"a`, `b"`},
		},
		{
			name:    "blank",
			line:    "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			name, args, err := command.SplitLine(tt.line)
			if tt.wantErr {
				assert.ErrorIs(t, err, command.ErrEmptyCommand)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestRunLine_Success(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("rpm", []string{"-q", "git"}, ports.CommandResult{
		ExitCode: 0,
		Stdout:   "git-2.43.0-1.fc39.x86_64\n",
		Stderr:   "ignored",
	})

	ok, output, err := command.RunLine(context.Background(), runner, "rpm -q git")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "git-2.43.0-1.fc39.x86_64\n", output)
}

func TestRunLine_NonzeroExitIsNotAnError(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("rpm", []string{"-q", "nope"}, ports.CommandResult{
		ExitCode: 1,
		Stdout:   "ignored",
		Stderr:   "package nope is not installed\n",
	})

	ok, output, err := command.RunLine(context.Background(), runner, "rpm -q nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "package nope is not installed\n", output)
}

func TestRunLine_StartFailure(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddError("missing-tool", nil, errors.New("executable file not found"))

	ok, _, err := command.RunLine(context.Background(), runner, "missing-tool")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRunLine_Empty(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	_, _, err := command.RunLine(context.Background(), runner, "")
	assert.ErrorIs(t, err, command.ErrEmptyCommand)
	assert.Empty(t, runner.Calls())
}

func TestJoin(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sudo dnf install -y git", command.Join("sudo", "dnf", "install", "-y", "git"))
	assert.Equal(t, "dnf install -y git", command.Join("", "dnf", "install", "-y", "git"))
}

func TestRunWords(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("cp", []string{"/src/my file", "/dst/my file"}, ports.CommandResult{ExitCode: 0})

	ok, _, err := command.RunWords(context.Background(), runner, "", "cp", "/src/my file", "/dst/my file")
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, runner.Calls(), 1)
	assert.Equal(t, "cp", runner.Calls()[0].Command)

	_, _, err = command.RunWords(context.Background(), runner, "", "")
	assert.ErrorIs(t, err, command.ErrEmptyCommand)
}
