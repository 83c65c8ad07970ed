package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/converge/internal/adapters/reposcan"
	"github.com/felixgeelhaar/converge/internal/app"
	"github.com/felixgeelhaar/converge/internal/domain/compiler"
	"github.com/felixgeelhaar/converge/internal/domain/config"
	"github.com/felixgeelhaar/converge/internal/testutil"
)

func TestApply_AssumeYes(t *testing.T) {
	configPath, target := writeWorkspace(t)

	stdout, _, err := executeCommand(t, "", "apply", "--config", configPath, "--yes")
	require.NoError(t, err)

	assert.Equal(t, "Name: dotfiles\n"+
		"File will be created: "+target+"\n"+
		"\n"+
		"Applied: 0 installed, 1 created, 0 updated\n", stdout)

	testutil.AssertFileEquals(t, target, "export EDITOR=vi\n")
	testutil.AssertFileMode(t, target, 0o644)

	// A second run finds nothing to do.
	stdout, _, err = executeCommand(t, "", "apply", "--config", configPath, "--yes")
	require.NoError(t, err)
	assert.Equal(t, "Name: dotfiles\nOK\n\n", stdout)
}

func TestRoot_DefaultsToApply(t *testing.T) {
	configPath, target := writeWorkspace(t)

	stdout, _, err := executeCommand(t, "Y\n", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, app.Prompt)
	assert.FileExists(t, target)
}

func TestRoot_Declined(t *testing.T) {
	configPath, target := writeWorkspace(t)

	stdout, _, err := executeCommand(t, "n\n", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, app.Prompt)
	assert.NotContains(t, stdout, "Applied:")
	testutil.AssertFileNotExists(t, target)
}

func TestRoot_DryRun(t *testing.T) {
	configPath, target := writeWorkspace(t)

	stdout, _, err := executeCommand(t, "Y\n", "--config", configPath, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "File will be created: "+target)
	assert.NotContains(t, stdout, app.Prompt)
	testutil.AssertFileNotExists(t, target)
}

func TestPlan(t *testing.T) {
	configPath, target := writeWorkspace(t)

	stdout, _, err := executeCommand(t, "Y\n", "plan", "--config", configPath)
	require.NoError(t, err)
	assert.Equal(t, "Name: dotfiles\nFile will be created: "+target+"\n\n", stdout)
	testutil.AssertFileNotExists(t, target)
}

func TestValidate(t *testing.T) {
	configPath, target := writeWorkspace(t)

	stdout, _, err := executeCommand(t, "", "validate", "--config", configPath)
	require.NoError(t, err)
	assert.Equal(t, "Configuration valid: 1 entry\n", stdout)
	testutil.AssertFileNotExists(t, target)
}

func TestValidate_JSON(t *testing.T) {
	configPath, target := writeWorkspace(t)

	stdout, _, err := executeCommand(t, "", "validate", "--config", configPath, "--json")
	require.NoError(t, err)

	var output validationOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	assert.True(t, output.Valid)
	require.Len(t, output.Entries, 1)
	assert.Equal(t, "dotfiles", output.Entries[0].Name)
	assert.Empty(t, output.Entries[0].Install)
	require.Len(t, output.Entries[0].Files, 1)
	file := output.Entries[0].Files[0]
	assert.Equal(t, filepath.Join(filepath.Dir(configPath), "bashrc"), file.Source)
	assert.Equal(t, target, file.Target)
	assert.Equal(t, "create", file.Action)
}

func TestValidate_JSONError(t *testing.T) {
	configPath := testutil.NewWorkspace(t).Config("broken:\n  colour: red\n")

	stdout, _, err := executeCommand(t, "", "validate", "--config", configPath, "--json")
	require.Error(t, err)
	testutil.AssertUserError(t, err, config.ErrCodeConfigInvalid)

	var output validationOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	assert.False(t, output.Valid)
	assert.Contains(t, output.Error, "invalid entry")
}

func TestExecute_MissingConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "missing.yaml")

	stdout, stderr, err := executeCommand(t, "", "--config", configPath)
	testutil.AssertUserError(t, err, config.ErrCodeConfigNotFound)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error: configuration file not found: "+configPath)
	assert.Contains(t, stderr, "Suggestion: Pass the configuration path with --config")
}

func TestExecute_BadLogFormat(t *testing.T) {
	configPath, _ := writeWorkspace(t)

	_, stderr, err := executeCommand(t, "", "plan", "--config", configPath, "--log-format", "xml")
	require.Error(t, err)
	assert.Contains(t, stderr, "Error: ")
}

func TestExecute_RejectsArgs(t *testing.T) {
	_, _, err := executeCommand(t, "", "apply", "extra")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "converge dev\n  commit: none\n  built:  unknown\n", stdout)
}

func TestFormatError(t *testing.T) {
	t.Cleanup(resetFlags)

	userErr := config.NewSourceNotFoundError("dotfiles", "/cfg/bashrc", errors.New("no such file"))

	verbose = false
	msg := formatError(userErr)
	assert.Equal(t, "cannot read source file /cfg/bashrc (at dotfiles)\n\n"+
		"Suggestion: Relative source paths are resolved against the directory of the configuration file.", msg)

	verbose = true
	msg = formatError(userErr)
	assert.Contains(t, msg, "Technical details: no such file")

	stepErr := compiler.NewCheckFailedError(compiler.MustNewStepID("install:git"), errors.New("not found"))
	assert.Contains(t, formatError(stepErr), "Technical details: [CHECK_FAILED] status check failed")

	verbose = false
	assert.Contains(t, formatError(stepErr), "Suggestion: The probe command could not be started.")

	assert.Equal(t, "plain", formatError(errors.New("plain")))
}

func TestRootCmd_FlagDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		flag      string
		shorthand string
		expected  string
	}{
		{"config", "c", "config.yaml"},
		{"verbose", "v", "false"},
		{"yes", "y", "false"},
		{"dry-run", "", "false"},
		{"strict", "", "false"},
		{"log-format", "", "text"},
		{"log-level", "", "INFO"},
		{"package-tool", "", "dnf"},
		{"privilege-prefix", "", "sudo"},
		{"temp-dir", "", ""},
		{"repos-dir", "", reposcan.DefaultDir},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			t.Parallel()
			f := rootCmd.PersistentFlags().Lookup(tt.flag)
			require.NotNil(t, f)
			assert.Equal(t, tt.expected, f.DefValue)
			assert.Equal(t, tt.shorthand, f.Shorthand)
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"apply", "plan", "validate", "version"} {
		assert.Contains(t, names, want)
	}
}
