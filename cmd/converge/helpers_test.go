package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/felixgeelhaar/converge/internal/adapters/logging"
	"github.com/felixgeelhaar/converge/internal/adapters/reposcan"
	"github.com/felixgeelhaar/converge/internal/domain/config"
	"github.com/felixgeelhaar/converge/internal/provider/install"
	"github.com/felixgeelhaar/converge/internal/testutil"
)

// resetFlags restores the package-level flag variables between executions.
func resetFlags() {
	cfgFile = config.DefaultPath
	verbose = false
	yesFlag = false
	dryRunFlag = false
	strictFlag = false
	logFormat = string(logging.FormatText)
	logLevel = "INFO"
	packageTool = install.DefaultTool
	privilegePrefix = install.DefaultPrefix
	tempDir = ""
	reposDir = reposcan.DefaultDir
	validateJSON = false
}

// executeCommand runs the root command with args and input, capturing output.
// Callers must not run in parallel.
func executeCommand(t *testing.T, input string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err = Execute()
	return out.String(), errOut.String(), err
}

// writeWorkspace creates a config with one files-only entry and returns the
// config path and the target path.
func writeWorkspace(t *testing.T) (configPath, target string) {
	t.Helper()
	ws := testutil.NewWorkspace(t)
	target = ws.Path("home", ".bashrc")

	ws.Source("bashrc", "export EDITOR=vi\n")
	configPath = ws.Config(testutil.NewConfigBuilder().
		With(testutil.NewEntry("dotfiles").File("bashrc", target)).
		ToYAML())
	return configPath, target
}
