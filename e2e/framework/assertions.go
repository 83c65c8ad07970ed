//go:build e2e

package framework

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ExpectExit asserts the process exit code, printing both streams on mismatch.
func (r *Result) ExpectExit(t *testing.T, code int) {
	t.Helper()
	require.NoError(t, r.Err, "converge did not run")
	assert.Equal(t, code, r.ExitCode, "stdout:\n%s\nstderr:\n%s", r.Stdout, r.Stderr)
}

// ExpectSuccess asserts a zero exit.
func (r *Result) ExpectSuccess(t *testing.T) {
	t.Helper()
	r.ExpectExit(t, 0)
}

// ExpectStdout asserts that stdout contains every fragment.
func (r *Result) ExpectStdout(t *testing.T, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		assert.Contains(t, r.Stdout, f)
	}
}

// ExpectNoStdout asserts that stdout contains none of the fragments.
func (r *Result) ExpectNoStdout(t *testing.T, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		assert.NotContains(t, r.Stdout, f)
	}
}

// ExpectStderr asserts that stderr contains the fragment.
func (r *Result) ExpectStderr(t *testing.T, fragment string) {
	t.Helper()
	assert.Contains(t, r.Stderr, fragment)
}

// ExpectFile asserts a file under the root directory with exact content.
func (e *Environment) ExpectFile(t *testing.T, path, content string) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.rootDir, path))
	require.NoError(t, err, "expected %s to exist", path)
	assert.Equal(t, content, string(data))
}

// ExpectNoFile asserts that nothing exists at path under the root directory.
func (e *Environment) ExpectNoFile(t *testing.T, path string) {
	t.Helper()
	assert.False(t, e.FileExists(path), "expected %s to not exist", path)
}
