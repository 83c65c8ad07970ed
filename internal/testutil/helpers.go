// Package testutil provides test helpers and utilities for converge tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Workspace is a temporary directory holding a configuration file and the
// source files it references.
type Workspace struct {
	t   *testing.T
	Dir string
}

// NewWorkspace creates a workspace removed when the test ends.
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	return &Workspace{t: t, Dir: t.TempDir()}
}

// Path joins elem onto the workspace directory.
func (w *Workspace) Path(elem ...string) string {
	return filepath.Join(append([]string{w.Dir}, elem...)...)
}

// Source writes a source file relative to the workspace and returns its path.
func (w *Workspace) Source(name, content string) string {
	w.t.Helper()
	return WriteTempFile(w.t, w.Dir, name, content)
}

// Config writes config.yaml and returns its path.
func (w *Workspace) Config(content string) string {
	w.t.Helper()
	return WriteTempFile(w.t, w.Dir, "config.yaml", content)
}

// WriteTempFile writes content to a file in the specified directory,
// creating parent directories as needed.
func WriteTempFile(t *testing.T, dir, filename, content string) string {
	t.Helper()

	path := filepath.Join(dir, filename)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "failed to create parent of %s", filename)
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err, "failed to write temp file: %s", filename)

	return path
}

// WriteTempDir creates a subdirectory in the temp directory.
func WriteTempDir(t *testing.T, dir, dirname string) string {
	t.Helper()

	path := filepath.Join(dir, dirname)
	err := os.MkdirAll(path, 0o755)
	require.NoError(t, err, "failed to create temp subdirectory: %s", dirname)

	return path
}
