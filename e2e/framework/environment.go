//go:build e2e

// Package framework provides the E2E test infrastructure for converge.
package framework

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

// Environment is an isolated directory tree with its own HOME.
type Environment struct {
	t          *testing.T
	rootDir    string
	configDir  string
	binaryPath string
	homeDir    string
}

var (
	buildOnce  sync.Once
	binaryPath string
	buildErr   error
)

// findProjectRoot locates the project root directory.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// buildBinary builds the converge binary once per test run.
func buildBinary(t *testing.T) (string, error) {
	buildOnce.Do(func() {
		root, err := findProjectRoot()
		if err != nil {
			buildErr = err
			return
		}

		binaryPath = filepath.Join(os.TempDir(), "converge-e2e-test")

		cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/converge")
		cmd.Dir = root

		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			buildErr = err
			t.Logf("Build stderr: %s", stderr.String())
		}
	})

	return binaryPath, buildErr
}

// NewEnvironment creates a new isolated test environment.
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()

	binary, err := buildBinary(t)
	if err != nil {
		t.Fatalf("Failed to build binary: %v", err)
	}

	rootDir := t.TempDir()
	env := &Environment{
		t:          t,
		rootDir:    rootDir,
		configDir:  filepath.Join(rootDir, "config"),
		binaryPath: binary,
		homeDir:    filepath.Join(rootDir, "home"),
	}

	for _, dir := range []string{env.configDir, env.homeDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	return env
}

// ConfigDir returns the directory holding config.yaml and its sources.
func (e *Environment) ConfigDir() string {
	return e.configDir
}

// ConfigPath returns the path of config.yaml.
func (e *Environment) ConfigPath() string {
	return filepath.Join(e.configDir, "config.yaml")
}

// HomeDir returns the simulated home directory.
func (e *Environment) HomeDir() string {
	return e.homeDir
}

// BinaryPath returns the path to the built binary.
func (e *Environment) BinaryPath() string {
	return e.binaryPath
}

// WriteFile writes content to a path relative to the root directory.
func (e *Environment) WriteFile(path, content string) {
	e.t.Helper()

	fullPath := filepath.Join(e.rootDir, path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		e.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		e.t.Fatalf("Failed to write file %s: %v", fullPath, err)
	}
}

// WriteSource writes a source file next to config.yaml.
func (e *Environment) WriteSource(name, content string) {
	e.t.Helper()
	e.WriteFile(filepath.Join("config", name), content)
}

// WriteConfig writes config.yaml.
func (e *Environment) WriteConfig(content string) string {
	e.t.Helper()
	e.WriteFile(filepath.Join("config", "config.yaml"), content)
	return e.ConfigPath()
}

// FileExists checks if a file exists relative to the root directory.
func (e *Environment) FileExists(path string) bool {
	_, err := os.Stat(filepath.Join(e.rootDir, path))
	return err == nil
}
