package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/converge/internal/domain/config"
)

// AssertFileNotExists asserts that no file exists at the given path.
func AssertFileNotExists(t testing.TB, path string, msgAndArgs ...interface{}) {
	t.Helper()

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), append([]interface{}{"expected file to not exist: %s", path}, msgAndArgs...)...)
}

// AssertFileContains asserts that a file contains the expected substring.
func AssertFileContains(t testing.TB, path, expected string, msgAndArgs ...interface{}) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read file: %s", path)

	assert.Contains(t, string(content), expected, msgAndArgs...)
}

// AssertFileEquals asserts that a file has exactly the expected content.
func AssertFileEquals(t testing.TB, path, expected string, msgAndArgs ...interface{}) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read file: %s", path)

	assert.Equal(t, expected, string(content), msgAndArgs...)
}

// AssertFileMode asserts the permission bits of a file.
func AssertFileMode(t testing.TB, path string, mode os.FileMode) {
	t.Helper()

	info, err := os.Stat(path)
	require.NoError(t, err, "failed to stat file: %s", path)
	assert.Equal(t, mode, info.Mode().Perm(), "unexpected mode for %s", path)
}

// AssertUserError asserts that err is a config.UserError with the given code.
func AssertUserError(t testing.TB, err error, code string) {
	t.Helper()

	require.Error(t, err)
	assert.True(t, config.IsUserError(err, code), "expected user error %s, got: %v", code, err)
}
