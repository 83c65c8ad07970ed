package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealFileSystem_ReadWrite(t *testing.T) {
	t.Parallel()

	rfs := NewRealFileSystem()
	dir := t.TempDir()
	path := filepath.Join(dir, "motd")

	assert.False(t, rfs.Exists(path))

	require.NoError(t, rfs.WriteFile(path, []byte("welcome\n"), 0o644))
	assert.True(t, rfs.Exists(path))
	assert.False(t, rfs.IsDir(path))

	content, err := rfs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "welcome\n", string(content))
}

func TestRealFileSystem_MkdirAll(t *testing.T) {
	t.Parallel()

	rfs := NewRealFileSystem()
	nested := filepath.Join(t.TempDir(), "etc", "profile.d")

	require.NoError(t, rfs.MkdirAll(nested, 0o755))
	assert.True(t, rfs.IsDir(nested))
	assert.True(t, rfs.Exists(nested))
}

func TestRealFileSystem_ReadMissing(t *testing.T) {
	t.Parallel()

	_, err := NewRealFileSystem().ReadFile(filepath.Join(t.TempDir(), "absent"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestRealFileSystem_WritePermissionDenied(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	dir := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(dir, 0o555))

	err := NewRealFileSystem().WriteFile(filepath.Join(dir, "file"), []byte("x"), 0o644)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrPermission))
}
