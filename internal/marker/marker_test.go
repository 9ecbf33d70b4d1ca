package marker

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_IsProjectRoot(t *testing.T) {
	t.Run("marker present", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultName), []byte("[package]\n"), 0o644))

		ok, err := New("").IsProjectRoot(dir)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("marker missing", func(t *testing.T) {
		ok, err := New("").IsProjectRoot(t.TempDir())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("marker in a subdirectory does not count", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", DefaultName), nil, 0o644))

		ok, err := New("").IsProjectRoot(dir)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("custom marker name", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module x\n"), 0o644))

		ok, err := New("go.mod").IsProjectRoot(dir)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = New(DefaultName).IsProjectRoot(dir)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "plain")
		require.NoError(t, os.WriteFile(file, nil, 0o644))

		ok, err := New("").IsProjectRoot(file)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unsearchable directory is an error", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("permission checks do not apply to root")
		}
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultName), nil, 0o644))
		require.NoError(t, os.Chmod(dir, 0o000))
		t.Cleanup(func() { os.Chmod(dir, 0o755) })

		ok, err := New("").IsProjectRoot(dir)
		assert.False(t, ok)
		assert.ErrorIs(t, err, fs.ErrPermission)
	})
}
