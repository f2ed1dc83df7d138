package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureDir_CreatesRelativeDirectoryInCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureDir("blobcache")
	require.NoError(t, err)

	want := filepath.Join(tmp, "blobcache")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureDir_AbsolutePathAndNestedParents(t *testing.T) {
	tmp := t.TempDir()
	want := filepath.Join(tmp, "a", "b", "c")

	got, err := EnsureDir(want)
	require.NoError(t, err)
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureDir_ExistingDirectoryIsNotAnError(t *testing.T) {
	tmp := t.TempDir()

	first, err := EnsureDir(tmp)
	require.NoError(t, err)

	second, err := EnsureDir(tmp)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
