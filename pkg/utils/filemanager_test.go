package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicCommitReplacesDestination(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "converted.csv")
	require.NoError(t, os.WriteFile(dest, []byte("old\n"), 0644))

	f, err := CreateAtomic(dest)
	require.NoError(t, err)
	_, err = f.WriteString("new\n")
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(data), "destination must not change before commit")

	require.NoError(t, f.Commit())
	require.NoError(t, f.Abort())

	data, err = os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))
	assert.False(t, FileExists(f.TempPath()))
}

func TestAtomicAbortKeepsDestination(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "converted.csv")
	require.NoError(t, os.WriteFile(dest, []byte("old\n"), 0644))

	f, err := CreateAtomic(dest)
	require.NoError(t, err)
	_, err = f.WriteString("partial")
	require.NoError(t, err)
	require.NoError(t, f.Abort())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(data))
	assert.False(t, FileExists(f.TempPath()))
	assert.Error(t, f.Commit())
}

func TestCreateAtomicMakesDirectory(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "out", "converted.csv")

	f, err := CreateAtomic(dest)
	require.NoError(t, err)
	require.NoError(t, f.Commit())

	assert.True(t, FileExists(dest))
	assert.Equal(t, dest, f.Path())
}
