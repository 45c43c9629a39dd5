package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.json", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0755))
	single := filepath.Join(t.TempDir(), "single.lottie")
	require.NoError(t, os.WriteFile(single, []byte("x"), 0644))

	src, err := New(dir, single)
	require.NoError(t, err)

	assert.Equal(t, 3, src.Count())
	assert.Equal(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json"), single}, src.Paths())

	data, err := src.Read(0)
	require.NoError(t, err)
	assert.Equal(t, "a.json", string(data))
}

func TestNewMissingPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestReadVanishedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	src, err := New(path)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	_, err = src.Read(0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "gone.json")
}
