package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindInputFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b_cells.xlsx", "a_cells.csv", "notes.txt", "readme.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.csv"), 0755))

	d := NewDiscovery(".")
	found, err := d.FindInputFiles(dir)
	require.NoError(t, err)

	require.Len(t, found, 2)
	assert.Equal(t, "a_cells.csv", found[0].Name)
	assert.Equal(t, "b_cells.xlsx", found[1].Name)
	assert.Equal(t, filepath.Join(dir, "a_cells.csv"), found[0].Path)
}

func TestFindInputFilesEmptyDir(t *testing.T) {
	d := NewDiscovery(".")

	found, err := d.FindInputFiles(t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindInputFilesMissingDir(t *testing.T) {
	d := NewDiscovery(".")

	_, err := d.FindInputFiles(filepath.Join(t.TempDir(), "does-not-exist"))

	assert.Error(t, err)
}

func TestFindCSVFilesRelativeDir(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "raw"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "raw", "cells.CSV"), []byte("x"), 0644))

	d := NewDiscovery(base)
	found, err := d.FindCSVFiles("raw")
	require.NoError(t, err)

	require.Len(t, found, 1)
	assert.Equal(t, "cells.CSV", found[0].Name)
}
