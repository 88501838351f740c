package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	capPath := filepath.Join(dir, "cap.cpp")
	mainPath := filepath.Join(dir, "nested", "main.cpp")
	require.NoError(t, os.WriteFile(capPath, []byte("stale content that is longer than the new one"), 0o644))

	err := WriteFiles([]GeneratedFile{
		{Name: capPath, Content: []byte("cap")},
		{Name: mainPath, Content: []byte("main")},
	})
	require.NoError(t, err)

	got, err := os.ReadFile(capPath)
	require.NoError(t, err)
	assert.Equal(t, "cap", string(got))

	got, err = os.ReadFile(mainPath)
	require.NoError(t, err)
	assert.Equal(t, "main", string(got))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"cap.cpp", "nested"}, names)
}

func TestWriteFiles_TargetIsDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "taken")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), nil, 0o644))

	err := WriteFiles([]GeneratedFile{{Name: target, Content: []byte("x")}})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file should be removed on failure")
}

func TestFormatArchive(t *testing.T) {
	data := FormatArchive([]GeneratedFile{
		{Name: "cap.cpp", Content: []byte("line1\nline2")},
		{Name: "main.cpp", Content: []byte("main\n")},
	})

	ar := txtar.Parse(data)
	require.Len(t, ar.Files, 2)
	assert.Equal(t, "cap.cpp", ar.Files[0].Name)
	assert.Equal(t, "line1\nline2\n", string(ar.Files[0].Data))
	assert.Equal(t, "main.cpp", ar.Files[1].Name)
	assert.Equal(t, "main\n", string(ar.Files[1].Data))
	assert.Equal(t, "onebinary: 2 files\n", string(ar.Comment))
}
