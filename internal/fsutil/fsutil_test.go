package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.html"), "<html></html>")
	writeFile(t, filepath.Join(dir, "api", "index.html"), "<html></html>")
	writeFile(t, filepath.Join(dir, "style.css"), "body{}")

	files, err := FindFilesByExtension(dir, ".html")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		filepath.Join(dir, "index.html"),
		filepath.Join(dir, "api", "index.html"),
	}, files)
}

func TestCopyTree(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "deploy", "v1.0")
	writeFile(t, filepath.Join(src, "index.html"), "home")
	writeFile(t, filepath.Join(src, "api", "index.html"), "api")

	// Stale content in dest must not survive the copy.
	writeFile(t, filepath.Join(dest, "stale.html"), "old")

	// --- Act ---
	require.NoError(t, CopyTree(src, dest))

	// --- Assert ---
	data, err := os.ReadFile(filepath.Join(dest, "api", "index.html"))
	require.NoError(t, err)
	require.Equal(t, "api", string(data))

	_, err = os.Stat(filepath.Join(dest, "stale.html"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCopyTree_SourceMustBeDirectory(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "file.txt")
	writeFile(t, src, "not a dir")

	err := CopyTree(src, filepath.Join(t.TempDir(), "out"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a directory")
}
