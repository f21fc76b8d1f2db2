package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/docpubgo/internal/cli"
	"github.com/vk/docpubgo/internal/switcher"
)

func TestRun_AddMode(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	registryPath := filepath.Join(t.TempDir(), "switcher.json")
	args := []string{"--add", "v1.0", "org/repo", registryPath}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.NoError(t, err)
	reg, err := switcher.Load(registryPath)
	require.NoError(t, err)
	require.Equal(t, []switcher.Entry{
		{Version: "v1.0", URL: "https://org.github.io/repo/v1.0/"},
	}, reg.Entries)
}

func TestRun_AddModeInvalidVersion(t *testing.T) {
	t.Parallel()

	registryPath := filepath.Join(t.TempDir(), "switcher.json")
	err := run(&bytes.Buffer{}, []string{"--add", "feature/raw!", "org/repo", registryPath})

	require.ErrorIs(t, err, switcher.ErrInvalidVersion)
	_, statErr := os.Stat(registryPath)
	require.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestRun_PipelineMode(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	manifest := `
docs {
  ref      = "v2.0"
  repo     = "org/repo"
  registry = "` + filepath.ToSlash(filepath.Join(dir, "switcher.json")) + `"
}

step "update_switcher" "registry" {}
`
	manifestPath := filepath.Join(dir, "publish.hcl")
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifest), 0o644))

	// --- Act ---
	err := run(&bytes.Buffer{}, []string{manifestPath})

	// --- Assert ---
	require.NoError(t, err)
	reg, err := switcher.Load(filepath.Join(dir, "switcher.json"))
	require.NoError(t, err)
	require.Len(t, reg.Entries, 1)
	require.Equal(t, "v2.0", reg.Entries[0].Version)
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_BadFlagsReturnExitError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, []string{"--add", "only-one-arg"})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
}
