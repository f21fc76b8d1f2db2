// Package testutil provides shared helpers for integration-style tests that
// drive the app through a publish manifest written to a temp directory.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/docpubgo/internal/app"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	Dir       string // the temp directory the fixture files were written to
}

// RunPublish writes the given fixture files into a temp directory, makes it
// the working directory, points the app at it, and runs a full publish.
// File names are relative paths; content is written verbatim. The manifest
// is loaded from the whole directory, so every .hcl fixture participates.
// Because it changes the working directory, callers must not use t.Parallel.
func RunPublish(t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(origDir))
	})
	for name, content := range files {
		filePath := filepath.Join(tmpDir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	config, err := app.NewConfig(app.Config{
		Mode:         app.ModePipeline,
		ManifestPath: tmpDir,
		LogLevel:     "debug",
		LogFormat:    "text",
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	publishApp := app.NewApp(logBuffer, config)

	runErr := publishApp.Run(context.Background())

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		Dir:       tmpDir,
	}
}
