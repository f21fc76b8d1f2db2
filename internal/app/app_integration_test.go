package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/docpubgo/internal/switcher"
	"github.com/vk/docpubgo/internal/testutil"
)

// fullManifest drives every core step through one publish run, with the
// build harness standing in as a plain shell command.
const fullManifest = `
docs {
  ref      = "v1.1"
  repo     = "org/repo"
  registry = "deploy/switcher.json"
}

step "command" "build" {
  arguments {
    command = "sh"
    args    = ["-c", "mkdir -p build/html && cp src/index.html build/html/"]
  }
}

step "copy_tree" "stage" {
  arguments {
    source = "build/html"
    dest   = "deploy/${docs.version}"
  }
}

step "update_switcher" "registry" {}

step "link_check" "links" {
  arguments {
    root = "deploy/${docs.version}"
  }
}
`

func TestPublish_FullRun(t *testing.T) {
	// --- Arrange / Act ---
	result := testutil.RunPublish(t, map[string]string{
		"publish.hcl":    fullManifest,
		"src/index.html": `<html><a href="#top">top</a></html>`,
	})

	// --- Assert ---
	require.NoError(t, result.Err, "logs:\n%s", result.LogOutput)

	// The staged tree exists under the version directory.
	_, err := os.Stat(filepath.Join(result.Dir, "deploy", "v1.1", "index.html"))
	require.NoError(t, err)

	// The switcher registry lists the version with its served URL.
	reg, err := switcher.Load(filepath.Join(result.Dir, "deploy", "switcher.json"))
	require.NoError(t, err)
	require.Equal(t, []switcher.Entry{
		{Version: "v1.1", URL: "https://org.github.io/repo/v1.1/"},
	}, reg.Entries)

	// Every step ran.
	for _, step := range []string{"build", "stage", "registry", "links"} {
		require.Contains(t, result.LogOutput, "step="+step)
	}
}

func TestPublish_FailingBuildStopsTheRun(t *testing.T) {
	result := testutil.RunPublish(t, map[string]string{
		"publish.hcl": `
docs {
  ref      = "v1.0"
  repo     = "org/repo"
  registry = "switcher.json"
}

step "command" "build" {
  arguments {
    command = "sh"
    args    = ["-c", "echo docs build exploded >&2; exit 1"]
  }
}

step "update_switcher" "registry" {}
`,
	})

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "docs build exploded")

	// The aborted run never touched the registry.
	_, err := os.Stat(filepath.Join(result.Dir, "switcher.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
