package copytree_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/docpubgo/internal/testutil"
)

func TestPublish_CopyTreeStep(t *testing.T) {
	// --- Arrange / Act ---
	result := testutil.RunPublish(t, map[string]string{
		"publish.hcl": `
docs {
  ref      = "v1.0"
  repo     = "org/repo"
  registry = "deploy/switcher.json"
}

step "copy_tree" "stage" {
  arguments {
    source = "build/html"
    dest   = "deploy/${docs.version}"
  }
}
`,
		"build/html/index.html":     "<html>home</html>",
		"build/html/api/index.html": "<html>api</html>",
	})

	// --- Assert ---
	require.NoError(t, result.Err)
	data, err := os.ReadFile(filepath.Join(result.Dir, "deploy", "v1.0", "api", "index.html"))
	require.NoError(t, err)
	require.Equal(t, "<html>api</html>", string(data))
}

func TestPublish_CopyTreeDefaultDest(t *testing.T) {
	// When dest is omitted, the tree is staged next to the registry under
	// the version's directory.
	result := testutil.RunPublish(t, map[string]string{
		"publish.hcl": `
docs {
  ref      = "feature/exp!"
  repo     = "org/repo"
  registry = "deploy/switcher.json"
}

step "copy_tree" "stage" {
  arguments {
    source = "build/html"
  }
}
`,
		"build/html/index.html": "<html></html>",
	})

	require.NoError(t, result.Err)
	_, err := os.Stat(filepath.Join(result.Dir, "deploy", "feature_exp_", "index.html"))
	require.NoError(t, err)
}

func TestPublish_CopyTreeMissingSourceFailsRun(t *testing.T) {
	result := testutil.RunPublish(t, map[string]string{
		"publish.hcl": `
docs {
  ref      = "v1.0"
  repo     = "org/repo"
}

step "copy_tree" "stage" {
  arguments {
    source = "no/such/tree"
  }
}
`,
	})

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), `step "stage" failed`)
}
