package linkcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestRun_InternalLinks(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := writeSite(t, map[string]string{
		"index.html": `<html><body>
			<a href="api/index.html">API</a>
			<a href="api/">API dir</a>
			<a href="missing.html">broken</a>
			<a href="#section">fragment</a>
			<a href="mailto:docs@example.org">mail</a>
			<img src="logo.png">
		</body></html>`,
		"api/index.html": `<html><a href="../index.html">home</a></html>`,
		"logo.png":       "png-bytes",
	})

	// --- Act ---
	problems, err := New(root).Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, problems, 1)
	require.Equal(t, "index.html", problems[0].File)
	require.Equal(t, "missing.html", problems[0].Ref)
}

func TestRun_DirectoryLinkNeedsIndex(t *testing.T) {
	t.Parallel()

	root := writeSite(t, map[string]string{
		"index.html":     `<html><a href="empty/">no index here</a></html>`,
		"empty/note.txt": "not an index",
	})

	problems, err := New(root).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, problems, 1)
	require.Contains(t, problems[0].Reason, "index.html")
}

func TestRun_RootAbsoluteLinks(t *testing.T) {
	t.Parallel()

	root := writeSite(t, map[string]string{
		"index.html":     `<html><a href="/api/index.html">API</a></html>`,
		"api/index.html": `<html></html>`,
	})

	problems, err := New(root).Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, problems)
}

func TestRun_ExternalLinks(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	root := writeSite(t, map[string]string{
		"index.html": `<html>
			<a href="` + srv.URL + `/ok">good</a>
			<a href="` + srv.URL + `/gone">bad</a>
			<a href="` + srv.URL + `/gone">bad again</a>
		</html>`,
	})

	checker := New(root)
	checker.External = true
	checker.Workers = 2

	// --- Act ---
	problems, err := checker.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, problems, 2, "both references to the dead URL should be reported")
	for _, p := range problems {
		require.Equal(t, srv.URL+"/gone", p.Ref)
		require.Contains(t, p.Reason, "404")
	}
}

func TestRun_ExternalLinksSkippedByDefault(t *testing.T) {
	t.Parallel()

	root := writeSite(t, map[string]string{
		"index.html": `<html><a href="http://127.0.0.1:1/unreachable">never probed</a></html>`,
	})

	problems, err := New(root).Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, problems)
}
