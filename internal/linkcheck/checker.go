// Package linkcheck verifies the references inside a published
// documentation tree. Intra-site links are resolved against the tree on
// disk; external http(s) links can optionally be probed over the network.
package linkcheck

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/vk/docpubgo/internal/ctxlog"
	"github.com/vk/docpubgo/internal/fsutil"
)

// Problem is one broken reference found during a check.
type Problem struct {
	File   string // HTML file the reference appears in, relative to the root
	Ref    string // the href/src value as written
	Reason string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s (%s)", p.File, p.Ref, p.Reason)
}

// Checker walks every HTML file under Root and reports broken references.
type Checker struct {
	Root     string
	External bool // also probe external http(s) URLs
	Workers  int  // concurrent external probes; defaults to 8
	Client   *http.Client
}

// New creates a Checker for the documentation tree at root.
func New(root string) *Checker {
	return &Checker{
		Root:    root,
		Workers: 8,
		Client: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// reference is one outgoing link extracted from an HTML file.
type reference struct {
	file string // relative to the root
	raw  string
}

// Run checks every reference in the tree and returns the problems found.
// A non-nil error means the check itself could not run, not that links are
// broken.
func (c *Checker) Run(ctx context.Context) ([]Problem, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(c.Root, ".html")
	if err != nil {
		return nil, fmt.Errorf("failed to scan %q: %w", c.Root, err)
	}
	logger.Debug("Link checker scanning tree.", "root", c.Root, "files", len(files))

	var problems []Problem
	var external []reference

	for _, file := range files {
		rel, err := filepath.Rel(c.Root, file)
		if err != nil {
			return nil, err
		}
		refs, err := extractRefs(file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %q: %w", file, err)
		}

		for _, raw := range refs {
			ref := reference{file: rel, raw: raw}
			switch classify(raw) {
			case refSkip:
				continue
			case refExternal:
				external = append(external, ref)
			case refInternal:
				if reason := c.checkInternal(rel, raw); reason != "" {
					problems = append(problems, Problem{File: rel, Ref: raw, Reason: reason})
				}
			}
		}
	}

	if c.External && len(external) > 0 {
		problems = append(problems, c.checkExternal(ctx, external)...)
	}

	logger.Debug("Link check finished.", "problems", len(problems))
	return problems, nil
}

// extractRefs parses one HTML file and collects every href and src value.
func extractRefs(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, err
	}

	var refs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				if attr.Key == "href" || attr.Key == "src" {
					refs = append(refs, attr.Val)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return refs, nil
}

type refKind int

const (
	refInternal refKind = iota
	refExternal
	refSkip
)

func classify(raw string) refKind {
	switch {
	case raw == "", strings.HasPrefix(raw, "#"):
		return refSkip
	case strings.HasPrefix(raw, "mailto:"), strings.HasPrefix(raw, "javascript:"), strings.HasPrefix(raw, "data:"):
		return refSkip
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return refExternal
	case strings.HasPrefix(raw, "//"), strings.Contains(raw, "://"):
		return refSkip // protocol-relative or unknown scheme, nothing useful to verify
	}
	return refInternal
}

// checkInternal resolves a relative reference against the file it appears in
// and verifies the target exists in the tree. It returns an empty string
// when the reference is fine.
func (c *Checker) checkInternal(fromFile, raw string) string {
	target := raw
	if i := strings.IndexAny(target, "#?"); i >= 0 {
		target = target[:i]
	}
	if target == "" {
		return "" // fragment or query only
	}

	var resolved string
	if strings.HasPrefix(target, "/") {
		resolved = filepath.Join(c.Root, filepath.FromSlash(target))
	} else {
		resolved = filepath.Join(c.Root, filepath.Dir(fromFile), filepath.FromSlash(target))
	}

	info, err := os.Stat(resolved)
	if os.IsNotExist(err) {
		return "target does not exist"
	}
	if err != nil {
		return err.Error()
	}

	// Directory links require an index page, same as the web server would.
	if info.IsDir() || strings.HasSuffix(target, "/") {
		if _, err := os.Stat(filepath.Join(resolved, "index.html")); err != nil {
			return "directory has no index.html"
		}
	}
	return ""
}

// checkExternal probes the deduplicated external URLs with a pool of
// workers feeding from a shared channel.
func (c *Checker) checkExternal(ctx context.Context, refs []reference) []Problem {
	logger := ctxlog.FromContext(ctx)

	// Probe each URL once, however many pages reference it.
	byURL := make(map[string][]reference)
	for _, ref := range refs {
		byURL[ref.raw] = append(byURL[ref.raw], ref)
	}

	urls := make(chan string)
	results := make(chan Problem, len(refs))
	var wg sync.WaitGroup

	workers := c.Workers
	if workers <= 0 {
		workers = 8
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for u := range urls {
				logger.Debug("Probing external URL.", "workerID", workerID, "url", u)
				if reason := c.probe(ctx, u); reason != "" {
					for _, ref := range byURL[u] {
						results <- Problem{File: ref.file, Ref: ref.raw, Reason: reason}
					}
				}
			}
		}(i)
	}

	for u := range byURL {
		urls <- u
	}
	close(urls)
	wg.Wait()
	close(results)

	var problems []Problem
	for p := range results {
		problems = append(problems, p)
	}
	return problems
}

// probe fetches one external URL and returns a failure reason, or "" if the
// URL is reachable.
func (c *Checker) probe(ctx context.Context, rawURL string) string {
	if _, err := url.Parse(rawURL); err != nil {
		return fmt.Sprintf("unparseable URL: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err.Error()
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return err.Error()
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Sprintf("status %s", resp.Status)
	}
	return ""
}
