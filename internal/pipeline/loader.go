package pipeline

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/docpubgo/internal/ctxlog"
	"github.com/vk/docpubgo/internal/fsutil"
)

// DefaultRegistryPath is used when the docs block does not name a switcher
// registry file.
const DefaultRegistryPath = "switcher.json"

// Load reads a publish manifest from a single .hcl file or a directory of
// them and merges the discovered blocks into one Manifest. Exactly one
// `docs` block must exist across all files; steps keep file order, with
// files visited in sorted path order.
func Load(ctx context.Context, path string) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "path", path)

	files, err := manifestFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl manifest files found at %q", path)
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	parser := hclparse.NewParser()
	manifest := &Manifest{}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest file %s: %w", file, diags)
		}

		for _, docs := range root.Docs {
			if manifest.Docs != nil {
				return nil, fmt.Errorf("duplicate docs block in %s: only one docs block is allowed", file)
			}
			manifest.Docs = docs
		}
		manifest.Steps = append(manifest.Steps, root.Steps...)
	}

	if manifest.Docs == nil {
		return nil, fmt.Errorf("manifest at %q has no docs block", path)
	}
	if manifest.Docs.Registry == "" {
		manifest.Docs.Registry = DefaultRegistryPath
	}

	seen := make(map[string]bool, len(manifest.Steps))
	for _, step := range manifest.Steps {
		if seen[step.Name] {
			return nil, fmt.Errorf("duplicate step name %q", step.Name)
		}
		seen[step.Name] = true
	}

	logger.Debug("Manifest loaded.", "steps", len(manifest.Steps))
	return manifest, nil
}

// manifestFiles resolves a path argument into the list of .hcl files it
// denotes, sorted for a deterministic merge order.
func manifestFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat manifest path: %w", err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
