package switcher

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/vk/docpubgo/internal/refname"
)

// Sentinel errors for registry update failures.
var (
	// ErrMalformedRegistry indicates the existing registry file is present
	// but not parseable. The update aborts rather than overwrite it.
	ErrMalformedRegistry = errors.New("malformed registry")

	// ErrInvalidVersion indicates the version identifier is empty or
	// contains characters outside [A-Za-z0-9._-].
	ErrInvalidVersion = errors.New("invalid version")

	// ErrInvalidRepo indicates the repository identifier is not of the
	// "org/repo" form.
	ErrInvalidRepo = errors.New("invalid repository identifier")
)

// Order is the insertion policy for versions not yet present in the registry.
type Order string

const (
	// NewestFirst prepends new versions, so the most recently published
	// version is always the first entry.
	NewestFirst Order = "newest-first"

	// SemverDesc keeps new versions in descending semantic-version order.
	SemverDesc Order = "semver"
)

// ParseOrder validates an ordering policy name from configuration.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case NewestFirst, SemverDesc:
		return Order(s), nil
	}
	return "", fmt.Errorf("unknown ordering policy %q: must be %q or %q", s, NewestFirst, SemverDesc)
}

// Entry is one published documentation version and the URL it is served from.
type Entry struct {
	Version string `json:"version"`
	URL     string `json:"url"`
}

// Registry is the ordered list of published documentation versions.
type Registry struct {
	Entries []Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{Entries: []Entry{}}
}

// Parse parses registry JSON data.
func Parse(data []byte) (*Registry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRegistry, err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return &Registry{Entries: entries}, nil
}

// Load reads and parses the registry at path. A missing or empty file
// yields an empty registry; any other read error is returned as-is.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}
	if len(data) == 0 {
		return New(), nil
	}
	return Parse(data)
}

// PageURL derives the URL a version's documentation is served from, given an
// "org/repo" identifier: https://<org>.github.io/<repo>/<version>/.
func PageURL(repo, version string) (string, error) {
	org, name, ok := strings.Cut(repo, "/")
	if !ok || org == "" || name == "" || strings.Contains(name, "/") {
		return "", fmt.Errorf("%w: %q is not of the form org/repo", ErrInvalidRepo, repo)
	}
	return fmt.Sprintf("https://%s.github.io/%s/%s/", org, name, version), nil
}

// Add inserts or replaces the entry for version. A version already present
// is replaced in place, keeping its position, which makes Add idempotent:
// repeating it with identical inputs leaves the registry byte-identical.
// New versions are inserted at the position the ordering policy dictates.
func (r *Registry) Add(version, repo string, policy Order) error {
	if !refname.Valid(version) {
		return fmt.Errorf("%w: %q must be non-empty and contain only [A-Za-z0-9._-]", ErrInvalidVersion, version)
	}

	url, err := PageURL(repo, version)
	if err != nil {
		return err
	}
	entry := Entry{Version: version, URL: url}

	for i := range r.Entries {
		if r.Entries[i].Version == version {
			r.Entries[i] = entry
			return nil
		}
	}

	idx := r.insertIndex(version, policy)
	r.Entries = append(r.Entries, Entry{})
	copy(r.Entries[idx+1:], r.Entries[idx:])
	r.Entries[idx] = entry
	return nil
}

// insertIndex returns the index a new version is inserted at under the policy.
func (r *Registry) insertIndex(version string, policy Order) int {
	if policy != SemverDesc {
		return 0
	}
	for i, e := range r.Entries {
		if refname.Compare(version, e.Version) > 0 {
			return i
		}
	}
	return len(r.Entries)
}

// Marshal serializes the registry with deterministic, human-diffable
// formatting: a two-space-indented JSON array and a trailing newline.
func (r *Registry) Marshal() ([]byte, error) {
	entries := r.Entries
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal registry: %w", err)
	}
	return append(data, '\n'), nil
}

// Update performs the whole add-or-replace operation against the registry at
// path: load, add the version's entry, and atomically rewrite the file. On
// any error the file on disk is left exactly as it was.
func Update(path, version, repo string, policy Order) error {
	reg, err := Load(path)
	if err != nil {
		return err
	}
	if err := reg.Add(version, repo, policy); err != nil {
		return err
	}
	return reg.WriteFile(path)
}
