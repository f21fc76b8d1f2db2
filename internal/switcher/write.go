package switcher

import (
	"fmt"
	"os"
	"path/filepath"
)

// registryPermissions is the file permission mode for the registry. The
// switcher document is served publicly, so it is world-readable.
const registryPermissions = 0o644

// WriteFile atomically replaces the registry at path. The serialized
// registry is written to a temp file in the same directory and then renamed
// into place, so a crash mid-write can never leave a truncated or corrupt
// registry behind. Any temp file is removed on failure.
func (r *Registry) WriteFile(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".switcher-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp registry file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp registry file: %w", err)
	}
	if err := tmp.Chmod(registryPermissions); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set registry permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp registry file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace registry: %w", err)
	}
	return nil
}
