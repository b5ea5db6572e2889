package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Roots is the set of directory trees the server is allowed to touch.
// Entries are absolute and normalized at construction time and the set is
// never mutated afterwards; every component that needs it receives it by
// value.
type Roots struct {
	dirs []string
}

// NewRoots normalizes and verifies the given directories. Each entry gets
// tilde expansion and absolutization, and must exist as a directory on
// disk. At least one directory is required.
func NewRoots(dirs []string) (Roots, error) {
	if len(dirs) == 0 {
		return Roots{}, fmt.Errorf("at least one allowed directory is required")
	}

	normalized := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		abs, err := Normalize(ExpandHome(dir))
		if err != nil {
			return Roots{}, fmt.Errorf("failed to normalize allowed directory %q: %w", dir, err)
		}

		info, err := os.Stat(abs)
		if err != nil {
			return Roots{}, fmt.Errorf("cannot access allowed directory %s: %w", abs, err)
		}
		if !info.IsDir() {
			return Roots{}, fmt.Errorf("allowed path is not a directory: %s", abs)
		}

		normalized = append(normalized, abs)
	}

	return Roots{dirs: normalized}, nil
}

// Contains reports whether path (already absolute and normalized) lies
// inside one of the allowed directories. A path counts as inside only when
// it equals a root or extends it at a separator boundary, so a root of
// /tmp/allowed never admits its sibling /tmp/allowed2.
func (r Roots) Contains(path string) bool {
	sep := string(filepath.Separator)
	for _, root := range r.dirs {
		if path == root {
			return true
		}
		prefix := root
		if !strings.HasSuffix(prefix, sep) {
			prefix += sep
		}
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// List returns the allowed directories in construction order. The result
// is a copy; callers cannot alter the set through it.
func (r Roots) List() []string {
	out := make([]string, len(r.dirs))
	copy(out, r.dirs)
	return out
}

// Len returns the number of allowed directories.
func (r Roots) Len() int {
	return len(r.dirs)
}

// IsReservedDirectory checks if the path is a system or reserved directory.
// Serving one of these is almost always an operator mistake, so callers
// warn about it at startup.
func IsReservedDirectory(path string) bool {
	// Convert to absolute path for comparison
	absPath, err := filepath.Abs(path)
	if err != nil {
		return true // If we can't resolve it, treat as reserved
	}

	// Common system directories to avoid
	reservedDirs := []string{
		"/",
		"/bin",
		"/boot",
		"/dev",
		"/etc",
		"/lib",
		"/proc",
		"/root",
		"/sbin",
		"/sys",
		"/usr",
		"/var",
	}

	// Windows system directories
	if runtime.GOOS == "windows" {
		windowsReserved := []string{
			"C:\\Windows",
			"C:\\Program Files",
			"C:\\Program Files (x86)",
			"C:\\System32",
		}
		reservedDirs = append(reservedDirs, windowsReserved...)
	}

	for _, reserved := range reservedDirs {
		if strings.EqualFold(absPath, reserved) || strings.HasPrefix(strings.ToLower(absPath), strings.ToLower(reserved)+string(os.PathSeparator)) {
			return true
		}
	}

	return false
}
