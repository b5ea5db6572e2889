package sandbox

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"filegate/internal/logging"
	"filegate/pkg/fileops"
)

// Resolver turns user-supplied path strings into vetted absolute paths.
// Every file operation in the server runs on a path returned by Validate.
type Resolver struct {
	roots  Roots
	logger *logging.AppLogger
}

// NewResolver creates a resolver bound to the given allowed directories.
func NewResolver(roots Roots, logger *logging.AppLogger) *Resolver {
	return &Resolver{
		roots:  roots,
		logger: logger,
	}
}

// Roots returns the allowed directory set the resolver was built with.
func (r *Resolver) Roots() Roots {
	return r.roots
}

// ExpandHome expands a path that is "~" or starts with "~/" to the user's
// home directory. Other forms, including ~username, are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if home directory unavailable
	}

	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// Normalize absolutizes path against the process working directory and
// collapses ".", ".." and redundant separators. It is a pure path
// computation and never consults the filesystem entries themselves.
func Normalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to normalize path %q: %w", path, err)
	}
	return abs, nil
}

// Validate maps requested onto the filesystem location it is allowed to
// touch, or rejects it.
//
// The pipeline: expand tilde, normalize, check containment against the
// allowed directories, then probe the entry once. Existing symlinks have
// their target read (one level, no recursion), resolved against the
// link's directory and containment-checked again; the vetted target
// becomes the result. Entries that do not exist yet pass on the lexical
// checks alone so that write targets can be created.
func (r *Resolver) Validate(requested string) (string, error) {
	normalized, err := Normalize(ExpandHome(requested))
	if err != nil {
		return "", err
	}

	if !r.roots.Contains(normalized) {
		r.logger.Debug("Rejected path outside allowed directories", "requested", requested, "normalized", normalized)
		return "", &AccessDeniedError{Path: normalized, Reason: ReasonOutsideRoots}
	}

	info, err := os.Lstat(normalized)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Target will be created by the caller; the lexical checks
			// above already vetted its location.
			return normalized, nil
		}
		return "", fmt.Errorf("failed to inspect path %s: %w", normalized, err)
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return normalized, nil
	}

	target, err := fileops.SymlinkTarget(normalized)
	if err != nil {
		return "", fmt.Errorf("failed to read symlink %s: %w", normalized, err)
	}

	// A relative target is relative to the directory holding the link.
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(normalized), target)
	}
	target = filepath.Clean(target)

	if !r.roots.Contains(target) {
		r.logger.Debug("Rejected symlink escaping allowed directories", "link", normalized, "target", target)
		return "", &AccessDeniedError{Path: target, Reason: ReasonSymlinkTarget}
	}

	return target, nil
}
