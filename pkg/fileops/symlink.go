package fileops

import (
	"fmt"
	"os"
)

// IsSymlink checks if a given path is a symbolic link.
// This function uses lstat to examine the file without following symlinks.
//
// Parameters:
//   - path: File path to check
//
// Returns:
//   - bool: true if the path is a symbolic link, false otherwise
//   - error: File system access errors
//
// Usage example:
//
//	isLink, err := fileops.IsSymlink("/path/to/potential/symlink")
//	if err != nil {
//	    return fmt.Errorf("failed to check symlink: %w", err)
//	}
//	if isLink {
//	    fmt.Println("Path is a symbolic link")
//	}
func IsSymlink(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat path: %w", err)
	}
	return info.Mode()&os.ModeSymlink != 0, nil
}

// SymlinkTarget returns the immediate target of a symbolic link without
// resolving the full chain. The result is exactly what the link stores and
// may be relative to the link's directory; callers that need an absolute
// location must resolve it themselves.
//
// Parameters:
//   - linkPath: Path to the symbolic link
//
// Returns:
//   - string: Direct target of the symlink (may be relative)
//   - error: Read errors or if path is not a symlink
//
// Usage example:
//
//	target, err := fileops.SymlinkTarget("/path/to/symlink")
//	if err != nil {
//	    return fmt.Errorf("failed to read symlink target: %w", err)
//	}
//	fmt.Printf("Symlink directly points to: %s\n", target)
func SymlinkTarget(linkPath string) (string, error) {
	// Verify it's actually a symlink
	isLink, err := IsSymlink(linkPath)
	if err != nil {
		return "", fmt.Errorf("cannot verify symlink: %w", err)
	}
	if !isLink {
		return "", fmt.Errorf("path is not a symbolic link: %s", linkPath)
	}

	// Read the symlink target
	target, err := os.Readlink(linkPath)
	if err != nil {
		return "", fmt.Errorf("failed to read symlink: %w", err)
	}

	return target, nil
}
