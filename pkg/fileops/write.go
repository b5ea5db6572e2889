package fileops

import (
	"fmt"
	"os"
)

// AtomicWrite writes data to destPath so that the destination either
// appears fully written or keeps its previous content. The data is staged
// in a temporary file next to the destination, synced to disk and then
// renamed into place; the rename is the atomic step.
//
// Parameters:
//   - destPath: Absolute path to the destination file
//   - data: Content to write
//   - perm: File mode for a newly created destination
//
// Returns:
//   - error: Staging, sync or rename errors
//
// Security considerations:
//   - The path should be validated before calling this function
//   - Temporary files are cleaned up on any failure
//
// Note: This function requires write permissions in the destination
// directory and will overwrite an existing file without warning.
func AtomicWrite(destPath string, data []byte, perm os.FileMode) error {
	// Create temporary file in same directory as destination
	tempPath := destPath + ".tmp"
	tempFile, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	// Ensure cleanup of temp file if anything goes wrong
	var writeSuccess bool
	defer func() {
		tempFile.Close()
		if !writeSuccess {
			os.Remove(tempPath) // Clean up on failure
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write file contents: %w", err)
	}

	// Sync to ensure data is written to disk
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}

	// Close temp file before rename
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	// Atomic rename - this is the atomic operation
	if err := os.Rename(tempPath, destPath); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	writeSuccess = true
	return nil
}

// EnsureDirectoryExists creates a directory and all necessary parent directories.
// This is equivalent to `mkdir -p` and is safe to call multiple times.
//
// Parameters:
//   - path: Directory path to create
//
// Returns:
//   - error: Directory creation errors
//
// The function sets directory permissions to 0755 (readable and executable by all,
// writable by owner only).
func EnsureDirectoryExists(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
